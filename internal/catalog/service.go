package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rakibulhaque/trendibay-backend/pkg/db"
	"github.com/rakibulhaque/trendibay-backend/pkg/db/models"
	"github.com/rakibulhaque/trendibay-backend/pkg/errors"
	"github.com/rakibulhaque/trendibay-backend/pkg/logger"
	"github.com/rakibulhaque/trendibay-backend/pkg/pagination"
)

// Service exposes storefront browsing and admin catalog management.
type Service interface {
	GetProduct(ctx context.Context, id uuid.UUID) (ProductDTO, error)
	ListProducts(ctx context.Context, query ListProductsQuery) (pagination.Page[ProductDTO], error)
	CreateProduct(ctx context.Context, input CreateProductInput) (ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog: repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (ProductDTO, error) {
	product, err := s.repo.GetActive(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return ProductDTO{}, errors.New(errors.CodeNotFound, "product not found")
		}
		return ProductDTO{}, errors.Wrap(errors.CodeInternal, err, "load product")
	}
	return ToDTO(product), nil
}

func (s *service) ListProducts(ctx context.Context, query ListProductsQuery) (pagination.Page[ProductDTO], error) {
	limit := pagination.ClampLimit(query.Limit)

	var cursor *pagination.Cursor
	if raw := strings.TrimSpace(query.Cursor); raw != "" {
		decoded, err := pagination.Decode(raw)
		if err != nil {
			return pagination.Page[ProductDTO]{}, errors.New(errors.CodeValidation, "invalid cursor")
		}
		cursor = &decoded
	}

	// Fetch one extra row to learn whether another page exists.
	rows, err := s.repo.ListActive(ctx, strings.TrimSpace(query.Category), cursor, limit+1)
	if err != nil {
		return pagination.Page[ProductDTO]{}, errors.Wrap(errors.CodeInternal, err, "list products")
	}

	page := pagination.Page[ProductDTO]{Items: make([]ProductDTO, 0, len(rows))}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		next := pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
		page.NextCursor = &next
	}
	for i := range rows {
		page.Items = append(page.Items, ToDTO(&rows[i]))
	}
	return page, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (ProductDTO, error) {
	logg := logger.FromContext(ctx)

	product := &models.Product{
		Name:           strings.TrimSpace(input.Name),
		Description:    strings.TrimSpace(input.Description),
		Category:       strings.TrimSpace(input.Category),
		ImageURL:       strings.TrimSpace(input.ImageURL),
		UnitPriceCents: input.UnitPriceCents,
		StockQuantity:  input.StockQuantity,
		Active:         true,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return ProductDTO{}, errors.Wrap(errors.CodeInternal, err, "create product")
	}

	logg.WithField("product_id", product.ID.String()).Info("product created")
	return ToDTO(product), nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (ProductDTO, error) {
	product, err := s.repo.GetAny(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return ProductDTO{}, errors.New(errors.CodeNotFound, "product not found")
		}
		return ProductDTO{}, errors.Wrap(errors.CodeInternal, err, "load product")
	}
	if product.DeletedAt != nil {
		return ProductDTO{}, errors.New(errors.CodeNotFound, "product not found")
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		product.Category = strings.TrimSpace(*input.Category)
	}
	if input.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.UnitPriceCents != nil {
		product.UnitPriceCents = *input.UnitPriceCents
	}
	if input.StockQuantity != nil {
		product.StockQuantity = *input.StockQuantity
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return ProductDTO{}, errors.Wrap(errors.CodeInternal, err, "update product")
	}
	return ToDTO(product), nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "delete product")
	}
	if affected == 0 {
		return errors.New(errors.CodeNotFound, "product not found")
	}
	return nil
}
