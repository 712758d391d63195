package wishlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rakibulhaque/trendibay-backend/internal/catalog"
	"github.com/rakibulhaque/trendibay-backend/pkg/db"
	"github.com/rakibulhaque/trendibay-backend/pkg/db/models"
	"github.com/rakibulhaque/trendibay-backend/pkg/errors"
	"github.com/rakibulhaque/trendibay-backend/pkg/pagination"
)

// Service exposes the wishlist toggle, removal, and listing.
type Service interface {
	Toggle(ctx context.Context, userID uuid.UUID, input ToggleInput) (ToggleResultDTO, error)
	Remove(ctx context.Context, userID, entryID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, query ListQuery) (pagination.Page[WishlistItemDTO], error)
}

type service struct {
	repo        *Repository
	catalogRepo *catalog.Repository
}

func NewService(repo *Repository, catalogRepo *catalog.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wishlist: repository is required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("wishlist: catalog repository is required")
	}
	return &service{repo: repo, catalogRepo: catalogRepo}, nil
}

// Toggle removes the product when present, adds it when absent.
// Delete-first keeps the two paths symmetric: any number of repeat
// calls just flips the membership bit.
func (s *service) Toggle(ctx context.Context, userID uuid.UUID, input ToggleInput) (ToggleResultDTO, error) {
	removed, err := s.repo.Remove(ctx, userID, input.ProductID)
	if err != nil {
		return ToggleResultDTO{}, errors.Wrap(errors.CodeInternal, err, "remove wishlist item")
	}
	if removed > 0 {
		return ToggleResultDTO{ProductID: input.ProductID, Wishlisted: false}, nil
	}

	product, err := s.catalogRepo.GetActive(ctx, input.ProductID)
	if err != nil {
		if db.IsNotFound(err) {
			return ToggleResultDTO{}, errors.New(errors.CodeNotFound, "product not found")
		}
		return ToggleResultDTO{}, errors.Wrap(errors.CodeInternal, err, "load product")
	}

	item := &models.WishlistItem{
		ID:             uuid.New(),
		UserID:         userID,
		ProductID:      product.ID,
		ProductName:    product.Name,
		UnitPriceCents: product.UnitPriceCents,
		ImageURL:       product.ImageURL,
		Category:       product.Category,
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return ToggleResultDTO{}, errors.Wrap(errors.CodeInternal, err, "add wishlist item")
	}

	return ToggleResultDTO{ProductID: input.ProductID, Wishlisted: true}, nil
}

// Remove deletes one entry. An entry owned by another user is reported
// as missing, not forbidden.
func (s *service) Remove(ctx context.Context, userID, entryID uuid.UUID) error {
	affected, err := s.repo.RemoveByID(ctx, userID, entryID)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "remove wishlist entry")
	}
	if affected == 0 {
		return errors.New(errors.CodeNotFound, "wishlist entry not found")
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, query ListQuery) (pagination.Page[WishlistItemDTO], error) {
	limit := pagination.ClampLimit(query.Limit)

	var cursor *pagination.Cursor
	if raw := strings.TrimSpace(query.Cursor); raw != "" {
		decoded, err := pagination.Decode(raw)
		if err != nil {
			return pagination.Page[WishlistItemDTO]{}, errors.New(errors.CodeValidation, "invalid cursor")
		}
		cursor = &decoded
	}

	items, err := s.repo.ListByUser(ctx, userID, cursor, limit+1)
	if err != nil {
		return pagination.Page[WishlistItemDTO]{}, errors.Wrap(errors.CodeInternal, err, "list wishlist items")
	}

	page := pagination.Page[WishlistItemDTO]{Items: make([]WishlistItemDTO, 0, len(items))}
	if len(items) > limit {
		items = items[:limit]
		last := items[len(items)-1]
		next := pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}.Encode()
		page.NextCursor = &next
	}
	for i := range items {
		page.Items = append(page.Items, toItemDTO(&items[i]))
	}
	return page, nil
}
