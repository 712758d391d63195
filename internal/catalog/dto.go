package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/rakibulhaque/trendibay-backend/pkg/db/models"
)

type ProductDTO struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Category       string    `json:"category"`
	ImageURL       string    `json:"image_url"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	StockQuantity  int       `json:"stock_quantity"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToDTO(p *models.Product) ProductDTO {
	return ProductDTO{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		ImageURL:       p.ImageURL,
		UnitPriceCents: p.UnitPriceCents,
		StockQuantity:  p.StockQuantity,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type CreateProductInput struct {
	Name           string `json:"name" validate:"required,min=2,max=200"`
	Description    string `json:"description" validate:"max=5000"`
	Category       string `json:"category" validate:"required,min=2,max=80"`
	ImageURL       string `json:"image_url" validate:"omitempty,url"`
	UnitPriceCents int64  `json:"unit_price_cents" validate:"required,gt=0"`
	StockQuantity  int    `json:"stock_quantity" validate:"gte=0"`
}

type UpdateProductInput struct {
	Name           *string `json:"name" validate:"omitempty,min=2,max=200"`
	Description    *string `json:"description" validate:"omitempty,max=5000"`
	Category       *string `json:"category" validate:"omitempty,min=2,max=80"`
	ImageURL       *string `json:"image_url" validate:"omitempty,url"`
	UnitPriceCents *int64  `json:"unit_price_cents" validate:"omitempty,gt=0"`
	StockQuantity  *int    `json:"stock_quantity" validate:"omitempty,gte=0"`
	Active         *bool   `json:"active"`
}

type ListProductsQuery struct {
	Category string
	Cursor   string
	Limit    int
}
