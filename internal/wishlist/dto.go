package wishlist

import (
	"time"

	"github.com/google/uuid"

	"github.com/rakibulhaque/trendibay-backend/pkg/db/models"
)

type ToggleInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

type ListQuery struct {
	Cursor string
	Limit  int
}

type WishlistItemDTO struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	ImageURL       string    `json:"image_url"`
	Category       string    `json:"category"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToggleResultDTO reports which way the toggle landed.
type ToggleResultDTO struct {
	ProductID  uuid.UUID `json:"product_id"`
	Wishlisted bool      `json:"wishlisted"`
}

func toItemDTO(item *models.WishlistItem) WishlistItemDTO {
	return WishlistItemDTO{
		ID:             item.ID,
		ProductID:      item.ProductID,
		ProductName:    item.ProductName,
		UnitPriceCents: item.UnitPriceCents,
		ImageURL:       item.ImageURL,
		Category:       item.Category,
		CreatedAt:      item.CreatedAt,
	}
}
