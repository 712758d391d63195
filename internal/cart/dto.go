package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/rakibulhaque/trendibay-backend/pkg/db/models"
)

type AddItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gte=1,lte=999"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" validate:"required,gte=1,lte=999"`
}

type CartItemDTO struct {
	ID                uuid.UUID `json:"id"`
	ProductID         uuid.UUID `json:"product_id"`
	ProductName       string    `json:"product_name"`
	Quantity          int       `json:"quantity"`
	UnitPriceCents    int64     `json:"unit_price_cents"`
	LineSubtotalCents int64     `json:"line_subtotal_cents"`
	ImageURL          string    `json:"image_url"`
	Category          string    `json:"category"`
	CreatedAt         time.Time `json:"created_at"`
}

// CartDTO is the cart summary: every line plus the running subtotal.
type CartDTO struct {
	Items         []CartItemDTO `json:"items"`
	ItemCount     int           `json:"item_count"`
	SubtotalCents int64         `json:"subtotal_cents"`
}

func toItemDTO(item *models.CartItem) CartItemDTO {
	return CartItemDTO{
		ID:                item.ID,
		ProductID:         item.ProductID,
		ProductName:       item.ProductName,
		Quantity:          item.Quantity,
		UnitPriceCents:    item.UnitPriceCents,
		LineSubtotalCents: item.LineSubtotalCents(),
		ImageURL:          item.ImageURL,
		Category:          item.Category,
		CreatedAt:         item.CreatedAt,
	}
}

// BuildCartDTO folds cart lines into the summary shape.
func BuildCartDTO(items []models.CartItem) CartDTO {
	dto := CartDTO{Items: make([]CartItemDTO, 0, len(items))}
	for i := range items {
		line := toItemDTO(&items[i])
		dto.Items = append(dto.Items, line)
		dto.ItemCount += line.Quantity
		dto.SubtotalCents += line.LineSubtotalCents
	}
	return dto
}
