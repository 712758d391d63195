package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product line in a user's cart. The (user_id,
// product_id) pair is unique; re-adding a product bumps quantity
// instead of inserting a second row. Product fields are snapshotted at
// add time.
type CartItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uniq_cart_user_product"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:uniq_cart_user_product"`
	Quantity       int       `gorm:"column:quantity;not null"`
	ProductName    string    `gorm:"column:product_name;not null"`
	UnitPriceCents int64     `gorm:"column:unit_price_cents;not null"`
	ImageURL       string    `gorm:"column:image_url;not null;default:''"`
	Category       string    `gorm:"column:category;not null;default:''"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CartItem) TableName() string { return "cart_items" }

func (c CartItem) LineSubtotalCents() int64 {
	return c.UnitPriceCents * int64(c.Quantity)
}
