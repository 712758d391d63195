package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Cart and wishlist rows snapshot the
// fields they need so later edits do not rewrite history.
type Product struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string     `gorm:"column:name;not null"`
	Description    string     `gorm:"column:description;not null;default:''"`
	Category       string     `gorm:"column:category;not null;index"`
	ImageURL       string     `gorm:"column:image_url;not null;default:''"`
	UnitPriceCents int64      `gorm:"column:unit_price_cents;not null"`
	StockQuantity  int        `gorm:"column:stock_quantity;not null;default:0"`
	Active         bool       `gorm:"column:active;not null;default:true"`
	DeletedAt      *time.Time `gorm:"column:deleted_at;index"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
