package models

import (
	"time"

	"github.com/google/uuid"
)

// CartClearIntent records which cart lines a committed checkout still
// needs removed. The row is written inside the checkout transaction
// and deleted once the lines are gone, so a crash between commit and
// cleanup leaves a durable trail for the sweep job.
type CartClearIntent struct {
	OrderID     uuid.UUID   `gorm:"column:order_id;type:uuid;primaryKey"`
	UserID      uuid.UUID   `gorm:"column:user_id;type:uuid;not null;index"`
	CartItemIDs []uuid.UUID `gorm:"column:cart_item_ids;type:jsonb;serializer:json;not null"`
	Attempts    int         `gorm:"column:attempts;not null;default:0"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime"`
}

func (CartClearIntent) TableName() string { return "cart_clear_intents" }
