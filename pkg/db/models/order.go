package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/rakibulhaque/trendibay-backend/pkg/enums"
)

// Order is a placed order with its frozen totals and contact block.
// OrderNumber comes from a dedicated sequence so it is human-friendly
// and gap-tolerant.
type Order struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber      int64               `gorm:"column:order_number;not null;uniqueIndex;default:nextval('order_number_seq')"`
	UserID           uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	CustomerName     string              `gorm:"column:customer_name;not null"`
	CustomerEmail    string              `gorm:"column:customer_email;not null"`
	CustomerPhone    string              `gorm:"column:customer_phone;not null"`
	District         string              `gorm:"column:district;not null"`
	StreetAddress    string              `gorm:"column:street_address;not null"`
	AddressNote      *string             `gorm:"column:address_note"`
	SubtotalCents    int64               `gorm:"column:subtotal_cents;not null"`
	ShippingFeeCents int64               `gorm:"column:shipping_fee_cents;not null"`
	TotalCents       int64               `gorm:"column:total_cents;not null"`
	PaymentMethod    enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	PaymentStatus    enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'"`
	PayerNumber      *string             `gorm:"column:payer_number"`
	TransactionRef   *string             `gorm:"column:transaction_ref"`
	Status           enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	Lines            []OrderLineItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "orders" }

// OrderLineItem freezes a cart line at checkout time. ProductID is
// nullable so catalog deletes never mutilate order history.
type OrderLineItem struct {
	ID                uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID           uuid.UUID  `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID         *uuid.UUID `gorm:"column:product_id;type:uuid"`
	ProductName       string     `gorm:"column:product_name;not null"`
	Quantity          int        `gorm:"column:quantity;not null"`
	UnitPriceCents    int64      `gorm:"column:unit_price_cents;not null"`
	LineSubtotalCents int64      `gorm:"column:line_subtotal_cents;not null"`
	ImageURL          string     `gorm:"column:image_url;not null;default:''"`
	Category          string     `gorm:"column:category;not null;default:''"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (OrderLineItem) TableName() string { return "order_line_items" }
