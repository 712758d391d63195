package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/rakibulhaque/trendibay-backend/pkg/db/models"
	"github.com/rakibulhaque/trendibay-backend/pkg/enums"
)

type OrderLineDTO struct {
	ID                uuid.UUID  `json:"id"`
	ProductID         *uuid.UUID `json:"product_id,omitempty"`
	ProductName       string     `json:"product_name"`
	Quantity          int        `json:"quantity"`
	UnitPriceCents    int64      `json:"unit_price_cents"`
	LineSubtotalCents int64      `json:"line_subtotal_cents"`
	ImageURL          string     `json:"image_url"`
	Category          string     `json:"category"`
}

type OrderDTO struct {
	ID               uuid.UUID           `json:"id"`
	OrderNumber      int64               `json:"order_number"`
	UserID           uuid.UUID           `json:"user_id"`
	CustomerName     string              `json:"customer_name"`
	CustomerEmail    string              `json:"customer_email"`
	CustomerPhone    string              `json:"customer_phone"`
	District         string              `json:"district"`
	StreetAddress    string              `json:"street_address"`
	AddressNote      *string             `json:"address_note,omitempty"`
	SubtotalCents    int64               `json:"subtotal_cents"`
	ShippingFeeCents int64               `json:"shipping_fee_cents"`
	TotalCents       int64               `json:"total_cents"`
	PaymentMethod    enums.PaymentMethod `json:"payment_method"`
	PaymentStatus    enums.PaymentStatus `json:"payment_status"`
	PayerNumber      *string             `json:"payer_number,omitempty"`
	TransactionRef   *string             `json:"transaction_ref,omitempty"`
	Status           enums.OrderStatus   `json:"status"`
	Lines            []OrderLineDTO      `json:"lines"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func ToDTO(order *models.Order) OrderDTO {
	dto := OrderDTO{
		ID:               order.ID,
		OrderNumber:      order.OrderNumber,
		UserID:           order.UserID,
		CustomerName:     order.CustomerName,
		CustomerEmail:    order.CustomerEmail,
		CustomerPhone:    order.CustomerPhone,
		District:         order.District,
		StreetAddress:    order.StreetAddress,
		AddressNote:      order.AddressNote,
		SubtotalCents:    order.SubtotalCents,
		ShippingFeeCents: order.ShippingFeeCents,
		TotalCents:       order.TotalCents,
		PaymentMethod:    order.PaymentMethod,
		PaymentStatus:    order.PaymentStatus,
		PayerNumber:      order.PayerNumber,
		TransactionRef:   order.TransactionRef,
		Status:           order.Status,
		Lines:            make([]OrderLineDTO, 0, len(order.Lines)),
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
	for i := range order.Lines {
		line := &order.Lines[i]
		dto.Lines = append(dto.Lines, OrderLineDTO{
			ID:                line.ID,
			ProductID:         line.ProductID,
			ProductName:       line.ProductName,
			Quantity:          line.Quantity,
			UnitPriceCents:    line.UnitPriceCents,
			LineSubtotalCents: line.LineSubtotalCents,
			ImageURL:          line.ImageURL,
			Category:          line.Category,
		})
	}
	return dto
}

type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

type UpdatePaymentStatusInput struct {
	PaymentStatus string `json:"payment_status" validate:"required"`
}

type ListOrdersQuery struct {
	Status string
	Cursor string
	Limit  int
}
