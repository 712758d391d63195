package checkout

import "github.com/rakibulhaque/trendibay-backend/internal/orders"

// CheckoutInput is the full checkout request: contact block plus the
// payment declaration. Wallet payments carry the payer's number and
// the transaction id the customer typed in.
type CheckoutInput struct {
	CustomerName   string `json:"customer_name" validate:"required,min=2,max=120"`
	CustomerEmail  string `json:"customer_email" validate:"required,email"`
	CustomerPhone  string `json:"customer_phone" validate:"required,min=6,max=20"`
	District       string `json:"district" validate:"required,min=2,max=80"`
	StreetAddress  string `json:"street_address" validate:"required,min=4,max=300"`
	AddressNote    string `json:"address_note" validate:"max=500"`
	PaymentMethod  string `json:"payment_method" validate:"required"`
	PayerNumber    string `json:"payer_number" validate:"omitempty,min=6,max=20"`
	TransactionRef string `json:"transaction_ref" validate:"omitempty,min=4,max=80"`
}

// CheckoutResultDTO reports the placed order and whether the cart was
// cleared inline. When false, the sweep job finishes the clear later.
type CheckoutResultDTO struct {
	Order       orders.OrderDTO `json:"order"`
	CartCleared bool            `json:"cart_cleared"`
	Replayed    bool            `json:"replayed,omitempty"`
}
