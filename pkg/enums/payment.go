package enums

import "fmt"

type PaymentMethod string

const (
	PaymentMethodCOD   PaymentMethod = "cod"
	PaymentMethodBkash PaymentMethod = "bkash"
	PaymentMethodNagad PaymentMethod = "nagad"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodBkash, PaymentMethodNagad:
		return true
	}
	return false
}

// RequiresTransactionRef reports whether the method needs a payer
// number and wallet transaction id supplied at checkout.
func (m PaymentMethod) RequiresTransactionRef() bool {
	return m == PaymentMethodBkash || m == PaymentMethodNagad
}

func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	method := PaymentMethod(raw)
	if !method.IsValid() {
		return "", fmt.Errorf("unknown payment method %q", raw)
	}
	return method, nil
}

// PaymentStatus tracks settlement independently of fulfillment.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

func (s PaymentStatus) String() string {
	return string(s)
}

func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPending || s == PaymentStatusPaid
}

func ParsePaymentStatus(raw string) (PaymentStatus, error) {
	status := PaymentStatus(raw)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown payment status %q", raw)
	}
	return status, nil
}
