package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest asks the gateway to open a payment intent.
// Amount is in rupees; adapters convert to the gateway's smallest unit.
type CreateOrderRequest struct {
	Amount   decimal.Decimal
	Currency string
	Receipt  string
}

// GatewayOrder is a payment intent created on the gateway side
type GatewayOrder struct {
	ID       string
	Amount   int64 // smallest currency unit (paise)
	Currency string
	Receipt  string
	Status   string
}

// Gateway abstracts the payment provider
type Gateway interface {
	// CreateOrder opens a payment intent on the gateway
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*GatewayOrder, error)

	// VerifySignature checks the callback signature for a captured payment
	VerifySignature(razorpayOrderID, razorpayPaymentID, signature string) bool

	// KeyID returns the public key identifier handed to frontend checkout
	KeyID() string
}
