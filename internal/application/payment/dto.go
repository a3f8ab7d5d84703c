package payment

import (
	"time"

	"github.com/ayustore/backend/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRazorpayOrderRequest asks for a gateway order for a local order
type CreateRazorpayOrderRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}

// RazorpayOrderResponse carries everything the frontend checkout needs
type RazorpayOrderResponse struct {
	OrderID         uuid.UUID `json:"order_id"`
	RazorpayOrderID string    `json:"razorpay_order_id"`
	Amount          int64     `json:"amount"` // paise
	Currency        string    `json:"currency"`
	KeyID           string    `json:"key_id"`
}

// VerifyPaymentRequest carries the checkout callback fields
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// PaymentResponse is the API representation of a payment
type PaymentResponse struct {
	ID                uuid.UUID       `json:"id"`
	OrderID           uuid.UUID       `json:"order_id"`
	RazorpayOrderID   string          `json:"razorpay_order_id"`
	RazorpayPaymentID string          `json:"razorpay_payment_id,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
}

// ToPaymentResponse converts a domain payment to its API representation
func ToPaymentResponse(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:                p.ID,
		OrderID:           p.OrderID,
		RazorpayOrderID:   p.RazorpayOrderID,
		RazorpayPaymentID: p.RazorpayPaymentID,
		Amount:            p.Amount,
		Status:            p.Status.String(),
		CreatedAt:         p.CreatedAt,
		CompletedAt:       p.CompletedAt,
	}
}
