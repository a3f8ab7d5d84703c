package payment

import (
	"time"

	"github.com/ayustore/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of a payment
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusRefunded  Status = "REFUNDED"
)

// IsValid checks if the status is a valid payment Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// Payment links a local order to a gateway-side payment intent.
// One payment exists per order; RazorpayOrderID is unique.
type Payment struct {
	ID                uuid.UUID
	OrderID           uuid.UUID
	RazorpayOrderID   string
	RazorpayPaymentID string
	RazorpaySignature string
	Amount            decimal.Decimal
	Status            Status
	CreatedAt         time.Time
	CompletedAt       *time.Time
}

// NewPayment creates a pending payment for an order
func NewPayment(orderID uuid.UUID, razorpayOrderID string, amount decimal.Decimal) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Payment must reference an order")
	}
	if razorpayOrderID == "" {
		return nil, shared.NewDomainError("INVALID_GATEWAY_ORDER", "Payment must reference a gateway order")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	return &Payment{
		ID:              uuid.New(),
		OrderID:         orderID,
		RazorpayOrderID: razorpayOrderID,
		Amount:          amount,
		Status:          StatusPending,
		CreatedAt:       time.Now(),
	}, nil
}

// Complete marks the payment as verified and settled.
// Only a pending payment can complete; completed and failed payments
// are never reopened.
func (p *Payment) Complete(razorpayPaymentID, razorpaySignature string) error {
	if p.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE",
			"Payment is already "+p.Status.String()+" and cannot be completed")
	}
	now := time.Now()
	p.RazorpayPaymentID = razorpayPaymentID
	p.RazorpaySignature = razorpaySignature
	p.Status = StatusCompleted
	p.CompletedAt = &now
	return nil
}

// Fail marks the payment as failed after a rejected verification
func (p *Payment) Fail() error {
	if p.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE",
			"Payment is already "+p.Status.String()+" and cannot be failed")
	}
	p.Status = StatusFailed
	return nil
}
