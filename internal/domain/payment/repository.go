package payment

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for payments
type Repository interface {
	// FindByRazorpayOrderID finds a payment by its gateway order id
	FindByRazorpayOrderID(ctx context.Context, razorpayOrderID string) (*Payment, error)

	// FindByOrderID finds the payment attached to a local order
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Payment, error)

	// Save persists a new payment
	Save(ctx context.Context, payment *Payment) error

	// Update persists changes to an existing payment
	Update(ctx context.Context, payment *Payment) error
}
