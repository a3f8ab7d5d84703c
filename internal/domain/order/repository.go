package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines the persistence interface for orders
type Repository interface {
	// FindByID finds an order with its line items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByUser returns a user's orders, newest first, with line items
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	// FindAll returns all orders, newest first, with line items
	FindAll(ctx context.Context) ([]Order, error)

	// Save persists a new order together with its line items
	Save(ctx context.Context, order *Order) error

	// UpdateStatus persists a status change
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error

	// Count returns the total number of orders
	Count(ctx context.Context) (int64, error)

	// SumDeliveredTotals sums the totals of delivered orders.
	// Returns zero when there are none.
	SumDeliveredTotals(ctx context.Context) (decimal.Decimal, error)
}
