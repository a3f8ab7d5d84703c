package order

import (
	"context"

	"github.com/ayustore/backend/internal/domain/catalog"
	"github.com/ayustore/backend/internal/domain/order"
)

// CheckoutRepositories provides access to the repositories participating
// in a checkout, scoped to one transaction.
type CheckoutRepositories interface {
	Products() catalog.ProductRepository
	Orders() order.Repository
}

// CheckoutScope executes a checkout atomically. If fn returns an error the
// whole checkout, including every stock decrement, is rolled back.
type CheckoutScope interface {
	Execute(ctx context.Context, fn func(repos CheckoutRepositories) error) error
}
