package payment

import (
	"context"

	"github.com/ayustore/backend/internal/domain/order"
	"github.com/ayustore/backend/internal/domain/payment"
)

// VerificationRepositories provides access to the repositories touched by
// payment verification, scoped to one transaction.
type VerificationRepositories interface {
	Payments() payment.Repository
	Orders() order.Repository
}

// VerificationScope persists the outcome of a signature check atomically:
// the payment state change and the order status move commit together.
type VerificationScope interface {
	Execute(ctx context.Context, fn func(repos VerificationRepositories) error) error
}
