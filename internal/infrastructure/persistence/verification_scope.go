package persistence

import (
	"context"

	apppayment "github.com/ayustore/backend/internal/application/payment"
	"github.com/ayustore/backend/internal/domain/order"
	"github.com/ayustore/backend/internal/domain/payment"
	"gorm.io/gorm"
)

// GormVerificationScope implements the payment verification scope using
// GORM transactions. The payment settlement and the order status move
// commit or roll back together.
type GormVerificationScope struct {
	db *gorm.DB
}

// NewGormVerificationScope creates a new GormVerificationScope
func NewGormVerificationScope(db *gorm.DB) *GormVerificationScope {
	return &GormVerificationScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormVerificationScope) Execute(ctx context.Context, fn func(repos apppayment.VerificationRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormVerificationRepositories{tx: tx})
	})
}

type gormVerificationRepositories struct {
	tx *gorm.DB
}

// Payments returns the payment repository scoped to the current transaction
func (r *gormVerificationRepositories) Payments() payment.Repository {
	return NewGormPaymentRepository(r.tx)
}

// Orders returns the order repository scoped to the current transaction
func (r *gormVerificationRepositories) Orders() order.Repository {
	return NewGormOrderRepository(r.tx)
}

var _ apppayment.VerificationScope = (*GormVerificationScope)(nil)
var _ apppayment.VerificationRepositories = (*gormVerificationRepositories)(nil)
