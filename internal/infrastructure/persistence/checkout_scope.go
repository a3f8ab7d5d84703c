package persistence

import (
	"context"

	apporder "github.com/ayustore/backend/internal/application/order"
	"github.com/ayustore/backend/internal/domain/catalog"
	"github.com/ayustore/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormCheckoutScope implements the checkout transaction scope using GORM
// transactions. Stock decrements and the order insert commit or roll back
// together.
type GormCheckoutScope struct {
	db *gorm.DB
}

// NewGormCheckoutScope creates a new GormCheckoutScope
func NewGormCheckoutScope(db *gorm.DB) *GormCheckoutScope {
	return &GormCheckoutScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormCheckoutScope) Execute(ctx context.Context, fn func(repos apporder.CheckoutRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCheckoutRepositories{tx: tx})
	})
}

type gormCheckoutRepositories struct {
	tx *gorm.DB
}

// Products returns the product repository scoped to the current transaction
func (r *gormCheckoutRepositories) Products() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// Orders returns the order repository scoped to the current transaction
func (r *gormCheckoutRepositories) Orders() order.Repository {
	return NewGormOrderRepository(r.tx)
}

var _ apporder.CheckoutScope = (*GormCheckoutScope)(nil)
var _ apporder.CheckoutRepositories = (*gormCheckoutRepositories)(nil)
