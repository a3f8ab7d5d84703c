package catalog

import (
	"strings"

	"github.com/ayustore/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product represents an item in the store catalog.
// It is the aggregate root for catalog operations. Products are never
// hard-deleted; deactivation keeps historical order line items resolvable.
type Product struct {
	shared.BaseEntity
	Name        string
	Price       decimal.Decimal
	Description string
	Category    string
	Image       string
	Rating      float64
	Reviews     int
	Stock       int
	IsActive    bool
}

// NewProduct creates a new active product with required fields
func NewProduct(name string, price decimal.Decimal, category string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Price:      price,
		Category:   strings.TrimSpace(category),
		IsActive:   true,
	}, nil
}

// SetStock replaces the current stock quantity
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	p.Touch()
	return nil
}

// Deactivate soft-deletes the product
func (p *Product) Deactivate() {
	p.IsActive = false
	p.Touch()
}

// Activate re-enables a soft-deleted product
func (p *Product) Activate() {
	p.IsActive = true
	p.Touch()
}
