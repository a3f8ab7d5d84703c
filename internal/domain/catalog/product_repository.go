package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	// FindByID finds a product by ID regardless of active state.
	// Inactive products stay reachable for historical order items.
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindActiveByID finds a product that has not been soft-deleted
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAllActive returns all active products
	FindAllActive(ctx context.Context) ([]Product, error)

	// FindActiveByCategory returns active products in a category
	FindActiveByCategory(ctx context.Context, category string) ([]Product, error)

	// SearchActive returns active products whose name contains the query,
	// case-insensitively
	SearchActive(ctx context.Context, query string) ([]Product, error)

	// FindCategories returns the distinct categories of active products
	FindCategories(ctx context.Context) ([]string, error)

	// CountActive returns the number of active products
	CountActive(ctx context.Context) (int64, error)

	// Save persists a new product
	Save(ctx context.Context, product *Product) error

	// Update persists changes to an existing product
	Update(ctx context.Context, product *Product) error

	// DecrementStock atomically decrements stock by quantity if and only if
	// enough stock remains. Returns shared.ErrInsufficientStock when the
	// conditional update matches no row.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}
