package cache

import (
	"context"

	"github.com/ayustore/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// Cache keys for catalog listings
const (
	KeyAllProducts = "products:all"

	productKeyPrefix     = "products:"
	categoryListKey      = "categories"
	productByIDKeyPrefix = "product:"
)

// CatalogCache is a read-through cache for catalog listings.
// Implementations swallow backend errors and report them as misses;
// the catalog is always recoverable from the database.
type CatalogCache interface {
	GetProducts(ctx context.Context, key string) ([]catalog.Product, bool)
	SetProducts(ctx context.Context, key string, products []catalog.Product)

	GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, bool)
	SetProduct(ctx context.Context, product *catalog.Product)

	GetCategories(ctx context.Context) ([]string, bool)
	SetCategories(ctx context.Context, categories []string)

	// InvalidateProducts drops all product and category entries.
	// Called after any catalog write.
	InvalidateProducts(ctx context.Context)
}
