package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ayustore/backend/internal/domain/catalog"
	"github.com/ayustore/backend/internal/infrastructure/config"
	"github.com/google/uuid"
)

// InMemoryCatalogCache implements CatalogCache using in-process storage.
// Suitable for single-instance deployments and tests; entries expire lazily
// on read.
type InMemoryCatalogCache struct {
	mu          sync.RWMutex
	entries     map[string]inMemoryEntry
	productTTL  time.Duration
	categoryTTL time.Duration
}

type inMemoryEntry struct {
	value     any
	expiresAt time.Time
}

func (e inMemoryEntry) expired() bool {
	return time.Now().After(e.expiresAt)
}

// NewInMemoryCatalogCache creates a new in-memory catalog cache
func NewInMemoryCatalogCache(cacheCfg config.CacheConfig) *InMemoryCatalogCache {
	return &InMemoryCatalogCache{
		entries:     make(map[string]inMemoryEntry),
		productTTL:  cacheCfg.ProductTTL,
		categoryTTL: cacheCfg.CategoryTTL,
	}
}

// GetProducts returns a cached product listing
func (c *InMemoryCatalogCache) GetProducts(ctx context.Context, key string) ([]catalog.Product, bool) {
	if v, ok := c.get(key); ok {
		if products, ok := v.([]catalog.Product); ok {
			return products, true
		}
	}
	return nil, false
}

// SetProducts stores a product listing; empty listings are not cached
func (c *InMemoryCatalogCache) SetProducts(ctx context.Context, key string, products []catalog.Product) {
	if len(products) == 0 {
		return
	}
	c.set(key, products, c.productTTL)
}

// GetProduct returns a cached single product
func (c *InMemoryCatalogCache) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, bool) {
	if v, ok := c.get(productByIDKeyPrefix + id.String()); ok {
		if product, ok := v.(catalog.Product); ok {
			return &product, true
		}
	}
	return nil, false
}

// SetProduct stores a single product
func (c *InMemoryCatalogCache) SetProduct(ctx context.Context, product *catalog.Product) {
	if product == nil {
		return
	}
	c.set(productByIDKeyPrefix+product.ID.String(), *product, c.productTTL)
}

// GetCategories returns the cached category list
func (c *InMemoryCatalogCache) GetCategories(ctx context.Context) ([]string, bool) {
	if v, ok := c.get(categoryListKey); ok {
		if categories, ok := v.([]string); ok {
			return categories, true
		}
	}
	return nil, false
}

// SetCategories stores the category list
func (c *InMemoryCatalogCache) SetCategories(ctx context.Context, categories []string) {
	if len(categories) == 0 {
		return
	}
	c.set(categoryListKey, categories, c.categoryTTL)
}

// InvalidateProducts drops all entries
func (c *InMemoryCatalogCache) InvalidateProducts(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]inMemoryEntry)
}

func (c *InMemoryCatalogCache) get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if entry.expired() {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

func (c *InMemoryCatalogCache) set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = inMemoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
}

var _ CatalogCache = (*InMemoryCatalogCache)(nil)
