package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ayustore/backend/internal/domain/catalog"
	"github.com/ayustore/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCatalogCache implements CatalogCache using Redis with JSON values
type RedisCatalogCache struct {
	client      *redis.Client
	productTTL  time.Duration
	categoryTTL time.Duration
	logger      *zap.Logger
}

// RedisCatalogCacheOption is a functional option for configuring the cache
type RedisCatalogCacheOption func(*RedisCatalogCache)

// WithRedisCacheLogger sets the logger for the cache
func WithRedisCacheLogger(logger *zap.Logger) RedisCatalogCacheOption {
	return func(c *RedisCatalogCache) {
		c.logger = logger
	}
}

// NewRedisCatalogCache creates a new Redis-backed catalog cache
func NewRedisCatalogCache(redisCfg config.RedisConfig, cacheCfg config.CacheConfig, opts ...RedisCatalogCacheOption) (*RedisCatalogCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr(),
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisCatalogCache{
		client:      client,
		productTTL:  cacheCfg.ProductTTL,
		categoryTTL: cacheCfg.CategoryTTL,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache, nil
}

// GetProducts returns a cached product listing, reporting a miss on any error
func (c *RedisCatalogCache) GetProducts(ctx context.Context, key string) ([]catalog.Product, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err != nil {
		c.logger.Warn("catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return products, true
}

// SetProducts stores a product listing. Empty listings are not cached so a
// freshly seeded catalog shows up without waiting for expiry.
func (c *RedisCatalogCache) SetProducts(ctx context.Context, key string, products []catalog.Product) {
	if len(products) == 0 {
		return
	}
	c.setJSON(ctx, key, products, c.productTTL)
}

// GetProduct returns a cached single product
func (c *RedisCatalogCache) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, bool) {
	key := productByIDKeyPrefix + id.String()
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		c.logger.Warn("catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &product, true
}

// SetProduct stores a single product
func (c *RedisCatalogCache) SetProduct(ctx context.Context, product *catalog.Product) {
	if product == nil {
		return
	}
	c.setJSON(ctx, productByIDKeyPrefix+product.ID.String(), product, c.productTTL)
}

// GetCategories returns the cached category list
func (c *RedisCatalogCache) GetCategories(ctx context.Context) ([]string, bool) {
	data, err := c.client.Get(ctx, categoryListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("catalog cache read failed", zap.String("key", categoryListKey), zap.Error(err))
		}
		return nil, false
	}

	var categories []string
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, false
	}
	return categories, true
}

// SetCategories stores the category list
func (c *RedisCatalogCache) SetCategories(ctx context.Context, categories []string) {
	if len(categories) == 0 {
		return
	}
	c.setJSON(ctx, categoryListKey, categories, c.categoryTTL)
}

// InvalidateProducts drops all product and category entries via SCAN
func (c *RedisCatalogCache) InvalidateProducts(ctx context.Context) {
	for _, pattern := range []string{productKeyPrefix + "*", productByIDKeyPrefix + "*"} {
		c.deleteByPattern(ctx, pattern)
	}
	if err := c.client.Del(ctx, categoryListKey).Err(); err != nil {
		c.logger.Warn("catalog cache invalidation failed", zap.String("key", categoryListKey), zap.Error(err))
	}
}

func (c *RedisCatalogCache) setJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("catalog cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *RedisCatalogCache) deleteByPattern(ctx context.Context, pattern string) {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("catalog cache scan failed", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("catalog cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

// Close closes the Redis client
func (c *RedisCatalogCache) Close() error {
	return c.client.Close()
}

var _ CatalogCache = (*RedisCatalogCache)(nil)
