package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	// ProductCacheTTL is the time-to-live for cached products.
	ProductCacheTTL = 1 * time.Hour

	productCacheKeyPrefix = "product"
)

// CachedProduct is the denormalized read model stored in Redis. Stock and
// Version are snapshots from the last warm; the database stays authoritative
// for every mutation, so a stale cache entry can never corrupt stock
// accounting — mutations always invalidate the key.
type CachedProduct struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Version     int
	CreatedAt   time.Time
}

// ProductCache provides structured read/write operations for product cache
// entries. Key format: "product:{id}".
type ProductCache struct {
	client *RedisClient
}

// NewProductCache creates a ProductCache backed by the given RedisClient.
func NewProductCache(r *RedisClient) *ProductCache {
	return &ProductCache{client: r}
}

// Get retrieves a cached product by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ProductCache) Get(ctx context.Context, id int64) (*CachedProduct, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	pid, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	price, err := decimal.NewFromString(vals["price"])
	if err != nil {
		return nil, fmt.Errorf("cache parse price: %w", err)
	}
	stock, err := strconv.Atoi(vals["stock"])
	if err != nil {
		return nil, fmt.Errorf("cache parse stock: %w", err)
	}
	version, err := strconv.Atoi(vals["version"])
	if err != nil {
		return nil, fmt.Errorf("cache parse version: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	return &CachedProduct{
		ID:          pid,
		Name:        vals["name"],
		Description: vals["description"],
		Price:       price,
		Stock:       stock,
		Version:     version,
		CreatedAt:   createdAt,
	}, nil
}

// Set writes a cached product as a Redis hash with a 1-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *ProductCache) Set(ctx context.Context, p *CachedProduct) error {
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, c.key(p.ID),
		"id", strconv.FormatInt(p.ID, 10),
		"name", p.Name,
		"description", p.Description,
		"price", p.Price.String(),
		"stock", strconv.Itoa(p.Stock),
		"version", strconv.Itoa(p.Version),
		"created_at", p.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, c.key(p.ID), ProductCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached product. Called after every product mutation so
// readers never observe pre-mutation stock or version values.
func (c *ProductCache) Delete(ctx context.Context, id int64) error {
	if err := c.client.Client().Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "product:{id}"
func (c *ProductCache) key(id int64) string {
	return fmt.Sprintf("%s:%d", productCacheKeyPrefix, id)
}
