package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marketloop/commerce-api/internal/core/ports"
)

const (
	catalogKey = "catalog:products"
	catalogTTL = 30 * time.Second
)

// ProductCache holds a short-lived JSON copy of the public catalog listing
// in Redis. Every product mutation invalidates it.
type ProductCache struct {
	client *redis.Client
}

// NewProductCache creates a ProductCache wrapping the given Redis client.
func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{client: client}
}

// GetList returns the cached listing and whether it was present.
func (c *ProductCache) GetList(ctx context.Context) ([]ports.ProductView, bool, error) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}

	var views []ports.ProductView
	if err := json.Unmarshal(raw, &views); err != nil {
		return nil, false, fmt.Errorf("catalog cache decode: %w", err)
	}
	return views, true, nil
}

// SetList stores the listing, expiring after catalogTTL.
func (c *ProductCache) SetList(ctx context.Context, views []ports.ProductView) error {
	raw, err := json.Marshal(views)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	return c.client.Set(ctx, catalogKey, raw, catalogTTL).Err()
}

// Invalidate drops the cached listing.
func (c *ProductCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
