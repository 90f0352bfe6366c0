package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 5 * time.Minute

// ReferenceCache is a JSON read-through cache for reference data (tag and
// intensity lists) backed by Redis. Entries expire after cacheTTL; game
// mutations invalidate the tag list eagerly.
type ReferenceCache struct {
	client *redis.Client
}

// NewReferenceCache creates a ReferenceCache wrapping the given client.
func NewReferenceCache(client *redis.Client) *ReferenceCache {
	return &ReferenceCache{client: client}
}

// Get unmarshals the cached value into dest and reports whether the key
// was present.
func (c *ReferenceCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

// Set stores the JSON-encoded value under key with the cache TTL.
func (c *ReferenceCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, key, raw, cacheTTL).Err()
}

// Invalidate removes the given keys.
func (c *ReferenceCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
