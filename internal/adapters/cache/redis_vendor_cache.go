package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-checkout-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

// RedisSelectedVendorCache remembers the vendor last assigned to each user
// at checkout, with a TTL so stale selections age out on their own.
type RedisSelectedVendorCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.SelectedVendorCache = (*RedisSelectedVendorCache)(nil)

func NewRedisSelectedVendorCache(client *redis.Client, ttl time.Duration) *RedisSelectedVendorCache {
	return &RedisSelectedVendorCache{client: client, ttl: ttl}
}

func key(userID string) string { return "selected_vendor:" + userID }

// Get returns ("", nil) when nothing is cached for the user.
func (c *RedisSelectedVendorCache) Get(ctx context.Context, userID string) (string, error) {
	v, err := c.client.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("selected vendor cache: get %q: %w", userID, err)
	}
	return v, nil
}

func (c *RedisSelectedVendorCache) Set(ctx context.Context, userID string, vendorID string) error {
	if userID == "" || vendorID == "" {
		return errors.New("selected vendor cache: user id and vendor id must be non-empty")
	}

	if err := c.client.Set(ctx, key(userID), vendorID, c.ttl).Err(); err != nil {
		return fmt.Errorf("selected vendor cache: set %q: %w", userID, err)
	}
	return nil
}
