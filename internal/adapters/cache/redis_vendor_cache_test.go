package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) (*RedisSelectedVendorCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisSelectedVendorCache(client, time.Minute), mr
}

func TestSelectedVendorCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "user-1", "vendor-7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "vendor-7" {
		t.Fatalf("vendor = %q, want %q", got, "vendor-7")
	}
}

func TestSelectedVendorCacheMissIsEmpty(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.Get(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("vendor = %q, want empty", got)
	}
}

func TestSelectedVendorCacheExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "user-1", "vendor-7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("vendor = %q, want empty after TTL", got)
	}
}

func TestSelectedVendorCacheRejectsEmptyKeys(t *testing.T) {
	c, _ := newTestCache(t)

	if err := c.Set(context.Background(), "", "vendor-7"); err == nil {
		t.Fatal("expected error for empty user id")
	}
	if err := c.Set(context.Background(), "user-1", ""); err == nil {
		t.Fatal("expected error for empty vendor id")
	}
}
