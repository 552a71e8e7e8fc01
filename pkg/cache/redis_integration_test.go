//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"filmorate/internal/testinfra"
	"filmorate/pkg/utils"

	"go.uber.org/zap"
)

func TestRedisCache_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	addr := testinfra.StartRedis(ctx, t)
	c := NewRedisCache(utils.CacheConfig{RedisAddr: addr, TTL: time.Minute}, zap.NewNop())
	defer c.Close()

	key := PopularKey{Count: 2, GenreID: int64Ptr(1)}

	t.Run("miss before set", func(t *testing.T) {
		if _, _, ok := c.Get(ctx, key); ok {
			t.Fatal("Get() hit on empty cache")
		}
	})

	t.Run("hit after set", func(t *testing.T) {
		_, v, _ := c.Get(ctx, key)
		c.Set(ctx, key, v, []int64{7, 3})

		ids, _, ok := c.Get(ctx, key)
		if !ok {
			t.Fatal("Get() miss after Set()")
		}
		if len(ids) != 2 || ids[0] != 7 || ids[1] != 3 {
			t.Errorf("Get() = %v, want [7 3]", ids)
		}
	})

	t.Run("invalidate hides old entries", func(t *testing.T) {
		c.Invalidate(ctx)

		if _, _, ok := c.Get(ctx, key); ok {
			t.Error("Get() hit after Invalidate()")
		}
	})

	t.Run("set computed before invalidate is dropped", func(t *testing.T) {
		raced := PopularKey{Count: 5}

		_, before, ok := c.Get(ctx, raced)
		if ok {
			t.Fatal("Get() hit on fresh key")
		}

		// A like lands while the ranking is being computed.
		c.Invalidate(ctx)
		c.Set(ctx, raced, before, []int64{1, 2})

		ids, after, ok := c.Get(ctx, raced)
		if ok {
			t.Fatalf("Get() = %v after Invalidate(), want miss", ids)
		}
		if after <= before {
			t.Errorf("version after Invalidate() = %d, want > %d", after, before)
		}

		c.Set(ctx, raced, after, []int64{2, 1})
		if ids, _, _ := c.Get(ctx, raced); len(ids) != 2 || ids[0] != 2 {
			t.Errorf("Get() = %v, want [2 1]", ids)
		}
	})
}
