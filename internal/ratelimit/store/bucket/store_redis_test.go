package bucket

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisBucketStore, *miniredis.Miniredis, *time.Time) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewRedisBucketStore(client)
	store.now = func() time.Time { return clock }
	return store, mr, &clock
}

func TestRedisBucketStore(t *testing.T) {
	ctx := context.Background()

	t.Run("admits up to the limit then denies", func(t *testing.T) {
		store, _, clock := newRedisStore(t)

		for i := range 3 {
			result, err := store.Allow(ctx, "actor:tel-1:write", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, result.Allowed)
			assert.Equal(t, 2-i, result.Remaining)
		}

		*clock = clock.Add(20 * time.Second)
		result, err := store.Allow(ctx, "actor:tel-1:write", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Equal(t, 0, result.Remaining)
		assert.Equal(t, 40, result.RetryAfter)
	})

	t.Run("window slides", func(t *testing.T) {
		store, _, clock := newRedisStore(t)

		for range 2 {
			_, err := store.Allow(ctx, "actor:bank-1:read", 2, time.Minute)
			require.NoError(t, err)
		}
		*clock = clock.Add(time.Minute)

		result, err := store.Allow(ctx, "actor:bank-1:read", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 1, result.Remaining)
	})

	t.Run("server unavailable returns error", func(t *testing.T) {
		store, mr, _ := newRedisStore(t)
		mr.Close()

		_, err := store.Allow(ctx, "actor:x:read", 1, time.Minute)
		assert.Error(t, err)
	})
}
