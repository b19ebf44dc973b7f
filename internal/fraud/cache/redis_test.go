package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ninhub/internal/linkage/models"
	"ninhub/pkg/domain"
)

func newCache(t *testing.T, opts ...Option) (*RedisSignalCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, opts...), mr
}

func TestRedisSignalCache(t *testing.T) {
	ctx := context.Background()
	nin := domain.NIN("SL26123456")

	t.Run("miss before store", func(t *testing.T) {
		c, _ := newCache(t)
		_, gen, ok, err := c.LinkageCount(ctx, models.DomainSIM, nin)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, gen)
	})

	t.Run("hit after store", func(t *testing.T) {
		c, mr := newCache(t)
		require.NoError(t, c.StoreLinkageCount(ctx, models.DomainSIM, nin, 2, 0))

		n, _, ok, err := c.LinkageCount(ctx, models.DomainSIM, nin)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 2, n)
		assert.True(t, mr.Exists("linkcount:SIM:SL26123456"))
	})

	t.Run("domains are isolated", func(t *testing.T) {
		c, _ := newCache(t)
		require.NoError(t, c.StoreLinkageCount(ctx, models.DomainSIM, nin, 2, 0))

		_, _, ok, err := c.LinkageCount(ctx, models.DomainBank, nin)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		c, _ := newCache(t)
		require.NoError(t, c.StoreLinkageCount(ctx, models.DomainBank, nin, 1, 0))
		require.NoError(t, c.Invalidate(ctx, models.DomainBank, nin))

		_, gen, ok, err := c.LinkageCount(ctx, models.DomainBank, nin)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, int64(1), gen)
	})

	t.Run("write-back read before an invalidation is dropped", func(t *testing.T) {
		c, mr := newCache(t)
		_, gen, ok, err := c.LinkageCount(ctx, models.DomainSIM, nin)
		require.NoError(t, err)
		require.False(t, ok)

		// an admission commits and invalidates while the count is computed
		require.NoError(t, c.Invalidate(ctx, models.DomainSIM, nin))
		require.NoError(t, c.StoreLinkageCount(ctx, models.DomainSIM, nin, 1, gen))

		_, _, ok, err = c.LinkageCount(ctx, models.DomainSIM, nin)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, mr.Exists("linkcount:SIM:SL26123456"))
	})

	t.Run("write-back with the current generation is kept", func(t *testing.T) {
		c, _ := newCache(t)
		require.NoError(t, c.Invalidate(ctx, models.DomainSIM, nin))
		_, gen, _, err := c.LinkageCount(ctx, models.DomainSIM, nin)
		require.NoError(t, err)
		require.NoError(t, c.StoreLinkageCount(ctx, models.DomainSIM, nin, 2, gen))

		n, _, ok, err := c.LinkageCount(ctx, models.DomainSIM, nin)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 2, n)
	})

	t.Run("entries expire after ttl", func(t *testing.T) {
		c, mr := newCache(t, WithTTL(5*time.Second))
		require.NoError(t, c.StoreLinkageCount(ctx, models.DomainSIM, nin, 1, 0))

		mr.FastForward(6 * time.Second)

		_, _, ok, err := c.LinkageCount(ctx, models.DomainSIM, nin)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("server failure surfaces as error", func(t *testing.T) {
		c, mr := newCache(t)
		mr.Close()

		_, _, _, err := c.LinkageCount(ctx, models.DomainSIM, nin)
		assert.Error(t, err)
	})
}
