// Package cache holds the Redis-backed linkage count cache used by fraud
// signals. Admission never reads it.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"ninhub/internal/linkage/models"
	"ninhub/pkg/domain"
)

const (
	keyPrefix        = "linkcount:"
	generationPrefix = "linkgen:"

	DefaultTTL = 30 * time.Second

	// generationTTL must outlive any in-flight signal computation.
	generationTTL = 24 * time.Hour
)

// storeIfCurrent writes the count only while the generation read alongside
// the miss is still current. An invalidation in between bumps the generation
// and the stale write is dropped.
var storeIfCurrent = redis.NewScript(`
local gen = redis.call('GET', KEYS[2])
if (gen or '0') ~= ARGV[2] then
  return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// RedisSignalCache stores linkage counts under linkcount:{domain}:{nin} and
// an invalidation counter under linkgen:{domain}:{nin}.
type RedisSignalCache struct {
	client *redis.Client
	ttl    time.Duration
}

type Option func(*RedisSignalCache)

// WithTTL sets the lifetime of cached counts. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *RedisSignalCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func NewRedis(client *redis.Client, opts ...Option) *RedisSignalCache {
	c := &RedisSignalCache{client: client, ttl: DefaultTTL}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// LinkageCount returns the cached count and the current generation. ok is
// false on a miss; pass the generation back to StoreLinkageCount.
func (c *RedisSignalCache) LinkageCount(ctx context.Context, d models.Domain, nin domain.NIN) (int, int64, bool, error) {
	vals, err := c.client.MGet(ctx, cacheKey(d, nin), generationKey(d, nin)).Result()
	if err != nil {
		return 0, 0, false, err
	}
	gen, _, err := parseCounter(vals[1])
	if err != nil {
		return 0, 0, false, err
	}
	count, ok, err := parseCounter(vals[0])
	if err != nil || !ok {
		return 0, gen, false, err
	}
	return int(count), gen, true, nil
}

// StoreLinkageCount caches count unless the entry was invalidated after
// generation was read.
func (c *RedisSignalCache) StoreLinkageCount(ctx context.Context, d models.Domain, nin domain.NIN, count int, generation int64) error {
	return storeIfCurrent.Run(ctx, c.client,
		[]string{cacheKey(d, nin), generationKey(d, nin)},
		count, strconv.FormatInt(generation, 10), c.ttl.Milliseconds(),
	).Err()
}

// Invalidate drops the cached count and bumps the generation.
func (c *RedisSignalCache) Invalidate(ctx context.Context, d models.Domain, nin domain.NIN) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(d, nin))
		pipe.Expire(ctx, generationKey(d, nin), generationTTL)
		pipe.Del(ctx, cacheKey(d, nin))
		return nil
	})
	return err
}

func parseCounter(v any) (int64, bool, error) {
	s, ok := v.(string)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func cacheKey(d models.Domain, nin domain.NIN) string {
	return keyPrefix + d.String() + ":" + nin.String()
}

func generationKey(d models.Domain, nin domain.NIN) string {
	return generationPrefix + d.String() + ":" + nin.String()
}
