package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/curata-io/curata/domain"
)

type dedupCache struct {
	client *redis.Client
}

var _ domain.DedupCache = (*dedupCache)(nil)

// NewDedupCache creates the redis-backed dedup cache. SETNX with expiry is
// the set-if-absent primitive: when two requests race, redis serializes them
// and exactly one observes "absent".
func NewDedupCache(client *redis.Client) *dedupCache {
	return &dedupCache{client}
}

func (c *dedupCache) SetIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, key, 1, ttl).Result()
}
