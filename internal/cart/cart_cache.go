package cart

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// CountCache is the badge-count projection. It is derived from the
// authoritative cart after every mutation and never mutated on its own;
// a miss falls back to the store.
type CountCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCountCache(rdb *redis.Client) *CountCache {
	return &CountCache{rdb: rdb, ttl: 24 * time.Hour}
}

func countKey(userID string) string {
	return "cart:count:" + userID
}

func (c *CountCache) Get(ctx context.Context, userID string) (int64, bool) {
	if c == nil || c.rdb == nil {
		return 0, false
	}
	val, err := c.rdb.Get(ctx, countKey(userID)).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *CountCache) Set(ctx context.Context, userID string, count int64) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Set(ctx, countKey(userID), count, c.ttl).Err()
}

func (c *CountCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, countKey(userID)).Err()
}
