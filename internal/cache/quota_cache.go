package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// QuotaCache counts requests per key in fixed windows
type QuotaCache interface {
	// Allow records one request and reports whether it is within limit
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type quotaCache struct {
	client *redis.Client
}

// NewQuotaCache creates a new quota cache
func NewQuotaCache(client *redis.Client) QuotaCache {
	return &quotaCache{client: client}
}

func (c *quotaCache) key(key string, window time.Duration) string {
	bucket := time.Now().UnixNano() / int64(window)
	return fmt.Sprintf("quota:%s:%d", key, bucket)
}

func (c *quotaCache) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}
	k := c.key(key, window)

	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, window)
		return nil
	})
	if err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}
