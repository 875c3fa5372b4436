// README: Redis-backed cache of raw flight search results, keyed by normalized route and date.
package flights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores SearchResult JSON with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns (nil, false, nil) on a miss.
func (c *RedisCache) Get(ctx context.Context, q Query) (*SearchResult, bool, error) {
	raw, err := c.client.Get(ctx, q.CacheKey()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", q.CacheKey(), err)
	}
	var result SearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, false, fmt.Errorf("decode cached flights: %w", err)
	}
	return &result, true, nil
}

func (c *RedisCache) Set(ctx context.Context, q Query, result *SearchResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode flights: %w", err)
	}
	if err := c.client.Set(ctx, q.CacheKey(), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", q.CacheKey(), err)
	}
	return nil
}
