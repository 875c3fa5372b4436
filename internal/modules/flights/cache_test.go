package flights

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("PLANNER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("PLANNER_TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err())
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisCacheRoundTrip(t *testing.T) {
	client := testRedis(t)
	ctx := context.Background()
	q := Query{Origin: "BOM", Destination: "GOI", Date: "2031-01-01"}
	t.Cleanup(func() { client.Del(ctx, q.CacheKey()) })

	cache := NewRedisCache(client, time.Minute)

	_, ok, err := cache.Get(ctx, q)
	require.NoError(t, err)
	assert.False(t, ok)

	want := sampleResult()
	require.NoError(t, cache.Set(ctx, q, want))

	got, ok, err := cache.Get(ctx, q)
	require.NoError(t, err)
	require.True(t, ok)
	wantJSON, err := json.Marshal(want)
	require.NoError(t, err)
	gotJSON, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantJSON), string(gotJSON))

	ttl, err := client.TTL(ctx, q.CacheKey()).Result()
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)
}

func TestQueryCacheKey(t *testing.T) {
	assert.Equal(t, "flights:BOM:DEL:2024-12-20", Query{Origin: "BOM", Destination: "DEL", Date: "2024-12-20"}.CacheKey())
}
