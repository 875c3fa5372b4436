package flights

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	calls  []Query
	result *SearchResult
	err    error
}

func (f *fakeSearcher) Search(_ context.Context, q Query) (*SearchResult, error) {
	f.calls = append(f.calls, q)
	return f.result, f.err
}

type memCache struct {
	data   map[string]*SearchResult
	getErr error
	setErr error
	sets   int
}

func newMemCache() *memCache {
	return &memCache{data: map[string]*SearchResult{}}
}

func (c *memCache) Get(_ context.Context, q Query) (*SearchResult, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	r, ok := c.data[q.CacheKey()]
	return r, ok, nil
}

func (c *memCache) Set(_ context.Context, q Query, r *SearchResult) error {
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.data[q.CacheKey()] = r
	return nil
}

type mapResolver map[string]string

func (m mapResolver) Resolve(_ context.Context, place string) string {
	if code, ok := m[strings.ToLower(strings.TrimSpace(place))]; ok {
		return code
	}
	return NormalizeCode(place)
}

func sampleResult() *SearchResult {
	return &SearchResult{BestFlights: []Offer{offer("IndiGo", "6E 1", 5000)}}
}

func TestLookupNormalizesWithoutResolver(t *testing.T) {
	s := &fakeSearcher{result: sampleResult()}
	svc := NewService(s)

	got, err := svc.Lookup(context.Background(), " bom ", "del", " 2024-12-20 ")
	require.NoError(t, err)

	assert.Equal(t, Query{Origin: "BOM", Destination: "DEL", Date: "2024-12-20"}, got.Query)
	require.Len(t, s.calls, 1)
	assert.Equal(t, got.Query, s.calls[0])
	assert.Same(t, s.result, got.Result)
}

func TestLookupUsesResolver(t *testing.T) {
	s := &fakeSearcher{result: sampleResult()}
	svc := NewService(s, WithResolver(mapResolver{"mumbai": "BOM", "new delhi": "DEL"}))

	got, err := svc.Lookup(context.Background(), "Mumbai", "New Delhi", "2024-12-20")
	require.NoError(t, err)
	assert.Equal(t, "BOM", got.Query.Origin)
	assert.Equal(t, "DEL", got.Query.Destination)
}

func TestLookupCacheHitSkipsSearcher(t *testing.T) {
	s := &fakeSearcher{result: sampleResult()}
	cache := newMemCache()
	svc := NewService(s, WithCache(cache))

	first, err := svc.Lookup(context.Background(), "BOM", "DEL", "2024-12-20")
	require.NoError(t, err)
	second, err := svc.Lookup(context.Background(), "bom", "del", "2024-12-20")
	require.NoError(t, err)

	assert.Len(t, s.calls, 1)
	assert.Equal(t, 1, cache.sets)
	assert.Same(t, first.Result, second.Result)
}

func TestLookupIgnoresCacheErrors(t *testing.T) {
	s := &fakeSearcher{result: sampleResult()}
	cache := newMemCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	svc := NewService(s, WithCache(cache))

	got, err := svc.Lookup(context.Background(), "BOM", "DEL", "2024-12-20")
	require.NoError(t, err)
	assert.NotNil(t, got.Result)
	assert.Len(t, s.calls, 1)
}

func TestLookupSearchError(t *testing.T) {
	s := &fakeSearcher{err: errors.New("status 500")}
	cache := newMemCache()
	svc := NewService(s, WithCache(cache))

	got, err := svc.Lookup(context.Background(), "BOM", "DEL", "2024-12-20")
	require.Error(t, err)
	assert.Nil(t, got.Result)
	assert.Equal(t, "BOM", got.Query.Origin)
	assert.Zero(t, cache.sets)
}

func TestLookupWithoutSearcher(t *testing.T) {
	svc := NewService(nil)
	got, err := svc.Lookup(context.Background(), "BOM", "DEL", "2024-12-20")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, "DEL", got.Query.Destination)
}
