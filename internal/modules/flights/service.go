// README: Flight lookup; resolves airport codes, serves from the result cache when it can, else searches upstream.
package flights

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"travelplanner/internal/metrics"
)

// Searcher performs one upstream flight search.
type Searcher interface {
	Search(ctx context.Context, q Query) (*SearchResult, error)
}

// Cache stores raw search results. Implementations return ok=false on a miss.
type Cache interface {
	Get(ctx context.Context, q Query) (*SearchResult, bool, error)
	Set(ctx context.Context, q Query, result *SearchResult) error
}

// CodeResolver maps a free-text place to an IATA code.
type CodeResolver interface {
	Resolve(ctx context.Context, place string) string
}

type Service struct {
	searcher Searcher
	cache    Cache
	resolver CodeResolver
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// Option customizes a Service.
type Option func(*Service)

func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

func WithResolver(r CodeResolver) Option {
	return func(s *Service) { s.resolver = r }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(searcher Searcher, opts ...Option) *Service {
	s := &Service{searcher: searcher, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeCode is the fallback code normalization: trim and upper-case.
func NormalizeCode(place string) string {
	return strings.ToUpper(strings.TrimSpace(place))
}

func (s *Service) code(ctx context.Context, place string) string {
	if s.resolver == nil {
		return NormalizeCode(place)
	}
	return s.resolver.Resolve(ctx, place)
}

// Lookup returns the search result for a one-way trip. The returned Lookup always carries the
// normalized query, even on error, so callers can still build booking links.
func (s *Service) Lookup(ctx context.Context, source, destination, date string) (*Lookup, error) {
	q := Query{
		Origin:      s.code(ctx, source),
		Destination: s.code(ctx, destination),
		Date:        strings.TrimSpace(date),
	}
	out := &Lookup{Query: q}

	if s.searcher == nil {
		return out, ErrNotConfigured
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, q)
		switch {
		case err != nil:
			s.metrics.FlightCache(metrics.CacheError)
			s.log.Warn("flight cache read failed", "key", q.CacheKey(), "error", err)
		case ok:
			s.metrics.FlightCache(metrics.CacheHit)
			out.Result = cached
			return out, nil
		default:
			s.metrics.FlightCache(metrics.CacheMiss)
		}
	}

	start := time.Now()
	result, err := s.searcher.Search(ctx, q)
	s.metrics.ObserveUpstream("serpapi", time.Since(start), err)
	if err != nil {
		return out, err
	}
	out.Result = result

	if s.cache != nil {
		if err := s.cache.Set(ctx, q, result); err != nil {
			s.log.Warn("flight cache write failed", "key", q.CacheKey(), "error", err)
		}
	}
	return out, nil
}
