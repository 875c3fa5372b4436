// README: Planner wiring shared by the API server and the CLI demo; optional backends degrade to warnings.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"travelplanner/internal/ai"
	"travelplanner/internal/config"
	"travelplanner/internal/infra"
	"travelplanner/internal/maps"
	"travelplanner/internal/metrics"
	"travelplanner/internal/modules/airports"
	"travelplanner/internal/modules/flights"
	"travelplanner/internal/modules/planning"
	"travelplanner/internal/service"
)

const mapsTimeout = 10 * time.Second

// Planner is a wired TripPlanner plus the connections it owns.
type Planner struct {
	*service.TripPlanner

	closers []func()
}

// Close releases the generator client and any database or Redis connections.
func (p *Planner) Close() {
	for i := len(p.closers) - 1; i >= 0; i-- {
		p.closers[i]()
	}
}

// Build wires the planner from cfg. A missing generation credential, database or Redis is logged and
// left out; only a broken provider configuration is an error. m may be nil.
func Build(ctx context.Context, cfg config.Config, m *metrics.Metrics, logger *slog.Logger) (*Planner, error) {
	p := &Planner{}

	generator, err := ai.NewGenerator(ctx, ai.Config{
		Provider:    cfg.AI.Provider,
		APIKey:      cfg.AI.APIKey(),
		Model:       cfg.AI.Model,
		BaseURL:     cfg.AI.OpenAIBase,
		Temperature: cfg.AI.Temperature,
	})
	switch {
	case errors.Is(err, ai.ErrMissingAPIKey):
		logger.Warn("no text generation credential configured; plan and chat requests will fail", "provider", cfg.AI.Provider)
	case err != nil:
		return nil, fmt.Errorf("init %s generator: %w", cfg.AI.Provider, err)
	}
	if c, ok := generator.(interface{ Close() }); ok {
		p.closers = append(p.closers, c.Close)
	}

	var pool *pgxpool.Pool
	if cfg.DB.DSN != "" {
		pool, err = infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Warn("airport database unavailable; codes will be normalized only", "error", err)
			pool = nil
		} else {
			p.closers = append(p.closers, pool.Close)
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			logger.Warn("redis unavailable; flight results will not be cached", "error", err)
			rdb = nil
		} else {
			p.closers = append(p.closers, func() { _ = rdb.Close() })
		}
	}

	deps := service.Deps{
		Generator:       generator,
		Composer:        planning.NewComposer(cfg.Flights.Currency),
		Provider:        cfg.AI.Provider,
		GenerateTimeout: cfg.AI.Timeout,
		Metrics:         m,
		Logger:          logger,
	}
	if fl := newFlightService(cfg, pool, rdb, m, logger); fl != nil {
		deps.Flights = fl
	}
	if ins := newInsightsService(cfg, m, logger); ins != nil {
		deps.Insights = ins
	}
	p.TripPlanner = service.NewTripPlanner(deps)
	return p, nil
}

// newFlightService returns nil when no search key is configured.
func newFlightService(cfg config.Config, pool *pgxpool.Pool, rdb *redis.Client, m *metrics.Metrics, logger *slog.Logger) *flights.Service {
	client := flights.NewSerpAPIClient(flights.ClientConfig{
		APIKey:   cfg.Flights.SerpAPIKey,
		BaseURL:  cfg.Flights.BaseURL,
		Currency: cfg.Flights.Currency,
		Language: cfg.Flights.Language,
		Timeout:  cfg.Flights.Timeout,
	})
	if !client.Configured() {
		logger.Warn("SERP_API_KEY not set; flight details will report no flights")
		return nil
	}

	var finder airports.Finder
	if pool != nil {
		finder = airports.NewStore(pool)
	}
	opts := []flights.Option{
		flights.WithResolver(airports.NewService(finder)),
		flights.WithMetrics(m),
		flights.WithLogger(logger),
	}
	if rdb != nil {
		opts = append(opts, flights.WithCache(flights.NewRedisCache(rdb, cfg.Flights.CacheTTL)))
	}
	return flights.NewService(client, opts...)
}

// newInsightsService returns nil when no Maps key is configured or the clients cannot be built.
func newInsightsService(cfg config.Config, m *metrics.Metrics, logger *slog.Logger) *maps.InsightsService {
	if cfg.Maps.APIKey == "" {
		return nil
	}
	places, err := maps.NewPlacesService(cfg.Maps.APIKey)
	if err != nil {
		logger.Warn("places client unavailable", "error", err)
		return nil
	}
	routes, err := maps.NewRouteService(cfg.Maps.APIKey, cfg.Maps.Region)
	if err != nil {
		logger.Warn("routes client unavailable", "error", err)
		return nil
	}
	return maps.NewInsightsService(places, routes, mapsTimeout, m)
}
