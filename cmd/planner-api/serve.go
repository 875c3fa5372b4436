package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"travelplanner/internal/app"
	"travelplanner/internal/config"
	httptransport "travelplanner/internal/http"
	"travelplanner/internal/infra"
	"travelplanner/internal/metrics"
)

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := infra.NewLogger(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	if cfg.HTTP.GinMode != "" {
		gin.SetMode(cfg.HTTP.GinMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	m := metrics.New()

	planner, err := app.Build(ctx, cfg, m, logger)
	if err != nil {
		return err
	}
	defer planner.Close()

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Planner:        planner.TripPlanner,
		Credentials:    cfg.Credentials,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		Metrics:        m,
		Logger:         logger,
	})

	st := planner.Status()
	logger.Info("planner configured",
		"provider", st.Provider,
		"generator", st.GeneratorConfigured,
		"flights", st.FlightsEnabled,
		"insights", st.InsightsEnabled,
	)

	server := httptransport.NewServer(httptransport.ServerConfig{
		Addr:         cfg.HTTP.Addr,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}, router)
	return server.Run(ctx)
}
