package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"travelplanner/internal/config"
	"travelplanner/internal/infra"
)

func migrate(ctx context.Context, dir string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(infra.NewLogger(os.Stdout, cfg.Log.Level, cfg.Log.Format))

	if cfg.DB.DSN == "" {
		return errors.New("PLANNER_DB_DSN is required for migrate")
	}
	pool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	applied, err := infra.ApplyMigrations(ctx, pool, dir)
	if err != nil {
		return err
	}
	slog.Info("migrations applied", "files", applied)
	return nil
}
