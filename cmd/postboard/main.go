package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/postboard/app/postboard"
	"github.com/dmitrymomot/postboard/core/config"
	"github.com/dmitrymomot/postboard/core/logger"
	"github.com/dmitrymomot/postboard/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("postboard stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg postboard.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := newLogger(cfg)
	slog.SetDefault(log)

	stores, checks, closeAll, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeAll()

	app, err := postboard.NewApp(
		postboard.WithConfig(cfg),
		postboard.WithLogger(log),
		postboard.WithStores(stores),
		postboard.WithHealthChecks(checks...),
	)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

func newLogger(cfg postboard.Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithContextExtractors(middleware.RequestIDExtractor, middleware.UserIDExtractor),
	}
	if cfg.IsProduction() {
		opts = append(opts, logger.WithProduction(cfg.AppName))
	} else {
		opts = append(opts, logger.WithDevelopment(cfg.AppName))
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	return logger.New(opts...)
}
