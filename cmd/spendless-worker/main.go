// spendless-worker runs the recurring-transaction expansion sweep on a
// fixed interval. It is the stand-in for the host platform's background
// scheduler: the core exposes no self-scheduling of its own.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/rribeiro1/spendless/internal/config"
	"github.com/rribeiro1/spendless/internal/log"
	"github.com/rribeiro1/spendless/internal/services"
	"github.com/rribeiro1/spendless/internal/storage"
)

func main() {
	// Load .env for local development (ignore errors in production)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	log.SetDefault(logger)

	logger.Info("Starting spendless-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	store, cleanup, err := openStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer cleanup()

	expander := services.NewExpander(store)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Expansion sweep configured",
		"interval", cfg.SweepInterval,
		"backend", cfg.DataBackend)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runSweepLoop(ctx, logger, expander, cfg.SweepInterval)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("spendless-worker shutdown complete")
}

func runSweepLoop(ctx context.Context, logger *log.Logger, expander *services.Expander, interval time.Duration) error {
	// Initial sweep on startup, then on every tick.
	sweep(ctx, logger, expander)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			sweep(ctx, logger, expander)
		}
	}
}

func sweep(ctx context.Context, logger *log.Logger, expander *services.Expander) {
	created, err := expander.Expand(ctx, time.Now())
	if err != nil {
		logger.ErrorContext(ctx, "Expansion sweep failed", log.FieldError, err)
		return
	}
	logger.InfoContext(ctx, "Expansion sweep finished", log.FieldCreated, created)
}

func openStore(cfg *config.Config) (services.TransactionStore, func(), error) {
	if cfg.DataBackend == "memory" {
		return storage.NewMemoryStore(), func() {}, nil
	}
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, nil, err
	}
	return repo, func() { repo.Close() }, nil
}
