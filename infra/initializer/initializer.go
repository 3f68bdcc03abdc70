// Package initializer builds the process dependencies from configuration.
package initializer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/spendwise/infra"
	infra_provider "github.com/amirasaad/spendwise/infra/provider"
	infra_ratelimit "github.com/amirasaad/spendwise/infra/ratelimit"
	infra_repository "github.com/amirasaad/spendwise/infra/repository"
	"github.com/amirasaad/spendwise/pkg/app"
	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/ratelimit"
)

// maxLimiterKeys bounds the in-process limiter; one key per active user.
const maxLimiterKeys = 100_000

// InitializeDependencies initializes all the application dependencies.
// The returned cleanup releases the limiter and the database pool.
func InitializeDependencies(ctx context.Context, cfg *config.App) (
	deps *app.Deps,
	cleanup func(),
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log, os.Stdout)
	deps.Logger = logger

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}
	deps.Uow = infra_repository.NewUoW(db)

	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	limiter, closer, err := newLimiter(cfg, logger)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	deps.Limiter = limiter

	deps.Generator, err = infra_provider.NewInsightGenerator(ctx, cfg.Generator, logger)
	if err != nil {
		_ = closer.Close()
		closeDB()
		return nil, nil, fmt.Errorf("failed to initialize insight generator: %w", err)
	}
	logger.Info("Insight generator ready", "provider", deps.Generator.Name())

	deps.Bank = infra_provider.NewBankingProvider(cfg.Plaid, logger)

	cleanup = func() {
		if err := closer.Close(); err != nil {
			logger.Warn("Failed to close rate limiter", "error", err)
		}
		closeDB()
	}
	return deps, cleanup, nil
}

// newLimiter returns the on-demand generation limiter: Redis-backed when a
// Redis URL is configured, otherwise process-local.
func newLimiter(cfg *config.App, logger *slog.Logger) (ratelimit.Limiter, io.Closer, error) {
	ic := cfg.Insights
	if cfg.Redis != nil && cfg.Redis.URL != "" {
		l, err := infra_ratelimit.NewRedisLimiterFromURL(
			cfg.Redis.URL, cfg.Redis.KeyPrefix, ic.OnDemandLimit, ic.OnDemandWindow)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Redis rate limiter: %w", err)
		}
		logger.Info("Using Redis rate limiter")
		return l, l, nil
	}
	l, err := infra_ratelimit.NewMemoryLimiter(ic.OnDemandLimit, ic.OnDemandWindow, maxLimiterKeys)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create memory rate limiter: %w", err)
	}
	logger.Info("Using in-process rate limiter; quotas reset on restart")
	return l, closerFunc(l.Close), nil
}

type closerFunc func()

func (f closerFunc) Close() error {
	f()
	return nil
}
