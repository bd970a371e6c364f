package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"asvab_prep_backend/internal/events"
	"asvab_prep_backend/internal/scheduler"
	searchrepo "asvab_prep_backend/internal/search/repository"
	searchservice "asvab_prep_backend/internal/search/service"
	"asvab_prep_backend/platform/cache"
	"asvab_prep_backend/platform/config"
	"asvab_prep_backend/platform/db"
	"asvab_prep_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	if !cfg.IsRedisEnabled() {
		log.Error("REDIS_URL not configured; the scheduler requires redis")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	searchCache, err := cache.NewRedis(ctx, cfg.GetRedisURL())
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	defer searchCache.Close()

	eventBus := events.NewInMemoryBus(log)
	searchSvc := searchservice.New(searchrepo.New(pool), searchCache, eventBus, log)

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer func() { _ = client.Close() }()

	warmInterval := envDuration("SEARCH_CACHE_WARM_INTERVAL", 15*time.Minute)
	warmer := scheduler.NewCacheWarmer(client, log, warmInterval)
	go warmer.Run(ctx)

	worker, err := scheduler.NewWorker(cfg, searchSvc, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

// withRetry runs fn up to attempts times with quadratic backoff between
// tries, giving up early when ctx is cancelled.
func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		log.Warn("startup step failed", "step", name, "attempt", attempt, "error", lastErr)

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt*attempt) * baseDelay):
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}

// envDuration reads a duration env var, using fallback when the variable is
// unset or not a positive duration.
func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
