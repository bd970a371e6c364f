package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"asvab_prep_backend/internal/adapters/storage"
	"asvab_prep_backend/internal/auth"
	"asvab_prep_backend/internal/bookmarks"
	"asvab_prep_backend/internal/email"
	"asvab_prep_backend/internal/events"
	"asvab_prep_backend/internal/flashcards"
	"asvab_prep_backend/internal/groups"
	apphttp "asvab_prep_backend/internal/http"
	"asvab_prep_backend/internal/http/router"
	"asvab_prep_backend/internal/military"
	"asvab_prep_backend/internal/questions"
	"asvab_prep_backend/internal/quizzes"
	"asvab_prep_backend/internal/search"
	"asvab_prep_backend/migrations"
	"asvab_prep_backend/platform/cache"
	"asvab_prep_backend/platform/config"
	"asvab_prep_backend/platform/db"
	"asvab_prep_backend/platform/logger"
	"asvab_prep_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

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
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	searchCache, closeCache := initSearchCache(ctx, cfg, log)
	defer closeCache()

	// Email notifier subscribes to auth events (not HTTP-facing)
	sender := email.NewSender(cfg, log)
	notifier := email.NewNotifier(sender, cfg, log)
	notifier.RegisterHandlers(eventBus)

	// Shared validator instance for dependency injection
	val := validator.New()

	storageSvc := initStorage(ctx, cfg, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, eventBus, val, log)
	questionsModule := questions.NewModule(pool, storageSvc, cfg.GetMinioBucketQuestionFigures(), val, log)
	flashcardsModule := flashcards.NewModule(pool, val)
	militaryModule := military.NewModule(pool, val)
	groupsModule := groups.NewModule(pool, cfg, val)
	quizzesModule := quizzes.NewModule(pool, val)
	bookmarksModule := bookmarks.NewModule(pool, val)
	searchModule := search.NewModule(pool, searchCache, eventBus, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Health:  pool,
		Modules: []apphttp.Module{
			authModule,
			questionsModule,
			flashcardsModule,
			militaryModule,
			groupsModule,
			quizzesModule,
			bookmarksModule,
			searchModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		// Let in-flight event handlers (history records, emails) finish.
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initSearchCache connects the Redis cache when configured and falls back to
// the no-op cache otherwise; the search module aggregates live on misses.
func initSearchCache(ctx context.Context, cfg *config.Config, log *logger.Logger) (cache.Cache, func()) {
	if !cfg.IsRedisEnabled() {
		log.Warn("REDIS_URL not configured; search caching disabled")
		return cache.NewNoop(), func() {}
	}

	redisCache, err := cache.NewRedis(ctx, cfg.GetRedisURL())
	if err != nil {
		log.Error("failed to connect to redis; search caching disabled", "error", err)
		return cache.NewNoop(), func() {}
	}

	log.Info("redis cache connected")
	return redisCache, func() { _ = redisCache.Close() }
}

// initStorage builds the MinIO-backed storage service when configured.
// Question figure uploads are disabled without it.
func initStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) storage.Service {
	if !cfg.IsMinIOEnabled() {
		log.Warn("MINIO_ENDPOINT not configured; question figure storage disabled")
		return nil
	}

	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}

	bucket := cfg.GetMinioBucketQuestionFigures()
	if err := withRetry(ctx, log, "ensure question figures bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}

	log.Info("storage service initialized", "questionFiguresBucket", bucket)
	return storageSvc
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
