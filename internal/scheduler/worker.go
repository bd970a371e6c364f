package scheduler

import (
	"context"
	"fmt"

	"asvab_prep_backend/platform/config"
	"asvab_prep_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// CacheRefresher recomputes the cached search trend and popularity rollups.
// The search service implements it.
type CacheRefresher interface {
	RefreshTrendsCache(ctx context.Context) error
	RefreshPopularCache(ctx context.Context) error
}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	refresher CacheRefresher
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, refresher CacheRefresher, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := asynqRedisOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.GetSchedulerQueue()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetSchedulerConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		mux:       mux,
		refresher: refresher,
		log:       log,
	}

	mux.HandleFunc(TaskSearchTrendsRollup, w.handleTrendsRollup)
	mux.HandleFunc(TaskSearchPopularRefresh, w.handlePopularRefresh)

	return w, nil
}

func (w *Worker) handleTrendsRollup(ctx context.Context, _ *asynq.Task) error {
	if w.refresher == nil {
		return nil
	}

	if err := w.refresher.RefreshTrendsCache(ctx); err != nil {
		w.log.TaskEvent(TaskSearchTrendsRollup, false, err.Error())
		return fmt.Errorf("refresh trends cache: %w", err)
	}

	w.log.TaskEvent(TaskSearchTrendsRollup, true, "search trends cache refreshed")
	return nil
}

func (w *Worker) handlePopularRefresh(ctx context.Context, _ *asynq.Task) error {
	if w.refresher == nil {
		return nil
	}

	if err := w.refresher.RefreshPopularCache(ctx); err != nil {
		w.log.TaskEvent(TaskSearchPopularRefresh, false, err.Error())
		return fmt.Errorf("refresh popular cache: %w", err)
	}

	w.log.TaskEvent(TaskSearchPopularRefresh, true, "popular searches cache refreshed")
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
