package scheduler

import (
	"context"
	"time"

	"asvab_prep_backend/platform/logger"
)

const defaultCacheWarmInterval = 15 * time.Minute

// CacheWarmer periodically enqueues the rollup tasks so the worker keeps the
// popular and trending query caches warm. The API falls back to live
// aggregation on a cache miss, so a stalled warmer degrades latency only.
type CacheWarmer struct {
	scheduler CacheRefreshScheduler
	log       *logger.Logger
	interval  time.Duration
}

func NewCacheWarmer(scheduler CacheRefreshScheduler, log *logger.Logger, interval time.Duration) *CacheWarmer {
	if interval <= 0 {
		interval = defaultCacheWarmInterval
	}

	return &CacheWarmer{
		scheduler: scheduler,
		log:       log,
		interval:  interval,
	}
}

func (c *CacheWarmer) Run(ctx context.Context) {
	if c == nil || c.scheduler == nil {
		return
	}

	c.enqueue(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.enqueue(ctx)
		}
	}
}

func (c *CacheWarmer) enqueue(ctx context.Context) {
	if err := c.scheduler.ScheduleTrendsRollup(ctx); err != nil {
		c.log.Warn("failed to enqueue trends rollup", "error", err)
	}

	if err := c.scheduler.SchedulePopularRefresh(ctx); err != nil {
		c.log.Warn("failed to enqueue popular refresh", "error", err)
	}
}
