package scheduler

import (
	"context"
	"fmt"

	"asvab_prep_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	client *asynq.Client
	queue  string
}

// CacheRefreshScheduler enqueues search cache refresh work for the worker.
type CacheRefreshScheduler interface {
	ScheduleTrendsRollup(ctx context.Context) error
	SchedulePopularRefresh(ctx context.Context) error
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
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

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) ScheduleTrendsRollup(ctx context.Context) error {
	return c.enqueue(ctx, NewSearchTrendsRollupTask())
}

func (c *Client) SchedulePopularRefresh(ctx context.Context) error {
	return c.enqueue(ctx, NewSearchPopularRefreshTask())
}

// enqueue is a no-op on a nil client so callers can schedule unconditionally
// whether or not Redis is configured.
func (c *Client) enqueue(ctx context.Context, task *asynq.Task) error {
	if c == nil || c.client == nil {
		return nil
	}
	_, err := c.client.EnqueueContext(ctx, task, asynq.Queue(c.queue))
	return err
}

// asynqRedisOpt converts a redis:// URL into asynq connection options.
func asynqRedisOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("parse redis url: %w", err)
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
