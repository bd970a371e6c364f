package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"asvab_prep_backend/platform/logger"
)

type fakeRefreshScheduler struct {
	mu           sync.Mutex
	trendsCalls  int
	popularCalls int
	trendsErr    error
	done         chan struct{}
}

var _ CacheRefreshScheduler = (*fakeRefreshScheduler)(nil)

func (f *fakeRefreshScheduler) ScheduleTrendsRollup(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trendsCalls++
	return f.trendsErr
}

func (f *fakeRefreshScheduler) SchedulePopularRefresh(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.popularCalls++
	if f.done != nil {
		close(f.done)
		f.done = nil
	}
	return nil
}

func (f *fakeRefreshScheduler) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trendsCalls, f.popularCalls
}

func TestCacheWarmerEnqueuesBothTasksOnStart(t *testing.T) {
	fake := &fakeRefreshScheduler{done: make(chan struct{})}
	done := fake.done
	warmer := NewCacheWarmer(fake, logger.New("development"), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go warmer.Run(ctx)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("cache warm tasks were not enqueued")
	}

	trends, popular := fake.calls()
	if trends != 1 {
		t.Errorf("trends rollups enqueued = %d, want 1", trends)
	}
	if popular != 1 {
		t.Errorf("popular refreshes enqueued = %d, want 1", popular)
	}
}

func TestCacheWarmerContinuesPastEnqueueFailure(t *testing.T) {
	fake := &fakeRefreshScheduler{
		trendsErr: errors.New("queue unavailable"),
		done:      make(chan struct{}),
	}
	done := fake.done
	warmer := NewCacheWarmer(fake, logger.New("development"), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go warmer.Run(ctx)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("popular refresh was not enqueued after trends failure")
	}

	if _, popular := fake.calls(); popular != 1 {
		t.Errorf("popular refreshes enqueued = %d, want 1", popular)
	}
}

func TestNewCacheWarmerDefaultsInterval(t *testing.T) {
	warmer := NewCacheWarmer(&fakeRefreshScheduler{}, logger.New("development"), 0)
	if warmer.interval != defaultCacheWarmInterval {
		t.Errorf("interval = %v, want %v", warmer.interval, defaultCacheWarmInterval)
	}
}
