package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

type popularEntry struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	c, err := NewRedis(context.Background(), "redis://"+srv.Addr())
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	return c, srv
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	want := []popularEntry{
		{Query: "algebra practice", Count: 42},
		{Query: "navy rating", Count: 17},
	}

	if err := c.SetJSON(ctx, "search:popular", want, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	var got []popularEntry
	hit, err := c.GetJSON(ctx, "search:popular", &got)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if len(got) != 2 || got[0].Query != "algebra practice" || got[1].Count != 17 {
		t.Fatalf("unexpected value: %+v", got)
	}
}

func TestRedisCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	var got []popularEntry
	hit, err := c.GetJSON(context.Background(), "search:absent", &got)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if hit {
		t.Fatal("expected cache miss")
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	if err := c.SetJSON(ctx, "search:suggest:alg", []string{"algebra"}, time.Second); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	srv.FastForward(2 * time.Second)

	var got []string
	hit, err := c.GetJSON(ctx, "search:suggest:alg", &got)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if hit {
		t.Fatal("expected entry to expire")
	}
}

func TestRedisCacheDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.SetJSON(ctx, "search:trending", []string{"asvab math"}, time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}
	if err := c.Delete(ctx, "search:trending"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var got []string
	hit, _ := c.GetJSON(ctx, "search:trending", &got)
	if hit {
		t.Fatal("expected delete to remove entry")
	}
}

func TestNoopCacheAlwaysMisses(t *testing.T) {
	c := NewNoop()
	ctx := context.Background()

	if err := c.SetJSON(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	var got string
	hit, err := c.GetJSON(ctx, "k", &got)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if hit {
		t.Fatal("noop cache must never hit")
	}
}
