package middleware

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Suhaibinator/ERouter/pkg/common"
)

// fakeClock is a ratelimit.Clock whose Sleep advances time instantly
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	slept time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.slept += d
}

func (c *fakeClock) Slept() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slept
}

// TestUberRateLimiterPacing tests that requests on one key are spaced by the rate
func TestUberRateLimiterPacing(t *testing.T) {
	clock := newFakeClock()
	limiter := NewUberRateLimiterWithClock(clock)
	config := &RateLimitConfig{BucketName: "test", Limit: 10, Window: time.Second}

	first := limiter.Take("k", config)
	limiter.Take("k", config)
	third := limiter.Take("k", config)

	if got := third.Sub(first); got != 200*time.Millisecond {
		t.Errorf("Expected third request 200ms after the first, got %v", got)
	}
	if clock.Slept() != 200*time.Millisecond {
		t.Errorf("Expected to sleep 200ms, slept %v", clock.Slept())
	}
}

// TestUberRateLimiterKeys tests that different keys have independent buckets
func TestUberRateLimiterKeys(t *testing.T) {
	clock := newFakeClock()
	limiter := NewUberRateLimiterWithClock(clock)
	config := &RateLimitConfig{Limit: 1, Window: time.Second}

	limiter.Take("a", config)
	limiter.Take("b", config)
	limiter.Take("c", config)

	if clock.Slept() != 0 {
		t.Errorf("Expected no waiting across keys, slept %v", clock.Slept())
	}
}

// TestRateLimitHandler tests the chain handler keys requests and delegates
func TestRateLimitHandler(t *testing.T) {
	clock := newFakeClock()
	limiter := NewUberRateLimiterWithClock(clock)
	config := &RateLimitConfig{
		BucketName: "api",
		Limit:      2,
		Window:     time.Second,
		KeyExtractor: func(req *common.Request) string {
			return req.Headers.Get("X-API-Key")
		},
	}
	handler := RateLimit(config, limiter)

	calls := 0
	for i := 0; i < 3; i++ {
		req := common.NewRequest(context.Background(), "GET", "/")
		req.Headers.Set("X-API-Key", "key-1")
		if err := handler(req, common.NewResponse(), func() error { calls++; return nil }); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	if calls != 3 {
		t.Errorf("Expected every request to be delegated, got %d", calls)
	}
	if clock.Slept() != time.Second {
		t.Errorf("Expected the third request to wait a full second in total, slept %v", clock.Slept())
	}

	// Nil config passes straight through
	calls = 0
	if err := RateLimit(nil, nil)(common.NewRequest(context.Background(), "GET", "/"), common.NewResponse(), func() error {
		calls++
		return nil
	}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected next to be called once, got %d", calls)
	}
}
