package middleware

import (
	"sync"
	"time"

	"github.com/Suhaibinator/ERouter/pkg/common"
	"go.uber.org/ratelimit"
)

// RateLimitConfig defines configuration for request pacing
type RateLimitConfig struct {
	// Unique identifier for this rate limit bucket
	// Handlers sharing a limiter and BucketName share the same budget
	BucketName string

	// Maximum number of requests allowed per Window
	Limit int

	// Time window for the rate limit (defaults to 1 second)
	Window time.Duration

	// Number of requests that may burst above the steady rate after an idle period.
	// Zero disables bursting.
	Slack int

	// Custom key extractor. When nil, requests are keyed by ClientIP,
	// and requests without a known client IP share one bucket.
	KeyExtractor func(*common.Request) string
}

// UberRateLimiter paces requests per key using Uber's leaky-bucket ratelimit library
type UberRateLimiter struct {
	limiters sync.Map // map[string]ratelimit.Limiter
	mu       sync.Mutex
	clock    ratelimit.Clock
}

// NewUberRateLimiter creates a new rate limiter using Uber's ratelimit library
func NewUberRateLimiter() *UberRateLimiter {
	return &UberRateLimiter{}
}

// NewUberRateLimiterWithClock creates a rate limiter driven by clock instead of wall time
func NewUberRateLimiterWithClock(clock ratelimit.Clock) *UberRateLimiter {
	return &UberRateLimiter{clock: clock}
}

// getLimiter gets or creates a limiter for the given key
func (u *UberRateLimiter) getLimiter(key string, config *RateLimitConfig) ratelimit.Limiter {
	if limiter, ok := u.limiters.Load(key); ok {
		return limiter.(ratelimit.Limiter)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	// Double-check after acquiring lock
	if limiter, ok := u.limiters.Load(key); ok {
		return limiter.(ratelimit.Limiter)
	}

	window := config.Window
	if window <= 0 {
		window = time.Second
	}
	limit := config.Limit
	if limit < 1 {
		limit = 1
	}

	opts := []ratelimit.Option{ratelimit.Per(window)}
	if config.Slack > 0 {
		opts = append(opts, ratelimit.WithSlack(config.Slack))
	} else {
		opts = append(opts, ratelimit.WithoutSlack)
	}
	if u.clock != nil {
		opts = append(opts, ratelimit.WithClock(u.clock))
	}

	// Create new limiter
	limiter := ratelimit.New(limit, opts...)
	u.limiters.Store(key, limiter)
	return limiter
}

// Take blocks until the bucket for key allows one more request and returns that time
func (u *UberRateLimiter) Take(key string, config *RateLimitConfig) time.Time {
	return u.getLimiter(key, config).Take()
}

// RateLimit creates a handler that paces requests per key.
// Instead of rejecting excess requests it blocks until the bucket allows
// them, then delegates to the rest of the chain.
func RateLimit(config *RateLimitConfig, limiter *UberRateLimiter) common.Handler {
	if limiter == nil {
		limiter = NewUberRateLimiter()
	}

	return func(req *common.Request, res *common.Response, next common.Next) error {
		// Skip rate limiting if config is nil
		if config == nil {
			return next()
		}

		var key string
		if config.KeyExtractor != nil {
			key = config.KeyExtractor(req)
		} else {
			key = ClientIP(req)
		}

		// Combine bucket name and key to create a unique identifier
		limiter.Take(config.BucketName+":"+key, config)

		return next()
	}
}
