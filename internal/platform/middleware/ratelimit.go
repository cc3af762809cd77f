package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig sets the steady rate and the burst allowance per client.
type RateLimitConfig struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultRateLimitConfig permits 100 req/s with bursts up to 200.
var DefaultRateLimitConfig = RateLimitConfig{
	RequestsPerSecond: 100,
	BurstSize:         200,
}

// limiter tracks a token bucket per client key under one mutex. Buckets are
// refilled lazily on access, so idle clients cost nothing.
type limiter struct {
	mu      sync.Mutex
	rate    float64
	burst   float64
	buckets map[string]*bucket
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	return &limiter{
		rate:    cfg.RequestsPerSecond,
		burst:   float64(cfg.BurstSize),
		buckets: make(map[string]*bucket),
	}
}

// take spends one token for key. When the bucket is empty it reports the
// whole seconds to wait before a token becomes available, at least 1.
func (l *limiter) take(key string) (ok bool, retryAfter int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, found := l.buckets[key]
	if !found {
		b = &bucket{tokens: l.burst, lastSeen: now}
		l.buckets[key] = b
	} else {
		b.tokens = math.Min(l.burst, b.tokens+now.Sub(b.lastSeen).Seconds()*l.rate)
		b.lastSeen = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}

	if l.rate <= 0 {
		return false, 1
	}
	wait := int(math.Ceil((1 - b.tokens) / l.rate))
	if wait < 1 {
		wait = 1
	}
	return false, wait
}

// RateLimit throttles requests per clinic and source address. Authenticated
// requests are keyed on the clinic claim so one busy clinic cannot starve
// another behind the same proxy.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	lim := newLimiter(cfg)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(int(cfg.RequestsPerSecond)))

			ok, retryAfter := lim.take(limitKey(c))
			if !ok {
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}

func limitKey(c echo.Context) string {
	clinic, _ := c.Get("jwt_clinic_id").(string)
	return clinic + ":" + c.RealIP()
}
