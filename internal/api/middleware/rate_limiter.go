package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimiter allows limit requests per client IP in each fixed window.
// A limit of zero or less disables it.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	return rateLimiter(limit, window, time.Now)
}

func rateLimiter(limit int, window time.Duration, now func() time.Time) echo.MiddlewareFunc {
	type bucket struct {
		count int
		start time.Time
	}

	var (
		mu      sync.Mutex
		buckets = make(map[string]*bucket)
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if limit <= 0 {
			return next
		}
		return func(c echo.Context) error {
			t := now()
			key := c.RealIP()

			mu.Lock()
			b, ok := buckets[key]
			if !ok || t.Sub(b.start) > window {
				b = &bucket{start: t}
				buckets[key] = b
			}

			if b.count >= limit {
				mu.Unlock()
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			b.count++
			mu.Unlock()

			return next(c)
		}
	}
}
