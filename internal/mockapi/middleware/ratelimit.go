package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JWebCreation/wizishop-sdk/internal/metrics"
)

// RateLimitHeader mirrors the header the real API uses to report the calls
// left in the current window.
const RateLimitHeader = "X-RateLimit-Remaining"

// Budget is a fixed-window call allowance.
type Budget struct {
	mu        sync.Mutex
	limit     int64
	window    time.Duration
	remaining int64
	resetAt   time.Time
	now       func() time.Time
}

// NewBudget allows limit calls per window. A nil now uses time.Now.
func NewBudget(limit int64, window time.Duration, now func() time.Time) *Budget {
	if now == nil {
		now = time.Now
	}
	return &Budget{limit: limit, window: window, now: now}
}

// Take consumes one call and returns the calls left. ok is false when the
// window's allowance is already spent.
func (b *Budget) Take() (remaining int64, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if b.resetAt.IsZero() || !now.Before(b.resetAt) {
		b.remaining = b.limit
		b.resetAt = now.Add(b.window)
	}

	if b.remaining <= 0 {
		return 0, false
	}
	b.remaining--
	return b.remaining, true
}

// RateLimit returns Echo middleware that charges every request to b,
// reports the remaining calls in RateLimitHeader and answers 429 once the
// budget is spent. A nil budget disables the middleware.
func RateLimit(b *Budget) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if b == nil {
			return next
		}
		return func(c echo.Context) error {
			remaining, ok := b.Take()
			c.Response().Header().Set(RateLimitHeader, strconv.FormatInt(remaining, 10))
			if !ok {
				metrics.MockRateLimitRejectionsTotal.Inc()
				return message(c, http.StatusTooManyRequests, "too many requests")
			}
			return next(c)
		}
	}
}
