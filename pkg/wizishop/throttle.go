package wizishop

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/JWebCreation/wizishop-sdk/internal/metrics"
)

const (
	// RateLimitHeader carries the number of calls left before the API
	// starts rejecting requests.
	RateLimitHeader = "X-RateLimit-Remaining"

	// DefaultThrottleFloor is the remaining-call count below which the
	// client pauses before returning.
	DefaultThrottleFloor = 50

	// DefaultThrottleCooldown is the pause applied below the floor.
	DefaultThrottleCooldown = 60 * time.Second
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration)

// Throttle tracks the API's remaining-call budget and pauses proactively
// when it runs low, so that the next call in a long batch is unlikely to be
// rejected. The counter only changes when a response carries the
// rate-limit header.
type Throttle struct {
	remaining atomic.Int64
	known     atomic.Bool
	floor     int64
	cooldown  time.Duration
	sleep     SleepFunc
	pace      *rate.Limiter
}

// NewThrottle creates a Throttle with the given floor and cooldown. A nil
// sleep uses a context-aware timer.
func NewThrottle(floor int64, cooldown time.Duration, sleep SleepFunc) *Throttle {
	if sleep == nil {
		sleep = sleepContext
	}
	return &Throttle{
		floor:    floor,
		cooldown: cooldown,
		sleep:    sleep,
	}
}

// WithPacing adds a token bucket consulted before every request. It is
// meant to be called once, right after NewThrottle.
func (t *Throttle) WithPacing(perSecond float64, burst int) *Throttle {
	if perSecond > 0 {
		if burst <= 0 {
			burst = 1
		}
		t.pace = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
	return t
}

// Wait blocks until the pacing limiter allows a request. It returns
// immediately when no pacing is configured.
func (t *Throttle) Wait(ctx context.Context) error {
	if t.pace == nil {
		return nil
	}
	if err := t.pace.Wait(ctx); err != nil {
		return fmt.Errorf("request pacing wait: %w", err)
	}
	return nil
}

// Observe records the remaining-call header of h, if present, and sleeps
// for the cooldown when the new value is below the floor. It reports
// whether a cooldown was applied.
func (t *Throttle) Observe(ctx context.Context, h http.Header) bool {
	v := h.Get(RateLimitHeader)
	if v == "" {
		return false
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return false
	}

	t.remaining.Store(n)
	t.known.Store(true)
	metrics.RateLimitRemaining.Set(float64(n))

	if n >= t.floor {
		return false
	}

	metrics.ThrottleCooldownsTotal.Inc()
	t.sleep(ctx, t.cooldown)
	return true
}

// Remaining returns the last reported remaining-call count. ok is false
// until a response carried the header.
func (t *Throttle) Remaining() (n int64, ok bool) {
	return t.remaining.Load(), t.known.Load()
}

// Floor returns the configured remaining-call floor.
func (t *Throttle) Floor() int64 {
	return t.floor
}

// Cooldown returns the configured pause duration.
func (t *Throttle) Cooldown() time.Duration {
	return t.cooldown
}

// sleepContext stops early when ctx is done; the caller still returns the
// result it already holds.
func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
