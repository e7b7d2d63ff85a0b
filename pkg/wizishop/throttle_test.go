package wizishop_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

func TestThrottle_Observe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		header        string
		wantCooldown  bool
		wantKnown     bool
		wantRemaining int64
	}{
		{name: "below floor", header: "49", wantCooldown: true, wantKnown: true, wantRemaining: 49},
		{name: "at floor", header: "50", wantKnown: true, wantRemaining: 50},
		{name: "above floor", header: "51", wantKnown: true, wantRemaining: 51},
		{name: "exhausted", header: "0", wantCooldown: true, wantKnown: true, wantRemaining: 0},
		{name: "absent header", header: ""},
		{name: "unparsable header", header: "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &sleepRecorder{}
			th := wizishop.NewThrottle(wizishop.DefaultThrottleFloor, wizishop.DefaultThrottleCooldown, rec.sleep)

			h := http.Header{}
			if tt.header != "" {
				h.Set(wizishop.RateLimitHeader, tt.header)
			}

			got := th.Observe(context.Background(), h)
			assert.Equal(t, tt.wantCooldown, got)

			remaining, known := th.Remaining()
			assert.Equal(t, tt.wantKnown, known)
			assert.Equal(t, tt.wantRemaining, remaining)

			if tt.wantCooldown {
				assert.Equal(t, []time.Duration{60 * time.Second}, rec.Calls())
			} else {
				assert.Empty(t, rec.Calls())
			}
		})
	}
}

func TestThrottle_AbsentHeaderKeepsCounter(t *testing.T) {
	t.Parallel()

	rec := &sleepRecorder{}
	th := wizishop.NewThrottle(50, time.Minute, rec.sleep)

	h := http.Header{}
	h.Set(wizishop.RateLimitHeader, "120")
	th.Observe(context.Background(), h)

	th.Observe(context.Background(), http.Header{})

	remaining, known := th.Remaining()
	assert.True(t, known)
	assert.Equal(t, int64(120), remaining)
}

func TestThrottle_CustomFloor(t *testing.T) {
	t.Parallel()

	rec := &sleepRecorder{}
	th := wizishop.NewThrottle(10, 5*time.Second, rec.sleep)

	h := http.Header{}
	h.Set(wizishop.RateLimitHeader, "20")
	assert.False(t, th.Observe(context.Background(), h))

	h.Set(wizishop.RateLimitHeader, "9")
	assert.True(t, th.Observe(context.Background(), h))

	assert.Equal(t, []time.Duration{5 * time.Second}, rec.Calls())
	assert.Equal(t, int64(10), th.Floor())
	assert.Equal(t, 5*time.Second, th.Cooldown())
}

func TestThrottle_CooldownHonoursContext(t *testing.T) {
	t.Parallel()

	th := wizishop.NewThrottle(50, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := http.Header{}
	h.Set(wizishop.RateLimitHeader, "1")

	done := make(chan bool, 1)
	go func() {
		done <- th.Observe(ctx, h)
	}()

	select {
	case applied := <-done:
		assert.True(t, applied)
	case <-time.After(5 * time.Second):
		t.Fatal("cooldown did not stop on cancelled context")
	}
}

func TestThrottle_Wait(t *testing.T) {
	t.Parallel()

	t.Run("no pacing", func(t *testing.T) {
		t.Parallel()

		th := wizishop.NewThrottle(50, time.Minute, nil)
		require.NoError(t, th.Wait(context.Background()))
	})

	t.Run("pacing allows burst", func(t *testing.T) {
		t.Parallel()

		th := wizishop.NewThrottle(50, time.Minute, nil).WithPacing(1000, 3)
		for range 3 {
			require.NoError(t, th.Wait(context.Background()))
		}
	})

	t.Run("pacing respects cancelled context", func(t *testing.T) {
		t.Parallel()

		th := wizishop.NewThrottle(50, time.Minute, nil).WithPacing(1, 1)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := th.Wait(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "request pacing wait")
	})
}
