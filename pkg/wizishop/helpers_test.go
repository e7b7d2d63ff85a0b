package wizishop_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

const (
	testAccountID = "7"
	testShopID    = "42"
	shopPrefix    = "/v3/shops/42/"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func testToken(t *testing.T) string {
	t.Helper()

	return signToken(t, jwt.MapClaims{
		"account_id":      7,
		"default_shop_id": 42,
		"exp":             time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
	})
}

// sleepRecorder captures cooldown sleeps instead of blocking.
type sleepRecorder struct {
	mu    sync.Mutex
	calls []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, d)
}

func (s *sleepRecorder) Calls() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.calls...)
}

// countingHandler counts requests before delegating.
type countingHandler struct {
	hits atomic.Int32
	next http.Handler
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.hits.Add(1)
	h.next.ServeHTTP(w, r)
}

func (h *countingHandler) Hits() int {
	return int(h.hits.Load())
}

// newTestClient starts a fake API and returns a shop-scoped client bound to
// it. Cooldown sleeps are recorded, never slept.
func newTestClient(
	t *testing.T,
	handler http.Handler,
	opts ...wizishop.Option,
) (*wizishop.Client, *countingHandler, *sleepRecorder) {
	t.Helper()

	counter := &countingHandler{next: handler}
	srv := httptest.NewServer(counter)
	t.Cleanup(srv.Close)

	rec := &sleepRecorder{}
	base := []wizishop.Option{
		wizishop.WithEndpoint(srv.URL),
		wizishop.WithSleepFunc(rec.sleep),
	}

	c, err := wizishop.NewWithToken(testToken(t), testAccountID, testShopID, append(base, opts...)...)
	require.NoError(t, err)
	return c, counter, rec
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// newServer starts handler and returns its URL.
func newServer(t *testing.T, handler http.Handler) string {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv.URL
}
