package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serveLogged runs one request through RequestLog and returns the recorder,
// the echo context and the log output.
func serveLogged(t *testing.T, req *http.Request, h echo.HandlerFunc) (*httptest.ResponseRecorder, echo.Context, string) {
	t.Helper()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	require.NoError(t, RequestLog(log)(h)(c))
	return rec, c, buf.String()
}

func TestRequestLog_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		target string
		status int
		want   []string
	}{
		{
			name:   "paged list",
			method: http.MethodGet,
			target: "/v3/shops/42/brands?limit=100&page=2",
			status: http.StatusOK,
			want:   []string{"level=INFO", "method=GET", "path=/v3/shops/42/brands", "query=\"limit=100&page=2\"", "status=200", "duration_ms="},
		},
		{
			name:   "existing customer",
			method: http.MethodPost,
			target: "/v3/shops/42/customers",
			status: http.StatusBadRequest,
			want:   []string{"level=WARN", "method=POST", "status=400"},
		},
		{
			name:   "budget spent",
			method: http.MethodGet,
			target: "/v3/shops/42/orders",
			status: http.StatusTooManyRequests,
			want:   []string{"level=WARN", "status=429"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, tt.target, http.NoBody)
			_, _, out := serveLogged(t, req, func(c echo.Context) error {
				return c.NoContent(tt.status)
			})
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestRequestLog_KeepsCallerRequestID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/v3/shops/42/skus", http.NoBody)
	req.Header.Set(RequestIDHeader, "4b8f0c1e-sdk")

	rec, c, out := serveLogged(t, req, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	assert.Equal(t, "4b8f0c1e-sdk", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "4b8f0c1e-sdk", c.Get("request_id"))
	assert.Contains(t, out, "request_id=4b8f0c1e-sdk")
}

func TestRequestLog_GeneratesRequestID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	rec, c, _ := serveLogged(t, req, func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	id := rec.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, c.Get("request_id"))
}
