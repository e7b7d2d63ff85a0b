package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/JWebCreation/wizishop-sdk/internal/mockapi/middleware"
)

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()

	raw, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return raw
}

func TestBearerAuth(t *testing.T) {
	t.Parallel()

	secret := []byte("mock-secret")
	valid := sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{"account_id": 7})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized},
		{
			name:       "wrong secret",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			header: "Bearer " + sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
				"exp": time.Now().Add(-time.Hour).Unix(),
			}),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			e.GET("/v3/brands", func(c echo.Context) error {
				claims, ok := c.Get("claims").(jwt.MapClaims)
				if !ok {
					return c.NoContent(http.StatusInternalServerError)
				}
				assert.InDelta(t, 7, claims["account_id"], 0)
				return c.NoContent(http.StatusOK)
			}, mw.BearerAuth(secret))

			req := httptest.NewRequest(http.MethodGet, "/v3/brands", http.NoBody)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
