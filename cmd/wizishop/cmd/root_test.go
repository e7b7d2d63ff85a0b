package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

// runCLI executes the root command against a fake API. It mutates the
// shared command tree and viper state, so callers must not run in parallel.
func runCLI(t *testing.T, handler http.Handler, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id":      7,
		"default_shop_id": 42,
	}).SignedString([]byte("cli-test"))
	require.NoError(t, err)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{
		"--endpoint", srv.URL,
		"--token", raw,
		"--log-level", "error",
	}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	t.Cleanup(func() {
		// Flag values outlive an execution of the shared tree.
		_ = rootCmd.PersistentFlags().Set("metrics-textfile", "")
	})

	err = execute(context.Background())
	return out.String(), err
}

func TestBrandsList_JSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v3/shops/42/brands", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":1,"name":"Acme"}],"pages":1}`))
	})

	out, err := runCLI(t, mux, "brands", "list", "--output", "json")
	require.NoError(t, err)

	var brands []wizishop.Brand
	require.NoError(t, json.Unmarshal([]byte(out), &brands))
	assert.Equal(t, []wizishop.Brand{{ID: 1, Name: "Acme"}}, brands)
}

func TestOrderStatus_RejectsUnknownSlug(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected for an unknown status")
	})

	_, err := runCLI(t, mux, "orders", "status", "1001", "lost", "--output", "table")
	require.Error(t, err)

	var vErr *wizishop.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestMetricsTextfile_WrittenOnFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v3/shops/42/brands/3", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	})

	path := filepath.Join(t.TempDir(), "wizishop.prom")
	_, err := runCLI(t, mux, "brands", "get", "3", "--output", "table", "--metrics-textfile", path)
	require.Error(t, err)

	var apiErr *wizishop.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)

	data, err := os.ReadFile(path)
	require.NoError(t, err, "textfile must be written even when the command fails")
	assert.Contains(t, string(data), `wizishop_api_requests_total{method="GET",status="500"}`)
}

func TestMetricsTextfile_WrittenOnSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v3/shops/42/brands/4", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":4,"name":"Acme"}`))
	})

	path := filepath.Join(t.TempDir(), "wizishop.prom")
	_, err := runCLI(t, mux, "brands", "get", "4", "--output", "json", "--metrics-textfile", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "wizishop_api_requests_total")
}
