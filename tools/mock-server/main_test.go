package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, o *options)
		wantErr bool
	}{
		{
			name: "defaults",
			args: nil,
			check: func(t *testing.T, o *options) {
				assert.Equal(t, 8089, o.port)
				assert.Equal(t, int64(42), o.shopID)
				assert.Equal(t, int64(500), o.rateBudget)
			},
		},
		{
			name: "overrides",
			args: []string{"-port", "9000", "-shop-id", "5", "-rate-budget", "0", "-rate-window", "10s", "-log-format", "json"},
			check: func(t *testing.T, o *options) {
				cfg := o.config()
				assert.Equal(t, int64(5), cfg.ShopID)
				assert.Zero(t, cfg.RateBudget)
				assert.Equal(t, 10*time.Second, cfg.RateWindow)
				assert.Equal(t, "json", o.logFormat)
			},
		},
		{
			name:    "bad log format",
			args:    []string{"-log-format", "xml"},
			wantErr: true,
		},
		{
			name:    "unknown flag",
			args:    []string{"-nope"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o, err := parseFlags(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, o)
		})
	}
}

func TestLoadSeed(t *testing.T) {
	t.Parallel()

	demo, err := loadSeed("")
	require.NoError(t, err)
	assert.NotEmpty(t, demo.Brands)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("brands:\n  - {id: 9, name: Solo}\n"), 0o600))

	seed, err := loadSeed(path)
	require.NoError(t, err)
	require.Len(t, seed.Brands, 1)
	assert.Equal(t, "Solo", seed.Brands[0].Name)

	_, err = loadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
