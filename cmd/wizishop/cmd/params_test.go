package cmd

import (
	"bytes"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

func TestListFlags_Values(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flags   listFlags
		want    url.Values
		wantErr bool
	}{
		{
			name:  "empty fetches everything",
			flags: listFlags{},
			want:  url.Values{},
		},
		{
			name:  "page and limit",
			flags: listFlags{page: 2, limit: 20},
			want:  url.Values{"page": {"2"}, "limit": {"20"}},
		},
		{
			name:  "extra params",
			flags: listFlags{params: []string{"status=active", "q=a=b"}},
			want:  url.Values{"status": {"active"}, "q": {"a=b"}},
		},
		{
			name:    "missing separator",
			flags:   listFlags{params: []string{"status"}},
			wantErr: true,
		},
		{
			name:    "empty key",
			flags:   listFlags{params: []string{"=x"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.flags.values()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id, err := parseID("1234")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), id)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestReadFields(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "product.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"sku":"A1","price":10,"name":"old"}`), 0o600))

	got, err := readFields(file, []string{"name=New name", "stock=12", "active=true"})
	require.NoError(t, err)
	assert.Equal(t, wizishop.Fields{
		"sku":    "A1",
		"price":  float64(10),
		"name":   "New name",
		"stock":  float64(12),
		"active": true,
	}, got)

	_, err = readFields("", nil)
	require.Error(t, err)

	_, err = readFields("", []string{"novalue"})
	require.Error(t, err)

	_, err = readFields(filepath.Join(dir, "missing.json"), nil)
	require.Error(t, err)
}

func TestParseTracking(t *testing.T) {
	t.Parallel()

	got, err := parseTracking([]string{"77=6A123", "78=XY=9"})
	require.NoError(t, err)
	assert.Equal(t, []wizishop.TrackingNumber{
		{ShippingID: 77, TrackingNumber: "6A123"},
		{ShippingID: 78, TrackingNumber: "XY=9"},
	}, got)

	for _, bad := range []string{"77", "x=1", "77="} {
		_, err := parseTracking([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestParseOrderDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01 10:20:30", time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)},
		{"2024-03-01T10:20:30Z", time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseOrderDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), tt.in)
	}

	_, err := parseOrderDate("01/03/2024")
	require.Error(t, err)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestPrintTables(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, printBrandTable(&buf, []wizishop.Brand{
		{ID: 1, Name: "Acme", URL: "acme"},
	}))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "Acme")

	buf.Reset()
	require.NoError(t, printOrderTable(&buf, []wizishop.Order{
		{ID: 1001, Reference: "R-1", StatusCode: 20, Total: 12.5, Currency: "EUR"},
	}))
	assert.Contains(t, buf.String(), "12.50 EUR")

	buf.Reset()
	require.NoError(t, outputJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}
