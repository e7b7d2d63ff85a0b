package wizishop_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

// pagedBrands serves brands pages from pages, recording each query.
type pagedBrands struct {
	mu      sync.Mutex
	pages   [][]int
	queries []url.Values
	missing map[int]bool
}

func (p *pagedBrands) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.queries = append(p.queries, r.URL.Query())
	p.mu.Unlock()

	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		n = 1
	}
	if p.missing[n] || n > len(p.pages) {
		writeJSON(w, http.StatusNotFound, `{"message":"no result"}`)
		return
	}

	body := `{"pages": ` + strconv.Itoa(len(p.pages)) + `, "results": [`
	for i, id := range p.pages[n-1] {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"id": %d, "name": "brand-%d"}`, id, id)
	}
	body += "]}"
	writeJSON(w, http.StatusOK, body)
}

func (p *pagedBrands) Queries() []url.Values {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]url.Values(nil), p.queries...)
}

func brandIDs(brands []wizishop.Brand) []int64 {
	ids := make([]int64, 0, len(brands))
	for _, b := range brands {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestListBrands_Pagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pages     [][]int
		missing   map[int]bool
		params    url.Values
		wantIDs   []int64
		wantCalls int
	}{
		{
			name:      "concatenates pages in order",
			pages:     [][]int{{1, 2}, {3, 4}, {5}},
			wantIDs:   []int64{1, 2, 3, 4, 5},
			wantCalls: 3,
		},
		{
			name:      "single page",
			pages:     [][]int{{9, 8, 7}},
			wantIDs:   []int64{9, 8, 7},
			wantCalls: 1,
		},
		{
			name:      "empty first page stops",
			pages:     [][]int{{}, {1}},
			wantIDs:   []int64{},
			wantCalls: 1,
		},
		{
			name:      "empty middle page is skipped",
			pages:     [][]int{{1}, {}, {3}},
			wantIDs:   []int64{1, 3},
			wantCalls: 3,
		},
		{
			name:      "missing page empties the whole result",
			pages:     [][]int{{1}, {2}, {3}},
			missing:   map[int]bool{2: true},
			wantIDs:   []int64{},
			wantCalls: 2,
		},
		{
			name:      "filters are forwarded",
			pages:     [][]int{{1}, {2}},
			params:    url.Values{"name": {"acme"}},
			wantIDs:   []int64{1, 2},
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := &pagedBrands{pages: tt.pages, missing: tt.missing}
			c, counter, _ := newTestClient(t, srv)

			brands, err := c.ListBrands(context.Background(), tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, brandIDs(brands))
			assert.Equal(t, tt.wantCalls, counter.Hits())

			for i, q := range srv.Queries() {
				assert.Equal(t, "100", q.Get("limit"))
				assert.Equal(t, strconv.Itoa(i+1), q.Get("page"))
				for k := range tt.params {
					assert.Equal(t, tt.params.Get(k), q.Get(k))
				}
			}
		})
	}
}

func TestListBrands_ManualPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params url.Values
	}{
		{name: "page only", params: url.Values{"page": {"2"}}},
		{name: "limit only", params: url.Values{"limit": {"5"}}},
		{name: "page and limit", params: url.Values{"page": {"3"}, "limit": {"10"}, "name": {"x"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := &pagedBrands{pages: [][]int{{1}, {2}, {3}}}
			c, counter, _ := newTestClient(t, srv)

			_, err := c.ListBrands(context.Background(), tt.params)
			require.NoError(t, err)

			require.Equal(t, 1, counter.Hits())
			assert.Equal(t, tt.params, srv.Queries()[0])
		})
	}
}

func TestListBrands_ManualPageResults(t *testing.T) {
	t.Parallel()

	srv := &pagedBrands{pages: [][]int{{1}, {2, 3}}}
	c, _, _ := newTestClient(t, srv)

	brands, err := c.ListBrands(context.Background(), url.Values{"page": {"2"}})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, brandIDs(brands))
}

func TestListBrands_ErrorOnLaterPage(t *testing.T) {
	t.Parallel()

	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			writeJSON(w, http.StatusBadGateway, `upstream`)
			return
		}
		writeJSON(w, http.StatusOK, `{"pages": 2, "results": [{"id": 1}]}`)
	}))

	brands, err := c.ListBrands(context.Background(), nil)
	require.Error(t, err)
	assert.Nil(t, brands)
	assert.Contains(t, err.Error(), "fetching page 2")

	var apiErr *wizishop.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	pages := map[int]*wizishop.Page[string]{
		1: {Pages: 2, Results: []string{"a", "b"}},
		2: {Pages: 2, Results: []string{"c"}},
	}

	var asked []int
	got, err := wizishop.Assemble(context.Background(), func(_ context.Context, n int) (*wizishop.Page[string], error) {
		asked = append(asked, n)
		return pages[n], nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, []int{1, 2}, asked)
}

func TestAssemble_EmptyLaterPage(t *testing.T) {
	t.Parallel()

	pages := map[int]*wizishop.Page[string]{
		1: {Pages: 4, Results: []string{"a"}},
		2: {Pages: 4, Results: []string{}},
		3: {Pages: 4},
		4: {Pages: 4, Results: []string{"d"}},
	}

	var asked []int
	got, err := wizishop.Assemble(context.Background(), func(_ context.Context, n int) (*wizishop.Page[string], error) {
		asked = append(asked, n)
		return pages[n], nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "d"}, got)
	assert.Equal(t, []int{1, 2, 3, 4}, asked)
}

func TestAssemble_NoResult(t *testing.T) {
	t.Parallel()

	got, err := wizishop.Assemble(context.Background(), func(context.Context, int) (*wizishop.Page[int], error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
