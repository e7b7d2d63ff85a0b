package wizishop

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// PageSize is the limit requested for every page of an automatic walk.
const PageSize = 100

// Page is the envelope of every paginated collection route.
type Page[T any] struct {
	Results []T `json:"results"`
	Pages   int `json:"pages"`
}

// PageFetcher returns page n of a collection, or nil when the API has no
// result for it.
type PageFetcher[T any] func(ctx context.Context, n int) (*Page[T], error)

// Assemble walks pages from 1 until the last page reported by the API and
// concatenates their results in order. A missing page anywhere yields an
// empty result for the whole walk, as does an empty first page. An empty
// later page contributes nothing and the walk goes on.
func Assemble[T any](ctx context.Context, fetch PageFetcher[T]) ([]T, error) {
	results := []T{}

	for n := 1; ; n++ {
		page, err := fetch(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", n, err)
		}

		if page == nil {
			return []T{}, nil
		}
		if n == 1 && len(page.Results) == 0 {
			return []T{}, nil
		}

		results = append(results, page.Results...)

		if n >= page.Pages {
			return results, nil
		}
	}
}

// fetchAll reads every record of a collection route. When params already
// select a page or a limit the caller is paginating by hand: exactly one
// request is made with params untouched.
func fetchAll[T any](ctx context.Context, c *Client, route string, params url.Values) ([]T, error) {
	if params.Has("page") || params.Has("limit") {
		var page Page[T]
		found, err := c.fetch(ctx, route, params, &page)
		if err != nil {
			return nil, err
		}
		if !found || page.Results == nil {
			return []T{}, nil
		}
		return page.Results, nil
	}

	return Assemble(ctx, func(ctx context.Context, n int) (*Page[T], error) {
		q := make(url.Values, len(params)+2)
		for k, v := range params {
			q[k] = v
		}
		q.Set("limit", strconv.Itoa(PageSize))
		q.Set("page", strconv.Itoa(n))

		var page Page[T]
		found, err := c.fetch(ctx, route, q, &page)
		if err != nil || !found {
			return nil, err
		}
		return &page, nil
	})
}
