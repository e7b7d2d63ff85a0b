package wizishop

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListCategories returns the category tree in a single request; the route
// is not paginated.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var raw json.RawMessage
	found, err := c.fetch(ctx, "categories", nil, &raw)
	if err != nil {
		return nil, err
	}
	if !found {
		return []Category{}, nil
	}

	cats, err := decodeCollection[Category](raw)
	if err != nil {
		return nil, &APIError{
			Method:     http.MethodGet,
			Route:      "categories",
			StatusCode: http.StatusOK,
			Body:       raw,
			Err:        err,
		}
	}
	return cats, nil
}

// CreateCategory creates a category from fields.
func (c *Client) CreateCategory(ctx context.Context, fields Fields) (*Category, error) {
	var cat Category
	if _, err := c.mutate(ctx, http.MethodPost, "categories", fields, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// decodeCollection accepts a bare JSON array or a results envelope.
func decodeCollection[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}

	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("parsing collection: %w", err)
		}
		return items, nil
	}

	var page Page[T]
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("parsing collection: %w", err)
	}
	if page.Results == nil {
		return []T{}, nil
	}
	return page.Results, nil
}
