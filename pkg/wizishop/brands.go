package wizishop

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
)

var errUnexpectedStatus = errors.New("unexpected response status")

func brandRoute(id int64) string {
	return "brands/" + strconv.FormatInt(id, 10)
}

// GetBrand returns the brand with the given id, or nil if it does not exist.
// params, which may be nil, are sent as the query string.
func (c *Client) GetBrand(ctx context.Context, id int64, params url.Values) (*Brand, error) {
	var b Brand
	found, err := c.fetch(ctx, brandRoute(id), params, &b)
	if err != nil || !found {
		return nil, err
	}
	return &b, nil
}

// ListBrands returns every brand. Setting "page" or "limit" in params
// returns that single page instead.
func (c *Client) ListBrands(ctx context.Context, params url.Values) ([]Brand, error) {
	return fetchAll[Brand](ctx, c, "brands", params)
}

// CreateBrand creates a brand. imageURL is optional.
func (c *Client) CreateBrand(ctx context.Context, name, imageURL string) (*Brand, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}

	var b Brand
	body := BrandUpdate{Name: name, ImageURL: imageURL}
	if _, err := c.mutate(ctx, http.MethodPost, "brands", body, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBrand renames a brand and optionally changes its URL and image.
func (c *Client) UpdateBrand(ctx context.Context, id int64, u BrandUpdate) (*Brand, error) {
	if u.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "must not be empty"}
	}

	var b Brand
	if _, err := c.mutate(ctx, http.MethodPatch, brandRoute(id), u, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// DeleteBrand deletes a brand. The API acknowledges a deletion with 204; any
// other status, including other 2xx codes, is reported as an *APIError.
func (c *Client) DeleteBrand(ctx context.Context, id int64) error {
	route := brandRoute(id)

	resp, err := c.mutate(ctx, http.MethodDelete, route, nil, nil)
	if err != nil {
		return err
	}
	if resp.status != http.StatusNoContent {
		return c.apiError(http.MethodDelete, route, resp, errUnexpectedStatus)
	}
	return nil
}
