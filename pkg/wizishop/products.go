package wizishop

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const opCreateProduct = "product"

func productRoute(id int64) string {
	return "products/" + strconv.FormatInt(id, 10)
}

// GetProduct returns the product with the given id, or nil if it does not
// exist.
func (c *Client) GetProduct(ctx context.Context, id int64, params url.Values) (*Product, error) {
	var p Product
	found, err := c.fetch(ctx, productRoute(id), params, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

// ListProducts returns every product matching params.
func (c *Client) ListProducts(ctx context.Context, params url.Values) ([]Product, error) {
	return fetchAll[Product](ctx, c, "products", params)
}

// CreateProduct creates a product from fields. A rejected payload is handed
// to the configured FailureSink, keyed by its "sku" field, before the error
// is returned.
func (c *Client) CreateProduct(ctx context.Context, fields Fields) (*Product, error) {
	var p Product
	if _, err := c.mutate(ctx, http.MethodPost, "products", fields, &p); err != nil {
		c.recordFailure(ctx, opCreateProduct, fieldString(fields, "sku"), fields, err)
		return nil, err
	}
	return &p, nil
}

// UpdateProduct replaces the given fields of a product.
func (c *Client) UpdateProduct(ctx context.Context, id int64, fields Fields) (*Product, error) {
	var p Product
	if _, err := c.mutate(ctx, http.MethodPut, productRoute(id), fields, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func fieldString(f Fields, name string) string {
	v, ok := f[name]
	if !ok || v == nil {
		return ""
	}
	if s := idString(v); s != "" {
		return s
	}
	return fmt.Sprint(v)
}
