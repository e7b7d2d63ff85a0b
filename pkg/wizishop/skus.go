package wizishop

import (
	"context"
	"net/http"
	"net/url"
)

func skuRoute(sku string) string {
	return "skus/" + url.PathEscape(sku)
}

// GetSku returns the given SKU, or nil if it does not exist.
func (c *Client) GetSku(ctx context.Context, sku string, params url.Values) (*Sku, error) {
	var s Sku
	found, err := c.fetch(ctx, skuRoute(sku), params, &s)
	if err != nil || !found {
		return nil, err
	}
	return &s, nil
}

// ListSkus returns every SKU matching params.
func (c *Client) ListSkus(ctx context.Context, params url.Values) ([]Sku, error) {
	return fetchAll[Sku](ctx, c, "skus", params)
}

// ListDetailedSkus is ListSkus with detailed records.
func (c *Client) ListDetailedSkus(ctx context.Context, params url.Values) ([]Sku, error) {
	q := make(url.Values, len(params)+1)
	for k, v := range params {
		q[k] = v
	}
	q.Set("detailed", "1")
	return fetchAll[Sku](ctx, c, "skus", q)
}

// UpdateSkuStock sets, increases or decreases the stock of a SKU.
func (c *Client) UpdateSkuStock(
	ctx context.Context,
	sku string,
	stock int,
	method StockMethod,
) (*Sku, error) {
	if !method.Valid() {
		return nil, &ValidationError{
			Field:   "stock method",
			Message: "must be replace, increase or decrease, got " + string(method),
		}
	}

	var s Sku
	body := stockUpdate{Method: method, Stock: stock}
	if _, err := c.mutate(ctx, http.MethodPut, skuRoute(sku), body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
