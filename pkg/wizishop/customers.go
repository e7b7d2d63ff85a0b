package wizishop

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

func customerRoute(id int64) string {
	return "customers/" + strconv.FormatInt(id, 10)
}

// GetCustomer returns the customer with the given id, or nil if it does not
// exist.
func (c *Client) GetCustomer(ctx context.Context, id int64, params url.Values) (*Customer, error) {
	var cu Customer
	found, err := c.fetch(ctx, customerRoute(id), params, &cu)
	if err != nil || !found {
		return nil, err
	}
	return &cu, nil
}

// ListCustomers returns every customer matching params.
func (c *Client) ListCustomers(ctx context.Context, params url.Values) ([]Customer, error) {
	return fetchAll[Customer](ctx, c, "customers", params)
}

// CreateCustomer registers a customer. When the API refuses because the
// customer already exists, the call succeeds with Exists set and the id of
// the existing customer.
func (c *Client) CreateCustomer(ctx context.Context, fields Fields) (*CustomerCreateResult, error) {
	var cu Customer
	_, err := c.mutate(ctx, http.MethodPost, "customers", fields, &cu)
	if err == nil {
		return &CustomerCreateResult{ID: strconv.FormatInt(cu.ID, 10), Customer: &cu}, nil
	}

	apiErr, ok := asAPIError(err)
	if !ok || apiErr.StatusCode != http.StatusBadRequest {
		return nil, err
	}

	c.observe(ctx, apiErr.Header)

	id, exists := existingCustomerID(apiErr.Body)
	if !exists {
		return nil, err
	}

	c.log.DebugContext(ctx, "customer already exists", "customer_id", id)
	return &CustomerCreateResult{Exists: true, ID: id}, nil
}

// existingCustomerID recognises the 400 body the API sends when a customer
// is already registered: {"message": "... #<id>"}.
func existingCustomerID(body []byte) (string, bool) {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}

	_, id, found := strings.Cut(payload.Message, "#")
	if !found {
		return "", false
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return "", false
	}
	return id, true
}
