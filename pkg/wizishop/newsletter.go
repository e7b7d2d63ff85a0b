package wizishop

import (
	"context"
	"net/url"
)

// ListNewsletterSubscribers returns every newsletter subscriber.
func (c *Client) ListNewsletterSubscribers(ctx context.Context, params url.Values) ([]Subscriber, error) {
	return fetchAll[Subscriber](ctx, c, "newsletter/subscribers", params)
}
