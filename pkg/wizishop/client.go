// Package wizishop provides a client for the WiziShop REST API (v3).
//
// A Client is obtained from one of the session constructors (Authenticate,
// Connect, NewWithToken). It holds the bearer token and the base URI
// resolved for the session, executes single and paginated reads, and
// pauses proactively when the API reports that few calls remain.
package wizishop

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultEndpoint is the public WiziShop API root.
	DefaultEndpoint = "https://api.wizishop.com/"

	// Version is reported in the User-Agent header.
	Version = "1.1.0"

	apiPrefix      = "v3/"
	defaultTimeout = 30 * time.Second
	tracerName     = "github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

// Doer executes HTTP requests. *http.Client satisfies it. Non-2xx responses
// must be returned as responses, not errors.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is an authenticated WiziShop API session.
type Client struct {
	baseURI   string
	token     *Token
	accountID string
	shopID    string

	http      Doer
	userAgent string
	throttle  *Throttle
	sink      FailureSink
	log       *slog.Logger
	tracer    trace.Tracer
}

// newClient builds the engine from resolved settings. The base URI is
// computed here once and never changes afterwards.
func newClient(tok *Token, accountID, shopID string, s *settings) *Client {
	c := &Client{
		baseURI:   BaseURI(s.endpoint, shopID),
		token:     tok,
		accountID: accountID,
		shopID:    shopID,
		http:      s.http,
		userAgent: s.userAgent,
		throttle: NewThrottle(s.throttleFloor, s.throttleCooldown, s.sleep).
			WithPacing(s.perSecond, s.burst),
		sink: s.sink,
		log:  s.logger,
	}

	if c.http == nil {
		c.http = &http.Client{Timeout: defaultTimeout}
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.sink == nil {
		c.sink = NewNopFailureSink(c.log)
	}

	tp := s.tracer
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	c.tracer = tp.Tracer(tracerName)

	return c
}

// BaseURI returns the resource root for endpoint: "<endpoint>v3/" when
// shopID is empty, "<endpoint>v3/shops/<shopID>/" otherwise. shopID is
// path-escaped.
func BaseURI(endpoint, shopID string) string {
	root := normalizeEndpoint(endpoint) + apiPrefix
	if shopID == "" {
		return root
	}
	return root + "shops/" + url.PathEscape(shopID) + "/"
}

func normalizeEndpoint(endpoint string) string {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return strings.TrimRight(endpoint, "/") + "/"
}

// BaseURI returns the resolved resource root of this session.
func (c *Client) BaseURI() string {
	return c.baseURI
}

// Token returns the session token.
func (c *Client) Token() *Token {
	return c.token
}

// AccountID returns the account id resolved for this session.
func (c *Client) AccountID() string {
	return c.accountID
}

// ShopID returns the shop id, or "" for an account-scoped session.
func (c *Client) ShopID() string {
	return c.shopID
}

// Throttle exposes the session's rate-limit state.
func (c *Client) Throttle() *Throttle {
	return c.throttle
}
