package wizishop

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/JWebCreation/wizishop-sdk/internal/metrics"
)

const loginRoute = "auth/login"

var errMissingToken = errors.New("login response has no token")

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse accepts ids as JSON strings or numbers.
type loginResponse struct {
	Token         string `json:"token"`
	AccountID     any    `json:"account_id"`
	DefaultShopID any    `json:"default_shop_id"`
}

// Authenticate logs in with username and password and returns a session
// bound to the resolved shop. Account and shop ids supplied with
// WithAccountID / WithShopID take precedence over the login response.
//
// When the options already carry a token, an account id and a shop id,
// no login request is made and the token is only parsed locally.
func Authenticate(
	ctx context.Context,
	username, password string,
	opts ...Option,
) (*Client, error) {
	s := applyOptions(opts)

	if s.token != "" && s.accountIDSet && s.shopIDSet {
		tok, err := ParseToken(s.token)
		if err != nil {
			return nil, err
		}
		metrics.LoginsTotal.WithLabelValues("cached").Inc()
		return newClient(tok, s.accountID, s.shopID, s), nil
	}

	lr, err := login(ctx, username, password, s)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	tok, err := ParseToken(lr.Token)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	accountID := s.accountID
	if !s.accountIDSet {
		accountID = idString(lr.AccountID)
	}
	shopID := s.shopID
	if !s.shopIDSet {
		shopID = idString(lr.DefaultShopID)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()

	c := newClient(tok, accountID, shopID, s)
	c.log.InfoContext(ctx, "authenticated",
		"account_id", accountID,
		"shop_id", shopID,
		"base_uri", c.baseURI,
	)
	return c, nil
}

// Connect builds a session from a previously issued token without any
// network call. Ids not supplied through options are read from the
// token's claims.
func Connect(rawToken string, opts ...Option) (*Client, error) {
	s := applyOptions(opts)

	tok, err := ParseToken(rawToken)
	if err != nil {
		return nil, err
	}

	accountID := s.accountID
	if !s.accountIDSet {
		accountID = tok.AccountID()
	}
	shopID := s.shopID
	if !s.shopIDSet {
		shopID = tok.DefaultShopID()
	}

	return newClient(tok, accountID, shopID, s), nil
}

// NewWithToken builds a session from exactly the given token, account id
// and shop id. Identity options (WithToken, WithAccountID, WithShopID) are
// ignored; transport options still apply. An empty shopID selects the
// account-scoped base URI.
func NewWithToken(rawToken, accountID, shopID string, opts ...Option) (*Client, error) {
	s := applyOptions(opts)
	s.token, s.accountID, s.shopID = rawToken, accountID, shopID
	s.accountIDSet, s.shopIDSet = true, true

	tok, err := ParseToken(rawToken)
	if err != nil {
		return nil, err
	}

	return newClient(tok, accountID, shopID, s), nil
}

func login(ctx context.Context, username, password string, s *settings) (*loginResponse, error) {
	data, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, &AuthenticationError{Err: fmt.Errorf("marshaling login request: %w", err)}
	}

	u := normalizeEndpoint(s.endpoint) + apiPrefix + loginRoute
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(data))
	if err != nil {
		return nil, &AuthenticationError{Err: fmt.Errorf("creating login request: %w", err)}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	doer := s.http
	if doer == nil {
		doer = &http.Client{Timeout: defaultTimeout}
	}

	resp, err := doer.Do(req)
	if err != nil {
		return nil, &AuthenticationError{Err: fmt.Errorf("executing login request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AuthenticationError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("reading login response: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &AuthenticationError{StatusCode: resp.StatusCode, Body: body}
	}

	var lr loginResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return nil, &AuthenticationError{
			StatusCode: resp.StatusCode,
			Body:       body,
			Err:        fmt.Errorf("parsing login response: %w", err),
		}
	}
	if lr.Token == "" {
		return nil, &AuthenticationError{
			StatusCode: resp.StatusCode,
			Body:       body,
			Err:        errMissingToken,
		}
	}

	return &lr, nil
}
