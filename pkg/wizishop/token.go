package wizishop

import (
	"errors"
	"maps"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claim names carried by WiziShop session tokens.
const (
	ClaimAccountID     = "account_id"
	ClaimDefaultShopID = "default_shop_id"
	ClaimExpiry        = "exp"
)

var errEmptyToken = errors.New("token is empty")

// Token is a signed WiziShop session token with its readable claims. The
// signature is never verified client side: the API server is the verifier.
// A Token is immutable once parsed.
type Token struct {
	raw    string
	claims jwt.MapClaims
}

// ParseToken decodes the claims of raw without verifying its signature.
func ParseToken(raw string) (*Token, error) {
	if raw == "" {
		return nil, &TokenFormatError{Err: errEmptyToken}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, &TokenFormatError{Err: err}
	}

	return &Token{raw: raw, claims: claims}, nil
}

// String returns the original raw token.
func (t *Token) String() string {
	return t.raw
}

// Claim returns the named claim. A missing claim is not an error.
func (t *Token) Claim(name string) (any, bool) {
	v, ok := t.claims[name]
	return v, ok
}

// Claims returns a copy of all decoded claims.
func (t *Token) Claims() map[string]any {
	return maps.Clone(map[string]any(t.claims))
}

// AccountID returns the account_id claim rendered as a string.
func (t *Token) AccountID() string {
	return t.stringClaim(ClaimAccountID)
}

// DefaultShopID returns the default_shop_id claim rendered as a string.
func (t *Token) DefaultShopID() string {
	return t.stringClaim(ClaimDefaultShopID)
}

// ExpiresAt returns the exp claim, if present.
func (t *Token) ExpiresAt() (time.Time, bool) {
	exp, err := t.claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the token carries an expiry at or before now.
func (t *Token) Expired(now time.Time) bool {
	exp, ok := t.ExpiresAt()
	return ok && !now.Before(exp)
}

func (t *Token) stringClaim(name string) string {
	v, ok := t.claims[name]
	if !ok {
		return ""
	}
	return idString(v)
}

// idString renders an identifier decoded from JSON. Numbers arrive as
// float64 and must not be printed in exponent form.
func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return ""
	}
}
