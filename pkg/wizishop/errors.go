package wizishop

import (
	"errors"
	"fmt"
	"net/http"
)

// TokenFormatError is returned when a session token cannot be decoded.
type TokenFormatError struct {
	Err error
}

func (e *TokenFormatError) Error() string {
	return fmt.Sprintf("malformed session token: %v", e.Err)
}

func (e *TokenFormatError) Unwrap() error {
	return e.Err
}

// AuthenticationError is returned when the login request fails at the
// transport level or the API answers with a non-2xx status. StatusCode is
// zero when no response was received.
type AuthenticationError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *AuthenticationError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("authentication failed: %v", e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("authentication failed (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("authentication failed (status %d): %s", e.StatusCode, string(e.Body))
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// APIError describes a failed authenticated call. Body and Header hold the
// raw response for diagnostics; StatusCode is zero for transport failures.
type APIError struct {
	Method     string
	Route      string
	StatusCode int
	Header     http.Header
	Body       []byte
	RequestID  string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("WiziShop API %s %s: %v", e.Method, e.Route, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf(
			"WiziShop API %s %s (status %d): %v",
			e.Method,
			e.Route,
			e.StatusCode,
			e.Err,
		)
	}
	return fmt.Sprintf(
		"WiziShop API error (status %d) %s %s: %s",
		e.StatusCode,
		e.Method,
		e.Route,
		string(e.Body),
	)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the API answered 404.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// ValidationError is returned before any network call when an argument
// violates a documented constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
