// Package mocks holds testify mocks of the wizishop interfaces.
package mocks

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

// Doer is a mock of wizishop.Doer.
type Doer struct {
	mock.Mock
}

// Do records the call and returns the configured response.
func (m *Doer) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

// FailureSink is a mock of wizishop.FailureSink.
type FailureSink struct {
	mock.Mock
}

// Record records the call and returns the configured error.
func (m *FailureSink) Record(ctx context.Context, f *wizishop.Failure) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

var (
	_ wizishop.Doer        = (*Doer)(nil)
	_ wizishop.FailureSink = (*FailureSink)(nil)
)
