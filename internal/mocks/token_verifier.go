package mocks

import (
	"context"

	"github.com/phrazzld/studyai-api/internal/service/auth"
)

// MockTokenVerifier implements auth.TokenVerifier for testing
type MockTokenVerifier struct {
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Claims and Err are returned when ValidateTokenFn is nil
	Claims *auth.Claims
	Err    error
}

// Ensure MockTokenVerifier implements auth.TokenVerifier
var _ auth.TokenVerifier = (*MockTokenVerifier)(nil)

// ValidateToken implements auth.TokenVerifier.
func (m *MockTokenVerifier) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	return m.Claims, m.Err
}
