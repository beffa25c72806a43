package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/studyai-api/internal/ratelimit"
)

// MockLimiter implements ratelimit.Limiter for testing
type MockLimiter struct {
	// AllowFn allows test cases to mock the Allow behavior
	AllowFn func(ctx context.Context, key string) (bool, error)

	// Deny makes Allow return false when AllowFn is nil
	Deny bool
	Err  error

	mu   sync.Mutex
	keys []string
}

// Ensure MockLimiter implements ratelimit.Limiter
var _ ratelimit.Limiter = (*MockLimiter)(nil)

// Allow implements ratelimit.Limiter.
func (m *MockLimiter) Allow(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	m.keys = append(m.keys, key)
	m.mu.Unlock()

	if m.AllowFn != nil {
		return m.AllowFn(ctx, key)
	}
	if m.Err != nil {
		return false, m.Err
	}
	return !m.Deny, nil
}

// Keys returns every key passed to Allow.
func (m *MockLimiter) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.keys...)
}
