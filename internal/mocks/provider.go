package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/studyai-api/internal/generation"
)

// MockProvider implements generation.Provider for testing
type MockProvider struct {
	// ProviderName is returned by Name; defaults to "mock"
	ProviderName string

	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, call generation.Call) (string, error)

	// Default response values
	Text string
	Err  error

	// Call tracking for verification
	GenerateCalls struct {
		mu    sync.Mutex
		Calls []generation.Call
	}
}

// Ensure MockProvider implements generation.Provider
var _ generation.Provider = (*MockProvider)(nil)

// Name implements generation.Provider
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// Generate implements generation.Provider
func (m *MockProvider) Generate(ctx context.Context, call generation.Call) (string, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Calls = append(m.GenerateCalls.Calls, call)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, call)
	}
	return m.Text, m.Err
}

// Calls returns a copy of the recorded calls.
func (m *MockProvider) Calls() []generation.Call {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return append([]generation.Call(nil), m.GenerateCalls.Calls...)
}

// CallCount returns the number of Generate calls so far.
func (m *MockProvider) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return len(m.GenerateCalls.Calls)
}

// Models returns the model of every recorded call, in order.
func (m *MockProvider) Models() []string {
	calls := m.Calls()
	models := make([]string, len(calls))
	for i, c := range calls {
		models[i] = c.Model
	}
	return models
}

// Credentials returns the credential of every recorded call, in order.
func (m *MockProvider) Credentials() []string {
	calls := m.Calls()
	creds := make([]string, len(calls))
	for i, c := range calls {
		creds[i] = c.Credential
	}
	return creds
}
