package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/studyai-api/internal/events"
)

// MockEventEmitter implements events.EventEmitter and records emitted events.
type MockEventEmitter struct {
	// EmitEventFn allows test cases to mock the EmitEvent behavior
	EmitEventFn func(ctx context.Context, event *events.HistoryEvent) error

	// Err is returned when EmitEventFn is nil
	Err error

	mu     sync.Mutex
	events []*events.HistoryEvent
}

// Ensure MockEventEmitter implements events.EventEmitter
var _ events.EventEmitter = (*MockEventEmitter)(nil)

// EmitEvent implements events.EventEmitter.
func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.HistoryEvent) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()

	if m.EmitEventFn != nil {
		return m.EmitEventFn(ctx, event)
	}
	return m.Err
}

// Events returns a copy of every emitted event.
func (m *MockEventEmitter) Events() []*events.HistoryEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*events.HistoryEvent(nil), m.events...)
}
