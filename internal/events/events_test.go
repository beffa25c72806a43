package events

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistoryEvent(t *testing.T) {
	userID := uuid.New()
	meta := map[string]any{"topic": "Cells", "questionCount": 5}

	event, err := NewHistoryEvent(userID, "quiz", "Cells", "Generated a quiz with 5 questions.", meta)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, EventTypeHistoryRecorded, event.Type)
	assert.Equal(t, userID, event.UserID)
	assert.Equal(t, "quiz", event.Kind)
	assert.Equal(t, meta, event.Metadata)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)
}

func TestNewHistoryEvent_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		userID  uuid.UUID
		kind    string
		wantErr error
	}{
		{"missing user", uuid.Nil, "ask", ErrMissingUser},
		{"missing kind", uuid.New(), "", ErrMissingKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, err := NewHistoryEvent(tt.userID, tt.kind, "q", "a", nil)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, event)
		})
	}
}

func TestNoopEmitter(t *testing.T) {
	var emitter EventEmitter = NoopEmitter{}
	event, err := NewHistoryEvent(uuid.New(), "ask", "q", "a", nil)
	require.NoError(t, err)
	assert.NoError(t, emitter.EmitEvent(context.Background(), event))
}

// MockEventHandler records the events it receives.
type MockEventHandler struct {
	HandledCount int
	LastEvent    *HistoryEvent
	HandlerError error
}

// HandleEvent implements EventHandler.
func (m *MockEventHandler) HandleEvent(_ context.Context, event *HistoryEvent) error {
	m.HandledCount++
	m.LastEvent = event
	return m.HandlerError
}
