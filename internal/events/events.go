package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// EventTypeHistoryRecorded is the type of events carrying a history entry.
const EventTypeHistoryRecorded = "history.recorded"

// Errors returned by NewHistoryEvent.
var (
	ErrMissingUser = errors.New("history event requires a user ID")
	ErrMissingKind = errors.New("history event requires a kind")
)

// HistoryEvent announces a question/answer pair that should be stored in a
// student's history. It carries plain values so the events package stays
// independent of the domain and task packages.
type HistoryEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is always EventTypeHistoryRecorded
	Type string `json:"type"`

	UserID   uuid.UUID      `json:"user_id"`
	Kind     string         `json:"kind"`
	Question string         `json:"question"`
	Answer   string         `json:"answer"`
	Metadata map[string]any `json:"metadata,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewHistoryEvent creates a HistoryEvent for userID. kind names the study
// tool (for example "ask" or "quiz").
func NewHistoryEvent(
	userID uuid.UUID,
	kind, question, answer string,
	metadata map[string]any,
) (*HistoryEvent, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	if kind == "" {
		return nil, ErrMissingKind
	}

	return &HistoryEvent{
		ID:        uuid.New(),
		Type:      EventTypeHistoryRecorded,
		UserID:    userID,
		Kind:      kind,
		Question:  question,
		Answer:    answer,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *HistoryEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *HistoryEvent) error
}

// NoopEmitter discards every event.
type NoopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NoopEmitter) EmitEvent(context.Context, *HistoryEvent) error { return nil }
