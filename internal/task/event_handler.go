package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/studyai-api/internal/domain"
	"github.com/phrazzld/studyai-api/internal/events"
	"github.com/phrazzld/studyai-api/internal/store"
)

// HistoryEventHandler implements events.EventHandler by turning history
// events into HistoryTasks and submitting them to a queue.
type HistoryEventHandler struct {
	queue  TaskQueueWriter
	store  store.HistoryStore
	db     *sql.DB
	logger *slog.Logger
}

// NewHistoryEventHandler creates a handler that enqueues history writes.
// db may be nil, in which case writes run outside a transaction.
func NewHistoryEventHandler(
	queue TaskQueueWriter,
	historyStore store.HistoryStore,
	db *sql.DB,
	logger *slog.Logger,
) *HistoryEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryEventHandler{
		queue:  queue,
		store:  historyStore,
		db:     db,
		logger: logger.With("component", "history_event_handler"),
	}
}

// HandleEvent converts event to a history entry and enqueues its write.
// A full queue drops the entry and returns ErrQueueFull.
func (h *HistoryEventHandler) HandleEvent(ctx context.Context, event *events.HistoryEvent) error {
	if event.Type != events.EventTypeHistoryRecorded {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	entry, err := domain.NewHistoryEntry(
		event.UserID,
		domain.HistoryType(event.Kind),
		event.Question,
		event.Answer,
		event.Metadata,
	)
	if err != nil {
		h.logger.Error("invalid history event", "error", err, "event_id", event.ID)
		return fmt.Errorf("invalid history event: %w", err)
	}

	t, err := NewHistoryTask(entry, h.store, h.db, h.logger)
	if err != nil {
		return fmt.Errorf("failed to create history task: %w", err)
	}

	if err := h.queue.Enqueue(t); err != nil {
		if errors.Is(err, ErrQueueFull) {
			h.logger.Warn("task queue full, dropping history entry",
				"event_id", event.ID,
				"user_id", event.UserID,
				"kind", event.Kind)
		}
		return fmt.Errorf("failed to submit history task: %w", err)
	}

	h.logger.Debug("history task submitted",
		"task_id", t.ID(),
		"event_id", event.ID,
		"kind", event.Kind)
	return nil
}

// Ensure HistoryEventHandler implements events.EventHandler
var _ events.EventHandler = (*HistoryEventHandler)(nil)
