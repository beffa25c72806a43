package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/studyai-api/internal/domain"
	"github.com/phrazzld/studyai-api/internal/store"
)

// HistoryTask persists one history entry.
type HistoryTask struct {
	id     uuid.UUID
	entry  *domain.HistoryEntry
	store  store.HistoryStore
	db     *sql.DB
	logger *slog.Logger

	mu     sync.RWMutex
	status TaskStatus
}

// NewHistoryTask creates a task that writes entry through historyStore. When
// db is non-nil the write runs inside a transaction.
func NewHistoryTask(
	entry *domain.HistoryEntry,
	historyStore store.HistoryStore,
	db *sql.DB,
	logger *slog.Logger,
) (*HistoryTask, error) {
	if entry == nil {
		return nil, fmt.Errorf("history entry cannot be nil")
	}
	if historyStore == nil {
		return nil, fmt.Errorf("history store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &HistoryTask{
		id:     uuid.New(),
		entry:  entry,
		store:  historyStore,
		db:     db,
		logger: logger,
		status: TaskStatusPending,
	}, nil
}

// ID implements Task.
func (t *HistoryTask) ID() uuid.UUID { return t.id }

// Type implements Task.
func (t *HistoryTask) Type() string { return TaskTypeHistoryRecord }

// Payload returns the entry as JSON.
func (t *HistoryTask) Payload() []byte {
	data, err := json.Marshal(t.entry)
	if err != nil {
		return nil
	}
	return data
}

// Status implements Task.
func (t *HistoryTask) Status() TaskStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

// Entry returns the entry this task writes.
func (t *HistoryTask) Entry() *domain.HistoryEntry { return t.entry }

func (t *HistoryTask) setStatus(status TaskStatus) {
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()
}

// Execute writes the entry.
func (t *HistoryTask) Execute(ctx context.Context) error {
	t.setStatus(TaskStatusProcessing)
	log := t.logger.With(
		"task_id", t.id,
		"history_id", t.entry.ID,
		"user_id", t.entry.UserID,
	)

	var err error
	if t.db != nil {
		err = store.RunInTransaction(ctx, t.db, func(ctx context.Context, tx *sql.Tx) error {
			return t.store.WithTx(tx).Create(ctx, t.entry)
		})
	} else {
		err = t.store.Create(ctx, t.entry)
	}

	if err != nil {
		t.setStatus(TaskStatusFailed)
		return fmt.Errorf("failed to record history entry: %w", err)
	}

	t.setStatus(TaskStatusCompleted)
	log.Debug("history entry recorded", "type", string(t.entry.Type))
	return nil
}

// Ensure HistoryTask implements Task
var _ Task = (*HistoryTask)(nil)
