package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/studyai-api/internal/domain"
)

// Paging bounds for ListByUser.
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 100
)

// NormalizePage applies DefaultHistoryLimit to non-positive limits, caps
// limits at MaxHistoryLimit and clamps negative offsets to zero.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// HistoryStore defines the interface for history entry persistence.
type HistoryStore interface {
	// Create saves a new history entry.
	// Returns domain validation errors wrapped in ErrInvalidEntity if the entry is invalid.
	Create(ctx context.Context, entry *domain.HistoryEntry) error

	// ListByUser returns a user's entries, newest first.
	// Returns an empty slice if the user has no history.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.HistoryEntry, error)

	// DeleteByUser removes every entry of a user and returns how many were deleted.
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// WithTx returns a HistoryStore that runs its statements in tx.
	WithTx(tx *sql.Tx) HistoryStore
}

// NoopHistoryStore is used when no database is configured. Writes are
// discarded and reads return nothing.
type NoopHistoryStore struct{}

// Ensure NoopHistoryStore implements HistoryStore
var _ HistoryStore = NoopHistoryStore{}

// Create implements HistoryStore.
func (NoopHistoryStore) Create(context.Context, *domain.HistoryEntry) error { return nil }

// ListByUser implements HistoryStore.
func (NoopHistoryStore) ListByUser(context.Context, uuid.UUID, int, int) ([]*domain.HistoryEntry, error) {
	return []*domain.HistoryEntry{}, nil
}

// DeleteByUser implements HistoryStore.
func (NoopHistoryStore) DeleteByUser(context.Context, uuid.UUID) (int64, error) { return 0, nil }

// WithTx implements HistoryStore.
func (n NoopHistoryStore) WithTx(*sql.Tx) HistoryStore { return n }
