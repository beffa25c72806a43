package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/studyai-api/internal/domain"
	"github.com/phrazzld/studyai-api/internal/store"
)

// MockHistoryStore implements store.HistoryStore for testing
type MockHistoryStore struct {
	CreateFn       func(ctx context.Context, entry *domain.HistoryEntry) error
	ListByUserFn   func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.HistoryEntry, error)
	DeleteByUserFn func(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Ensure MockHistoryStore implements store.HistoryStore
var _ store.HistoryStore = (*MockHistoryStore)(nil)

// Create implements store.HistoryStore.
func (m *MockHistoryStore) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, entry)
	}
	return nil
}

// ListByUser implements store.HistoryStore.
func (m *MockHistoryStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.HistoryEntry, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, limit, offset)
	}
	return []*domain.HistoryEntry{}, nil
}

// DeleteByUser implements store.HistoryStore.
func (m *MockHistoryStore) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.DeleteByUserFn != nil {
		return m.DeleteByUserFn(ctx, userID)
	}
	return 0, nil
}

// WithTx implements store.HistoryStore. The mock ignores the transaction.
func (m *MockHistoryStore) WithTx(*sql.Tx) store.HistoryStore {
	return m
}
