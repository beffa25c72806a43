package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/studyai-api/internal/domain"
	"github.com/phrazzld/studyai-api/internal/platform/logger"
	"github.com/phrazzld/studyai-api/internal/redact"
	"github.com/phrazzld/studyai-api/internal/store"
)

// PostgresHistoryStore implements the store.HistoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresHistoryStore creates a new PostgreSQL implementation of the HistoryStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresHistoryStore(db store.DBTX, logger *slog.Logger) *PostgresHistoryStore {
	if db == nil {
		// ALLOW-PANIC: constructor precondition
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresHistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "history_store")),
	}
}

// Ensure PostgresHistoryStore implements store.HistoryStore interface
var _ store.HistoryStore = (*PostgresHistoryStore)(nil)

// Create implements store.HistoryStore.Create.
// Returns store.ErrInvalidEntity wrapping the domain error if the entry is invalid.
func (s *PostgresHistoryStore) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if entry == nil {
		return fmt.Errorf("%w: nil history entry", store.ErrInvalidEntity)
	}

	if err := entry.Validate(); err != nil {
		log.Warn("history entry validation failed during create",
			slog.String("error", err.Error()),
			slog.String("history_id", entry.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	var metadata any
	if len(entry.Metadata) > 0 {
		metadata = []byte(entry.Metadata)
	}

	query := `
		INSERT INTO history (id, user_id, type, question, answer, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.UserID,
		string(entry.Type),
		entry.Question,
		entry.Answer,
		metadata,
		entry.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("history entry already recorded",
				slog.String("history_id", entry.ID.String()))
			return store.NewStoreError("history", "create", "history entry already exists", MapError(err))
		}
		log.Error("failed to create history entry",
			slog.String("error", redact.Error(err)),
			slog.String("history_id", entry.ID.String()),
			slog.String("user_id", entry.UserID.String()))
		return store.NewStoreError("history", "create", "failed to insert history entry", MapError(err))
	}

	log.Debug("history entry created",
		slog.String("history_id", entry.ID.String()),
		slog.String("user_id", entry.UserID.String()),
		slog.String("type", string(entry.Type)))
	return nil
}

// ListByUser implements store.HistoryStore.ListByUser.
// Paging follows store.NormalizePage.
func (s *PostgresHistoryStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit, offset int,
) ([]*domain.HistoryEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	limit, offset = store.NormalizePage(limit, offset)

	query := `
		SELECT id, user_id, type, question, answer, metadata, created_at
		FROM history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		log.Error("failed to query history",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		return nil, store.NewStoreError("history", "list", "failed to query history", MapError(err))
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close history rows", slog.String("error", redact.Error(cerr)))
		}
	}()

	entries := make([]*domain.HistoryEntry, 0, limit)
	for rows.Next() {
		var (
			entry       domain.HistoryEntry
			historyType string
			metadata    []byte
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&historyType,
			&entry.Question,
			&entry.Answer,
			&metadata,
			&entry.CreatedAt,
		); err != nil {
			return nil, store.NewStoreError("history", "list", "failed to scan history row", MapError(err))
		}
		entry.Type = domain.HistoryType(historyType)
		if len(metadata) > 0 {
			entry.Metadata = metadata
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("history", "list", "failed to iterate history rows", MapError(err))
	}

	log.Debug("history listed",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(entries)))
	return entries, nil
}

// DeleteByUser implements store.HistoryStore.DeleteByUser.
// Deleting an empty history is not an error; it reports zero rows.
func (s *PostgresHistoryStore) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE user_id = $1`, userID)
	if err != nil {
		log.Error("failed to delete history",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		return 0, store.NewStoreError("history", "delete", "failed to delete history",
			fmt.Errorf("%w: %w", store.ErrDeleteFailed, MapError(err)))
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("history", "delete", "failed to read rows affected", err)
	}

	log.Info("history deleted",
		slog.String("user_id", userID.String()),
		slog.Int64("deleted", deleted))
	return deleted, nil
}

// WithTx implements store.HistoryStore.WithTx.
func (s *PostgresHistoryStore) WithTx(tx *sql.Tx) store.HistoryStore {
	return &PostgresHistoryStore{
		db:     tx,
		logger: s.logger,
	}
}
