package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/studyai-api/internal/api/shared"
	"github.com/phrazzld/studyai-api/internal/domain"
	"github.com/phrazzld/studyai-api/internal/platform/logger"
	"github.com/phrazzld/studyai-api/internal/store"
)

// HistoryHandler serves the authenticated user's study history.
type HistoryHandler struct {
	historyStore store.HistoryStore
	logger       *slog.Logger
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(historyStore store.HistoryStore, logger *slog.Logger) *HistoryHandler {
	if historyStore == nil {
		historyStore = store.NoopHistoryStore{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HistoryHandler{
		historyStore: historyStore,
		logger:       logger.With(slog.String("component", "history_handler")),
	}
}

// List handles GET /api/history?limit&offset, newest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	limit, offset, err := parsePagination(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	limit, offset = store.NormalizePage(limit, offset)

	entries, err := h.historyStore.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load history")
		return
	}

	resp := HistoryResponse{
		Entries: make([]HistoryEntryResponse, 0, len(entries)),
		Limit:   limit,
		Offset:  offset,
	}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, historyEntryToResponse(entry))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Clear handles DELETE /api/history.
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	deleted, err := h.historyStore.DeleteByUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to clear history")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("history cleared",
		slog.String("user_id", userID.String()),
		slog.Int64("deleted", deleted))

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteHistoryResponse{Deleted: deleted})
}
