package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/studyai-api/internal/api"
	"github.com/phrazzld/studyai-api/internal/domain"
	"github.com/phrazzld/studyai-api/internal/mocks"
	"github.com/phrazzld/studyai-api/internal/service/auth"
	"github.com/phrazzld/studyai-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(method, target string, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if userID != uuid.Nil {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	return req
}

func TestHistoryHandler_List(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	created := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	entry := &domain.HistoryEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      domain.HistoryTypeQuiz,
		Question:  "Photosynthesis",
		Answer:    "Generated a quiz with 5 questions.",
		Metadata:  json.RawMessage(`{"topic":"Photosynthesis","questionCount":5}`),
		CreatedAt: created,
	}

	tests := []struct {
		name       string
		userID     uuid.UUID
		query      string
		storeErr   error
		wantStatus int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", userID, "", nil, http.StatusOK, store.DefaultHistoryLimit, 0},
		{"explicit page", userID, "?limit=10&offset=20", nil, http.StatusOK, 10, 20},
		{"capped limit", userID, "?limit=1000", nil, http.StatusOK, store.MaxHistoryLimit, 0},
		{"invalid limit", userID, "?limit=ten", nil, http.StatusBadRequest, 0, 0},
		{"anonymous", uuid.Nil, "", nil, http.StatusUnauthorized, 0, 0},
		{"store failure", userID, "", errors.New("connection reset"), http.StatusInternalServerError, store.DefaultHistoryLimit, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var gotLimit, gotOffset int
			var called bool
			historyStore := &mocks.MockHistoryStore{
				ListByUserFn: func(ctx context.Context, id uuid.UUID, limit, offset int) ([]*domain.HistoryEntry, error) {
					called = true
					assert.Equal(t, userID, id)
					gotLimit, gotOffset = limit, offset
					if tc.storeErr != nil {
						return nil, tc.storeErr
					}
					return []*domain.HistoryEntry{entry}, nil
				},
			}

			rr := httptest.NewRecorder()
			api.NewHistoryHandler(historyStore, nil).List(rr, authedRequest(http.MethodGet, "/api/history"+tc.query, tc.userID))

			assert.Equal(t, tc.wantStatus, rr.Code)
			if tc.wantLimit != 0 {
				require.True(t, called)
				assert.Equal(t, tc.wantLimit, gotLimit)
				assert.Equal(t, tc.wantOffset, gotOffset)
			} else {
				assert.False(t, called)
			}
			if tc.wantStatus != http.StatusOK {
				assert.NotContains(t, rr.Body.String(), "connection reset")
				return
			}

			var resp api.HistoryResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			require.Len(t, resp.Entries, 1)
			assert.Equal(t, tc.wantLimit, resp.Limit)
			assert.Equal(t, api.HistoryEntryResponse{
				ID:        entry.ID.String(),
				Type:      "quiz",
				Question:  "Photosynthesis",
				Answer:    "Generated a quiz with 5 questions.",
				Metadata:  map[string]any{"topic": "Photosynthesis", "questionCount": float64(5)},
				CreatedAt: created,
			}, resp.Entries[0])
		})
	}
}

func TestHistoryHandler_ListEmpty(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	api.NewHistoryHandler(store.NoopHistoryStore{}, nil).List(rr, authedRequest(http.MethodGet, "/api/history", uuid.New()))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"entries":[],"limit":50,"offset":0}`, rr.Body.String())
}

func TestHistoryHandler_Clear(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("deletes entries", func(t *testing.T) {
		historyStore := &mocks.MockHistoryStore{
			DeleteByUserFn: func(ctx context.Context, id uuid.UUID) (int64, error) {
				assert.Equal(t, userID, id)
				return 7, nil
			},
		}
		rr := httptest.NewRecorder()
		api.NewHistoryHandler(historyStore, nil).Clear(rr, authedRequest(http.MethodDelete, "/api/history", userID))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"deleted":7}`, rr.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		historyStore := &mocks.MockHistoryStore{
			DeleteByUserFn: func(ctx context.Context, id uuid.UUID) (int64, error) {
				return 0, store.ErrDeleteFailed
			},
		}
		rr := httptest.NewRecorder()
		api.NewHistoryHandler(historyStore, nil).Clear(rr, authedRequest(http.MethodDelete, "/api/history", userID))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Failed to clear history", decodeError(t, rr).Error)
	})

	t.Run("anonymous", func(t *testing.T) {
		rr := httptest.NewRecorder()
		api.NewHistoryHandler(nil, nil).Clear(rr, authedRequest(http.MethodDelete, "/api/history", uuid.Nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
