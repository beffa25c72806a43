package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/studyai-api/internal/api/middleware"
	"github.com/phrazzld/studyai-api/internal/mocks"
	"github.com/phrazzld/studyai-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name           string
		limiter        *mocks.MockLimiter
		userID         uuid.UUID
		expectedStatus int
		expectedKey    string
	}{
		{
			name:           "anonymous allowed by ip",
			limiter:        &mocks.MockLimiter{},
			expectedStatus: http.StatusOK,
			expectedKey:    "ip:192.0.2.1",
		},
		{
			name:           "authenticated keyed by user",
			limiter:        &mocks.MockLimiter{},
			userID:         userID,
			expectedStatus: http.StatusOK,
			expectedKey:    "user:" + userID.String(),
		},
		{
			name:           "denied",
			limiter:        &mocks.MockLimiter{Deny: true},
			expectedStatus: http.StatusTooManyRequests,
			expectedKey:    "ip:192.0.2.1",
		},
		{
			name:           "limiter failure lets request through",
			limiter:        &mocks.MockLimiter{Err: errors.New("connection refused")},
			expectedStatus: http.StatusOK,
			expectedKey:    "ip:192.0.2.1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/api/ask", nil)
			req.RemoteAddr = "192.0.2.1:54321"
			if tc.userID != uuid.Nil {
				req = req.WithContext(auth.WithUserID(req.Context(), tc.userID))
			}
			rr := httptest.NewRecorder()

			middleware.RateLimit(tc.limiter)(okHandler()).ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.Equal(t, []string{tc.expectedKey}, tc.limiter.Keys())
			if tc.expectedStatus == http.StatusTooManyRequests {
				assert.Equal(t, "60", rr.Header().Get("Retry-After"))
			}
		})
	}
}

func TestRateLimit_NilLimiter(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	middleware.RateLimit(nil)(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/quote", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
