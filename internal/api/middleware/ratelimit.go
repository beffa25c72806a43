package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/phrazzld/studyai-api/internal/api/shared"
	"github.com/phrazzld/studyai-api/internal/platform/logger"
	"github.com/phrazzld/studyai-api/internal/ratelimit"
	"github.com/phrazzld/studyai-api/internal/redact"
	"github.com/phrazzld/studyai-api/internal/service/auth"
)

// RetryAfterSeconds is sent with 429 responses.
const RetryAfterSeconds = 60

// RateLimit limits requests per authenticated user, or per client IP for
// anonymous callers. It must run after OptionalAuth. Limiter failures let the
// request through.
func RateLimit(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	if limiter == nil {
		limiter = ratelimit.NoopLimiter{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.FromContextOrDefault(r.Context(), slog.Default()).Warn("rate limiter unavailable",
					slog.String("error", redact.Error(err)))
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(RetryAfterSeconds))
				shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
					"Too many requests. Please slow down.", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if userID, ok := auth.UserIDFromContext(r.Context()); ok {
		return "user:" + userID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
