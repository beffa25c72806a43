package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/studyai-api/internal/platform/logger"
	"github.com/phrazzld/studyai-api/internal/redact"
)

// Router implements Generator by walking an ordered list of strategies.
type Router struct {
	strategies []Strategy
	logger     *slog.Logger
}

// Ensure Router implements Generator interface
var _ Generator = (*Router)(nil)

// NewRouter creates a router over the given strategies. If logger is nil,
// the default logger is used.
func NewRouter(logger *slog.Logger, strategies ...Strategy) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		strategies: strategies,
		logger:     logger.With(slog.String("component", "generation_router")),
	}
}

// NewDefaultRouter creates the fast → stable → robust rotation router.
func NewDefaultRouter(
	logger *slog.Logger,
	fast, robust Provider,
	pool *CredentialPool,
	cfg ChainConfig,
) *Router {
	return NewRouter(logger, DefaultStrategies(fast, robust, pool, cfg)...)
}

// Generate implements Generator.
//
// Attempts run strictly in order and each one waits for its round-trip.
// The first success is returned immediately. When everything fails, the
// returned error wraps ErrAllAttemptsFailed and the last failure seen.
func (r *Router) Generate(ctx context.Context, req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	log := logger.FromContextOrDefault(ctx, r.logger)

	var lastErr error
	total := 0
	for _, strategy := range r.strategies {
		n := strategy.Attempts(req)
		if n == 0 {
			log.DebugContext(ctx, "strategy skipped", slog.String("strategy", strategy.Name()))
			continue
		}

		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				log.WarnContext(ctx, "generation cancelled",
					slog.String("strategy", strategy.Name()),
					slog.Int("attempts", total))
				return "", fmt.Errorf("%w: %w", ErrAllAttemptsFailed, err)
			}
			total++

			attempt, err := strategy.Prepare(req, i)
			if err != nil {
				lastErr = err
				log.WarnContext(ctx, "attempt could not be prepared",
					slog.String("strategy", strategy.Name()),
					slog.Int("attempt", i+1),
					slog.String("error", redact.Error(err)))
				continue
			}

			attemptLog := log.With(
				slog.String("strategy", attempt.Strategy),
				slog.String("provider", attempt.Provider.Name()),
				slog.String("model", attempt.Call.Model),
				slog.Int("attempt", i+1),
				slog.Int("of", n),
			)
			if attempt.Call.Credential != "" {
				attemptLog = attemptLog.With(slog.String("credential", MaskCredential(attempt.Call.Credential)))
			}
			attemptLog.InfoContext(ctx, "trying provider")

			text, err := attempt.Provider.Generate(ctx, attempt.Call)
			if err == nil {
				attemptLog.InfoContext(ctx, "generation succeeded", slog.Int("total_attempts", total))
				return text, nil
			}

			lastErr = err
			attemptLog.WarnContext(ctx, "provider attempt failed",
				slog.Bool("transient", IsTransient(err)),
				slog.String("error", redact.Error(err)))
		}
	}

	if lastErr == nil {
		lastErr = errors.New("no strategy accepted the request")
	}
	log.ErrorContext(ctx, "all generation attempts failed",
		slog.Int("total_attempts", total),
		slog.String("error", redact.Error(lastErr)))
	return "", fmt.Errorf("%w: %w", ErrAllAttemptsFailed, lastErr)
}
