package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Register pgx driver for database/sql
	"github.com/phrazzld/studyai-api/internal/config"
	"github.com/phrazzld/studyai-api/internal/events"
	"github.com/phrazzld/studyai-api/internal/generation"
	"github.com/phrazzld/studyai-api/internal/platform/gemini"
	"github.com/phrazzld/studyai-api/internal/platform/groq"
	"github.com/phrazzld/studyai-api/internal/platform/postgres"
	"github.com/phrazzld/studyai-api/internal/ratelimit"
	"github.com/phrazzld/studyai-api/internal/redact"
	"github.com/phrazzld/studyai-api/internal/service/auth"
	"github.com/phrazzld/studyai-api/internal/service/tutor"
	"github.com/phrazzld/studyai-api/internal/store"
	"github.com/phrazzld/studyai-api/internal/task"
	"github.com/redis/go-redis/v9"
)

// application holds the shared dependencies and owns their shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	db    *sql.DB
	redis *redis.Client

	historyStore store.HistoryStore
	tutorService tutor.Service
	verifier     auth.TokenVerifier
	limiter      ratelimit.Limiter

	taskQueue  *task.TaskQueue
	workerPool *task.WorkerPool
}

// newApplication wires every component from cfg. Optional backends (Postgres,
// Redis, token verification) are skipped with a log line when not configured.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{config: cfg, logger: logger}

	if err := app.setupHistoryStore(ctx); err != nil {
		return nil, err
	}

	if cfg.Auth.JWTSecret != "" {
		verifier, err := auth.NewTokenVerifier(cfg.Auth)
		if err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
		}
		app.verifier = verifier
	} else {
		logger.Warn("auth.jwt_secret not set, all requests are anonymous and history is disabled")
	}

	if err := app.setupLimiter(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	app.taskQueue = task.NewTaskQueue(cfg.Task.QueueSize, logger)
	app.workerPool = task.NewWorkerPool(app.taskQueue, task.WorkerPoolConfig{WorkerCount: cfg.Task.WorkerCount}, logger)
	app.workerPool.SetErrorHandler(func(t task.Task, err error) {
		logger.Error("history task failed",
			slog.String("task_id", t.ID().String()),
			slog.String("error", redact.Error(err)))
	})
	app.workerPool.Start()

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(task.NewHistoryEventHandler(app.taskQueue, app.historyStore, app.db, logger))

	app.tutorService = tutor.NewService(newGenerator(cfg.LLM, logger), emitter, logger)

	logger.Info("application initialized")
	return app, nil
}

// newGenerator builds the fast → stable → robust router from the LLM settings.
func newGenerator(cfg config.LLMConfig, logger *slog.Logger) generation.Generator {
	pool := generation.ParseCredentialPool(cfg.GeminiAPIKeys)
	if pool.Size() == 0 {
		logger.Warn("no gemini api keys configured, robust provider disabled")
	}

	fast := groq.NewProvider(groq.Config{APIKey: cfg.GroqAPIKey, BaseURL: cfg.GroqBaseURL}, logger)
	robust := gemini.NewProvider(logger, nil)

	return generation.NewDefaultRouter(logger, fast, robust, pool, generation.ChainConfig{
		Selector:    generation.NewSubjectSelector(cfg.StableModel, cfg.CodeModel, cfg.ReasoningModel),
		StableModel: cfg.StableModel,
		VisionModel: cfg.VisionModel,
		RobustModel: cfg.RobustModel,
	})
}

func (app *application) setupHistoryStore(ctx context.Context) error {
	if app.config.Database.URL == "" {
		app.logger.Warn("database.url not set, history persistence disabled")
		app.historyStore = store.NoopHistoryStore{}
		return nil
	}

	db, err := openDatabase(ctx, app.config.Database.URL)
	if err != nil {
		return err
	}
	app.db = db

	if app.config.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db, app.logger); err != nil {
			app.cleanup()
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	app.historyStore = postgres.NewPostgresHistoryStore(db, app.logger)
	app.logger.Info("database connection established")
	return nil
}

// openDatabase opens and pings a pgx-backed connection pool.
func openDatabase(ctx context.Context, url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func (app *application) setupLimiter(ctx context.Context) error {
	rpm := app.config.RateLimit.RequestsPerMinute
	if app.config.Redis.URL == "" || rpm <= 0 {
		app.logger.Info("rate limiting disabled",
			slog.Bool("redis_configured", app.config.Redis.URL != ""),
			slog.Int("requests_per_minute", rpm))
		app.limiter = ratelimit.NoopLimiter{}
		return nil
	}

	client, err := ratelimit.NewClient(app.config.Redis.URL)
	if err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		// Requests are still served when Redis is down; the middleware fails open.
		app.logger.Warn("redis ping failed", slog.String("error", redact.Error(err)))
	}

	limiter, err := ratelimit.NewRedisLimiter(client, rpm, ratelimit.DefaultWindow)
	if err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}

	app.redis = client
	app.limiter = limiter
	app.logger.Info("rate limiting enabled", slog.Int("requests_per_minute", rpm))
	return nil
}

// Run serves HTTP until ctx is cancelled, then shuts everything down.
func (app *application) Run(ctx context.Context) error {
	err := app.startHTTPServer(ctx, app.setupRouter())
	app.cleanup()
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup drains pending history writes and closes backends. It is safe to
// call on a partially initialized application.
func (app *application) cleanup() {
	if app.taskQueue != nil {
		app.taskQueue.Close()
	}
	if app.workerPool != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := app.workerPool.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			app.logger.Error("worker pool shutdown failed", slog.String("error", err.Error()))
		} else if err != nil {
			app.logger.Warn("worker pool shutdown timed out, pending history dropped")
		}
		cancel()
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", slog.String("error", err.Error()))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", redact.Error(err)))
		}
	}

	app.logger.Info("application shutdown completed")
}
