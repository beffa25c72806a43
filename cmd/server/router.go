package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/studyai-api/internal/api"
	"github.com/phrazzld/studyai-api/internal/api/middleware"
	"github.com/phrazzld/studyai-api/internal/api/shared"
)

// setupRouter builds the chi router with the middleware stack and routes.
func (app *application) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", shared.TraceIDHeader},
		ExposedHeaders:   []string{shared.TraceIDHeader, "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.NewTraceMiddleware(app.logger))

	authMiddleware := middleware.NewAuthMiddleware(app.verifier)
	maxUpload := int64(app.config.Server.MaxUploadMB) << 20

	tutorHandler := api.NewTutorHandler(app.tutorService, maxUpload, app.logger)
	historyHandler := api.NewHistoryHandler(app.historyStore, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.OptionalAuth)
		r.Use(middleware.RateLimit(app.limiter))

		r.Post("/ask", tutorHandler.Ask)
		r.Post("/snap", tutorHandler.Snap)
		r.Post("/pdf-tutor", tutorHandler.TutorDocument)
		r.Post("/summarize", tutorHandler.Summarize)
		r.Post("/mindmap", tutorHandler.MindMap)
		r.Post("/planner", tutorHandler.Plan)
		r.Post("/quiz", tutorHandler.Quiz)
		r.Post("/grader", tutorHandler.Grade)
		r.Post("/flashcards", tutorHandler.Flashcards)
		r.Get("/quote", tutorHandler.Quote)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Get("/history", historyHandler.List)
			r.Delete("/history", historyHandler.Clear)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
