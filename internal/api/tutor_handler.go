package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/studyai-api/internal/api/shared"
	"github.com/phrazzld/studyai-api/internal/platform/logger"
	"github.com/phrazzld/studyai-api/internal/service/tutor"
)

// DefaultMaxUploadBytes applies when NewTutorHandler is given a non-positive limit.
const DefaultMaxUploadBytes = 10 << 20

// TutorHandler serves the study tools.
type TutorHandler struct {
	tutorService   tutor.Service
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewTutorHandler creates a TutorHandler. maxUploadBytes caps pdf-tutor uploads.
func NewTutorHandler(tutorService tutor.Service, maxUploadBytes int64, logger *slog.Logger) *TutorHandler {
	if tutorService == nil {
		// ALLOW-PANIC: constructor precondition
		panic("tutorService cannot be nil")
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TutorHandler{
		tutorService:   tutorService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "tutor_handler")),
	}
}

// Ask handles POST /api/ask.
func (h *TutorHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if !h.decode(w, r, &req) {
		return
	}

	answer, err := h.tutorService.Ask(r.Context(), tutor.AskInput{
		Question: req.Question,
		Subject:  req.Subject,
		Board:    req.Board,
		Language: req.Language,
		Profile:  req.UserProfile,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{Answer: answer})
}

// Snap handles POST /api/snap.
func (h *TutorHandler) Snap(w http.ResponseWriter, r *http.Request) {
	var req SnapRequest
	if !h.decode(w, r, &req) {
		return
	}

	image, mimeType, err := decodeImage(req.Image)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	answer, err := h.tutorService.Snap(r.Context(), image, mimeType)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{Answer: answer})
}

// TutorDocument handles POST /api/pdf-tutor (multipart "file" and "prompt").
func (h *TutorHandler) TutorDocument(w http.ResponseWriter, r *http.Request) {
	doc, prompt, err := readUpload(w, r, h.maxUploadBytes)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	response, err := h.tutorService.TutorDocument(r.Context(), doc, prompt)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DocumentResponse{Response: response})
}

// Summarize handles POST /api/summarize.
func (h *TutorHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req SummarizeRequest
	if !h.decode(w, r, &req) {
		return
	}

	summary, err := h.tutorService.Summarize(r.Context(), req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SummaryResponse{Summary: summary})
}

// MindMap handles POST /api/mindmap.
func (h *TutorHandler) MindMap(w http.ResponseWriter, r *http.Request) {
	var req MindMapRequest
	if !h.decode(w, r, &req) {
		return
	}

	code, err := h.tutorService.MindMap(r.Context(), req.Topic)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MindMapResponse{Code: code})
}

// Plan handles POST /api/planner. The plan document is returned as is.
func (h *TutorHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req PlannerRequest
	if !h.decode(w, r, &req) {
		return
	}

	plan, err := h.tutorService.Plan(r.Context(), tutor.PlanInput{
		ExamDate: req.ExamDate,
		Subject:  req.Subject,
		Level:    req.Level,
		Topics:   req.Topics,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, plan)
}

// Quiz handles POST /api/quiz.
func (h *TutorHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if !h.decode(w, r, &req) {
		return
	}

	questions, err := h.tutorService.Quiz(r.Context(), req.Topic, req.UserProfile)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, QuizResponse{Questions: questions})
}

// Grade handles POST /api/grader.
func (h *TutorHandler) Grade(w http.ResponseWriter, r *http.Request) {
	var req GraderRequest
	if !h.decode(w, r, &req) {
		return
	}

	report, err := h.tutorService.Grade(r.Context(), req.Question, req.Answer, req.Subject)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, report)
}

// Flashcards handles POST /api/flashcards.
func (h *TutorHandler) Flashcards(w http.ResponseWriter, r *http.Request) {
	var req FlashcardsRequest
	if !h.decode(w, r, &req) {
		return
	}

	set, err := h.tutorService.Flashcards(r.Context(), req.Content, req.Count)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, set)
}

// Quote handles GET /api/quote. It always succeeds.
func (h *TutorHandler) Quote(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, QuoteResponse{Quote: h.tutorService.Quote(r.Context())})
}

// decode parses and validates the JSON body, writing a 400 on failure.
func (h *TutorHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("invalid request body",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		message := "Invalid request format"
		if errors.Is(err, shared.ErrEmptyBody) {
			message = "Request body is required"
		}
		shared.RespondWithError(w, r, http.StatusBadRequest, message)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return false
	}
	return true
}
