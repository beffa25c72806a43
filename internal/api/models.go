package api

import (
	"time"

	"github.com/phrazzld/studyai-api/internal/domain"
	"github.com/phrazzld/studyai-api/internal/service/tutor"
)

// JSON field names follow the web client, which sends camelCase.

// AskRequest is the payload of POST /api/ask.
type AskRequest struct {
	Question    string         `json:"question"    validate:"required,max=8000"`
	Subject     string         `json:"subject"     validate:"max=100"`
	Board       string         `json:"board"       validate:"max=100"`
	Language    string         `json:"language"    validate:"max=50"`
	UserProfile *tutor.Profile `json:"userProfile"`
}

// SnapRequest is the payload of POST /api/snap. Image is a data URL or raw base64.
type SnapRequest struct {
	Image string `json:"image" validate:"required"`
}

// SummarizeRequest is the payload of POST /api/summarize.
type SummarizeRequest struct {
	Text string `json:"text" validate:"required"`
}

// MindMapRequest is the payload of POST /api/mindmap.
type MindMapRequest struct {
	Topic string `json:"topic" validate:"required,max=500"`
}

// PlannerRequest is the payload of POST /api/planner.
type PlannerRequest struct {
	ExamDate string `json:"examDate" validate:"required,max=50"`
	Subject  string `json:"subject"  validate:"required,max=100"`
	Level    string `json:"level"    validate:"max=100"`
	Topics   string `json:"topics"   validate:"max=2000"`
}

// QuizRequest is the payload of POST /api/quiz.
type QuizRequest struct {
	Topic       string         `json:"topic"       validate:"required,max=500"`
	UserProfile *tutor.Profile `json:"userProfile"`
}

// GraderRequest is the payload of POST /api/grader.
type GraderRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"   validate:"required"`
	Subject  string `json:"subject"  validate:"max=100"`
}

// FlashcardsRequest is the payload of POST /api/flashcards. A zero count uses the default.
type FlashcardsRequest struct {
	Content string `json:"content" validate:"required"`
	Count   int    `json:"count"   validate:"gte=0,max=50"`
}

// AnswerResponse is returned by ask and snap.
type AnswerResponse struct {
	Answer string `json:"answer"`
}

// DocumentResponse is returned by pdf-tutor.
type DocumentResponse struct {
	Response string `json:"response"`
}

// SummaryResponse is returned by summarize.
type SummaryResponse struct {
	Summary string `json:"summary"`
}

// MindMapResponse carries Mermaid graph code.
type MindMapResponse struct {
	Code string `json:"code"`
}

// QuizResponse is returned by quiz.
type QuizResponse struct {
	Questions []tutor.QuizQuestion `json:"questions"`
}

// QuoteResponse is returned by quote.
type QuoteResponse struct {
	Quote string `json:"quote"`
}

// HistoryEntryResponse is one item of the history feed.
type HistoryEntryResponse struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Question  string         `json:"question"`
	Answer    string         `json:"answer"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// HistoryResponse is returned by GET /api/history.
type HistoryResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
	Limit   int                    `json:"limit"`
	Offset  int                    `json:"offset"`
}

// DeleteHistoryResponse is returned by DELETE /api/history.
type DeleteHistoryResponse struct {
	Deleted int64 `json:"deleted"`
}

func historyEntryToResponse(entry *domain.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:        entry.ID.String(),
		Type:      string(entry.Type),
		Question:  entry.Question,
		Answer:    entry.Answer,
		Metadata:  entry.MetadataMap(),
		CreatedAt: entry.CreatedAt,
	}
}
