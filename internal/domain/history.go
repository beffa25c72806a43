package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// HistoryType identifies the study tool that produced a history entry.
type HistoryType string

// Possible history types
const (
	HistoryTypeAsk        HistoryType = "ask"
	HistoryTypeSnap       HistoryType = "snap"
	HistoryTypeSummarize  HistoryType = "summarize"
	HistoryTypeQuiz       HistoryType = "quiz"
	HistoryTypePDFTutor   HistoryType = "pdf_tutor"
	HistoryTypeFlashcards HistoryType = "flashcards"
	HistoryTypeGrader     HistoryType = "grader"
	HistoryTypePlanner    HistoryType = "planner"
	HistoryTypeMindMap    HistoryType = "mindmap"
)

// Common validation errors for HistoryEntry
var (
	ErrEmptyHistoryID       = errors.New("history entry ID cannot be empty")
	ErrEmptyHistoryUserID   = errors.New("history entry user ID cannot be empty")
	ErrEmptyHistoryQuestion = errors.New("history entry question cannot be empty")
	ErrEmptyHistoryAnswer   = errors.New("history entry answer cannot be empty")
	ErrInvalidHistoryType   = errors.New("invalid history type")
	ErrInvalidMetadata      = errors.New("history metadata must be a JSON object")
)

// HistoryEntry is one question/answer pair a signed-in student produced
// with a study tool. Metadata holds tool-specific details such as the
// subject or the number of quiz questions.
type HistoryEntry struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Type      HistoryType     `json:"type"`
	Question  string          `json:"question"`
	Answer    string          `json:"answer"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewHistoryEntry creates a validated HistoryEntry with a fresh ID.
// metadata may be nil; otherwise it is marshalled to a JSON object.
func NewHistoryEntry(
	userID uuid.UUID,
	historyType HistoryType,
	question, answer string,
	metadata map[string]any,
) (*HistoryEntry, error) {
	var raw json.RawMessage
	if metadata != nil {
		b, err := json.Marshal(metadata)
		if err != nil {
			return nil, errors.Join(ErrInvalidMetadata, err)
		}
		raw = b
	}

	entry := &HistoryEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      historyType,
		Question:  question,
		Answer:    answer,
		Metadata:  raw,
		CreatedAt: time.Now().UTC(),
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the HistoryEntry has valid data.
// Returns an error if any field fails validation.
func (h *HistoryEntry) Validate() error {
	if h.ID == uuid.Nil {
		return ErrEmptyHistoryID
	}

	if h.UserID == uuid.Nil {
		return ErrEmptyHistoryUserID
	}

	if !h.Type.Valid() {
		return ErrInvalidHistoryType
	}

	if h.Question == "" {
		return ErrEmptyHistoryQuestion
	}

	if h.Answer == "" {
		return ErrEmptyHistoryAnswer
	}

	if len(h.Metadata) > 0 {
		var obj map[string]any
		if err := json.Unmarshal(h.Metadata, &obj); err != nil {
			return ErrInvalidMetadata
		}
	}

	return nil
}

// Valid reports whether t is a known history type.
func (t HistoryType) Valid() bool {
	switch t {
	case HistoryTypeAsk, HistoryTypeSnap, HistoryTypeSummarize, HistoryTypeQuiz,
		HistoryTypePDFTutor, HistoryTypeFlashcards, HistoryTypeGrader,
		HistoryTypePlanner, HistoryTypeMindMap:
		return true
	default:
		return false
	}
}

// MetadataMap decodes Metadata. It returns nil when there is none or it is not a JSON object.
func (h *HistoryEntry) MetadataMap() map[string]any {
	if len(h.Metadata) == 0 {
		return nil
	}
	var obj map[string]any
	if err := json.Unmarshal(h.Metadata, &obj); err != nil {
		return nil
	}
	return obj
}
