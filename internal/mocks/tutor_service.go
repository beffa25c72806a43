package mocks

import (
	"context"

	"github.com/phrazzld/studyai-api/internal/service/tutor"
)

// MockTutorService implements tutor.Service for testing. Unset functions
// return zero values and Err.
type MockTutorService struct {
	AskFn           func(ctx context.Context, in tutor.AskInput) (string, error)
	SnapFn          func(ctx context.Context, image []byte, mimeType string) (string, error)
	TutorDocumentFn func(ctx context.Context, doc tutor.Document, instruction string) (string, error)
	SummarizeFn     func(ctx context.Context, text string) (string, error)
	MindMapFn       func(ctx context.Context, topic string) (string, error)
	PlanFn          func(ctx context.Context, in tutor.PlanInput) (*tutor.StudyPlan, error)
	QuizFn          func(ctx context.Context, topic string, profile *tutor.Profile) ([]tutor.QuizQuestion, error)
	GradeFn         func(ctx context.Context, question, answer, subject string) (*tutor.GradeReport, error)
	FlashcardsFn    func(ctx context.Context, content string, count int) (*tutor.FlashcardSet, error)
	QuoteFn         func(ctx context.Context) string

	// Err is the default error for unset functions
	Err error
}

// Ensure MockTutorService implements tutor.Service
var _ tutor.Service = (*MockTutorService)(nil)

// Ask implements tutor.Service.
func (m *MockTutorService) Ask(ctx context.Context, in tutor.AskInput) (string, error) {
	if m.AskFn != nil {
		return m.AskFn(ctx, in)
	}
	return "", m.Err
}

// Snap implements tutor.Service.
func (m *MockTutorService) Snap(ctx context.Context, image []byte, mimeType string) (string, error) {
	if m.SnapFn != nil {
		return m.SnapFn(ctx, image, mimeType)
	}
	return "", m.Err
}

// TutorDocument implements tutor.Service.
func (m *MockTutorService) TutorDocument(ctx context.Context, doc tutor.Document, instruction string) (string, error) {
	if m.TutorDocumentFn != nil {
		return m.TutorDocumentFn(ctx, doc, instruction)
	}
	return "", m.Err
}

// Summarize implements tutor.Service.
func (m *MockTutorService) Summarize(ctx context.Context, text string) (string, error) {
	if m.SummarizeFn != nil {
		return m.SummarizeFn(ctx, text)
	}
	return "", m.Err
}

// MindMap implements tutor.Service.
func (m *MockTutorService) MindMap(ctx context.Context, topic string) (string, error) {
	if m.MindMapFn != nil {
		return m.MindMapFn(ctx, topic)
	}
	return "", m.Err
}

// Plan implements tutor.Service.
func (m *MockTutorService) Plan(ctx context.Context, in tutor.PlanInput) (*tutor.StudyPlan, error) {
	if m.PlanFn != nil {
		return m.PlanFn(ctx, in)
	}
	return nil, m.Err
}

// Quiz implements tutor.Service.
func (m *MockTutorService) Quiz(ctx context.Context, topic string, profile *tutor.Profile) ([]tutor.QuizQuestion, error) {
	if m.QuizFn != nil {
		return m.QuizFn(ctx, topic, profile)
	}
	return nil, m.Err
}

// Grade implements tutor.Service.
func (m *MockTutorService) Grade(ctx context.Context, question, answer, subject string) (*tutor.GradeReport, error) {
	if m.GradeFn != nil {
		return m.GradeFn(ctx, question, answer, subject)
	}
	return nil, m.Err
}

// Flashcards implements tutor.Service.
func (m *MockTutorService) Flashcards(ctx context.Context, content string, count int) (*tutor.FlashcardSet, error) {
	if m.FlashcardsFn != nil {
		return m.FlashcardsFn(ctx, content, count)
	}
	return nil, m.Err
}

// Quote implements tutor.Service.
func (m *MockTutorService) Quote(ctx context.Context) string {
	if m.QuoteFn != nil {
		return m.QuoteFn(ctx)
	}
	return tutor.FallbackQuote
}
