package tutor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/studyai-api/internal/domain"
	"github.com/phrazzld/studyai-api/internal/events"
	"github.com/phrazzld/studyai-api/internal/generation"
	"github.com/phrazzld/studyai-api/internal/platform/logger"
	"github.com/phrazzld/studyai-api/internal/redact"
	"github.com/phrazzld/studyai-api/internal/service/auth"
)

// Defaults applied to empty inputs.
const (
	DefaultSubject   = "General Studies"
	DefaultBoard     = "your board"
	DefaultLanguage  = "English"
	DefaultImageMIME = "image/jpeg"

	DefaultFlashcardCount = 10
	MaxFlashcardCount     = 50
	QuizQuestionCount     = 5

	// FallbackQuote is returned when no quote could be generated.
	FallbackQuote = "The future belongs to those who prepare for it today. - StudyAI"

	// SnapQuestion is the history question recorded for image questions.
	SnapQuestion = "[Image Question]"

	summaryQuestionRunes = 100
)

// Service provides the study tools.
type Service interface {
	// Ask answers a typed question as the subject's teacher persona.
	Ask(ctx context.Context, in AskInput) (string, error)

	// Snap explains the question shown in an image.
	Snap(ctx context.Context, image []byte, mimeType string) (string, error)

	// TutorDocument follows instruction against an uploaded document.
	TutorDocument(ctx context.Context, doc Document, instruction string) (string, error)

	// Summarize turns a chapter into an overview, key points, terms and exam questions.
	Summarize(ctx context.Context, text string) (string, error)

	// MindMap returns Mermaid graph code for topic.
	MindMap(ctx context.Context, topic string) (string, error)

	// Plan builds a study schedule. Unparseable output returns ErrMalformedOutput.
	Plan(ctx context.Context, in PlanInput) (*StudyPlan, error)

	// Quiz generates multiple-choice questions. Unparseable output returns ErrMalformedOutput.
	Quiz(ctx context.Context, topic string, profile *Profile) ([]QuizQuestion, error)

	// Grade marks a student's answer. Unparseable output yields FallbackGradeReport.
	Grade(ctx context.Context, question, answer, subject string) (*GradeReport, error)

	// Flashcards generates count cards from content. Unparseable output yields FallbackFlashcards.
	Flashcards(ctx context.Context, content string, count int) (*FlashcardSet, error)

	// Quote returns a motivational quote, or FallbackQuote when generation fails.
	Quote(ctx context.Context) string
}

// FallbackGradeReport is returned when the examiner's answer is not valid JSON.
func FallbackGradeReport() *GradeReport {
	return &GradeReport{
		Score:              "N/A",
		Strengths:          []string{"Internal error parsing response"},
		Weaknesses:         []string{},
		ImprovementTips:    "Please try again later.",
		ModelAnswerSnippet: "",
	}
}

// FallbackFlashcards is returned when the generated flashcards are not valid JSON.
func FallbackFlashcards() *FlashcardSet {
	return &FlashcardSet{Flashcards: []Flashcard{{
		Front: "Error generating cards",
		Back:  "Please try again with a smaller text chunk.",
	}}}
}

type serviceImpl struct {
	generator generation.Generator
	emitter   events.EventEmitter
	logger    *slog.Logger
}

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// NewService creates the tutor service. A nil emitter disables history recording.
func NewService(generator generation.Generator, emitter events.EventEmitter, logger *slog.Logger) Service {
	if generator == nil {
		// ALLOW-PANIC: constructor precondition
		panic("generator cannot be nil")
	}
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &serviceImpl{
		generator: generator,
		emitter:   emitter,
		logger:    logger.With(slog.String("component", "tutor_service")),
	}
}

func (s *serviceImpl) Ask(ctx context.Context, in AskInput) (string, error) {
	if strings.TrimSpace(in.Question) == "" {
		return "", fmt.Errorf("%w: question is required", ErrInvalidInput)
	}

	prompt, err := BuildTutorPrompt(in)
	if err != nil {
		return "", err
	}

	answer, err := s.generate(ctx, "ask", generation.Request{Prompt: prompt, SubjectHint: in.Subject})
	if err != nil {
		return "", err
	}

	s.record(ctx, domain.HistoryTypeAsk, in.Question, answer, map[string]any{
		"subject":  in.Subject,
		"board":    in.Board,
		"language": in.Language,
	})
	return answer, nil
}

func (s *serviceImpl) Snap(ctx context.Context, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("%w: image is required", ErrInvalidInput)
	}
	if mimeType == "" {
		mimeType = DefaultImageMIME
	}

	prompt, err := renderPrompt(tmplSnap, nil)
	if err != nil {
		return "", err
	}

	answer, err := s.generate(ctx, "snap", generation.Request{
		Prompt:     prompt,
		Attachment: &generation.Attachment{Data: image, MIMEType: mimeType},
	})
	if err != nil {
		return "", err
	}

	s.record(ctx, domain.HistoryTypeSnap, SnapQuestion, answer, nil)
	return answer, nil
}

func (s *serviceImpl) TutorDocument(ctx context.Context, doc Document, instruction string) (string, error) {
	if len(doc.Data) == 0 || strings.TrimSpace(instruction) == "" {
		return "", fmt.Errorf("%w: file and prompt are required", ErrInvalidInput)
	}
	if doc.MIMEType == "" {
		return "", fmt.Errorf("%w: file type is required", ErrInvalidInput)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("processing document",
		slog.String("file_name", doc.FileName),
		slog.String("mime_type", doc.MIMEType),
		slog.Int("size_bytes", len(doc.Data)))

	prompt, err := renderPrompt(tmplDocument, struct{ Instruction string }{instruction})
	if err != nil {
		return "", err
	}

	answer, err := s.generate(ctx, "pdf_tutor", generation.Request{
		Prompt:     prompt,
		Attachment: &generation.Attachment{Data: doc.Data, MIMEType: doc.MIMEType},
	})
	if err != nil {
		return "", err
	}

	s.record(ctx, domain.HistoryTypePDFTutor, instruction, answer, map[string]any{
		"file_name": doc.FileName,
		"mime_type": doc.MIMEType,
	})
	return answer, nil
}

func (s *serviceImpl) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: text is required", ErrInvalidInput)
	}

	prompt, err := renderPrompt(tmplSummarize, struct{ Text string }{text})
	if err != nil {
		return "", err
	}

	summary, err := s.generate(ctx, "summarize", generation.Request{Prompt: prompt})
	if err != nil {
		return "", err
	}

	s.record(ctx, domain.HistoryTypeSummarize, truncate(text, summaryQuestionRunes), summary, nil)
	return summary, nil
}

func (s *serviceImpl) MindMap(ctx context.Context, topic string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}

	prompt, err := renderPrompt(tmplMindMap, struct{ Topic string }{topic})
	if err != nil {
		return "", err
	}

	raw, err := s.generate(ctx, "mindmap", generation.Request{Prompt: prompt})
	if err != nil {
		return "", err
	}
	code := stripFences(raw, "mermaid")

	s.record(ctx, domain.HistoryTypeMindMap, topic, code, nil)
	return code, nil
}

func (s *serviceImpl) Plan(ctx context.Context, in PlanInput) (*StudyPlan, error) {
	if strings.TrimSpace(in.ExamDate) == "" || strings.TrimSpace(in.Subject) == "" {
		return nil, fmt.Errorf("%w: exam date and subject are required", ErrInvalidInput)
	}

	prompt, err := renderPrompt(tmplPlanner, in)
	if err != nil {
		return nil, err
	}

	raw, err := s.generate(ctx, "planner", generation.Request{Prompt: prompt})
	if err != nil {
		return nil, err
	}

	var plan StudyPlan
	if err := parseJSON(raw, &plan); err != nil {
		s.logMalformed(ctx, "planner", err)
		return nil, err
	}

	s.record(ctx, domain.HistoryTypePlanner, in.Subject+" exam on "+in.ExamDate,
		defaultString(plan.Summary, fmt.Sprintf("Generated a %d-day study plan.", len(plan.Schedule))),
		map[string]any{
			"examDate": in.ExamDate,
			"level":    in.Level,
			"topics":   in.Topics,
			"days":     len(plan.Schedule),
		})
	return &plan, nil
}

func (s *serviceImpl) Quiz(ctx context.Context, topic string, profile *Profile) ([]QuizQuestion, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}
	if profile == nil {
		profile = &Profile{}
	}

	prompt, err := renderPrompt(tmplQuiz, struct {
		Count                     int
		Topic, Board, Grade, Name string
	}{QuizQuestionCount, topic, profile.Board, profile.Grade, profile.Name})
	if err != nil {
		return nil, err
	}

	raw, err := s.generate(ctx, "quiz", generation.Request{Prompt: prompt})
	if err != nil {
		return nil, err
	}

	var questions []QuizQuestion
	if err := parseJSON(raw, &questions); err != nil {
		s.logMalformed(ctx, "quiz", err)
		return nil, err
	}

	s.record(ctx, domain.HistoryTypeQuiz, topic,
		fmt.Sprintf("Generated a quiz with %d questions.", len(questions)),
		map[string]any{"topic": topic, "questionCount": len(questions)})
	return questions, nil
}

func (s *serviceImpl) Grade(ctx context.Context, question, answer, subject string) (*GradeReport, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		return nil, fmt.Errorf("%w: question and answer are required", ErrInvalidInput)
	}
	subject = defaultString(subject, DefaultSubject)

	prompt, err := renderPrompt(tmplGrader, struct{ Subject, Question, Answer string }{subject, question, answer})
	if err != nil {
		return nil, err
	}

	raw, err := s.generate(ctx, "grader", generation.Request{Prompt: prompt})
	if err != nil {
		return nil, err
	}

	var report GradeReport
	if err := parseJSON(raw, &report); err != nil {
		s.logMalformed(ctx, "grader", err)
		return FallbackGradeReport(), nil
	}

	s.record(ctx, domain.HistoryTypeGrader, question, "Score: "+report.Score,
		map[string]any{"subject": subject, "score": report.Score})
	return &report, nil
}

func (s *serviceImpl) Flashcards(ctx context.Context, content string, count int) (*FlashcardSet, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if count <= 0 {
		count = DefaultFlashcardCount
	}
	if count > MaxFlashcardCount {
		count = MaxFlashcardCount
	}

	prompt, err := renderPrompt(tmplFlashcards, struct {
		Count   int
		Content string
	}{count, content})
	if err != nil {
		return nil, err
	}

	raw, err := s.generate(ctx, "flashcards", generation.Request{Prompt: prompt})
	if err != nil {
		return nil, err
	}

	var set FlashcardSet
	if err := parseJSON(raw, &set); err != nil {
		s.logMalformed(ctx, "flashcards", err)
		return FallbackFlashcards(), nil
	}

	s.record(ctx, domain.HistoryTypeFlashcards, truncate(content, summaryQuestionRunes),
		fmt.Sprintf("Generated %d flashcards.", len(set.Flashcards)),
		map[string]any{"cardCount": len(set.Flashcards)})
	return &set, nil
}

func (s *serviceImpl) Quote(ctx context.Context) string {
	prompt, err := renderPrompt(tmplQuote, nil)
	if err != nil {
		return FallbackQuote
	}

	quote, err := s.generate(ctx, "quote", generation.Request{Prompt: prompt})
	if err != nil || strings.TrimSpace(quote) == "" {
		return FallbackQuote
	}
	return strings.TrimSpace(quote)
}

func (s *serviceImpl) generate(ctx context.Context, tool string, req generation.Request) (string, error) {
	text, err := s.generator.Generate(ctx, req)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("generation failed",
			slog.String("tool", tool),
			slog.String("error", redact.Error(err)))
		return "", fmt.Errorf("%s: %w", tool, err)
	}
	return text, nil
}

func (s *serviceImpl) logMalformed(ctx context.Context, tool string, err error) {
	logger.FromContextOrDefault(ctx, s.logger).Warn("failed to parse model output",
		slog.String("tool", tool),
		slog.String("error", err.Error()))
}

// record emits a history event when ctx carries an authenticated user.
// Failures are logged and never returned.
func (s *serviceImpl) record(
	ctx context.Context,
	kind domain.HistoryType,
	question, answer string,
	metadata map[string]any,
) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	event, err := events.NewHistoryEvent(userID, string(kind), question, answer, metadata)
	if err != nil {
		log.Warn("failed to build history event", slog.String("error", err.Error()))
		return
	}

	if err := s.emitter.EmitEvent(context.WithoutCancel(ctx), event); err != nil {
		log.Warn("failed to record history",
			slog.String("kind", string(kind)),
			slog.String("error", redact.Error(err)))
	}
}

