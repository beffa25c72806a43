package tutor

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var prompts = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

// Template names
const (
	tmplTutor      = "tutor.tmpl"
	tmplGreeting   = "greeting.tmpl"
	tmplSnap       = "snap.tmpl"
	tmplDocument   = "document.tmpl"
	tmplSummarize  = "summarize.tmpl"
	tmplMindMap    = "mindmap.tmpl"
	tmplPlanner    = "planner.tmpl"
	tmplQuiz       = "quiz.tmpl"
	tmplGrader     = "grader.tmpl"
	tmplFlashcards = "flashcards.tmpl"
	tmplQuote      = "quote.tmpl"
)

func renderPrompt(name string, data any) (string, error) {
	var b strings.Builder
	if err := prompts.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", name, err)
	}
	return strings.TrimSpace(b.String()), nil
}

type tutorPromptData struct {
	Persona     Persona
	Question    string
	Subject     string
	Board       string
	Language    string
	Urdu        bool
	Background  string
	StudentName string
	Bio         string
}

// BuildTutorPrompt renders the tutor prompt for in, or the short greeting
// prompt when the question is only a greeting.
func BuildTutorPrompt(in AskInput) (string, error) {
	subject := defaultString(in.Subject, DefaultSubject)
	board := defaultString(in.Board, DefaultBoard)
	language := defaultString(in.Language, DefaultLanguage)

	profile := in.Profile
	if profile == nil {
		profile = &Profile{}
	}

	background := "curriculum for " + board
	if profile.Grade != "" {
		background += ", " + profile.Grade
	}
	if profile.School != "" {
		background += " at " + profile.School
	}
	if profile.Location != "" {
		background += " in " + profile.Location
	}

	data := tutorPromptData{
		Persona:     PersonaFor(subject),
		Question:    in.Question,
		Subject:     subject,
		Board:       board,
		Language:    language,
		Urdu:        strings.Contains(strings.ToLower(language), "urdu"),
		Background:  background,
		StudentName: defaultString(profile.Name, "dear student"),
		Bio:         profile.Bio,
	}

	if IsGreeting(in.Question) {
		return renderPrompt(tmplGreeting, data)
	}
	return renderPrompt(tmplTutor, data)
}

func defaultString(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
