package tutor

import (
	"regexp"
	"strings"
	"unicode"
)

// Persona is the teacher character the tutor prompt speaks as.
type Persona struct {
	Name      string
	Specialty string
	Emoji     string

	keywords []string
	words    []string
}

// DefaultPersona is used when no subject-specific persona matches.
var DefaultPersona = Persona{Name: "Dr. StudyAI", Specialty: "all subjects", Emoji: "📚"}

// personas are checked in order; the first match wins.
var personas = []Persona{
	{
		Name: "Dr. Sufyan", Specialty: "Computer Science & Programming", Emoji: "💻",
		keywords: []string{"computer", "programming"},
		words:    []string{"cs", "ict"},
	},
	{
		Name: "Ms. Aisha", Specialty: "English Language & Literature", Emoji: "✍️",
		keywords: []string{"english", "literature", "grammar"},
	},
	{
		Name: "Dr. Hassan", Specialty: "Biology & Life Sciences", Emoji: "🧬",
		keywords: []string{"bio"},
	},
	{
		Name: "Dr. Zainab", Specialty: "Chemistry", Emoji: "⚗️",
		keywords: []string{"chem"},
	},
	{
		Name: "Prof. Usman", Specialty: "Physics", Emoji: "⚛️",
		keywords: []string{"phys"},
	},
	{
		Name: "Sir Ali", Specialty: "Mathematics", Emoji: "📐",
		keywords: []string{"math", "calculus", "algebra"},
	},
	{
		Name: "Ustaz Tariq", Specialty: "Urdu Language & Literature", Emoji: "📖",
		keywords: []string{"urdu"},
	},
	{
		Name: "Ms. Sana", Specialty: "Pakistan Studies & History", Emoji: "🌍",
		keywords: []string{"pak studies", "pakistan", "history", "social"},
	},
	{
		Name: "Maulana Bilal", Specialty: "Islamiat & Religious Studies", Emoji: "🕌",
		keywords: []string{"islamiat", "islamic", "quran"},
	},
	{
		Name: "Sir Kamran", Specialty: "Economics & Commerce", Emoji: "📊",
		keywords: []string{"econ", "commerce", "account"},
	},
}

// PersonaFor returns the teacher persona for subject.
func PersonaFor(subject string) Persona {
	lower := strings.ToLower(subject)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	for _, p := range personas {
		for _, kw := range p.keywords {
			if strings.Contains(lower, kw) {
				return p
			}
		}
		for _, w := range p.words {
			for _, field := range words {
				if field == w {
					return p
				}
			}
		}
	}
	return DefaultPersona
}

var greetingPattern = regexp.MustCompile(
	`(?i)^(hi+|hello+|hlo+|hey+|salam|assalam|aoa|yo+|sup|greetings|good (morning|evening|afternoon|night)|howdy|what'?s up)[!?.،\s]*$`,
)

// IsGreeting reports whether question is only a greeting.
func IsGreeting(question string) bool {
	return greetingPattern.MatchString(strings.TrimSpace(question))
}
