package generation

import "strings"

// Model identifiers used by the default chain.
const (
	// ModelCode is the fast provider's code-specialized model
	ModelCode = "qwen-2.5-coder-32b"

	// ModelReasoning is the fast provider's reasoning-specialized model
	ModelReasoning = "deepseek-r1-distill-llama-70b"

	// ModelGeneral is the fast provider's general-purpose model and its stable default
	ModelGeneral = "llama-3.3-70b-versatile"

	// ModelVision is the fast provider's vision-capable model
	ModelVision = "llama-3.2-11b-vision-preview"

	// ModelRobust is the robust provider's model
	ModelRobust = "gemini-2.0-flash"
)

// ModelRule maps a set of subject keywords to a model.
type ModelRule struct {
	// Name labels the rule in logs, e.g. "computing"
	Name string

	// Keywords match anywhere in the lower-cased subject
	Keywords []string

	// Model is returned when the rule matches
	Model string
}

func (r ModelRule) matches(subject string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(subject, kw) {
			return true
		}
	}
	return false
}

// ModelSelector is an ordered, case-insensitive keyword classifier.
// Rules are evaluated in order and the first match wins.
type ModelSelector struct {
	rules    []ModelRule
	fallback string
}

// NewModelSelector creates a selector from ordered rules and a fallback model.
func NewModelSelector(fallback string, rules ...ModelRule) *ModelSelector {
	return &ModelSelector{
		rules:    append([]ModelRule(nil), rules...),
		fallback: fallback,
	}
}

// ComputingRule matches computing subjects. It precedes ScienceRule in the
// default selector. Its short "cs" keyword also hits inside words such as
// "physics" and "economics", which then resolve to the code model.
var ComputingRule = ModelRule{
	Name: "computing",
	Keywords: []string{
		"computer", "computing", "programming", "coding", "cs", "ict",
		"software", "algorithm", "database", "web dev",
	},
	Model: ModelCode,
}

// ScienceRule matches math and hard-science subjects.
var ScienceRule = ModelRule{
	Name: "science",
	Keywords: []string{
		"math", "maths", "mathematics", "calculus", "algebra", "physics",
		"chemistry", "chem", "statistics", "trigonometry",
	},
	Model: ModelReasoning,
}

// DefaultModelSelector returns the selector used by the default router.
func DefaultModelSelector() *ModelSelector {
	return NewSubjectSelector(ModelGeneral, ModelCode, ModelReasoning)
}

// NewSubjectSelector returns the computing-then-science selector with the
// given model identifiers.
func NewSubjectSelector(general, code, reasoning string) *ModelSelector {
	computing := ComputingRule
	computing.Model = code
	science := ScienceRule
	science.Model = reasoning
	return NewModelSelector(general, computing, science)
}

var defaultSelector = DefaultModelSelector()

// Select returns the model for subject, or the fallback when no rule matches.
func (s *ModelSelector) Select(subject string) string {
	model, _ := s.SelectRule(subject)
	return model
}

// SelectRule returns the model and the name of the matching rule.
// The rule name is empty when the fallback is used.
func (s *ModelSelector) SelectRule(subject string) (string, string) {
	lower := strings.ToLower(subject)
	for _, rule := range s.rules {
		if rule.matches(lower) {
			return rule.Model, rule.Name
		}
	}
	return s.fallback, ""
}

// SelectModel classifies subject with the default selector.
func SelectModel(subject string) string {
	return defaultSelector.Select(subject)
}
