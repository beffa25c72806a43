package tutor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// stripFences removes markdown code fences, including a language tag such
// as ```json or ```mermaid, anywhere in s.
func stripFences(s string, langs ...string) string {
	for _, lang := range langs {
		s = strings.ReplaceAll(s, "```"+lang, "")
	}
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// parseJSON decodes model output into v after removing code fences.
func parseJSON(raw string, v any) error {
	cleaned := stripFences(raw, "json")
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedOutput, err)
	}
	return nil
}

// truncate shortens s to n runes followed by "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s + "..."
	}
	return string(r[:n]) + "..."
}
