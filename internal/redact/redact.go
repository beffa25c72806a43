// Package redact scrubs secrets out of text that is about to be logged.
//
// Provider errors are the main source: Gemini and Groq failures frequently
// echo the API key, and driver errors can carry the database or Redis DSN.
// Rules run in order, so the specific provider-key formats are replaced
// before the generic key=value rule sees them.
package redact

import "regexp"

// Placeholders substituted for matched secrets.
const (
	KeyPlaceholder        = "[REDACTED_KEY]"
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_JWT]"
	EmailPlaceholder      = "[REDACTED_EMAIL]"
	PathPlaceholder       = "[REDACTED_PATH]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	StackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules is read-only after init.
var rules = []rule{
	// Gemini keys, also found in ?key= query strings of request URLs
	{regexp.MustCompile(`AIza[0-9A-Za-z_\-]{20,}`), KeyPlaceholder},
	// Groq keys
	{regexp.MustCompile(`gsk_[0-9A-Za-z]{20,}`), KeyPlaceholder},
	// Access tokens from the hosted auth provider
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), TokenPlaceholder},
	// userinfo of postgres:// and redis:// DSNs
	{regexp.MustCompile(`(?i)(postgres(ql)?|rediss?|db|database|connection)://[^@\s]+@`), CredentialPlaceholder},
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`), CredentialPlaceholder},
	{regexp.MustCompile(`(?i)(api[_-]?key|token|secret|key|access|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), KeyPlaceholder},
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), StackPlaceholder},
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), EmailPlaceholder},
	{regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE)[\s\w,*()$]+(?:FROM|INTO|SET)[\s\w,*()='"$]*`), SQLPlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){3,}`), PathPlaceholder},
}

// String returns s with every known secret format replaced.
func String(s string) string {
	if s == "" {
		return s
	}
	for _, r := range rules {
		s = r.pattern.ReplaceAllString(s, r.placeholder)
	}
	return s
}

// Error returns the redacted text of err, or "" for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
