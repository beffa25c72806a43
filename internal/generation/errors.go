package generation

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by the generation package
var (
	// ErrInvalidRequest is returned when a request is rejected before any attempt is made
	ErrInvalidRequest = errors.New("invalid generation request")

	// ErrNoCredentials is returned when the robust provider is invoked with an empty credential pool
	ErrNoCredentials = errors.New("no credentials configured for provider")

	// ErrProviderUnavailable is returned when a provider is missing its API key
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrEmptyResponse is returned when a provider answers without any text
	ErrEmptyResponse = errors.New("empty response from language model")

	// ErrContentBlocked is returned when the provider blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrAllAttemptsFailed is returned when every provider, model and credential was tried
	ErrAllAttemptsFailed = errors.New("all generation attempts failed")

	// ErrInvalidConfig is returned when a provider adapter is misconfigured
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// ProviderError describes a failed call to an upstream provider.
type ProviderError struct {
	Provider   string // Provider name, e.g. "groq" or "gemini"
	Model      string // Model identifier used for the call
	StatusCode int    // HTTP status reported by the provider, 0 if unknown
	Transient  bool   // Rate limiting, quota exhaustion or a server-side fault
	Err        error  // Original error
}

// Error implements the error interface for ProviderError.
func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (%s) failed with status %d: %v", e.Provider, e.Model, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s (%s) failed: %v", e.Provider, e.Model, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError builds a ProviderError and classifies it as transient from
// the status code and message.
func NewProviderError(provider, model string, statusCode int, err error) *ProviderError {
	return &ProviderError{
		Provider:   provider,
		Model:      model,
		StatusCode: statusCode,
		Transient:  isTransientSignal(statusCode, err),
		Err:        err,
	}
}

// IsTransient reports whether err is a rate-limit, quota or server-side failure.
// The router retries every failure regardless; this is used for logging.
func IsTransient(err error) bool {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Transient
	}
	return false
}

func isTransientSignal(statusCode int, err error) bool {
	switch statusCode {
	case 429, 500, 502, 503, 504:
		return true
	}
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") || strings.Contains(msg, "too many requests")
}
