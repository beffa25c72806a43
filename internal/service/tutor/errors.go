package tutor

import "errors"

var (
	// ErrInvalidInput indicates a missing or out-of-range operation argument.
	ErrInvalidInput = errors.New("invalid tutor input")

	// ErrMalformedOutput indicates the model answered with JSON that could not be parsed
	// and the operation has no fallback document.
	ErrMalformedOutput = errors.New("model returned malformed output")
)
