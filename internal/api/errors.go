package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/studyai-api/internal/api/shared"
	"github.com/phrazzld/studyai-api/internal/domain"
	"github.com/phrazzld/studyai-api/internal/generation"
	"github.com/phrazzld/studyai-api/internal/service/auth"
	"github.com/phrazzld/studyai-api/internal/service/tutor"
	"github.com/phrazzld/studyai-api/internal/store"
)

// ErrUploadTooLarge is returned when a multipart upload exceeds the configured size.
var ErrUploadTooLarge = errors.New("upload too large")

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidSubject),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.As(err, &validationErrs),
		errors.Is(err, shared.ErrEmptyBody),
		errors.Is(err, tutor.ErrInvalidInput),
		errors.Is(err, generation.ErrInvalidRequest),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, tutor.ErrMalformedOutput):
		return http.StatusBadGateway

	case errors.Is(err, generation.ErrAllAttemptsFailed):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrInvalidSubject):
		return "Invalid token"

	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"

	case errors.As(err, &validationErrs):
		return SanitizeValidationError(err)

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	case errors.Is(err, tutor.ErrInvalidInput):
		return inputErrorMessage(err, tutor.ErrInvalidInput)

	case errors.Is(err, domain.ErrValidation):
		return inputErrorMessage(err, domain.ErrValidation)

	case errors.Is(err, generation.ErrInvalidRequest),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request"

	case errors.Is(err, ErrUploadTooLarge):
		return "File is too large"

	case errors.Is(err, store.ErrNotFound):
		return "Not found"

	case errors.Is(err, tutor.ErrMalformedOutput):
		return "The AI returned an unexpected format. Please try again."

	case errors.Is(err, generation.ErrAllAttemptsFailed):
		return "Failed to generate answer. Please try again."

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns validator errors into a short message naming
// the first offending field.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}
	fe := validationErrs[0]
	return fmt.Sprintf("Invalid %s: %s", lowerFirst(fe.Field()), getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gte":
		return "too small"
	case "max", "lte":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

// inputErrorMessage exposes the detail our own code attached to sentinel,
// e.g. "invalid input: question is required" becomes "Question is required".
func inputErrorMessage(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	i := strings.Index(msg, prefix)
	if i < 0 || len(msg) == i+len(prefix) {
		return "Invalid request"
	}
	detail := msg[i+len(prefix):]
	return strings.ToUpper(detail[:1]) + detail[1:]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// HandleAPIError writes the status and safe message for err and logs the details.
// A non-empty message overrides the safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
