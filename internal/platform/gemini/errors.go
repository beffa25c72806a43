package gemini

import (
	"errors"

	"github.com/phrazzld/studyai-api/internal/generation"
	"google.golang.org/genai"
)

// mapError converts a genai error into a generation.ProviderError carrying
// the upstream status code.
func mapError(model string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return generation.NewProviderError(ProviderName, model, apiErr.Code, err)
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return generation.NewProviderError(ProviderName, model, apiErrPtr.Code, err)
	}

	return generation.NewProviderError(ProviderName, model, 0, err)
}
