package generation

import "context"

// Call is one request to a provider.
type Call struct {
	// Model is the provider-specific model identifier
	Model string

	// Credential is the API key for providers with a rotating pool.
	// Providers with a fixed key ignore it.
	Credential string

	// Prompt is the instruction text
	Prompt string

	// Attachment is an optional inline payload
	Attachment *Attachment
}

// Provider is an upstream completion service.
type Provider interface {
	// Name identifies the provider in logs and errors
	Name() string

	// Generate issues exactly one request and returns the completion text
	Generate(ctx context.Context, call Call) (string, error)
}

// Generator is the boundary between application services and the router.
type Generator interface {
	// Generate produces a text completion, failing only when every attempt is exhausted
	Generate(ctx context.Context, req Request) (string, error)
}
