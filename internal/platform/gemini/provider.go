package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/phrazzld/studyai-api/internal/generation"
	"github.com/phrazzld/studyai-api/internal/platform/logger"
	"google.golang.org/genai"
)

// ProviderName identifies this provider in logs and errors.
const ProviderName = "gemini"

// ContentGenerator is the part of the genai Models service the provider uses.
type ContentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// ClientFactory creates a ContentGenerator authenticated with apiKey.
type ClientFactory func(ctx context.Context, apiKey string) (ContentGenerator, error)

// NewClientFactory returns a factory building Gemini API clients. A nil
// httpClient uses the SDK default.
func NewClientFactory(httpClient *http.Client) ClientFactory {
	return func(ctx context.Context, apiKey string) (ContentGenerator, error) {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:     apiKey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, err
		}
		return client.Models, nil
	}
}

// Provider implements generation.Provider using the Gemini API.
type Provider struct {
	logger  *slog.Logger
	factory ClientFactory

	mu      sync.Mutex
	clients map[string]ContentGenerator
}

// Ensure Provider implements generation.Provider
var _ generation.Provider = (*Provider)(nil)

// NewProvider creates a Gemini provider.
//
// Parameters:
//   - logger: A structured logger for operation logging; nil uses the default
//   - factory: Builds per-credential clients; nil uses NewClientFactory(nil)
//
// Returns:
//   - A Provider ready to serve calls for any credential
func NewProvider(logger *slog.Logger, factory ClientFactory) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	if factory == nil {
		factory = NewClientFactory(nil)
	}
	return &Provider{
		logger:  logger.With(slog.String("component", "gemini_provider")),
		factory: factory,
		clients: make(map[string]ContentGenerator),
	}
}

// Name implements generation.Provider.
func (p *Provider) Name() string { return ProviderName }

// Generate implements generation.Provider. The call's credential selects the
// API key; the attachment, if any, is sent inline with its MIME type.
func (p *Provider) Generate(ctx context.Context, call generation.Call) (string, error) {
	if call.Credential == "" {
		return "", fmt.Errorf("%s: %w", ProviderName, generation.ErrNoCredentials)
	}

	client, err := p.client(ctx, call.Credential)
	if err != nil {
		return "", generation.NewProviderError(ProviderName, call.Model, 0,
			fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err))
	}

	parts := []*genai.Part{genai.NewPartFromText(call.Prompt)}
	if call.Attachment != nil {
		parts = append(parts, genai.NewPartFromBytes(call.Attachment.Data, call.Attachment.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := client.GenerateContent(ctx, call.Model, contents, nil)
	if err != nil {
		return "", mapError(call.Model, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", generation.NewProviderError(ProviderName, call.Model, 0, err)
	}

	logger.FromContextOrDefault(ctx, p.logger).DebugContext(ctx, "gemini response received",
		slog.String("model", call.Model),
		slog.Int("response_length", len(text)))

	return text, nil
}

// client returns the cached client for apiKey, creating it on first use.
func (p *Provider) client(ctx context.Context, apiKey string) (ContentGenerator, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.clients[apiKey]; ok {
		return c, nil
	}

	c, err := p.factory(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	p.clients[apiKey] = c
	p.logger.DebugContext(ctx, "created gemini client",
		slog.String("credential", generation.MaskCredential(apiKey)))
	return c, nil
}

// responseText extracts the first candidate's text.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrEmptyResponse)
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != "BLOCKED_REASON_UNSPECIFIED" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, fb.BlockReason)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", generation.ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: response blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrEmptyResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", generation.ErrEmptyResponse
	}
	return text, nil
}
