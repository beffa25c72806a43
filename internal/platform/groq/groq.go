// Package groq implements the fast generation provider on Groq's
// OpenAI-compatible chat completions endpoint.
package groq

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/phrazzld/studyai-api/internal/generation"
	"github.com/phrazzld/studyai-api/internal/platform/logger"
)

// DefaultBaseURL is Groq's OpenAI-compatible API root.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// ProviderName identifies this provider in logs and errors.
const ProviderName = "groq"

// Config configures the Groq provider.
type Config struct {
	APIKey  string
	BaseURL string
	// HTTPClient overrides the SDK's default client
	HTTPClient *http.Client
}

// Provider implements generation.Provider against Groq.
type Provider struct {
	client    openai.Client
	available bool
	logger    *slog.Logger
}

// Ensure Provider implements generation.Provider
var _ generation.Provider = (*Provider)(nil)

// NewProvider creates a Groq provider. A missing API key does not fail
// construction; every call then fails with generation.ErrProviderUnavailable.
func NewProvider(cfg Config, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		// the router owns fallback; SDK retries would hide failures from it
		option.WithMaxRetries(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	p := &Provider{
		client:    openai.NewClient(opts...),
		available: strings.TrimSpace(cfg.APIKey) != "",
		logger:    logger.With(slog.String("component", "groq_provider")),
	}
	if !p.available {
		p.logger.Warn("groq api key not configured, fast provider disabled")
	}
	return p
}

// Name implements generation.Provider.
func (p *Provider) Name() string { return ProviderName }

// Generate implements generation.Provider. Only image attachments are sent;
// the router never routes other attachment kinds here.
func (p *Provider) Generate(ctx context.Context, call generation.Call) (string, error) {
	if !p.available {
		return "", fmt.Errorf("%s: %w", ProviderName, generation.ErrProviderUnavailable)
	}

	log := logger.FromContextOrDefault(ctx, p.logger)

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    call.Model,
		Messages: []openai.ChatCompletionMessageParamUnion{userMessage(call)},
	})
	if err != nil {
		return "", mapError(call.Model, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", generation.NewProviderError(ProviderName, call.Model, 0, generation.ErrEmptyResponse)
	}

	log.DebugContext(ctx, "groq completion received",
		slog.String("model", call.Model),
		slog.Int64("total_tokens", resp.Usage.TotalTokens))

	return resp.Choices[0].Message.Content, nil
}

func userMessage(call generation.Call) openai.ChatCompletionMessageParamUnion {
	if !call.Attachment.IsImage() {
		return openai.UserMessage(call.Prompt)
	}

	return openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart(call.Prompt),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: DataURI(call.Attachment),
		}),
	})
}

// DataURI encodes an attachment as a data: URI.
func DataURI(a *generation.Attachment) string {
	return "data:" + a.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}

func mapError(model string, err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return generation.NewProviderError(ProviderName, model, apiErr.StatusCode, err)
	}
	return generation.NewProviderError(ProviderName, model, 0, err)
}
