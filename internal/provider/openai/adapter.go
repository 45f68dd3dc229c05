// Package openai adapts the OpenAI chat-completion API: it validates
// requests before any I/O, builds the wire payload, executes the HTTP
// transport (sync or SSE streaming) and normalizes the backend JSON into
// the typed result graph. It implements the domain.Provider interface.
package openai

import (
	"context"
	"regexp"

	"github.com/emberhq/hearth/internal/domain"
	"github.com/emberhq/hearth/internal/observability"
)

var apiKeyPattern = regexp.MustCompile(`^sk-[A-Za-z0-9_-]+$`)

// Provider implements the domain.Provider interface for the OpenAI API. It
// holds configuration only, never request-scoped state, and is safe for
// concurrent use.
type Provider struct {
	name   string
	client *Client
}

// NewProvider creates a new OpenAI provider. A missing or malformed API key
// is a *domain.ConfigurationError raised here, before any call is made.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, &domain.ConfigurationError{Provider: Prefix, Message: "API key is required"}
	}
	if !apiKeyPattern.MatchString(config.APIKey) {
		return nil, &domain.ConfigurationError{Provider: Prefix, Message: "API key does not match the expected sk- format"}
	}

	return &Provider{
		name:   Prefix,
		client: NewClient(config),
	}, nil
}

// Complete executes a non-streaming completion call. Validation failures
// are raised before the transport is touched.
func (p *Provider) Complete(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	if err := domain.ValidateRequest(ctx, req, p.Caps()); err != nil {
		return nil, err
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling chat completion endpoint",
		observability.String("model", domain.BackendModel(req.Model)))

	resp, err := p.client.CreateChatCompletion(ctx, buildPayload(req))
	if err != nil {
		logger.Error("chat completion call failed", observability.Error(err))
		return nil, err
	}

	if resp.Usage != nil {
		logger.Debug("chat completion succeeded",
			observability.Int("prompt_tokens", resp.Usage.PromptTokens),
			observability.Int("completion_tokens", resp.Usage.CompletionTokens))
	}
	return resp, nil
}

// Stream executes a streaming completion call and returns the decoded chunk
// channel. Validation failures are raised before the transport is touched.
func (p *Provider) Stream(ctx context.Context, req *domain.Request) (<-chan domain.StreamChunk, error) {
	if err := domain.ValidateRequest(ctx, req, p.Caps()); err != nil {
		return nil, err
	}

	observability.FromContext(ctx).Debug("starting chat completion stream",
		observability.String("model", domain.BackendModel(req.Model)))

	streamReq := *req
	streamReq.Stream = true
	return p.client.StreamChatCompletion(ctx, buildPayload(&streamReq))
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// Caps describes the published model catalog and the reasoning model class.
func (p *Provider) Caps() domain.ProviderCaps {
	return caps()
}
