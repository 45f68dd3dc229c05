// Package echo provides a testing provider that echoes back input messages.
// It implements the domain.Provider interface without making external API
// calls, producing deterministic responses for tests and local development.
package echo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emberhq/hearth/internal/domain"
	"github.com/emberhq/hearth/internal/observability"
)

const (
	providerName = "echo"
	chunkDelay   = 10 * time.Millisecond
)

// Provider implements the domain.Provider interface for echo testing. Its
// model catalog is open: any non-empty model name is accepted.
type Provider struct {
	name string
}

// NewProvider creates a new echo provider. No configuration is required as
// this provider operates entirely in-memory.
func NewProvider() *Provider {
	return &Provider{name: providerName}
}

// Complete validates the request and returns the echoed response.
func (p *Provider) Complete(ctx context.Context, req *domain.Request) (*domain.Response, error) {
	if err := domain.ValidateRequest(ctx, req, p.Caps()); err != nil {
		return nil, err
	}

	observability.FromContext(ctx).Debug("echoing request")

	content := buildEchoContent(req.Messages)
	promptTokens := countTokens(content)

	return &domain.Response{
		ID:      fmt.Sprintf("echo-%d", time.Now().UnixNano()),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   domain.BackendModel(req.Model),
		Choices: []domain.Choice{
			{
				FinishReason: "stop",
				Index:        0,
				Message: domain.ResponseMessage{
					Role:    domain.RoleAssistant,
					Content: &content,
				},
			},
		},
		Usage: &domain.Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: promptTokens,
			TotalTokens:      promptTokens * 2,
		},
	}, nil
}

// Stream validates the request and streams the echoed response word by
// word as delta chunks, ending with a finish_reason of "stop".
func (p *Provider) Stream(ctx context.Context, req *domain.Request) (<-chan domain.StreamChunk, error) {
	if err := domain.ValidateRequest(ctx, req, p.Caps()); err != nil {
		return nil, err
	}

	observability.FromContext(ctx).Debug("streaming echo request")

	id := fmt.Sprintf("echo-%d", time.Now().UnixNano())
	model := domain.BackendModel(req.Model)
	created := time.Now().Unix()
	words := strings.Fields(buildEchoContent(req.Messages))

	chunks := make(chan domain.StreamChunk)
	go func() {
		defer close(chunks)

		role := domain.RoleAssistant
		for i, word := range words {
			delta := domain.Delta{}
			if i == 0 {
				delta.Role = role
			}
			text := word
			if i < len(words)-1 {
				text += " "
			}
			delta.Content = &text

			select {
			case <-ctx.Done():
				return
			case chunks <- p.chunk(id, model, created, domain.DeltaChoice{Index: 0, Delta: delta}):
				time.Sleep(chunkDelay)
			}
		}

		finish := "stop"
		select {
		case <-ctx.Done():
		case chunks <- p.chunk(id, model, created, domain.DeltaChoice{Index: 0, FinishReason: &finish}):
		}
	}()

	return chunks, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return p.name
}

// Caps returns an open model catalog with no reasoning models.
func (p *Provider) Caps() domain.ProviderCaps {
	return domain.ProviderCaps{}
}

func (p *Provider) chunk(id, model string, created int64, choice domain.DeltaChoice) domain.StreamChunk {
	return domain.StreamChunk{
		Delta: &domain.DeltaResponse{
			ID:      id,
			Object:  "chat.completion.chunk",
			Created: created,
			Model:   model,
			Choices: []domain.DeltaChoice{choice},
		},
	}
}

// buildEchoContent constructs the echo response from request messages.
func buildEchoContent(messages []domain.Message) string {
	var builder strings.Builder
	for _, msg := range messages {
		builder.WriteString(fmt.Sprintf("[%s]: %s\n", msg.Role, msg.Content.AsText()))
	}
	return builder.String()
}

// countTokens performs simple word-based token counting.
func countTokens(content string) int {
	return len(strings.Fields(content))
}
