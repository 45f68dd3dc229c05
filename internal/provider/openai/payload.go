package openai

import (
	"github.com/emberhq/hearth/internal/domain"
)

// chatRequest is the chat-completion wire payload. Optional fields are
// pointers with omitempty so absent parameters are omitted from the JSON
// body rather than sent as explicit nulls.
type chatRequest struct {
	Model               string              `json:"model"`
	Messages            []domain.Message    `json:"messages"`
	Stream              bool                `json:"stream,omitempty"`
	StreamOptions       *streamOptions      `json:"stream_options,omitempty"`
	Tools               []domain.ToolSpec   `json:"tools,omitempty"`
	ToolChoice          *domain.ToolChoice  `json:"tool_choice,omitempty"`
	ReasoningEffort     string              `json:"reasoning_effort,omitempty"`
	Metadata            map[string]string   `json:"metadata,omitempty"`
	FrequencyPenalty    *float64            `json:"frequency_penalty,omitempty"`
	PresencePenalty     *float64            `json:"presence_penalty,omitempty"`
	TopP                *float64            `json:"top_p,omitempty"`
	Temperature         *float64            `json:"temperature,omitempty"`
	LogitBias           map[string]float64  `json:"logit_bias,omitempty"`
	Logprobs            *bool               `json:"logprobs,omitempty"`
	TopLogprobs         *int                `json:"top_logprobs,omitempty"`
	MaxTokens           *int                `json:"max_tokens,omitempty"`
	MaxCompletionTokens *int                `json:"max_completion_tokens,omitempty"`
	Stop                domain.Stop         `json:"stop,omitempty"`
}

// streamOptions configures streaming behavior.
type streamOptions struct {
	IncludeUsage bool `json:"include_usage,omitempty"`
}

// buildPayload is a pure transformation from the normalized request to the
// backend wire payload. The registry prefix is stripped from the model
// identifier; reasoning_effort is only forwarded for the o-series model
// family, which is the only one that accepts it.
func buildPayload(req *domain.Request) *chatRequest {
	model := domain.BackendModel(req.Model)

	payload := &chatRequest{
		Model:               model,
		Messages:            req.Messages,
		Stream:              req.Stream,
		Tools:               req.Tools,
		ToolChoice:          req.ToolChoice,
		Metadata:            req.Metadata,
		FrequencyPenalty:    req.FrequencyPenalty,
		PresencePenalty:     req.PresencePenalty,
		TopP:                req.TopP,
		Temperature:         req.Temperature,
		LogitBias:           req.LogitBias,
		Logprobs:            req.Logprobs,
		TopLogprobs:         req.TopLogprobs,
		MaxTokens:           req.MaxTokens,
		MaxCompletionTokens: req.MaxCompletionTokens,
		Stop:                req.Stop,
	}

	if req.ReasoningEffort != "" && isReasoningModel(model) {
		payload.ReasoningEffort = req.ReasoningEffort
	}
	if req.Stream {
		payload.StreamOptions = &streamOptions{IncludeUsage: true}
	}

	return payload
}
