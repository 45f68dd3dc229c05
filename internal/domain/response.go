package domain

// Response is a completed, non-streaming result. The field layout mirrors
// the OpenAI chat-completion wire shape so that known backend fields survive
// a decode/encode round trip without loss. The tree is owned exclusively by
// the caller after construction.
type Response struct {
	ID                string   `json:"id"`
	Object            string   `json:"object"`
	Created           int64    `json:"created"`
	Model             string   `json:"model"`
	SystemFingerprint string   `json:"system_fingerprint,omitempty"`
	ServiceTier       string   `json:"service_tier,omitempty"`
	Choices           []Choice `json:"choices"`
	Usage             *Usage   `json:"usage,omitempty"`

	// Provider is stamped by the gateway and never comes from the backend.
	Provider string `json:"provider,omitempty"`
}

// Choice is one completion candidate.
type Choice struct {
	FinishReason string          `json:"finish_reason"`
	Index        int             `json:"index"`
	Message      ResponseMessage `json:"message"`
	Logprobs     *Logprobs       `json:"logprobs,omitempty"`
}

// ResponseMessage is the model's output turn. Content is a pointer because
// backends report an explicit null alongside tool calls.
type ResponseMessage struct {
	Role         string        `json:"role"`
	Content      *string       `json:"content"`
	Refusal      *string       `json:"refusal,omitempty"`
	ToolCalls    []ToolCall    `json:"tool_calls,omitempty"`
	FunctionCall *FunctionCall `json:"function_call,omitempty"`
}

// Text returns the message content or "" when the backend reported null.
func (m ResponseMessage) Text() string {
	if m.Content == nil {
		return ""
	}
	return *m.Content
}

// ToolCall is a whole model-issued function invocation.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall names the invoked function and carries its JSON-encoded
// arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Usage is the token accounting block of a response.
type Usage struct {
	PromptTokens            int                      `json:"prompt_tokens"`
	CompletionTokens        int                      `json:"completion_tokens"`
	TotalTokens             int                      `json:"total_tokens"`
	PromptTokensDetails     *PromptTokensDetails     `json:"prompt_tokens_details,omitempty"`
	CompletionTokensDetails *CompletionTokensDetails `json:"completion_tokens_details,omitempty"`

	// Cost is computed by the gateway from the pricing registry and never
	// comes from the backend.
	Cost float64 `json:"cost,omitempty"`
}

// PromptTokensDetails breaks down prompt token usage.
type PromptTokensDetails struct {
	CachedTokens int `json:"cached_tokens"`
	AudioTokens  int `json:"audio_tokens"`
}

// CompletionTokensDetails breaks down completion token usage.
type CompletionTokensDetails struct {
	ReasoningTokens          int `json:"reasoning_tokens"`
	AudioTokens              int `json:"audio_tokens"`
	AcceptedPredictionTokens int `json:"accepted_prediction_tokens"`
	RejectedPredictionTokens int `json:"rejected_prediction_tokens"`
}

// Logprobs carries per-token log-probability diagnostics.
type Logprobs struct {
	Content []TokenLogprob `json:"content"`
	Refusal []TokenLogprob `json:"refusal,omitempty"`
}

// TokenLogprob is the log probability of one emitted token.
type TokenLogprob struct {
	Token       string       `json:"token"`
	Logprob     float64      `json:"logprob"`
	Bytes       []int        `json:"bytes,omitempty"`
	TopLogprobs []TopLogprob `json:"top_logprobs,omitempty"`
}

// TopLogprob is one alternative token candidate with its log probability.
type TopLogprob struct {
	Token   string  `json:"token"`
	Logprob float64 `json:"logprob"`
	Bytes   []int   `json:"bytes,omitempty"`
}

// DeltaResponse is the streaming chunk equivalent of Response.
type DeltaResponse struct {
	ID                string        `json:"id"`
	Object            string        `json:"object"`
	Created           int64         `json:"created"`
	Model             string        `json:"model"`
	SystemFingerprint string        `json:"system_fingerprint,omitempty"`
	ServiceTier       string        `json:"service_tier,omitempty"`
	Choices           []DeltaChoice `json:"choices"`
	Usage             *Usage        `json:"usage,omitempty"`
}

// DeltaChoice is one choice's increment within a streaming chunk. Index is
// stable across all chunks belonging to the same choice stream; FinishReason
// stays null until the final chunk of the choice.
type DeltaChoice struct {
	Index        int       `json:"index"`
	Delta        Delta     `json:"delta"`
	FinishReason *string   `json:"finish_reason"`
	Logprobs     *Logprobs `json:"logprobs,omitempty"`
}

// Delta carries the incremental message fields of one chunk. Role, content
// and tool calls are each optionally absent per chunk.
type Delta struct {
	Role      string          `json:"role,omitempty"`
	Content   *string         `json:"content,omitempty"`
	Refusal   *string         `json:"refusal,omitempty"`
	ToolCalls []DeltaToolCall `json:"tool_calls,omitempty"`
}

// Text returns the content increment or "" when absent.
func (d Delta) Text() string {
	if d.Content == nil {
		return ""
	}
	return *d.Content
}

// DeltaToolCall is an incremental tool invocation. Index correlates the
// fragments of one tool call so callers can accumulate arguments across
// chunks.
type DeltaToolCall struct {
	Index    int                `json:"index"`
	ID       string             `json:"id,omitempty"`
	Type     string             `json:"type,omitempty"`
	Function *DeltaFunctionCall `json:"function,omitempty"`
}

// DeltaFunctionCall is a partial function call; Arguments fragments are
// concatenated in arrival order.
type DeltaFunctionCall struct {
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
}

// StreamChunk is one decoded streaming event delivered to the caller. A
// chunk carries either a delta or a terminal error, never both. The channel
// the chunks arrive on is closed when the stream ends.
type StreamChunk struct {
	Delta *DeltaResponse
	Err   error
}
