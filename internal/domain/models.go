package domain

import (
	"encoding/json"
	"errors"
	"strings"
)

// Message roles accepted on a request.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Content part types.
const (
	PartTypeText     = "text"
	PartTypeImageURL = "image_url"
)

// Tool choice modes. A ToolChoice either carries one of these modes or names
// a specific function.
const (
	ToolChoiceAuto = "auto"
	ToolChoiceNone = "none"
)

// Reasoning effort levels accepted for reasoning-class models.
const (
	ReasoningEffortLow    = "low"
	ReasoningEffortMedium = "medium"
	ReasoningEffortHigh   = "high"
)

// Request is a normalized completion call in OpenAI chat-completion shape.
// The model field is a prefixed identifier ("<provider>/<model>"); the prefix
// selects the provider and is stripped before the wire call. A Request is
// owned by the caller and never mutated by the gateway or providers.
type Request struct {
	Model               string             `json:"model"`
	Messages            []Message          `json:"messages"`
	Stream              bool               `json:"stream,omitempty"`
	Tools               []ToolSpec         `json:"tools,omitempty"`
	ToolChoice          *ToolChoice        `json:"tool_choice,omitempty"`
	ReasoningEffort     string             `json:"reasoning_effort,omitempty"`
	Metadata            map[string]string  `json:"metadata,omitempty"`
	FrequencyPenalty    *float64           `json:"frequency_penalty,omitempty"`
	PresencePenalty     *float64           `json:"presence_penalty,omitempty"`
	TopP                *float64           `json:"top_p,omitempty"`
	Temperature         *float64           `json:"temperature,omitempty"`
	LogitBias           map[string]float64 `json:"logit_bias,omitempty"`
	Logprobs            *bool              `json:"logprobs,omitempty"`
	TopLogprobs         *int               `json:"top_logprobs,omitempty"`
	MaxTokens           *int               `json:"max_tokens,omitempty"` // Deprecated: use MaxCompletionTokens.
	MaxCompletionTokens *int               `json:"max_completion_tokens,omitempty"`
	Stop                Stop               `json:"stop,omitempty"`
}

// Message is one conversation turn.
type Message struct {
	Role    string  `json:"role"`
	Content Content `json:"content"`
}

// Content is either a plain string or an ordered sequence of parts. On the
// wire it marshals back to whichever form it was built from.
type Content struct {
	Text  string
	Parts []ContentPart
}

// TextContent builds plain string content.
func TextContent(text string) Content {
	return Content{Text: text}
}

// PartsContent builds multi-part content.
func PartsContent(parts ...ContentPart) Content {
	return Content{Parts: parts}
}

// IsParts reports whether the content is a part sequence.
func (c Content) IsParts() bool {
	return c.Parts != nil
}

// AsText flattens the content to plain text. For part sequences the text
// parts are joined with newlines; image parts are skipped.
func (c Content) AsText() string {
	if !c.IsParts() {
		return c.Text
	}
	texts := make([]string, 0, len(c.Parts))
	for _, p := range c.Parts {
		if p.Type == PartTypeText {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}

// MarshalJSON emits a bare string or a part array.
func (c Content) MarshalJSON() ([]byte, error) {
	if c.IsParts() {
		return json.Marshal(c.Parts)
	}
	return json.Marshal(c.Text)
}

// UnmarshalJSON accepts a bare string or a part array.
func (c *Content) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		c.Text = text
		c.Parts = nil
		return nil
	}
	var parts []ContentPart
	if err := json.Unmarshal(data, &parts); err != nil {
		return errors.New("content must be a string or an array of content parts")
	}
	c.Text = ""
	c.Parts = parts
	return nil
}

// ContentPart is one multimodal content fragment.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// TextPart builds a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: PartTypeText, Text: text}
}

// ImagePart builds an image content part from an http(s) URL or a base64
// data URI.
func ImagePart(url string) ContentPart {
	return ContentPart{Type: PartTypeImageURL, ImageURL: &ImageURL{URL: url}}
}

// ImageURL references an image by URL or data URI.
type ImageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

// ToolSpec describes one callable function exposed to the model. Type must
// always be "function".
type ToolSpec struct {
	Type     string       `json:"type"`
	Function FunctionSpec `json:"function"`
}

// FunctionSpec carries the function name, description and JSON-schema
// parameter definition of a tool.
type FunctionSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// ToolChoice directs tool usage: a bare mode ("auto"/"none") or a named
// function. Exactly one of Mode and Function is set.
type ToolChoice struct {
	Mode     string
	Function string
}

// ToolChoiceFunction builds a tool choice naming a specific function.
func ToolChoiceFunction(name string) *ToolChoice {
	return &ToolChoice{Function: name}
}

// MarshalJSON emits a bare mode string or the function-selector object.
func (t ToolChoice) MarshalJSON() ([]byte, error) {
	if t.Function != "" {
		return json.Marshal(map[string]any{
			"type":     "function",
			"function": map[string]string{"name": t.Function},
		})
	}
	return json.Marshal(t.Mode)
}

// UnmarshalJSON accepts a bare mode string or a function-selector object.
func (t *ToolChoice) UnmarshalJSON(data []byte) error {
	var mode string
	if err := json.Unmarshal(data, &mode); err == nil {
		t.Mode = mode
		t.Function = ""
		return nil
	}
	var selector struct {
		Type     string `json:"type"`
		Function struct {
			Name string `json:"name"`
		} `json:"function"`
	}
	if err := json.Unmarshal(data, &selector); err != nil {
		return errors.New("tool_choice must be a string or a function selector object")
	}
	t.Mode = ""
	t.Function = selector.Function.Name
	return nil
}

// Stop holds the stop sequences of a request. On the wire it accepts a bare
// string or an array of strings.
type Stop []string

// MarshalJSON emits a bare string for a single sequence, an array otherwise.
func (s Stop) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}
	return json.Marshal([]string(s))
}

// UnmarshalJSON accepts a bare string or an array of strings.
func (s *Stop) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = Stop{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.New("stop must be a string or an array of strings")
	}
	*s = Stop(many)
	return nil
}

// SplitModelID splits a prefixed model identifier on the first path
// separator. ok is false when no separator is present.
func SplitModelID(modelID string) (prefix, model string, ok bool) {
	return strings.Cut(modelID, "/")
}

// BackendModel returns the backend-facing model name, with the provider
// prefix stripped. Identifiers without a prefix are returned verbatim.
func BackendModel(modelID string) string {
	if _, model, ok := SplitModelID(modelID); ok {
		return model
	}
	return modelID
}
