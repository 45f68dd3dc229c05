package domain

import (
	"context"
	"regexp"
	"strings"

	"github.com/emberhq/hearth/internal/observability"
)

// Numeric parameter bounds.
const (
	penaltyMin     = -2.0
	penaltyMax     = 2.0
	temperatureMax = 2.0
	topLogprobsMax = 20
	logitBiasMin   = -100.0
	logitBiasMax   = 100.0
	stopMaxCount   = 4
)

// Accepted base64 data URI form for image parts: image subtype must be one
// of jpeg, png, gif or webp.
var imageDataURIPattern = regexp.MustCompile(`^data:image/(jpeg|png|gif|webp);base64,[A-Za-z0-9+/]+={0,2}$`)

var validRoles = map[string]struct{}{
	RoleSystem:    {},
	RoleUser:      {},
	RoleAssistant: {},
}

var validReasoningEfforts = map[string]struct{}{
	ReasoningEffortLow:    {},
	ReasoningEffortMedium: {},
	ReasoningEffortHigh:   {},
}

// ValidateRequest checks a request against a provider's capabilities before
// any network I/O. It is a pure function apart from the deprecation warning
// log; it short-circuits on the first violation and returns a
// *ValidationError naming the parameter, its bound and the offending value.
func ValidateRequest(ctx context.Context, req *Request, caps ProviderCaps) error {
	if req == nil {
		return NewValidationError("request", "request cannot be nil")
	}

	model := BackendModel(req.Model)
	if !caps.SupportsModel(model) {
		return NewValidationError("model", "model %q is not supported", model)
	}

	if err := validateMessages(req.Messages); err != nil {
		return err
	}
	if err := validateTools(req.Tools, req.ToolChoice); err != nil {
		return err
	}
	if err := validateReasoningEffort(req.ReasoningEffort, model, caps); err != nil {
		return err
	}
	if err := validateSampling(req); err != nil {
		return err
	}

	if len(req.Stop) > stopMaxCount {
		return NewValidationError("stop", "at most %d stop sequences are allowed, got %d", stopMaxCount, len(req.Stop))
	}

	if req.MaxTokens != nil {
		observability.FromContext(ctx).Warn("max_tokens is deprecated, use max_completion_tokens",
			observability.String("model", req.Model))
	}

	return nil
}

func validateMessages(messages []Message) error {
	if len(messages) == 0 {
		return NewValidationError("messages", "messages empty, at least one message is required")
	}

	for i, msg := range messages {
		if _, ok := validRoles[msg.Role]; !ok {
			return NewValidationError("messages", "message %d has role %q, valid roles are system, user, assistant", i, msg.Role)
		}
		if err := validateContent(i, msg.Content); err != nil {
			return err
		}
	}
	return nil
}

func validateContent(index int, content Content) error {
	if !content.IsParts() {
		if content.Text == "" {
			return NewValidationError("messages", "message %d content is empty", index)
		}
		return nil
	}

	if len(content.Parts) == 0 {
		return NewValidationError("messages", "message %d content parts are empty", index)
	}

	hasText := false
	for _, part := range content.Parts {
		switch part.Type {
		case PartTypeText:
			hasText = true
		case PartTypeImageURL:
			if err := validateImagePart(index, part); err != nil {
				return err
			}
		default:
			return NewValidationError("messages", "message %d has content part type %q, valid types are text, image_url", index, part.Type)
		}
	}
	if !hasText {
		return NewValidationError("messages", "message %d content parts must include at least one text part", index)
	}
	return nil
}

func validateImagePart(index int, part ContentPart) error {
	if part.ImageURL == nil || part.ImageURL.URL == "" {
		return NewValidationError("messages", "message %d image part is missing a url", index)
	}

	url := part.ImageURL.URL
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return nil
	}
	if strings.HasPrefix(url, "data:") {
		if !imageDataURIPattern.MatchString(url) {
			return NewValidationError("messages", "message %d image data URI must be base64 with subtype jpeg, png, gif or webp", index)
		}
		return nil
	}
	return NewValidationError("messages", "message %d image url must be http(s) or a base64 image data URI", index)
}

func validateTools(tools []ToolSpec, choice *ToolChoice) error {
	if choice != nil && len(tools) == 0 {
		return NewValidationError("tool_choice", "tool_choice cannot be set when tools is empty")
	}

	names := make(map[string]struct{}, len(tools))
	for i, tool := range tools {
		if tool.Type != "function" {
			return NewValidationError("tools", "tool %d has type %q, every tool must declare type \"function\"", i, tool.Type)
		}
		if tool.Function.Name == "" {
			return NewValidationError("tools", "tool %d function name is empty", i)
		}
		names[tool.Function.Name] = struct{}{}
	}

	if choice == nil {
		return nil
	}
	if choice.Function != "" {
		if _, ok := names[choice.Function]; !ok {
			return NewValidationError("tool_choice", "function %q not found in tools", choice.Function)
		}
		return nil
	}
	if choice.Mode != ToolChoiceAuto && choice.Mode != ToolChoiceNone {
		return NewValidationError("tool_choice", "tool_choice %q is not valid, must be auto, none or a function selector", choice.Mode)
	}
	return nil
}

func validateReasoningEffort(effort, model string, caps ProviderCaps) error {
	if effort == "" {
		return nil
	}
	// Only reasoning-class models interpret the parameter; others pass
	// through unvalidated.
	if caps.IsReasoningModel == nil || !caps.IsReasoningModel(model) {
		return nil
	}
	if _, ok := validReasoningEfforts[effort]; !ok {
		return NewValidationError("reasoning_effort", "reasoning_effort %q is not valid, must be one of low, medium, high", effort)
	}
	return nil
}

func validateSampling(req *Request) error {
	if v := req.FrequencyPenalty; v != nil && (*v < penaltyMin || *v > penaltyMax) {
		return NewValidationError("frequency_penalty", "frequency_penalty %v is out of range, must be between -2.0 and 2.0", *v)
	}
	if v := req.PresencePenalty; v != nil && (*v < penaltyMin || *v > penaltyMax) {
		return NewValidationError("presence_penalty", "presence_penalty %v is out of range, must be between -2.0 and 2.0", *v)
	}
	if v := req.TopP; v != nil && (*v < 0 || *v > 1) {
		return NewValidationError("top_p", "top_p %v is out of range, must be between 0 and 1", *v)
	}
	if v := req.Temperature; v != nil && (*v < 0 || *v > temperatureMax) {
		return NewValidationError("temperature", "temperature %v is out of range, must be between 0 and 2", *v)
	}
	if v := req.TopLogprobs; v != nil {
		if *v < 0 || *v > topLogprobsMax {
			return NewValidationError("top_logprobs", "top_logprobs %d is out of range, must be between 0 and 20", *v)
		}
		if req.Logprobs == nil || !*req.Logprobs {
			return NewValidationError("top_logprobs", "top_logprobs requires logprobs to be true")
		}
	}
	for token, bias := range req.LogitBias {
		if bias < logitBiasMin || bias > logitBiasMax {
			return NewValidationError("logit_bias", "logit_bias value %v for token %q is out of range, must be between -100 and 100", bias, token)
		}
	}
	return nil
}
