package openai

import (
	"regexp"

	"github.com/emberhq/hearth/internal/domain"
)

// Prefix is the registry prefix this provider is conventionally registered
// under; model identifiers look like "openai/gpt-4o".
const Prefix = "openai"

// knownModels is the published model catalog, keyed by backend model name.
var knownModels = map[string]struct{}{
	"gpt-4o":            {},
	"gpt-4o-mini":       {},
	"gpt-4.1":           {},
	"gpt-4.1-mini":      {},
	"gpt-4.1-nano":      {},
	"gpt-4-turbo":       {},
	"gpt-4":             {},
	"gpt-3.5-turbo":     {},
	"chatgpt-4o-latest": {},
	"o1":                {},
	"o1-mini":           {},
	"o1-preview":        {},
	"o3":                {},
	"o3-mini":           {},
	"o4-mini":           {},
}

// Reasoning-class models follow the o-series naming pattern and accept the
// reasoning_effort parameter.
var reasoningModelPattern = regexp.MustCompile(`^o\d`)

func isReasoningModel(model string) bool {
	return reasoningModelPattern.MatchString(model)
}

// SupportedModels returns the list of models in the published catalog.
func SupportedModels() []string {
	models := make([]string, 0, len(knownModels))
	for model := range knownModels {
		models = append(models, model)
	}
	return models
}

func caps() domain.ProviderCaps {
	return domain.ProviderCaps{
		Models:           knownModels,
		IsReasoningModel: isReasoningModel,
	}
}
