package openai

import (
	"context"
	"fmt"

	"github.com/emberhq/hearth/internal/domain"
)

// Pricing per 1K tokens in USD, keyed by prefixed model identifier.
var modelPricing = map[string]domain.PricingConfig{
	Prefix + "/gpt-4o":        {InputCostPer1K: 0.0025, OutputCostPer1K: 0.01},
	Prefix + "/gpt-4o-mini":   {InputCostPer1K: 0.00015, OutputCostPer1K: 0.0006},
	Prefix + "/gpt-4.1":       {InputCostPer1K: 0.002, OutputCostPer1K: 0.008},
	Prefix + "/gpt-4.1-mini":  {InputCostPer1K: 0.0004, OutputCostPer1K: 0.0016},
	Prefix + "/gpt-4-turbo":   {InputCostPer1K: 0.01, OutputCostPer1K: 0.03},
	Prefix + "/gpt-4":         {InputCostPer1K: 0.03, OutputCostPer1K: 0.06},
	Prefix + "/gpt-3.5-turbo": {InputCostPer1K: 0.0005, OutputCostPer1K: 0.0015},
	Prefix + "/o1":            {InputCostPer1K: 0.015, OutputCostPer1K: 0.06},
	Prefix + "/o1-mini":       {InputCostPer1K: 0.0011, OutputCostPer1K: 0.0044},
	Prefix + "/o3-mini":       {InputCostPer1K: 0.0011, OutputCostPer1K: 0.0044},
}

// RegisterPricing registers OpenAI model pricing with the registry.
func RegisterPricing(ctx context.Context, registry domain.PricingRegistry) error {
	for model, config := range modelPricing {
		if err := registry.RegisterPricing(ctx, model, config); err != nil {
			return fmt.Errorf("failed to register pricing for model %s: %w", model, err)
		}
	}
	return nil
}
