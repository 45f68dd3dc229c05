package domain_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emberhq/hearth/internal/domain"
)

func TestStandardCostCalculator_Calculate(t *testing.T) {
	ctx := context.Background()

	t.Run("should compute cost from registered per-1K pricing", func(t *testing.T) {
		registry := domain.NewInMemoryPricingRegistry()
		require.NoError(t, registry.RegisterPricing(ctx, "openai/gpt-4o", domain.PricingConfig{
			InputCostPer1K:  0.0025,
			OutputCostPer1K: 0.01,
		}))
		calc := domain.NewStandardCostCalculator(registry)

		cost, err := calc.Calculate(ctx, "openai/gpt-4o", domain.Usage{
			PromptTokens:     2000,
			CompletionTokens: 500,
		})

		require.NoError(t, err)
		require.InDelta(t, 0.0025*2+0.01*0.5, cost, 1e-9)
	})

	t.Run("should cost zero for an unknown model", func(t *testing.T) {
		calc := domain.NewStandardCostCalculator(domain.NewInMemoryPricingRegistry())

		cost, err := calc.Calculate(ctx, "openai/unlisted-model", domain.Usage{
			PromptTokens:     1000,
			CompletionTokens: 1000,
		})

		require.NoError(t, err)
		require.Zero(t, cost)
	})

	t.Run("should return error for empty model", func(t *testing.T) {
		calc := domain.NewStandardCostCalculator(domain.NewInMemoryPricingRegistry())

		_, err := calc.Calculate(ctx, "", domain.Usage{})
		require.Error(t, err)
	})
}

func TestInMemoryPricingRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("should reject empty model", func(t *testing.T) {
		registry := domain.NewInMemoryPricingRegistry()
		err := registry.RegisterPricing(ctx, "", domain.PricingConfig{})
		require.Error(t, err)
	})

	t.Run("should overwrite pricing for the same model", func(t *testing.T) {
		registry := domain.NewInMemoryPricingRegistry()
		require.NoError(t, registry.RegisterPricing(ctx, "openai/gpt-4o", domain.PricingConfig{InputCostPer1K: 1}))
		require.NoError(t, registry.RegisterPricing(ctx, "openai/gpt-4o", domain.PricingConfig{InputCostPer1K: 2}))

		pricing, err := registry.GetPricing(ctx, "openai/gpt-4o")
		require.NoError(t, err)
		require.Equal(t, 2.0, pricing.InputCostPer1K)
	})
}
