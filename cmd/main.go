package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	cacheredis "github.com/emberhq/hearth/internal/cache/redis"
	"github.com/emberhq/hearth/internal/config"
	"github.com/emberhq/hearth/internal/domain"
	embedding "github.com/emberhq/hearth/internal/embedding/openai"
	"github.com/emberhq/hearth/internal/http"
	"github.com/emberhq/hearth/internal/http/middleware"
	"github.com/emberhq/hearth/internal/observability"
	"github.com/emberhq/hearth/internal/provider/echo"
	"github.com/emberhq/hearth/internal/provider/openai"
	"github.com/emberhq/hearth/internal/provider/registry"
)

// ErrProviderNotConfigured indicates that a provider is not configured and should be skipped.
var ErrProviderNotConfigured = errors.New("provider not configured")

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	provide := func(constructor any) {
		if err := container.Provide(constructor); err != nil {
			log.Fatalf("Failed to build container: %v", err)
		}
	}

	// Configuration
	provide(config.Load)
	provide(config.ParseDependenciesConfig)

	// Observability
	provide(observability.InitLogger)
	provide(func(logger *zap.Logger) domain.EventPublisher {
		return observability.NewEventBus(logger)
	})

	// Provider Registry
	provide(func() domain.ProviderRegistry {
		return registry.NewRegistry()
	})

	// OpenAI Provider
	provide(func(cfg *openai.Config) (*openai.Provider, error) {
		if cfg.APIKey == "" {
			return nil, ErrProviderNotConfigured
		}
		return openai.NewProvider(*cfg)
	})

	// Pricing and cost
	provide(func() domain.PricingRegistry {
		return domain.NewInMemoryPricingRegistry()
	})
	provide(func(pricing domain.PricingRegistry) domain.CostCalculator {
		return domain.NewStandardCostCalculator(pricing)
	})

	// Semantic cache (optional)
	provide(newSemanticCache)

	// Retry policy
	provide(func(cfg *config.Retry) *domain.RetryPolicy {
		policy := domain.DefaultRetryPolicy()
		if cfg.MaxAttempts > 0 {
			policy.MaxAttempts = cfg.MaxAttempts
		}
		if cfg.InitialDelay > 0 {
			policy.InitialDelay = time.Duration(cfg.InitialDelay) * time.Millisecond
		}
		if cfg.MaxDelay > 0 {
			policy.MaxDelay = time.Duration(cfg.MaxDelay) * time.Millisecond
		}
		return policy
	})

	// Domain Services
	provide(domain.NewGatewayService)

	// HTTP Layer
	provide(func(cfg *config.CORS) middleware.Middleware {
		return middleware.Chain(middleware.CORS(cfg), middleware.Trace())
	})
	provide(http.NewHandler)
	provide(http.NewServer)

	// Register providers with registry (invoked for side effects)
	registerProviders(container)

	return container
}

func registerProviders(container *dig.Container) {
	ctx := context.Background()

	// Echo is always available for local development.
	if err := container.Invoke(func(reg domain.ProviderRegistry) error {
		provider := echo.NewProvider()
		return reg.Register(ctx, provider.Name(), provider)
	}); err != nil {
		log.Fatalf("Failed to register echo provider: %v", err)
	}

	err := container.Invoke(func(reg domain.ProviderRegistry, pricing domain.PricingRegistry, provider *openai.Provider) error {
		if err := reg.Register(ctx, openai.Prefix, provider); err != nil {
			return fmt.Errorf("failed to register OpenAI provider: %w", err)
		}
		return openai.RegisterPricing(ctx, pricing)
	})
	if err != nil && !errors.Is(err, ErrProviderNotConfigured) {
		log.Fatalf("Failed to register providers: %v", err)
	}
}

// newSemanticCache wires the semantic response cache when enabled; a nil
// cache disables caching in the gateway.
func newSemanticCache(cacheCfg *config.Cache, embCfg *embedding.Config) (domain.SemanticCache, error) {
	if !cacheCfg.Enabled {
		return nil, nil
	}

	generator, err := embedding.NewGenerator(*embCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build embedding generator: %w", err)
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cacheCfg.RedisAddr,
		Password: cacheCfg.RedisPassword,
	})
	search, err := cacheredis.NewVectorSearch(client, cacheCfg.IndexName, generator.Dimension())
	if err != nil {
		return nil, fmt.Errorf("failed to build vector search: %w", err)
	}

	return domain.NewSemanticCacheService(generator, search, cacheCfg.SimilarityThreshold), nil
}
