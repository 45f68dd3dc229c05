package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emberhq/hearth/internal/observability"
)

const cacheTTL = 1 * time.Hour

// GatewayService is the client facade: it resolves the provider for a
// prefixed model identifier, runs the call with the configured retry policy
// and stamps provider and cost onto the result. Registry and collaborators
// are injected; there is no process-wide state, so multiple independently
// configured gateways can coexist.
type GatewayService struct {
	registry       ProviderRegistry
	costCalculator CostCalculator
	cache          SemanticCache
	events         EventPublisher
	retry          *RetryPolicy
}

// NewGatewayService creates a new gateway service (DI constructor). cache
// and events may be nil; retry falls back to the default policy.
func NewGatewayService(
	registry ProviderRegistry,
	costCalculator CostCalculator,
	cache SemanticCache,
	events EventPublisher,
	retry *RetryPolicy,
) *GatewayService {
	if retry == nil {
		retry = DefaultRetryPolicy()
	}
	return &GatewayService{
		registry:       registry,
		costCalculator: costCalculator,
		cache:          cache,
		events:         events,
		retry:          retry,
	}
}

// Complete handles a non-streaming completion request, routed by the
// request's model prefix.
func (g *GatewayService) Complete(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.Model == "" {
		return nil, errors.New("model cannot be empty")
	}

	provider, err := g.registry.Resolve(ctx, req.Model)
	if err != nil {
		return nil, err
	}
	ctx = observability.WithProvider(ctx, provider.Name())
	logger := observability.FromContext(ctx)

	if cached := g.lookupCache(ctx, req); cached != nil {
		return cached, nil
	}

	var response *Response
	err = g.retry.Do(ctx, func() error {
		var callErr error
		response, callErr = provider.Complete(ctx, req)
		return callErr
	})
	if err != nil {
		g.publish(ctx, "completion.failed", map[string]interface{}{
			"provider": provider.Name(),
			"model":    req.Model,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	response.Provider = provider.Name()
	g.stampCost(ctx, req.Model, response)
	g.storeCache(ctx, req, response)

	g.publish(ctx, "completion.finished", map[string]interface{}{
		"provider": provider.Name(),
		"model":    req.Model,
	})
	logger.Debug("completion finished",
		observability.String("provider", provider.Name()),
		observability.String("model", req.Model))

	return response, nil
}

// Stream handles a streaming completion request, routed by the request's
// model prefix. Streams are never retried and bypass the cache.
func (g *GatewayService) Stream(ctx context.Context, req *Request) (<-chan StreamChunk, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}
	if req.Model == "" {
		return nil, errors.New("model cannot be empty")
	}

	provider, err := g.registry.Resolve(ctx, req.Model)
	if err != nil {
		return nil, err
	}
	ctx = observability.WithProvider(ctx, provider.Name())

	chunks, err := provider.Stream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to stream from provider: %w", err)
	}

	g.publish(ctx, "completion.stream_started", map[string]interface{}{
		"provider": provider.Name(),
		"model":    req.Model,
	})
	return chunks, nil
}

// lookupCache returns a cached response or nil. Cache failures degrade to a
// provider call, never a request failure.
func (g *GatewayService) lookupCache(ctx context.Context, req *Request) *Response {
	if g.cache == nil || req.Stream {
		return nil
	}

	logger := observability.FromContext(ctx)
	cached, err := g.cache.Get(ctx, req)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			logger.Warn("cache get failed, continuing without cache", observability.Error(err))
		}
		return nil
	}
	if cached == nil {
		return nil
	}

	logger.Info("cache hit",
		observability.Float64("similarity_score", cached.SimilarityScore),
		observability.String("model", cached.Response.Model))
	return cached.Response
}

func (g *GatewayService) storeCache(ctx context.Context, req *Request, resp *Response) {
	if g.cache == nil || req.Stream {
		return
	}
	if err := g.cache.Set(ctx, req, resp, cacheTTL); err != nil {
		observability.FromContext(ctx).Warn("failed to store in cache", observability.Error(err))
	}
}

func (g *GatewayService) stampCost(ctx context.Context, modelID string, resp *Response) {
	if g.costCalculator == nil || resp.Usage == nil {
		return
	}
	cost, _ := g.costCalculator.Calculate(ctx, modelID, *resp.Usage)
	resp.Usage.Cost = cost
}

func (g *GatewayService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if g.events == nil {
		return
	}
	g.events.Publish(ctx, eventType, data)
}
