package domain

import "context"

// Provider adapts one backend model-serving API. Implementations validate
// the request, build the wire payload, execute the transport and normalize
// the result; callers never see raw backend JSON. Providers hold only
// configuration and are safe for concurrent use.
type Provider interface {
	// Complete executes a non-streaming completion call.
	Complete(ctx context.Context, req *Request) (*Response, error)

	// Stream executes a streaming completion call. Decoded chunks arrive in
	// strict order; the channel is closed when the stream ends. Canceling
	// ctx aborts the underlying connection.
	Stream(ctx context.Context, req *Request) (<-chan StreamChunk, error)

	// Name returns the provider identifier.
	Name() string

	// Caps describes the provider's model catalog and model classes for
	// validation.
	Caps() ProviderCaps
}

// ProviderCaps describes what a provider accepts.
type ProviderCaps struct {
	// Models is the known-model set, keyed by backend model name. An empty
	// set means an open catalog: any non-empty model is accepted.
	Models map[string]struct{}

	// IsReasoningModel classifies reasoning-class models, which accept the
	// reasoning_effort parameter. May be nil when the provider has none.
	IsReasoningModel func(model string) bool
}

// SupportsModel reports whether the backend model name is accepted.
func (c ProviderCaps) SupportsModel(model string) bool {
	if len(c.Models) == 0 {
		return model != ""
	}
	_, ok := c.Models[model]
	return ok
}

// ProviderRegistry maps model-identifier prefixes to providers. The table is
// written during startup registration only; concurrent Resolve calls are
// safe.
type ProviderRegistry interface {
	// Register inserts or overwrites the mapping for a prefix
	// (last-write-wins).
	Register(ctx context.Context, prefix string, provider Provider) error

	// Resolve splits the model identifier on its first path separator and
	// returns the provider registered for the prefix, or an
	// *UnknownProviderError naming the prefix.
	Resolve(ctx context.Context, modelID string) (Provider, error)

	// List returns all registered prefixes.
	List(ctx context.Context) ([]string, error)
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}
