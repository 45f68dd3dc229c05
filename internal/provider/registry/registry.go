// Package registry maps model-identifier prefixes to provider adapters.
// Resolution is a pure table lookup; no business logic lives here.
package registry

import (
	"context"
	"errors"
	"sync"

	"github.com/emberhq/hearth/internal/domain"
)

// Registry implements the domain.ProviderRegistry interface. Registration
// happens during startup; the table is effectively read-only afterwards and
// concurrent Resolve calls are safe.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]domain.Provider
}

// NewRegistry creates a new provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]domain.Provider),
	}
}

// Register inserts or overwrites the mapping for a prefix. Duplicate
// registration is last-write-wins.
func (r *Registry) Register(_ context.Context, prefix string, provider domain.Provider) error {
	if prefix == "" {
		return errors.New("prefix cannot be empty")
	}
	if provider == nil {
		return errors.New("provider cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.providers[prefix] = provider
	return nil
}

// Resolve splits the model identifier on its first path separator and looks
// up the prefix. Identifiers without a separator, and prefixes with no
// registered provider, fail with an *domain.UnknownProviderError naming the
// prefix.
func (r *Registry) Resolve(_ context.Context, modelID string) (domain.Provider, error) {
	prefix, _, ok := domain.SplitModelID(modelID)
	if !ok {
		prefix = modelID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[prefix]
	if !exists {
		return nil, &domain.UnknownProviderError{Prefix: prefix}
	}
	return provider, nil
}

// List returns all registered prefixes.
func (r *Registry) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefixes := make([]string, 0, len(r.providers))
	for prefix := range r.providers {
		prefixes = append(prefixes, prefix)
	}
	return prefixes, nil
}
