package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emberhq/hearth/internal/domain"
	"github.com/emberhq/hearth/internal/provider/registry"
)

// mockProvider is a minimal domain.Provider for registry tests.
type mockProvider struct {
	name string
}

func (m *mockProvider) Complete(_ context.Context, _ *domain.Request) (*domain.Response, error) {
	return &domain.Response{}, nil
}

func (m *mockProvider) Stream(_ context.Context, _ *domain.Request) (<-chan domain.StreamChunk, error) {
	ch := make(chan domain.StreamChunk)
	close(ch)
	return ch, nil
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Caps() domain.ProviderCaps { return domain.ProviderCaps{} }

func TestRegistry_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("should register a provider under a prefix", func(t *testing.T) {
		reg := registry.NewRegistry()

		err := reg.Register(ctx, "openai", &mockProvider{name: "openai"})
		require.NoError(t, err)

		provider, err := reg.Resolve(ctx, "openai/gpt-4o")
		require.NoError(t, err)
		require.Equal(t, "openai", provider.Name())
	})

	t.Run("should overwrite on duplicate registration", func(t *testing.T) {
		reg := registry.NewRegistry()

		require.NoError(t, reg.Register(ctx, "openai", &mockProvider{name: "first"}))
		require.NoError(t, reg.Register(ctx, "openai", &mockProvider{name: "second"}))

		provider, err := reg.Resolve(ctx, "openai/gpt-4o")
		require.NoError(t, err)
		require.Equal(t, "second", provider.Name())
	})

	t.Run("should reject an empty prefix", func(t *testing.T) {
		reg := registry.NewRegistry()

		err := reg.Register(ctx, "", &mockProvider{name: "openai"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "prefix cannot be empty")
	})

	t.Run("should reject a nil provider", func(t *testing.T) {
		reg := registry.NewRegistry()

		err := reg.Register(ctx, "openai", nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "provider cannot be nil")
	})
}

func TestRegistry_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("should resolve by the first path segment only", func(t *testing.T) {
		reg := registry.NewRegistry()
		require.NoError(t, reg.Register(ctx, "openai", &mockProvider{name: "openai"}))

		provider, err := reg.Resolve(ctx, "openai/ft:gpt-4o/custom")
		require.NoError(t, err)
		require.Equal(t, "openai", provider.Name())
	})

	t.Run("should fail with the prefix for an unregistered provider", func(t *testing.T) {
		reg := registry.NewRegistry()

		_, err := reg.Resolve(ctx, "unknown/model")

		var upErr *domain.UnknownProviderError
		require.ErrorAs(t, err, &upErr)
		require.Equal(t, "unknown", upErr.Prefix)
		require.Contains(t, err.Error(), `unknown provider prefix "unknown"`)
	})

	t.Run("should treat an unprefixed identifier as its own prefix", func(t *testing.T) {
		reg := registry.NewRegistry()

		_, err := reg.Resolve(ctx, "gpt-4o")

		var upErr *domain.UnknownProviderError
		require.ErrorAs(t, err, &upErr)
		require.Equal(t, "gpt-4o", upErr.Prefix)
	})
}

func TestRegistry_List(t *testing.T) {
	t.Run("should list all registered prefixes", func(t *testing.T) {
		ctx := context.Background()
		reg := registry.NewRegistry()
		require.NoError(t, reg.Register(ctx, "openai", &mockProvider{name: "openai"}))
		require.NoError(t, reg.Register(ctx, "echo", &mockProvider{name: "echo"}))

		prefixes, err := reg.List(ctx)
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"openai", "echo"}, prefixes)
	})
}
