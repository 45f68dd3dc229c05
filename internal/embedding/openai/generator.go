// Package openai generates text embeddings through the OpenAI embeddings
// API, used by the semantic response cache.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Known embedding model dimensions.
var modelDimensions = map[string]int{
	string(openai.EmbeddingModelTextEmbeddingAda002): 1536,
	string(openai.EmbeddingModelTextEmbedding3Small): 1536,
	string(openai.EmbeddingModelTextEmbedding3Large): 3072,
}

const defaultDimension = 1536

// Generator implements the domain.EmbeddingGenerator interface using the
// OpenAI embeddings API.
type Generator struct {
	client openai.Client
	model  string
}

// NewGenerator creates a new OpenAI embedding generator.
func NewGenerator(config Config) (*Generator, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if config.Model == "" {
		config.Model = string(openai.EmbeddingModelTextEmbeddingAda002)
	}

	return &Generator{
		client: openai.NewClient(option.WithAPIKey(config.APIKey)),
		model:  config.Model,
	}, nil
}

// Generate creates a vector embedding from text.
func (g *Generator) Generate(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, errors.New("text cannot be empty")
	}

	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
		Model: openai.EmbeddingModel(g.model),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("no embeddings returned")
	}

	return resp.Data[0].Embedding, nil
}

// Name returns the generator identifier.
func (g *Generator) Name() string {
	return "openai"
}

// Dimension returns the vector dimension of the configured model.
func (g *Generator) Dimension() int {
	if dim, ok := modelDimensions[g.model]; ok {
		return dim
	}
	return defaultDimension
}
