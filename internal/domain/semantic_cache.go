package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emberhq/hearth/internal/observability"
)

// ErrCacheMiss indicates no cached entry was found.
var ErrCacheMiss = errors.New("cache miss")

// SemanticCacheService implements semantic caching using embeddings and
// vector search. Only non-streaming responses are cached.
type SemanticCacheService struct {
	embeddingGen     EmbeddingGenerator
	similaritySearch SimilaritySearch
	threshold        float64
}

// NewSemanticCacheService creates a new semantic cache service.
func NewSemanticCacheService(
	embeddingGen EmbeddingGenerator,
	similaritySearch SimilaritySearch,
	threshold float64,
) *SemanticCacheService {
	return &SemanticCacheService{
		embeddingGen:     embeddingGen,
		similaritySearch: similaritySearch,
		threshold:        threshold,
	}
}

// Get retrieves a cached response for a semantically similar request.
func (s *SemanticCacheService) Get(ctx context.Context, req *Request) (*CachedResponse, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	queryText := s.buildQueryText(req)

	embedding, err := s.embeddingGen.Generate(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	results, err := s.similaritySearch.Search(ctx, embedding, s.threshold, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to search similar vectors: %w", err)
	}
	if len(results) == 0 {
		logger.Debug("no similar cached entry",
			observability.Float64("threshold", s.threshold))
		return nil, ErrCacheMiss
	}

	cached := &CachedResponse{
		SimilarityScore: results[0].Similarity,
		CachedAt:        results[0].IndexedAt,
		OriginalModel:   req.Model,
	}
	if unmarshalErr := json.Unmarshal(results[0].Data, &cached.Response); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal cached response: %w", unmarshalErr)
	}

	logger.Debug("found similar cached entry",
		observability.Float64("similarity", results[0].Similarity),
		observability.String("cache_key", results[0].Key))
	return cached, nil
}

// Set stores a response with its embedding in the cache.
func (s *SemanticCacheService) Set(
	ctx context.Context,
	req *Request,
	resp *Response,
	ttl time.Duration,
) error {
	if req == nil {
		return errors.New("request cannot be nil")
	}
	if resp == nil {
		return errors.New("response cannot be nil")
	}

	queryText := s.buildQueryText(req)
	embedding, err := s.embeddingGen.Generate(ctx, queryText)
	if err != nil {
		return fmt.Errorf("failed to generate embedding: %w", err)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	cacheKey := s.generateCacheKey(queryText)
	if indexErr := s.similaritySearch.Index(ctx, cacheKey, embedding, data, ttl); indexErr != nil {
		return fmt.Errorf("failed to index in cache: %w", indexErr)
	}

	observability.FromContext(ctx).Debug("indexed response in cache",
		observability.String("cache_key", cacheKey),
		observability.Int("data_size", len(data)))
	return nil
}

// buildQueryText constructs a consistent text representation of the request
// for embedding. Multimodal content is flattened to its text parts.
func (s *SemanticCacheService) buildQueryText(req *Request) string {
	var messages []string
	for _, msg := range req.Messages {
		messages = append(messages, fmt.Sprintf("%s: %s", msg.Role, msg.Content.AsText()))
	}
	return fmt.Sprintf("model: %s | messages: %s", req.Model, strings.Join(messages, " "))
}

// generateCacheKey creates a unique cache key from query text.
func (s *SemanticCacheService) generateCacheKey(queryText string) string {
	hash := sha256.Sum256([]byte(queryText))
	return fmt.Sprintf("cache:%s", hex.EncodeToString(hash[:]))
}
