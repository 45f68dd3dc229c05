// Package redis implements vector similarity search on a Redis search
// index, backing the semantic response cache.
package redis

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/emberhq/hearth/internal/domain"
	"github.com/emberhq/hearth/internal/observability"
)

const (
	redisDialectVersion = 2
	bytesPerFloat32     = 4
	keyPrefix           = "cache:"
)

// VectorSearch implements the domain.SimilaritySearch interface using a
// Redis FT vector index with cosine distance.
type VectorSearch struct {
	client    *redis.Client
	indexName string
	dimension int
}

// NewVectorSearch creates a new Redis vector search adapter, creating the
// index when it does not exist yet.
func NewVectorSearch(client *redis.Client, indexName string, dimension int) (*VectorSearch, error) {
	v := &VectorSearch{
		client:    client,
		indexName: indexName,
		dimension: dimension,
	}
	if err := v.ensureIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	return v, nil
}

// Search finds vectors whose cosine similarity is above the threshold.
func (v *VectorSearch) Search(
	ctx context.Context,
	embedding []float64,
	threshold float64,
	limit int,
) ([]*domain.SearchResult, error) {
	logger := observability.FromContext(ctx)

	query := fmt.Sprintf("*=>[KNN %d @embedding $vec AS score]", limit)
	raw, err := v.client.FTSearchWithArgs(ctx, v.indexName, query,
		&redis.FTSearchOptions{
			Return: []redis.FTSearchReturn{
				{FieldName: "data"},
				{FieldName: "indexed_at"},
				{FieldName: "score"},
			},
			DialectVersion: redisDialectVersion,
			Params: map[string]any{
				"vec": packEmbedding(embedding),
			},
		},
	).Result()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]*domain.SearchResult, 0, len(raw.Docs))
	for _, doc := range raw.Docs {
		result, ok := toSearchResult(doc, threshold)
		if ok {
			results = append(results, result)
		}
	}

	logger.Debug("vector search completed",
		observability.Int("total_docs", raw.Total),
		observability.Int("above_threshold", len(results)))
	return results, nil
}

// Index stores a vector with associated data under the given key.
func (v *VectorSearch) Index(
	ctx context.Context,
	key string,
	embedding []float64,
	data []byte,
	ttl time.Duration,
) error {
	pipe := v.client.Pipeline()
	pipe.HSet(ctx, key,
		"embedding", packEmbedding(embedding),
		"data", string(data),
		"indexed_at", time.Now().Unix(),
	)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to index: %w", err)
	}
	return nil
}

// ensureIndex creates the search index when missing.
func (v *VectorSearch) ensureIndex(ctx context.Context) error {
	if _, err := v.client.FTInfo(ctx, v.indexName).Result(); err == nil {
		return nil
	}

	observability.FromContext(ctx).Info("creating redis search index",
		observability.String("index_name", v.indexName),
		observability.Int("dimension", v.dimension))

	_, err := v.client.FTCreate(ctx, v.indexName,
		&redis.FTCreateOptions{
			OnHash: true,
			Prefix: []any{keyPrefix},
		},
		&redis.FieldSchema{
			FieldName: "embedding",
			FieldType: redis.SearchFieldTypeVector,
			VectorArgs: &redis.FTVectorArgs{
				FlatOptions: &redis.FTFlatOptions{
					Type:           "FLOAT32",
					Dim:            v.dimension,
					DistanceMetric: "COSINE",
				},
			},
		},
		&redis.FieldSchema{
			FieldName: "data",
			FieldType: redis.SearchFieldTypeText,
		},
		&redis.FieldSchema{
			FieldName: "indexed_at",
			FieldType: redis.SearchFieldTypeNumeric,
			Sortable:  true,
		},
	).Result()
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	return nil
}

// packEmbedding converts a float64 vector to the little-endian float32
// binary layout the index expects.
func packEmbedding(embedding []float64) []byte {
	buf := make([]byte, len(embedding)*bytesPerFloat32)
	for i, f := range embedding {
		binary.LittleEndian.PutUint32(buf[i*bytesPerFloat32:], math.Float32bits(float32(f)))
	}
	return buf
}

// toSearchResult converts one search document, filtering by threshold. The
// index reports cosine distance; similarity is 1 - distance.
func toSearchResult(doc redis.Document, threshold float64) (*domain.SearchResult, bool) {
	scoreStr, ok := doc.Fields["score"]
	if !ok {
		return nil, false
	}
	distance, err := strconv.ParseFloat(scoreStr, 64)
	if err != nil {
		return nil, false
	}
	similarity := 1 - distance
	if similarity < threshold {
		return nil, false
	}

	result := &domain.SearchResult{
		Key:        doc.ID,
		Similarity: similarity,
		Data:       []byte(doc.Fields["data"]),
	}
	if indexedAt, err := strconv.ParseInt(doc.Fields["indexed_at"], 10, 64); err == nil {
		result.IndexedAt = time.Unix(indexedAt, 0)
	}
	return result, true
}
