// Package local provides a deterministic in-process embedding service.
// It keeps the retrieval pipeline alive when no external service is
// configured: recall is basic, but behaviour is stable and offline.
package local

import (
	"context"
	"math"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Dimensions is the fixed vector size: one bucket per byte value.
const Dimensions = 256

// ModelName identifies the local embedder in place of a remote model.
const ModelName = "local-byte-frequency"

// EmbeddingService embeds text as an L2-normalised byte-frequency
// histogram. Identical text always yields the identical vector.
type EmbeddingService struct{}

// NewEmbeddingService creates the local embedder.
func NewEmbeddingService() *EmbeddingService {
	return &EmbeddingService{}
}

// Embed generates a unit-norm byte-frequency vector for the text.
func (s *EmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, Dimensions)
	for i := 0; i < len(text); i++ {
		vec[text[i]]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return vec, nil
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec, nil
}

// EmbedBatch embeds each text in order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embedding, err := s.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		embeddings[i] = embedding
	}
	return embeddings, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return Dimensions
}

// ModelName returns the local embedder identifier.
func (s *EmbeddingService) ModelName() string {
	return ModelName
}

// Ping always succeeds; there is nothing remote to reach.
func (s *EmbeddingService) Ping(_ context.Context) error {
	return nil
}

// Close releases resources.
func (s *EmbeddingService) Close() error {
	return nil
}
