package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/ports/driven"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/ports/driving"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/logger"
)

// Ensure Ranker implements the interface.
var _ driving.Ranker = (*RankService)(nil)

const (
	// maxScanChunks bounds the brute-force similarity scan. The scan is
	// O(n) per query with no index, which is fine at the corpus sizes
	// this system handles but must not grow without bound.
	maxScanChunks = 5000

	// cosineEpsilon keeps the cosine denominator away from zero for
	// degenerate zero vectors.
	cosineEpsilon = 1e-12

	// defaultTopK is used when the caller passes a non-positive k.
	defaultTopK = 5
)

// RankService answers nearest-neighbour queries over the currently
// resolved chunk set with a brute-force cosine scan.
type RankService struct {
	resolver driving.ChunkResolver
	embedder driven.EmbeddingService
}

// NewRankService creates a ranker over the given resolver and embedder.
func NewRankService(resolver driving.ChunkResolver, embedder driven.EmbeddingService) *RankService {
	return &RankService{
		resolver: resolver,
		embedder: embedder,
	}
}

// Rank embeds the query, scores every resolved chunk by cosine similarity
// and returns the top k in descending score order. Ties keep the original
// corpus-scan order. Chunks that carry no stored vector (the local corpus
// persists none) are embedded on the fly before scoring.
//
// Failures are surfaced as typed errors, never as an empty successful
// result: the caller decides how a missing grounding context is handled.
func (s *RankService) Rank(ctx context.Context, query string, k int) ([]domain.RankedChunk, domain.Origin, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, "", fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if k <= 0 {
		k = defaultTopK
	}

	logger.Section("Ranking")
	logger.Debug("Query: %q (k=%d)", query, k)

	resolved, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("resolving chunks: %w", err)
	}

	chunks := resolved.Chunks
	if len(chunks) > maxScanChunks {
		logger.Warn("Corpus has %d chunks, scanning first %d", len(chunks), maxScanChunks)
		chunks = chunks[:maxScanChunks]
	}
	if len(chunks) == 0 {
		return []domain.RankedChunk{}, resolved.Origin, nil
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, "", fmt.Errorf("%w: embedding query: %w", domain.ErrEmbeddingService, err)
	}

	if err := s.fillMissingEmbeddings(ctx, chunks); err != nil {
		return nil, "", err
	}

	ranked := make([]domain.RankedChunk, len(chunks))
	for i, chunk := range chunks {
		ranked[i] = domain.RankedChunk{
			Chunk: chunk,
			Score: Cosine(queryVec, chunk.Embedding),
		}
	}

	// Stable: tied scores keep corpus-scan order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked, resolved.Origin, nil
}

// fillMissingEmbeddings embeds, in bounded batches, every chunk that has
// no stored vector.
func (s *RankService) fillMissingEmbeddings(ctx context.Context, chunks []domain.Chunk) error {
	var missing []int
	for i := range chunks {
		if len(chunks[i].Embedding) == 0 {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	logger.Debug("Embedding %d chunks without stored vectors", len(missing))

	for start := 0; start < len(missing); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(missing) {
			end = len(missing)
		}
		batch := missing[start:end]

		texts := make([]string, len(batch))
		for i, idx := range batch {
			texts[i] = chunks[idx].Text
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("%w: embedding chunk batch: %w", domain.ErrEmbeddingService, err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("%w: got %d vectors for %d texts", domain.ErrEmbeddingService, len(vectors), len(batch))
		}
		for i, idx := range batch {
			chunks[idx].Embedding = vectors[i]
		}
	}
	return nil
}

// Cosine returns the cosine similarity of two vectors. Vectors of unequal
// length are compared over their common prefix. The result is always in
// [-1, 1]; a zero vector scores zero.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + cosineEpsilon)
}
