package driving

import (
	"context"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
)

// ChunkResolver decides, per request, which source serves the chunk set.
type ChunkResolver interface {
	// Resolve returns the current chunk set and the source that
	// answered. Exactly one source answers a given resolution.
	Resolve(ctx context.Context) (domain.ResolvedChunks, error)
}

// Ranker scores the resolved chunk set against a question.
type Ranker interface {
	// Rank embeds the query, scores it against the current chunk set by
	// cosine similarity and returns the top k chunks in descending
	// score order, along with the origin that served them. When fewer
	// than k chunks exist, all of them are returned.
	Rank(ctx context.Context, query string, k int) ([]domain.RankedChunk, domain.Origin, error)
}
