package driven

import (
	"context"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
)

// LocalChunkSource loads the fallback chunk corpus from local JSON files.
// It answers resolutions when the persistent store cannot.
type LocalChunkSource interface {
	// Load reads every JSON chunk file, merges their entries and
	// deduplicates by ID (first occurrence wins). Malformed entries are
	// skipped individually; a missing directory yields an empty corpus.
	Load(ctx context.Context) ([]domain.Chunk, error)
}
