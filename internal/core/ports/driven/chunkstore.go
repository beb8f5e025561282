package driven

import (
	"context"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
)

// ListOptions bounds a chunk listing.
type ListOptions struct {
	// Limit caps the number of returned chunks. Zero means the store's
	// default bound; listings are never unbounded.
	Limit int

	// WithEmbeddings includes stored vectors in the result. Metadata
	// listings leave them out to keep responses small.
	WithEmbeddings bool
}

// ChunkStore persists chunks keyed by a content hash.
// Backed by SQLite.
type ChunkStore interface {
	// UpsertIfAbsent inserts the chunk unless a record with the same
	// content hash already exists, in which case it is a no-op. The two
	// outcomes are not reported distinctly: repeated ingestion of
	// unchanged content converges on a stable stored set.
	UpsertIfAbsent(ctx context.Context, chunk domain.Chunk) error

	// UpsertByID inserts the chunk or replaces an existing record with
	// the same ID. Used by the operator bulk-upload path.
	UpsertByID(ctx context.Context, chunk domain.Chunk) error

	// ReplaceAll atomically replaces the entire stored chunk set.
	ReplaceAll(ctx context.Context, chunks []domain.Chunk) error

	// DeleteBySource removes every chunk ingested from the given source,
	// returning the number removed. Supports explicit supersession when
	// a source document is edited and re-ingested.
	DeleteBySource(ctx context.Context, source string) (int64, error)

	// List returns stored chunks in insertion order, bounded by opts.
	List(ctx context.Context, opts ListOptions) ([]domain.Chunk, error)

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int64, error)

	// Ping validates the store is reachable.
	Ping(ctx context.Context) error
}
