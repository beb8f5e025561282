package services

import (
	"context"
	"sync"
	"time"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/ports/driven"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/ports/driving"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/logger"
)

// Ensure Resolver implements the interface.
var _ driving.ChunkResolver = (*Resolver)(nil)

// DefaultFallbackTTL is how long a loaded local corpus stays cached
// before the directory is re-scanned. Staleness inside the window is
// acceptable; the cache is advisory, not a correctness guarantee.
const DefaultFallbackTTL = 15 * time.Second

// fallbackCache holds one loaded local corpus with its load time.
// Owned by the resolver so expiry is testable through the injected clock.
type fallbackCache struct {
	chunks []domain.Chunk
	when   time.Time
}

// Resolver decides per request whether chunks are served from the
// persistent store or from the local fallback corpus. Exactly one source
// answers a given resolution; the two are never merged.
type Resolver struct {
	store    driven.ChunkStore
	settings driven.SettingsStore
	local    driven.LocalChunkSource
	ttl      time.Duration
	now      func() time.Time

	mu    sync.Mutex
	cache *fallbackCache
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithFallbackTTL overrides the local corpus cache lifetime.
func WithFallbackTTL(ttl time.Duration) ResolverOption {
	return func(r *Resolver) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithClock overrides the time source. Used in tests to drive TTL expiry.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// NewResolver creates a chunk source resolver. The store and settings
// store may be nil when no persistent store is configured, in which case
// every resolution is served locally.
func NewResolver(
	store driven.ChunkStore,
	settings driven.SettingsStore,
	local driven.LocalChunkSource,
	opts ...ResolverOption,
) *Resolver {
	r := &Resolver{
		store:    store,
		settings: settings,
		local:    local,
		ttl:      DefaultFallbackTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the current chunk set and the source that answered.
//
// The store answers only when it is configured, reachable, not bypassed
// by the force-local toggle, and actually holds chunks. Every other
// outcome falls back to the local corpus.
func (r *Resolver) Resolve(ctx context.Context) (domain.ResolvedChunks, error) {
	if r.store != nil && !r.forceLocal(ctx) {
		chunks, err := r.store.List(ctx, driven.ListOptions{WithEmbeddings: true})
		if err != nil {
			logger.Warn("Chunk store read failed, falling back to local corpus: %v", err)
		} else if len(chunks) > 0 {
			logger.Debug("Resolved %d chunks from store", len(chunks))
			return domain.ResolvedChunks{Origin: domain.OriginStore, Chunks: chunks}, nil
		}
	}

	chunks, err := r.localChunks(ctx)
	if err != nil {
		return domain.ResolvedChunks{}, err
	}
	logger.Debug("Resolved %d chunks from local corpus", len(chunks))
	return domain.ResolvedChunks{Origin: domain.OriginLocal, Chunks: chunks}, nil
}

// InvalidateCache drops the cached local corpus so the next resolution
// re-scans the directory.
func (r *Resolver) InvalidateCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = nil
}

// forceLocal reads the operator toggle. Read once per resolution; a
// settings read failure counts as "not forced" so an unreachable store
// still falls back through the empty-set path rather than erroring here.
func (r *Resolver) forceLocal(ctx context.Context) bool {
	if r.settings == nil {
		return false
	}
	settings, err := r.settings.Read(ctx)
	if err != nil {
		logger.Debug("Settings read failed, not forcing local: %v", err)
		return false
	}
	return settings.ForceLocalChunks
}

// localChunks returns the cached local corpus, re-loading it when the
// TTL has lapsed. Callers get a copy: the cached backing array is owned
// by the resolver, and consumers (the ranker fills in missing
// embeddings) mutate their result outside this lock.
func (r *Resolver) localChunks(ctx context.Context) ([]domain.Chunk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cache != nil && r.now().Sub(r.cache.when) < r.ttl {
		return append([]domain.Chunk(nil), r.cache.chunks...), nil
	}

	if r.local == nil {
		return nil, nil
	}
	chunks, err := r.local.Load(ctx)
	if err != nil {
		return nil, err
	}
	r.cache = &fallbackCache{chunks: chunks, when: r.now()}
	return append([]domain.Chunk(nil), chunks...), nil
}
