package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/ports/driven"
)

// --- Mock implementations (shared across the service tests) ---

// mockChunkStore implements driven.ChunkStore for testing.
type mockChunkStore struct {
	chunks    []domain.Chunk
	listErr   error
	upsertErr error

	upserted []domain.Chunk
}

func (m *mockChunkStore) UpsertIfAbsent(_ context.Context, chunk domain.Chunk) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	for _, existing := range m.upserted {
		if existing.Hash == chunk.Hash {
			return nil
		}
	}
	m.upserted = append(m.upserted, chunk)
	return nil
}

func (m *mockChunkStore) UpsertByID(_ context.Context, chunk domain.Chunk) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, chunk)
	return nil
}

func (m *mockChunkStore) ReplaceAll(_ context.Context, chunks []domain.Chunk) error {
	m.upserted = append([]domain.Chunk(nil), chunks...)
	return nil
}

func (m *mockChunkStore) DeleteBySource(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

func (m *mockChunkStore) List(_ context.Context, opts driven.ListOptions) ([]domain.Chunk, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if opts.Limit > 0 && opts.Limit < len(m.chunks) {
		return m.chunks[:opts.Limit], nil
	}
	return m.chunks, nil
}

func (m *mockChunkStore) Count(_ context.Context) (int64, error) {
	return int64(len(m.chunks) + len(m.upserted)), nil
}

func (m *mockChunkStore) Ping(_ context.Context) error {
	return nil
}

// mockSettingsStore implements driven.SettingsStore for testing.
type mockSettingsStore struct {
	settings domain.Settings
	readErr  error
}

func (m *mockSettingsStore) Read(_ context.Context) (domain.Settings, error) {
	if m.readErr != nil {
		return domain.Settings{}, m.readErr
	}
	return m.settings, nil
}

func (m *mockSettingsStore) Write(_ context.Context, settings domain.Settings) error {
	m.settings = settings
	return nil
}

// mockLocalSource implements driven.LocalChunkSource for testing.
type mockLocalSource struct {
	chunks  []domain.Chunk
	loadErr error
	loads   int
}

func (m *mockLocalSource) Load(_ context.Context) ([]domain.Chunk, error) {
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.chunks, nil
}

// --- Test helpers ---

func storeChunks() []domain.Chunk {
	return []domain.Chunk{
		{ID: "s1", Text: "stored chunk one", Embedding: []float32{1, 0}},
		{ID: "s2", Text: "stored chunk two", Embedding: []float32{0, 1}},
	}
}

func localChunkSet() []domain.Chunk {
	return []domain.Chunk{
		{ID: "l1", Text: "local chunk one"},
	}
}

// --- Tests ---

func TestResolver_PrefersStore(t *testing.T) {
	store := &mockChunkStore{chunks: storeChunks()}
	local := &mockLocalSource{chunks: localChunkSet()}
	resolver := NewResolver(store, &mockSettingsStore{}, local)

	resolved, err := resolver.Resolve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.OriginStore, resolved.Origin)
	assert.Len(t, resolved.Chunks, 2)
	assert.Zero(t, local.loads)
}

func TestResolver_EmptyStoreFallsBack(t *testing.T) {
	store := &mockChunkStore{}
	local := &mockLocalSource{chunks: localChunkSet()}
	resolver := NewResolver(store, &mockSettingsStore{}, local)

	resolved, err := resolver.Resolve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.OriginLocal, resolved.Origin)
	assert.Len(t, resolved.Chunks, 1)
}

func TestResolver_StoreErrorFallsBack(t *testing.T) {
	store := &mockChunkStore{listErr: errors.New("disk on fire")}
	local := &mockLocalSource{chunks: localChunkSet()}
	resolver := NewResolver(store, &mockSettingsStore{}, local)

	resolved, err := resolver.Resolve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.OriginLocal, resolved.Origin)
}

func TestResolver_ForceLocalBypassesStore(t *testing.T) {
	store := &mockChunkStore{chunks: storeChunks()}
	settings := &mockSettingsStore{settings: domain.Settings{ForceLocalChunks: true}}
	local := &mockLocalSource{chunks: localChunkSet()}
	resolver := NewResolver(store, settings, local)

	resolved, err := resolver.Resolve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.OriginLocal, resolved.Origin)
}

func TestResolver_SettingsReadFailureDoesNotForceLocal(t *testing.T) {
	store := &mockChunkStore{chunks: storeChunks()}
	settings := &mockSettingsStore{readErr: errors.New("settings gone")}
	resolver := NewResolver(store, settings, &mockLocalSource{})

	resolved, err := resolver.Resolve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.OriginStore, resolved.Origin)
}

func TestResolver_NilStoreServesLocal(t *testing.T) {
	local := &mockLocalSource{chunks: localChunkSet()}
	resolver := NewResolver(nil, nil, local)

	resolved, err := resolver.Resolve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.OriginLocal, resolved.Origin)
}

func TestResolver_LocalLoadErrorPropagates(t *testing.T) {
	local := &mockLocalSource{loadErr: errors.New("bad corpus")}
	resolver := NewResolver(nil, nil, local)

	_, err := resolver.Resolve(context.Background())

	assert.Error(t, err)
}

func TestResolver_CachesLocalWithinTTL(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	local := &mockLocalSource{chunks: localChunkSet()}
	resolver := NewResolver(nil, nil, local, WithClock(clock))

	_, err := resolver.Resolve(context.Background())
	require.NoError(t, err)
	_, err = resolver.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, local.loads)
}

func TestResolver_ReloadsAfterTTL(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	local := &mockLocalSource{chunks: localChunkSet()}
	resolver := NewResolver(nil, nil, local, WithClock(clock), WithFallbackTTL(15*time.Second))

	_, err := resolver.Resolve(context.Background())
	require.NoError(t, err)

	now = now.Add(16 * time.Second)
	_, err = resolver.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, local.loads)
}

func TestResolver_CallersCannotMutateCachedCorpus(t *testing.T) {
	// The ranker writes embeddings into the chunk set it receives; that
	// write must land on a copy, not the resolver's cached array.
	local := &mockLocalSource{chunks: localChunkSet()}
	resolver := NewResolver(nil, nil, local)

	first, err := resolver.Resolve(context.Background())
	require.NoError(t, err)
	first.Chunks[0].Embedding = []float32{1, 2, 3}

	second, err := resolver.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, local.loads) // still served from cache
	assert.Nil(t, second.Chunks[0].Embedding)
}

func TestResolver_InvalidateCacheForcesReload(t *testing.T) {
	local := &mockLocalSource{chunks: localChunkSet()}
	resolver := NewResolver(nil, nil, local)

	_, err := resolver.Resolve(context.Background())
	require.NoError(t, err)

	resolver.InvalidateCache()
	_, err = resolver.Resolve(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, local.loads)
}
