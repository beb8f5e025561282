package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/ports/driven"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/ports/driving"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/logger"
)

// Ensure Ingestor implements the interface.
var _ driving.Ingestor = (*Ingestor)(nil)

// Ingestion bounds. Embedding batches are capped per external call as a
// throughput/cost boundary; the per-file cap guards against pathological
// documents flooding the store.
const (
	embedBatchSize   = 100
	maxChunksPerFile = 2000
)

// Ingestor walks a corpus directory and turns every supported file into
// embedded, content-addressed chunks. Files are processed strictly
// sequentially, and batches within a file sequentially, so at most one
// embedding call is ever in flight.
type Ingestor struct {
	registry driven.ExtractorRegistry
	embedder driven.EmbeddingService
	store    driven.ChunkStore
	now      func() time.Time
}

// NewIngestor creates an ingestor over the given extractor registry,
// embedding service and chunk store.
func NewIngestor(
	registry driven.ExtractorRegistry,
	embedder driven.EmbeddingService,
	store driven.ChunkStore,
) *Ingestor {
	return &Ingestor{
		registry: registry,
		embedder: embedder,
		store:    store,
		now:      time.Now,
	}
}

// IngestDir ingests every supported file under root.
//
// A missing root is a deliberate no-op. Unsupported and undecodable files
// are skipped (logged, never fatal). An embedding failure abandons the
// current file's remaining batches; chunks already committed stay in the
// store, and re-running ingestion is idempotent. Only a store write
// failure aborts the run.
func (s *Ingestor) IngestDir(ctx context.Context, root string) (*driving.IngestReport, error) {
	report := &driving.IngestReport{}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		logger.Info("Corpus root %s not found, nothing to ingest", root)
		return report, nil
	}

	logger.Section("Ingestion")
	logger.Info("Walking corpus at %s", root)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}

		report.FilesSeen++
		stored, split, err := s.ingestFile(ctx, root, path, report)
		if err != nil {
			return err
		}
		report.ChunksSplit += split
		report.ChunksStored += stored
		if stored > 0 {
			report.FilesIngested++
		}
		return nil
	})
	if walkErr != nil {
		return report, walkErr
	}

	if total, err := s.store.Count(ctx); err == nil {
		report.TotalInStore = total
	}

	logger.Info("Ingestion done: files=%d ingested=%d chunks=%d",
		report.FilesSeen, report.FilesIngested, report.ChunksStored)
	return report, nil
}

// ingestFile extracts, splits, embeds and stores one file.
// Returns the number of chunks stored and split. Extraction and embedding
// failures are recovered here; only store errors propagate.
func (s *Ingestor) ingestFile(ctx context.Context, root, path string, report *driving.IngestReport) (stored, split int, err error) {
	text, err := s.registry.Extract(ctx, path)
	switch {
	case errors.Is(err, domain.ErrUnsupportedFormat):
		report.FilesSkipped++
		return 0, 0, nil
	case errors.Is(err, domain.ErrDecode):
		logger.Warn("Cannot decode %s: %v", path, err)
		report.FilesSkipped++
		return 0, 0, nil
	case err != nil:
		logger.Warn("Cannot read %s: %v", path, err)
		report.FilesSkipped++
		return 0, 0, nil
	}
	if text == "" {
		report.FilesSkipped++
		return 0, 0, nil
	}

	parts := SplitText(text)
	if len(parts) > maxChunksPerFile {
		parts = parts[:maxChunksPerFile]
	}
	if len(parts) == 0 {
		report.FilesSkipped++
		return 0, 0, nil
	}

	source, relErr := filepath.Rel(root, path)
	if relErr != nil {
		source = filepath.Base(path)
	}
	logger.Debug("File %s: %d passages", source, len(parts))

	for i := 0; i < len(parts); i += embedBatchSize {
		end := i + embedBatchSize
		if end > len(parts) {
			end = len(parts)
		}
		batch := parts[i:end]

		vectors, err := s.embedder.EmbedBatch(ctx, batch)
		if err != nil {
			// Abandon this file's remaining batches; prior commits stand.
			logger.Warn("Embedding failed for %s: %v", source, err)
			return stored, len(parts), nil
		}
		if len(vectors) != len(batch) {
			logger.Warn("Embedding count mismatch for %s: got %d, want %d", source, len(vectors), len(batch))
			return stored, len(parts), nil
		}

		for j, part := range batch {
			chunk := domain.Chunk{
				ID:        uuid.New().String(),
				Text:      part,
				Source:    source,
				Hash:      domain.HashText(part),
				Embedding: vectors[j],
				CreatedAt: s.now().UTC(),
			}
			if err := s.store.UpsertIfAbsent(ctx, chunk); err != nil {
				return stored, len(parts), fmt.Errorf("storing chunk from %s: %w", source, err)
			}
			stored++
		}
	}

	return stored, len(parts), nil
}
