// Package localdir loads the fallback chunk corpus from a directory of
// JSON files. It answers resolutions when the persistent store cannot.
package localdir

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/ports/driven"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.LocalChunkSource = (*Store)(nil)

// Store reads chunk JSON files from one directory.
type Store struct {
	dir string
}

// NewStore creates a local chunk source over the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// chunkFile is the accepted file shape: either a bare JSON array of rows
// or an object wrapping the array under "chunks".
type chunkFile struct {
	Chunks []map[string]any `json:"chunks"`
}

// Load reads every *.json file in the directory (sorted by name), merges
// their chunk rows and deduplicates by ID, first occurrence winning.
//
// Bad files and malformed rows are skipped individually: one broken entry
// never takes down the rest of the corpus. A missing directory yields an
// empty corpus and no error.
func (s *Store) Load(_ context.Context) ([]domain.Chunk, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var merged []domain.Chunk
	seen := make(map[string]bool)

	for _, name := range names {
		rows, err := readChunkFile(filepath.Join(s.dir, name))
		if err != nil {
			logger.Warn("Skipping local chunk file %s: %v", name, err)
			continue
		}

		for i, row := range rows {
			chunk, err := domain.ParseChunkRow(row, i, name)
			if err != nil {
				logger.Debug("Skipping row %d of %s: %v", i, name, err)
				continue
			}
			if seen[chunk.ID] {
				continue
			}
			seen[chunk.ID] = true
			merged = append(merged, chunk)
		}
	}

	return merged, nil
}

// readChunkFile decodes one file into loose chunk rows.
func readChunkFile(path string) ([]map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := json.Unmarshal(raw, &rows); err == nil {
		return rows, nil
	}

	var wrapped chunkFile
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Chunks, nil
}
