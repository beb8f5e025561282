package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/ports/driven"
)

// defaultListLimit bounds listings when the caller does not set one.
// Matches the ranking scan bound so a resolution never loads more than
// the ranker will look at.
const defaultListLimit = 5000

// chunkStore implements driven.ChunkStore.
type chunkStore struct {
	store *Store
}

var _ driven.ChunkStore = (*chunkStore)(nil)

// UpsertIfAbsent inserts the chunk unless its content hash is already
// present. The unique hash index makes the insert a no-op for duplicate
// content; fresh insert and duplicate are deliberately indistinguishable
// to the caller.
func (s *chunkStore) UpsertIfAbsent(ctx context.Context, chunk domain.Chunk) error {
	if chunk.Text == "" {
		return fmt.Errorf("%w: chunk text is required", domain.ErrInvalidInput)
	}
	if chunk.ID == "" {
		chunk.ID = uuid.New().String()
	}
	if chunk.Hash == "" {
		chunk.Hash = domain.HashText(chunk.Text)
	}
	if chunk.CreatedAt.IsZero() {
		chunk.CreatedAt = time.Now().UTC()
	}

	tagsJSON, err := json.Marshal(chunk.Tags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}

	// The conflict target must repeat the partial index's WHERE clause
	// or SQLite refuses to match the index at all.
	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO chunks (id, title, text, tags, source, hash, embedding, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) WHERE hash IS NOT NULL DO NOTHING
	`, chunk.ID, nullString(chunk.Title), chunk.Text, string(tagsJSON),
		nullString(chunk.Source), chunk.Hash, float32SliceToBytes(chunk.Embedding), chunk.CreatedAt)

	if err != nil {
		return fmt.Errorf("upserting chunk: %w", err)
	}
	return nil
}

// UpsertByID inserts the chunk or replaces the record with the same ID.
// Operator uploads come through here; their rows carry no content hash.
func (s *chunkStore) UpsertByID(ctx context.Context, chunk domain.Chunk) error {
	if chunk.ID == "" || chunk.Text == "" {
		return fmt.Errorf("%w: chunk id and text are required", domain.ErrInvalidInput)
	}
	if chunk.CreatedAt.IsZero() {
		chunk.CreatedAt = time.Now().UTC()
	}

	tagsJSON, err := json.Marshal(chunk.Tags)
	if err != nil {
		return fmt.Errorf("marshalling tags: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO chunks (id, title, text, tags, source, hash, embedding, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			text = excluded.text,
			tags = excluded.tags,
			source = excluded.source,
			hash = excluded.hash,
			embedding = excluded.embedding
	`, chunk.ID, nullString(chunk.Title), chunk.Text, string(tagsJSON),
		nullString(chunk.Source), nullString(chunk.Hash),
		float32SliceToBytes(chunk.Embedding), chunk.CreatedAt)

	if err != nil {
		return fmt.Errorf("upserting chunk by id: %w", err)
	}
	return nil
}

// ReplaceAll atomically swaps the entire stored chunk set.
func (s *chunkStore) ReplaceAll(ctx context.Context, chunks []domain.Chunk) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, title, text, tags, source, hash, embedding, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, chunk := range chunks {
		if chunk.ID == "" {
			chunk.ID = uuid.New().String()
		}
		if chunk.CreatedAt.IsZero() {
			chunk.CreatedAt = now
		}
		tagsJSON, err := json.Marshal(chunk.Tags)
		if err != nil {
			return fmt.Errorf("marshalling tags: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, chunk.ID, nullString(chunk.Title), chunk.Text,
			string(tagsJSON), nullString(chunk.Source), nullString(chunk.Hash),
			float32SliceToBytes(chunk.Embedding), chunk.CreatedAt); err != nil {
			return fmt.Errorf("inserting chunk %s: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteBySource removes every chunk ingested from the given source.
func (s *chunkStore) DeleteBySource(ctx context.Context, source string) (int64, error) {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM chunks WHERE source = ?", source)
	if err != nil {
		return 0, fmt.Errorf("deleting chunks for %s: %w", source, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted chunks: %w", err)
	}
	return n, nil
}

// List returns stored chunks in insertion order.
func (s *chunkStore) List(ctx context.Context, opts driven.ListOptions) ([]domain.Chunk, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, text, tags, source, hash, embedding, created_at
		FROM chunks
		ORDER BY rowid
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.Chunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows, opts.WithEmbeddings)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return chunks, nil
}

// Count returns the number of stored chunks.
func (s *chunkStore) Count(ctx context.Context) (int64, error) {
	var count int64
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// Ping validates the store is reachable.
func (s *chunkStore) Ping(ctx context.Context) error {
	if err := s.store.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// scanChunk reads one chunk row.
func scanChunk(rows *sql.Rows, withEmbedding bool) (domain.Chunk, error) {
	var chunk domain.Chunk
	var title, tagsJSON, source, hash sql.NullString
	var embedding []byte
	var createdAt sql.NullTime

	if err := rows.Scan(&chunk.ID, &title, &chunk.Text, &tagsJSON,
		&source, &hash, &embedding, &createdAt); err != nil {
		return domain.Chunk{}, fmt.Errorf("scanning chunk: %w", err)
	}

	chunk.Title = title.String
	chunk.Source = source.String
	chunk.Hash = hash.String
	if createdAt.Valid {
		chunk.CreatedAt = createdAt.Time
	}
	if tagsJSON.Valid && tagsJSON.String != "" && tagsJSON.String != "null" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &chunk.Tags); err != nil {
			return domain.Chunk{}, fmt.Errorf("unmarshaling tags: %w", err)
		}
	}
	if withEmbedding {
		chunk.Embedding = bytesToFloat32Slice(embedding)
	}
	return chunk, nil
}

// nullString maps the empty string to NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
