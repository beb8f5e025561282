package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/ports/driven"
)

// settingsID keys the single global settings row.
const settingsID = "global"

// settingsStore implements driven.SettingsStore.
type settingsStore struct {
	store *Store
}

var _ driven.SettingsStore = (*settingsStore)(nil)

// Read returns the stored settings, or defaults when none exist.
func (s *settingsStore) Read(ctx context.Context) (domain.Settings, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT force_local_chunks, updated_at FROM settings WHERE id = ?
	`, settingsID)

	var forceLocal bool
	var updatedAt sql.NullTime
	if err := row.Scan(&forceLocal, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	settings := domain.Settings{ForceLocalChunks: forceLocal}
	if updatedAt.Valid {
		settings.UpdatedAt = updatedAt.Time
	}
	return settings, nil
}

// Write replaces the stored settings.
func (s *settingsStore) Write(ctx context.Context, settings domain.Settings) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO settings (id, force_local_chunks, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			force_local_chunks = excluded.force_local_chunks,
			updated_at = excluded.updated_at
	`, settingsID, settings.ForceLocalChunks, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}
