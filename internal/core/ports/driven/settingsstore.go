package driven

import (
	"context"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
)

// SettingsStore persists the global operator settings.
type SettingsStore interface {
	// Read returns the stored settings, or defaults when none exist.
	Read(ctx context.Context) (domain.Settings, error)

	// Write replaces the stored settings.
	Write(ctx context.Context, settings domain.Settings) error
}
