package domain

import "time"

// Settings holds the operator-controlled toggles that influence chunk
// resolution. Persisted as a single global record.
type Settings struct {
	// ForceLocalChunks bypasses the persistent store even when it is
	// reachable, serving every resolution from the local corpus.
	ForceLocalChunks bool

	// UpdatedAt is when the settings were last written.
	UpdatedAt time.Time
}

// DefaultSettings returns the settings used when none have been stored.
func DefaultSettings() Settings {
	return Settings{
		ForceLocalChunks: false,
	}
}
