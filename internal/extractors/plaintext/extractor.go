// Package plaintext extracts text from plain-text file families.
package plaintext

import (
	"context"
	"fmt"
	"os"

	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/domain"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/core/ports/driven"
	"github.com/GSOS-Tathaastu/gsos-tathaastu-sub000/internal/extractors"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles files whose bytes already are UTF-8 text. JSON and
// CSV are read as raw text, not parsed structurally; the splitter works
// on whatever prose they contain.
type Extractor struct{}

// New creates a new plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the file extensions this extractor handles.
func (e *Extractor) Extensions() []string {
	return []string{".txt", ".md", ".csv", ".json"}
}

// Extract reads the file and returns its whitespace-normalised content.
func (e *Extractor) Extract(_ context.Context, path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", domain.ErrInvalidInput, path, err)
	}
	return extractors.CleanText(string(raw)), nil
}
