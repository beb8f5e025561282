package driven

import "context"

// Extractor converts a single source file into plain text.
// Each extractor handles specific file extensions.
type Extractor interface {
	// Extensions returns the lowercase file extensions this extractor
	// handles, including the leading dot (e.g. ".txt", ".docx").
	Extensions() []string

	// Extract reads the file at path and returns its plain text.
	// An empty string with a nil error means the file carried no
	// usable text and should be skipped.
	// Returns an error wrapping domain.ErrDecode when a recognised
	// format fails to decode.
	Extract(ctx context.Context, path string) (string, error)
}

// ExtractorRegistry selects an extractor by file extension.
type ExtractorRegistry interface {
	// ExtractorFor returns the extractor registered for the path's
	// extension, or false when the format is unsupported.
	ExtractorFor(path string) (Extractor, bool)

	// Extract extracts text from the file at path using the registered
	// extractor. Returns an error wrapping domain.ErrUnsupportedFormat
	// when no extractor handles the extension.
	Extract(ctx context.Context, path string) (string, error)
}
