package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file type no extractor parses.
	// Non-fatal: the file is skipped during ingestion.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrDecode indicates a recognised document failed to decode
	// (corrupt archive, broken internal structure). Non-fatal: the
	// file is skipped and logged, the corpus walk continues.
	ErrDecode = errors.New("document decode failed")

	// ErrEmbeddingService indicates the external embedding call failed
	// (auth, quota, network, malformed response). Fatal for the current
	// batch: ingestion abandons the file, queries surface it to the caller.
	ErrEmbeddingService = errors.New("embedding service failed")

	// ErrStoreUnavailable indicates the persistent chunk store is
	// unreachable. Queries fall back to the local corpus.
	ErrStoreUnavailable = errors.New("chunk store unavailable")

	// ErrMalformedChunk indicates a chunk row is missing required fields.
	// The row is skipped; the rest of its file is still processed.
	ErrMalformedChunk = errors.New("malformed chunk")
)
