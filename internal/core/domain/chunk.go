package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Chunk is the unit of retrieval: a passage of text with optional
// metadata and an optional embedding vector.
type Chunk struct {
	// ID identifies the chunk. Store-ingested chunks get a UUID;
	// local corpus chunks keep their file-supplied id or a derived one.
	ID string `json:"id"`

	// Title is an optional human-readable label.
	Title string `json:"title,omitempty"`

	// Text is the passage body. Never empty for a valid chunk.
	Text string `json:"text"`

	// Tags are free-form labels used for display and filtering.
	Tags []string `json:"tags,omitempty"`

	// Source records where the chunk came from, typically a file path
	// relative to the ingested corpus root.
	Source string `json:"source,omitempty"`

	// Hash is the hex SHA-256 of Text. It keys idempotent ingestion:
	// the same passage text always maps to the same hash.
	Hash string `json:"hash,omitempty"`

	// Embedding is the chunk's vector. Local corpus chunks carry none
	// and are embedded on demand at query time.
	Embedding []float32 `json:"embedding,omitempty"`

	// CreatedAt is when the chunk was first stored.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// HashText returns the hex SHA-256 digest of text. Identical text always
// hashes identically, which is what makes re-ingestion idempotent.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// ParseChunkRow builds a Chunk from one decoded JSON object of a local
// corpus file. ordinal is the row's position within the file and origin
// the file it came from; both feed the fallback id for rows that carry
// none. Rows without usable text fail with ErrMalformedChunk.
//
// Accepted shapes, per the corpus files in the wild:
//   - text under "text", or under the legacy "content" key
//   - tags as a JSON array of strings, or a single string delimited
//     by "," or "|"
func ParseChunkRow(raw map[string]any, ordinal int, origin string) (Chunk, error) {
	text := stringField(raw, "text")
	if text == "" {
		text = stringField(raw, "content")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Chunk{}, fmt.Errorf("%w: row %d has no text", ErrMalformedChunk, ordinal)
	}

	id := strings.TrimSpace(stringField(raw, "id"))
	if id == "" {
		id = fmt.Sprintf("local-%s-%d", origin, ordinal)
	}

	return Chunk{
		ID:     id,
		Title:  strings.TrimSpace(stringField(raw, "title")),
		Text:   text,
		Tags:   normaliseTags(raw["tags"]),
		Source: strings.TrimSpace(stringField(raw, "source")),
	}, nil
}

// normaliseTags coerces the accepted tag encodings into a clean slice.
// Unrecognised shapes yield nil rather than an error; tags are advisory.
func normaliseTags(v any) []string {
	var parts []string
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		parts = t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
	case string:
		sep := ","
		if strings.Contains(t, "|") {
			sep = "|"
		}
		parts = strings.Split(t, sep)
	default:
		return nil
	}

	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func stringField(raw map[string]any, key string) string {
	if s, ok := raw[key].(string); ok {
		return s
	}
	return ""
}
