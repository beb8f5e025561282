package domain

// Origin identifies which source answered a chunk resolution.
type Origin string

const (
	// OriginStore means chunks came from the persistent store.
	OriginStore Origin = "store"

	// OriginLocal means chunks came from the local fallback corpus.
	OriginLocal Origin = "local"
)

// String returns the string representation.
func (o Origin) String() string {
	return string(o)
}

// ResolvedChunks is the point-in-time chunk set visible to a single query.
// Exactly one source answers a resolution; store and local results are
// never merged. Carrying the origin explicitly lets callers observe and
// log which source answered instead of inferring it from side channels.
type ResolvedChunks struct {
	// Origin is the source that answered.
	Origin Origin

	// Chunks is the resolved chunk set.
	Chunks []Chunk
}
