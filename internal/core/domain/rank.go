package domain

// RankedChunk is a single similarity search hit.
type RankedChunk struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the cosine similarity between the query embedding and
	// the chunk embedding, in [-1, 1]. For natural-text embeddings the
	// observed range is effectively [0, 1].
	Score float64
}
