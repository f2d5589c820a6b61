package schema

// ScoredChunk is one vector-search hit: the stored payload plus the
// similarity score assigned by the index. It is the primary data carrier
// between retrieval and answer assembly.
type ScoredChunk struct {
	// VectorID is the unique identifier of the entry in the vector index.
	VectorID string

	// Text is the chunk text stored alongside the vector.
	Text string

	// DocumentID references the owning document row.
	DocumentID uint

	// Score is the similarity score reported by the index.
	Score float32
}
