package interfaces

import (
	"context"

	"docuchat/internal/rag/schema"
)

// Splitter is the interface for splitting raw text into ordered spans
// sized for embedding and retrieval.
type Splitter interface {
	Split(text string) []string
}

// EmbeddingModel is the interface for a text embedding model.
type EmbeddingModel interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorStore is the interface for storing and querying chunk vectors.
type VectorStore interface {
	// Upsert writes one (id, vector, payload) entry.
	Upsert(ctx context.Context, id string, vector []float32, text string, documentID uint) error
	// Search returns the topK nearest entries, best match first.
	Search(ctx context.Context, vector []float32, topK int) ([]*schema.ScoredChunk, error)
}

// Generator is the interface for the generative backend that turns a
// flattened prompt into an answer.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
