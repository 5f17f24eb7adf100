package embedding

import (
	"context"
)

// Embedder represents an interface for text embedding operations
type Embedder interface {
	// EmbedDocuments converts a slice of documents into vector embeddings
	EmbedDocuments(ctx context.Context, documents []string, opts ...Option) ([]Embedding, error)

	// EmbedQuery converts a single query text into a vector embedding
	EmbedQuery(ctx context.Context, text string, opts ...Option) (Embedding, error)
}

// Embedding represents a vector embedding result
type Embedding struct {
	// Vector is the embedding vector
	Vector []float32

	// Usage contains token usage statistics
	Usage Usage
}

// Float64 returns the vector widened to float64.
func (e Embedding) Float64() []float64 {
	out := make([]float64, len(e.Vector))
	for i, v := range e.Vector {
		out[i] = float64(v)
	}
	return out
}

// Usage represents token usage statistics for embeddings
type Usage struct {
	PromptTokens int
	TotalTokens  int
}
