package session

import "context"

// EmbeddingConnector turns chunk text into vectors for the knowledge base.
type EmbeddingConnector interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
