package analysis

import (
	"context"

	"github.com/casemind/legal-team-backend/internal/entity"
)

// LLMConnector performs one synchronous completion call.
type LLMConnector interface {
	Complete(ctx context.Context, input *entity.CompletionInput) (string, error)
}

// EmbeddingConnector embeds the analysis query for knowledge retrieval.
type EmbeddingConnector interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// SearchConnector performs a web search for roles with the capability enabled.
type SearchConnector interface {
	Search(ctx context.Context, query string) ([]entity.SearchResult, error)
}
