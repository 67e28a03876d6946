package embedding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/casemind/legal-team-backend/internal/config"
	"github.com/casemind/legal-team-backend/internal/entity"
	"github.com/casemind/legal-team-backend/internal/integration/common"
	pkghttp "github.com/casemind/legal-team-backend/pkg/http"
)

// Connector calls a Gemini-style embedContent endpoint.
type Connector struct {
	config    config.EmbedConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.EmbedConnectorConfig,
	apiKey string,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger,
			pkghttp.WithAPIKeyHeader("x-goog-api-key", apiKey)),
		config: cfg,
		logger: logger,
	}
}

// Embed generates the vector for a single text.
func (c *Connector) Embed(ctx context.Context, text string) ([]float32, error) {
	req := &entity.EmbedRequest{
		Model:   "models/" + c.config.Model,
		Content: entity.LLMContent{Parts: []entity.LLMPart{{Text: text}}},
	}

	endpoint := fmt.Sprintf("/v1beta/models/%s:embedContent", c.config.Model)

	var resp entity.EmbedResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return nil, fmt.Errorf("%w: embed: %v", entity.ErrServiceFailure, err)
	}

	if len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: embedding service returned an empty vector", entity.ErrServiceFailure)
	}

	return resp.Embedding.Values, nil
}

// EmbedBatch embeds texts one by one, strictly in order. A failure aborts the
// batch; nothing is retried.
func (c *Connector) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	ctxzap.Debug(ctx, "embedding batch", zap.Int("count", len(texts)))

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, err := c.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		vectors[i] = vector
	}
	return vectors, nil
}
