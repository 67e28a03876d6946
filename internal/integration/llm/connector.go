package llm

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

// Connector calls a Gemini-style generateContent endpoint.
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
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

// Complete runs one completion call for an agent invocation. There is no
// retry: a failed call surfaces as a transient service failure.
func (c *Connector) Complete(ctx context.Context, input *entity.CompletionInput) (string, error) {
	ctxzap.Info(ctx, "requesting completion from model service",
		zap.String("model", c.config.Model),
		zap.Int("prompt_length", len(input.Prompt)),
	)

	req := &entity.LLMGenerateRequest{
		Contents: []entity.LLMContent{
			{Role: "user", Parts: []entity.LLMPart{{Text: input.Prompt}}},
		},
	}
	if input.System != "" {
		req.SystemInstruction = &entity.LLMContent{
			Parts: []entity.LLMPart{{Text: input.System}},
		}
	}

	endpoint := fmt.Sprintf("/v1beta/models/%s:generateContent", c.config.Model)

	var resp entity.LLMGenerateResponse
	if err := c.connector.DoRequest(ctx, http.MethodPost, endpoint, req, &resp); err != nil {
		return "", fmt.Errorf("%w: complete: %v", entity.ErrServiceFailure, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: model returned no candidates", entity.ErrServiceFailure)
	}

	ctxzap.Info(ctx, "completion received", zap.Int("result_length", len(text)))

	return text, nil
}
