package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/casemind/legal-team-backend/internal/config"
	"github.com/casemind/legal-team-backend/internal/entity"
	"github.com/casemind/legal-team-backend/internal/integration/common"
	pkghttp "github.com/casemind/legal-team-backend/pkg/http"
)

// Connector queries the DuckDuckGo Instant Answer API.
type Connector struct {
	config    config.SearchConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.SearchConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Search runs one query and flattens the abstract plus related topics into a
// bounded result list.
func (c *Connector) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	ctxzap.Debug(ctx, "running web search", zap.String("query", query))

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	var resp entity.SearchResponse
	err := c.connector.DoRequest(ctx, http.MethodGet, "/", nil, &resp, pkghttp.WithQuery(params))
	if err != nil {
		return nil, fmt.Errorf("%w: web search: %v", entity.ErrServiceFailure, err)
	}

	results := flatten(&resp, c.config.MaxResults)

	ctxzap.Debug(ctx, "web search finished", zap.Int("result_count", len(results)))

	return results, nil
}

// flatten turns the nested instant-answer payload into at most max results,
// abstract first.
func flatten(resp *entity.SearchResponse, max int) []entity.SearchResult {
	results := make([]entity.SearchResult, 0, max)

	if resp.AbstractText != "" {
		results = append(results, entity.SearchResult{
			Text: resp.AbstractText,
			URL:  resp.AbstractURL,
		})
	}

	var walk func(topics []entity.SearchTopic)
	walk = func(topics []entity.SearchTopic) {
		for _, topic := range topics {
			if len(results) >= max {
				return
			}
			if topic.Text != "" {
				results = append(results, entity.SearchResult{
					Text: topic.Text,
					URL:  topic.FirstURL,
				})
			}
			if len(topic.Topics) > 0 {
				walk(topic.Topics)
			}
		}
	}
	walk(resp.RelatedTopics)

	return results
}
