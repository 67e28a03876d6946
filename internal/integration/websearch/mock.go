package websearch

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/casemind/legal-team-backend/internal/entity"
)

type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{logger: logger}
}

func (m *MockConnector) Search(ctx context.Context, query string) ([]entity.SearchResult, error) {
	ctxzap.Debug(ctx, "[MOCK] web search", zap.String("query", query))

	return []entity.SearchResult{
		{
			Text: "Contract law governs legally binding agreements; material terms include duration, consideration and termination rights.",
			URL:  "https://example.org/contract-law",
		},
		{
			Text: "Fixed-term agreements expire automatically at the end of the stated period unless a renewal clause applies.",
			URL:  "https://example.org/fixed-term",
		},
	}, nil
}
