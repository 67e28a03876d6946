package llm

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/casemind/legal-team-backend/internal/entity"
)

// MockConnector returns canned completions for local development.
type MockConnector struct {
	logger *zap.Logger
	calls  int
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Complete(ctx context.Context, input *entity.CompletionInput) (string, error) {
	m.calls++

	ctxzap.Info(ctx, "[MOCK] completion requested",
		zap.Int("call", m.calls),
		zap.Int("prompt_length", len(input.Prompt)),
	)

	return fmt.Sprintf(
		"Mock analysis #%d.\n\nThe reviewed document establishes a fixed contractual term "+
			"with limited renewal provisions. Section 4 allocates liability to the counterparty "+
			"and Section 9 contains a unilateral termination right that warrants attention.",
		m.calls,
	), nil
}
