package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/casemind/legal-team-backend/internal/config"
	"github.com/casemind/legal-team-backend/internal/entity"
)

func newTestConnector(t *testing.T, handler http.HandlerFunc) *Connector {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.LLMConnectorConfig{Model: "gemini-2.0-flash-exp"}
	cfg.Url = srv.URL

	return NewConnector(cfg, "test-key", zap.NewNop())
}

func TestComplete_SendsSystemInstructionAndKey(t *testing.T) {
	conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash-exp:generateContent", r.URL.Path)

		var req entity.LLMGenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.SystemInstruction)
		assert.Equal(t, "You are a contract analyst.", req.SystemInstruction.Parts[0].Text)
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "user", req.Contents[0].Role)

		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Key clauses: "},{"text":"term, liability."}]}}]}`))
	})

	out, err := conn.Complete(context.Background(), &entity.CompletionInput{
		System: "You are a contract analyst.",
		Prompt: "Identify the key clauses.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Key clauses: term, liability.", out)
}

func TestComplete_NoCandidates(t *testing.T) {
	conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := conn.Complete(context.Background(), &entity.CompletionInput{Prompt: "q"})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrServiceFailure)
}

func TestComplete_RemoteError(t *testing.T) {
	conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := conn.Complete(context.Background(), &entity.CompletionInput{Prompt: "q"})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrServiceFailure)
}
