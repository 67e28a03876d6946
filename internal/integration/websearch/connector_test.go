package websearch

import (
	"context"
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

	cfg := config.SearchConnectorConfig{MaxResults: 3}
	cfg.Url = srv.URL

	return NewConnector(cfg, zap.NewNop())
}

func TestSearch_FlattensAbstractAndTopics(t *testing.T) {
	conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "contract term", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Heading": "Contract",
			"AbstractText": "A contract is a legally binding agreement.",
			"AbstractURL": "https://en.wikipedia.org/wiki/Contract",
			"RelatedTopics": [
				{"Text": "Breach of contract", "FirstURL": "https://x/1"},
				{"Topics": [{"Text": "Term (time)", "FirstURL": "https://x/2"}]},
				{"Text": "Consideration", "FirstURL": "https://x/3"}
			]
		}`))
	})

	results, err := conn.Search(context.Background(), "contract term")
	require.NoError(t, err)

	// MaxResults is 3: abstract + first two topics, nested ones included
	require.Len(t, results, 3)
	assert.Equal(t, "A contract is a legally binding agreement.", results[0].Text)
	assert.Equal(t, "Breach of contract", results[1].Text)
	assert.Equal(t, "Term (time)", results[2].Text)
}

func TestSearch_EmptyPayload(t *testing.T) {
	conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"RelatedTopics": []}`))
	})

	results, err := conn.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_ServiceFailure(t *testing.T) {
	conn := newTestConnector(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := conn.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrServiceFailure)
}
