package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/casemind/legal-team-backend/internal/api/docs"
	"github.com/casemind/legal-team-backend/internal/api/frontend"
	metaapi "github.com/casemind/legal-team-backend/internal/api/meta"
	"github.com/casemind/legal-team-backend/internal/api/middleware"
	sessionapi "github.com/casemind/legal-team-backend/internal/api/session"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(sessionHandler *sessionapi.Handler, metaHandler *metaapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	// Analysis runs many model calls back to back, so the budget is generous.
	r.Use(chimiddleware.Timeout(10 * time.Minute))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	docs.RegisterRoutes(r)
	frontend.RegisterRoutes(r)

	sessionapi.RegisterRoutes(r, sessionHandler)
	metaapi.RegisterRoutes(r, metaHandler)

	return r
}
