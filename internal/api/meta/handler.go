package meta

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/casemind/legal-team-backend/internal/config"
	"github.com/casemind/legal-team-backend/internal/entity"
	"github.com/casemind/legal-team-backend/internal/pkg/response"
)

// Handler serves the static configuration surface the page reads on load:
// the selectable analysis types and the effective server settings.
type Handler struct {
	types func() []entity.AnalysisTypeInfo
	cfg   *config.Config
}

func NewHandler(types func() []entity.AnalysisTypeInfo, cfg *config.Config) *Handler {
	return &Handler{types: types, cfg: cfg}
}

// AnalysisTypes handles GET /analysis/types
func (h *Handler) AnalysisTypes(w http.ResponseWriter, r *http.Request) {
	response.Success(w, entity.AnalysisTypesResponse{Types: h.types()})
}

// Config handles GET /config
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	response.Success(w, entity.ConfigResponse{
		CredentialPresent: h.cfg.CredentialPresent(),
		ChunkSizeDefault:  h.cfg.ChunkingCfg.SizeDefault,
		ChunkSizeMax:      h.cfg.ChunkingCfg.SizeMax,
		OverlapDefault:    h.cfg.ChunkingCfg.OverlapDefault,
		OverlapMax:        h.cfg.ChunkingCfg.OverlapMax,
	})
}

// RegisterRoutes registers the configuration surface routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/analysis/types", h.AnalysisTypes)
	r.Get("/config", h.Config)
}
