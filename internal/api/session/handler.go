package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/casemind/legal-team-backend/internal/config"
	"github.com/casemind/legal-team-backend/internal/entity"
	"github.com/casemind/legal-team-backend/internal/pkg/logger"
	"github.com/casemind/legal-team-backend/internal/pkg/response"
)

type Handler struct {
	sessions SessionUsecase
	analyses AnalysisUsecase
	chunkCfg config.ChunkingConfig
	maxForm  int64
}

func NewHandler(
	sessions SessionUsecase,
	analyses AnalysisUsecase,
	chunkCfg config.ChunkingConfig,
	uploadCfg config.FileUploadConfig,
) *Handler {
	return &Handler{
		sessions: sessions,
		analyses: analyses,
		chunkCfg: chunkCfg,
		maxForm:  uploadCfg.MaxUploadSize,
	}
}

// CreateSession handles POST /sessions - open a new analysis session
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateSession")

	session, err := h.sessions.CreateSession(ctx)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Created(w, entity.CreateSessionResponse{
		SessionID: session.ID,
		Status:    session.Status,
	})
}

// GetSession handles GET /sessions/{id} - session status
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", chi.URLParam(r, "id")),
		zap.String("action", "GetSession"),
	)

	session, err := h.sessions.GetSession(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	chunkCount, err := h.sessions.CountChunks(ctx, session.ID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toSessionDetail(session, chunkCount))
}

// IngestDocument handles POST /sessions/{id}/documents - upload and index a PDF
func (h *Handler) IngestDocument(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "IngestDocument"),
	)

	if err := r.ParseMultipartForm(h.maxForm); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		ctxzap.Error(ctx, "missing document file", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "file is required")
		return
	}
	file.Close()

	req := entity.IngestDocumentRequest{
		SessionID: sessionID,
		File:      header,
		ChunkSize: h.chunkCfg.SizeDefault,
		Overlap:   h.chunkCfg.OverlapDefault,
		Force:     r.FormValue("force") == "true",
	}

	if raw := r.FormValue("chunk_size"); raw != "" {
		req.ChunkSize, err = strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "chunk_size must be an integer")
			return
		}
	}
	if raw := r.FormValue("overlap"); raw != "" {
		req.Overlap, err = strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "overlap must be an integer")
			return
		}
	}

	ctxzap.Info(ctx, "ingesting document",
		zap.String("filename", header.Filename),
		zap.Int64("size_bytes", header.Size),
		zap.Int("chunk_size", req.ChunkSize),
		zap.Int("overlap", req.Overlap),
		zap.Bool("force", req.Force),
	)

	result, err := h.sessions.IngestDocument(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, result)
}

// Analyze handles POST /sessions/{id}/analyze - run the agent team
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "Analyze"),
	)

	var req entity.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.SessionID = sessionID

	ctxzap.Info(ctx, "running analysis", zap.String("analysis_type", string(req.AnalysisType)))

	report, err := h.analyses.Analyze(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toAnalyzeResponse(report))
}

// GetReport handles GET /sessions/{id}/report - latest analysis result
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "GetReport"),
	)

	report, err := h.analyses.GetReport(ctx, sessionID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.Success(w, toAnalyzeResponse(report))
}

// ExportReport handles GET /sessions/{id}/report/export - download report
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	ctx := logger.AddFields(r.Context(),
		zap.String("session_id", sessionID),
		zap.String("action", "ExportReport"),
	)

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}

	exported, err := h.analyses.ExportReport(ctx, sessionID, entity.ResultFormat(formatParam))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "report exported", zap.String("format", formatParam))
	response.Attachment(w, exported.ContentType, exported.Filename, exported.Content)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Error(ctx, "request failed", zap.Error(err))

	switch {
	case errors.Is(err, entity.ErrSessionNotFound) || errors.Is(err, entity.ErrReportNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrMissingField) ||
		errors.Is(err, entity.ErrEmptyQuery) || errors.Is(err, entity.ErrInvalidFile) ||
		errors.Is(err, entity.ErrInvalidExtension) || errors.Is(err, entity.ErrFileTooLarge) ||
		errors.Is(err, entity.ErrEmptyDocument):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entity.ErrNoKnowledgeBase) || errors.Is(err, entity.ErrAnalysisUnavailable):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, entity.ErrMissingCredential):
		response.Error(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, entity.ErrServiceFailure):
		response.Error(w, http.StatusBadGateway, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
