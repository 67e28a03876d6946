package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/casemind/legal-team-backend/internal/config"
	"github.com/casemind/legal-team-backend/internal/entity"
	"github.com/casemind/legal-team-backend/internal/pkg/formatter"
	"github.com/casemind/legal-team-backend/internal/pkg/validator"
	"github.com/casemind/legal-team-backend/internal/repository"
)

// AnalysisUsecase runs the agent team pipeline and manages analysis reports
type AnalysisUsecase struct {
	sessionRepo repository.SessionRepository
	chunkStore  repository.ChunkStore
	reportRepo  repository.ReportRepository
	validator   *validator.Validator

	llm      LLMConnector
	embedder EmbeddingConnector
	search   SearchConnector

	agents config.AgentsConfig
	topK   int

	credentialPresent bool

	formatters *formatter.Factory
	logger     *zap.Logger
}

// NewUsecase creates a new analysis use case
func NewUsecase(
	sessionRepo repository.SessionRepository,
	chunkStore repository.ChunkStore,
	reportRepo repository.ReportRepository,
	validator *validator.Validator,
	llm LLMConnector,
	embedder EmbeddingConnector,
	search SearchConnector,
	agents config.AgentsConfig,
	topK int,
	credentialPresent bool,
	logger *zap.Logger,
) *AnalysisUsecase {
	return &AnalysisUsecase{
		sessionRepo:       sessionRepo,
		chunkStore:        chunkStore,
		reportRepo:        reportRepo,
		validator:         validator,
		llm:               llm,
		embedder:          embedder,
		search:            search,
		agents:            agents,
		topK:              topK,
		credentialPresent: credentialPresent,
		formatters:        formatter.NewFactory(),
		logger:            logger,
	}
}

// Analyze runs the full team pipeline for one query: every worker role in
// configured order, then the team lead's integration, key points and
// recommendations passes. All calls are sequential and none is retried.
func (uc *AnalysisUsecase) Analyze(ctx context.Context, req *entity.AnalyzeRequest) (*entity.Report, error) {
	session, err := uc.sessionRepo.Get(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if !session.HasKnowledgeBase() {
		return nil, entity.ErrNoKnowledgeBase
	}

	if !uc.credentialPresent {
		return nil, entity.ErrMissingCredential
	}

	if err := uc.validator.ValidateAnalyze(req); err != nil {
		return nil, err
	}

	query, err := uc.resolveQuery(req)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "analysis started",
		zap.String("session_id", session.ID),
		zap.String("analysis_type", string(req.AnalysisType)),
	)

	outputs := make([]entity.AgentOutput, 0, len(uc.agents.Workers))
	for _, role := range uc.agents.Workers {
		output, err := uc.runWorker(ctx, session.ID, role, query)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", role.Name, err)
		}
		outputs = append(outputs, *output)
	}

	combined := combineOutputs(outputs)

	analysisText, err := uc.llm.Complete(ctx, &entity.CompletionInput{
		System: roleSystem(uc.agents.TeamLead),
		Prompt: integrationPrompt(query, combined),
	})
	if err != nil {
		return nil, fmt.Errorf("run %s integration: %w", uc.agents.TeamLead.Name, err)
	}

	keyPoints, err := uc.llm.Complete(ctx, &entity.CompletionInput{
		System: roleSystem(uc.agents.TeamLead),
		Prompt: keyPointsPrompt(analysisText),
	})
	if err != nil {
		return nil, fmt.Errorf("run %s key points: %w", uc.agents.TeamLead.Name, err)
	}

	recommendations, err := uc.llm.Complete(ctx, &entity.CompletionInput{
		System: roleSystem(uc.agents.TeamLead),
		Prompt: recommendationsPrompt(analysisText),
	})
	if err != nil {
		return nil, fmt.Errorf("run %s recommendations: %w", uc.agents.TeamLead.Name, err)
	}

	report := entity.Report{
		ID:              uuid.New().String(),
		SessionID:       session.ID,
		AnalysisType:    req.AnalysisType,
		Query:           query,
		Analysis:        analysisText,
		KeyPoints:       keyPoints,
		Recommendations: recommendations,
	}

	saved, err := uc.reportRepo.Create(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	if _, err := uc.sessionRepo.UpdateStatus(ctx, session.ID, entity.SessionStatusResponseAvailable); err != nil {
		return nil, fmt.Errorf("update session status: %w", err)
	}

	ctxzap.Info(ctx, "analysis completed",
		zap.String("session_id", session.ID),
		zap.String("report_id", saved.ID),
	)

	return saved, nil
}

// GetReport returns the latest report of a session.
func (uc *AnalysisUsecase) GetReport(ctx context.Context, sessionID string) (*entity.Report, error) {
	session, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status != entity.SessionStatusResponseAvailable {
		return nil, entity.ErrAnalysisUnavailable
	}

	return uc.reportRepo.GetLatestBySession(ctx, session.ID)
}

// ExportedReport is a rendered report ready to be sent as an attachment.
type ExportedReport struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportReport renders the latest report of a session in the given format.
func (uc *AnalysisUsecase) ExportReport(
	ctx context.Context,
	sessionID string,
	format entity.ResultFormat,
) (*ExportedReport, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: unsupported export format %q", entity.ErrInvalidParameter, string(format))
	}

	report, err := uc.GetReport(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	fm, err := uc.formatters.Create(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidParameter, err)
	}

	content, err := fm.Format(report)
	if err != nil {
		return nil, fmt.Errorf("format report: %w", err)
	}

	filename := fmt.Sprintf("legal_analysis_%s%s",
		strings.ToLower(string(report.AnalysisType)), fm.FileExtension())

	return &ExportedReport{
		Content:     content,
		ContentType: fm.ContentType(),
		Filename:    filename,
	}, nil
}

// AnalysisTypes lists the selectable analysis types with their labels and,
// for the predefined ones, their query strings.
func (uc *AnalysisUsecase) AnalysisTypes() []entity.AnalysisTypeInfo {
	ordered := []entity.AnalysisType{
		entity.AnalysisContractReview,
		entity.AnalysisLegalResearch,
		entity.AnalysisRiskAssessment,
		entity.AnalysisComplianceCheck,
		entity.AnalysisCustomQuery,
	}

	types := make([]entity.AnalysisTypeInfo, 0, len(ordered))
	for _, at := range ordered {
		types = append(types, entity.AnalysisTypeInfo{
			Type:  at,
			Label: config.AnalysisTypeLabels[at],
			Query: uc.agents.PredefinedQueries[at],
		})
	}

	return types
}

func (uc *AnalysisUsecase) resolveQuery(req *entity.AnalyzeRequest) (string, error) {
	if req.AnalysisType == entity.AnalysisCustomQuery {
		return strings.TrimSpace(req.Query), nil
	}

	query, ok := uc.agents.PredefinedQueries[req.AnalysisType]
	if !ok || query == "" {
		return "", fmt.Errorf("%w: no predefined query for analysis type %s",
			entity.ErrInvalidParameter, req.AnalysisType)
	}

	return query, nil
}
