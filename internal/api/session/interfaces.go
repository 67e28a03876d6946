package session

import (
	"context"

	"github.com/casemind/legal-team-backend/internal/entity"
	"github.com/casemind/legal-team-backend/internal/usecase/analysis"
)

type SessionUsecase interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	CountChunks(ctx context.Context, id string) (int, error)
	IngestDocument(ctx context.Context, req *entity.IngestDocumentRequest) (*entity.IngestDocumentResponse, error)
}

type AnalysisUsecase interface {
	Analyze(ctx context.Context, req *entity.AnalyzeRequest) (*entity.Report, error)
	GetReport(ctx context.Context, sessionID string) (*entity.Report, error)
	ExportReport(ctx context.Context, sessionID string, format entity.ResultFormat) (*analysis.ExportedReport, error)
}
