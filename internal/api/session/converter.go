package session

import (
	"time"

	"github.com/casemind/legal-team-backend/internal/entity"
)

func toSessionDetail(session *entity.Session, chunkCount int) *entity.SessionDetailResponse {
	return &entity.SessionDetailResponse{
		SessionID:  session.ID,
		Status:     session.Status,
		Collection: session.Collection,
		ChunkCount: chunkCount,
		CreatedAt:  session.CreatedAt.Format(time.RFC3339),
	}
}

func toAnalyzeResponse(report *entity.Report) *entity.AnalyzeResponse {
	return &entity.AnalyzeResponse{
		ReportID:        report.ID,
		Analysis:        report.Analysis,
		KeyPoints:       report.KeyPoints,
		Recommendations: report.Recommendations,
	}
}
