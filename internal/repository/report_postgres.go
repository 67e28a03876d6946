package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/casemind/legal-team-backend/internal/entity"
)

// ReportRepository defines the interface for analysis report persistence
type ReportRepository interface {
	Create(ctx context.Context, report entity.Report) (*entity.Report, error)
	GetLatestBySession(ctx context.Context, sessionID string) (*entity.Report, error)
}

var _ ReportRepository = &ReportPostgres{}

// ReportPostgres implements ReportRepository using PostgreSQL
type ReportPostgres struct {
	db *pgxpool.Pool
}

func NewReportPostgres(db *pgxpool.Pool) *ReportPostgres {
	return &ReportPostgres{db: db}
}

func (r *ReportPostgres) Create(ctx context.Context, report entity.Report) (*entity.Report, error) {
	reportID, err := uuid.Parse(report.ID)
	if err != nil {
		return nil, fmt.Errorf("parse report ID: %w", err)
	}
	sessionID, err := uuid.Parse(report.SessionID)
	if err != nil {
		return nil, fmt.Errorf("parse session ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO reports (id, session_id, analysis_type, query, analysis, key_points, recommendations)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, session_id, analysis_type, query, analysis, key_points, recommendations, created_at
	`,
		pgtype.UUID{Bytes: reportID, Valid: true},
		pgtype.UUID{Bytes: sessionID, Valid: true},
		string(report.AnalysisType),
		report.Query,
		report.Analysis,
		report.KeyPoints,
		report.Recommendations,
	)

	created, err := scanReport(row)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	return created, nil
}

func (r *ReportPostgres) GetLatestBySession(ctx context.Context, sessionID string) (*entity.Report, error) {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session ID format", entity.ErrInvalidParameter)
	}

	row := r.db.QueryRow(ctx, `
		SELECT id, session_id, analysis_type, query, analysis, key_points, recommendations, created_at
		FROM reports
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, pgtype.UUID{Bytes: sid, Valid: true})

	report, err := scanReport(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrReportNotFound
		}
		return nil, fmt.Errorf("get latest report: %w", err)
	}

	return report, nil
}

func scanReport(row pgx.Row) (*entity.Report, error) {
	var (
		id           pgtype.UUID
		sessionID    pgtype.UUID
		analysisType string
		query        string
		analysis     string
		keyPoints    string
		recs         string
		createdAt    pgtype.Timestamptz
	)

	if err := row.Scan(&id, &sessionID, &analysisType, &query, &analysis, &keyPoints, &recs, &createdAt); err != nil {
		return nil, err
	}

	return &entity.Report{
		ID:              uuid.UUID(id.Bytes).String(),
		SessionID:       uuid.UUID(sessionID.Bytes).String(),
		AnalysisType:    entity.AnalysisType(analysisType),
		Query:           query,
		Analysis:        analysis,
		KeyPoints:       keyPoints,
		Recommendations: recs,
		CreatedAt:       createdAt.Time,
	}, nil
}
