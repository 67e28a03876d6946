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

// SessionRepository defines the interface for session persistence
type SessionRepository interface {
	Create(ctx context.Context, session entity.Session) (*entity.Session, error)
	Get(ctx context.Context, id string) (*entity.Session, error)
	UpdateStatus(ctx context.Context, id string, status entity.SessionStatus) (*entity.Session, error)
}

var _ SessionRepository = &SessionPostgres{}

// SessionPostgres implements SessionRepository using PostgreSQL
type SessionPostgres struct {
	db *pgxpool.Pool
}

func NewSessionPostgres(db *pgxpool.Pool) *SessionPostgres {
	return &SessionPostgres{db: db}
}

func (r *SessionPostgres) Create(ctx context.Context, session entity.Session) (*entity.Session, error) {
	sessionID, err := uuid.Parse(session.ID)
	if err != nil {
		return nil, fmt.Errorf("parse session ID: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO sessions (id, status, collection)
		VALUES ($1, $2, $3)
		RETURNING id, status, collection, created_at, updated_at
	`, pgtype.UUID{Bytes: sessionID, Valid: true}, string(session.Status), session.Collection)

	return scanSession(row)
}

func (r *SessionPostgres) Get(ctx context.Context, id string) (*entity.Session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session ID format", entity.ErrInvalidParameter)
	}

	row := r.db.QueryRow(ctx, `
		SELECT id, status, collection, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`, pgtype.UUID{Bytes: sessionID, Valid: true})

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	return session, nil
}

func (r *SessionPostgres) UpdateStatus(ctx context.Context, id string, status entity.SessionStatus) (*entity.Session, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session ID format", entity.ErrInvalidParameter)
	}

	row := r.db.QueryRow(ctx, `
		UPDATE sessions
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, status, collection, created_at, updated_at
	`, pgtype.UUID{Bytes: sessionID, Valid: true}, string(status))

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("update session status: %w", err)
	}

	return session, nil
}

func scanSession(row pgx.Row) (*entity.Session, error) {
	var (
		id        pgtype.UUID
		status    string
		coll      string
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	if err := row.Scan(&id, &status, &coll, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return &entity.Session{
		ID:         uuid.UUID(id.Bytes).String(),
		Status:     entity.SessionStatus(status),
		Collection: coll,
		CreatedAt:  createdAt.Time,
		UpdatedAt:  updatedAt.Time,
	}, nil
}
