package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/casemind/legal-team-backend/internal/entity"
)

// ChunkStore is the persistent vector index: append-only per document,
// queried by cosine similarity.
type ChunkStore interface {
	Store(ctx context.Context, collection string, chunks []entity.Chunk) error
	Search(ctx context.Context, sessionID string, embedding []float32, topK int) ([]entity.ScoredChunk, error)
	DeleteDocument(ctx context.Context, sessionID, document string) error
	CountBySession(ctx context.Context, sessionID string) (int, error)
}

var _ ChunkStore = &ChunkPostgres{}

// ChunkPostgres implements ChunkStore on PostgreSQL with the pgvector
// extension.
type ChunkPostgres struct {
	db *pgxpool.Pool
}

func NewChunkPostgres(db *pgxpool.Pool) *ChunkPostgres {
	return &ChunkPostgres{db: db}
}

func (r *ChunkPostgres) Store(ctx context.Context, collection string, chunks []entity.Chunk) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, chunk := range chunks {
		chunkID, err := uuid.Parse(chunk.ID)
		if err != nil {
			return fmt.Errorf("parse chunk ID: %w", err)
		}
		sessionID, err := uuid.Parse(chunk.SessionID)
		if err != nil {
			return fmt.Errorf("parse session ID: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO chunks (id, session_id, collection, document, chunk_index, content, embedding)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			pgtype.UUID{Bytes: chunkID, Valid: true},
			pgtype.UUID{Bytes: sessionID, Valid: true},
			collection,
			chunk.Document,
			int32(chunk.Index),
			chunk.Content,
			pgvector.NewVector(chunk.Embedding),
		)
		if err != nil {
			return fmt.Errorf("insert chunk %d: %w", chunk.Index, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *ChunkPostgres) Search(ctx context.Context, sessionID string, embedding []float32, topK int) ([]entity.ScoredChunk, error) {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid session ID format", entity.ErrInvalidParameter)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, session_id, document, chunk_index, content, embedding <=> $2 AS distance
		FROM chunks
		WHERE session_id = $1
		ORDER BY embedding <=> $2
		LIMIT $3
	`, pgtype.UUID{Bytes: sid, Valid: true}, pgvector.NewVector(embedding), int32(topK))
	if err != nil {
		return nil, fmt.Errorf("query chunks: %w", err)
	}
	defer rows.Close()

	var results []entity.ScoredChunk
	for rows.Next() {
		var (
			id       pgtype.UUID
			session  pgtype.UUID
			document string
			index    int32
			content  string
			distance float64
		)

		if err := rows.Scan(&id, &session, &document, &index, &content, &distance); err != nil {
			return nil, fmt.Errorf("scan chunk row: %w", err)
		}

		results = append(results, entity.ScoredChunk{
			Chunk: entity.Chunk{
				ID:        uuid.UUID(id.Bytes).String(),
				SessionID: uuid.UUID(session.Bytes).String(),
				Document:  document,
				Index:     int(index),
				Content:   content,
			},
			// cosine distance -> similarity
			Score: 1 - distance,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunk rows: %w", err)
	}

	return results, nil
}

func (r *ChunkPostgres) DeleteDocument(ctx context.Context, sessionID, document string) error {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return fmt.Errorf("%w: invalid session ID format", entity.ErrInvalidParameter)
	}

	_, err = r.db.Exec(ctx, `
		DELETE FROM chunks WHERE session_id = $1 AND document = $2
	`, pgtype.UUID{Bytes: sid, Valid: true}, document)
	if err != nil {
		return fmt.Errorf("delete document chunks: %w", err)
	}

	return nil
}

func (r *ChunkPostgres) CountBySession(ctx context.Context, sessionID string) (int, error) {
	sid, err := uuid.Parse(sessionID)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid session ID format", entity.ErrInvalidParameter)
	}

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM chunks WHERE session_id = $1
	`, pgtype.UUID{Bytes: sid, Valid: true}).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}

	return count, nil
}
