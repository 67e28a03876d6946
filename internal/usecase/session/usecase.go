package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/casemind/legal-team-backend/internal/config"
	"github.com/casemind/legal-team-backend/internal/entity"
	"github.com/casemind/legal-team-backend/internal/pkg/chunker"
	"github.com/casemind/legal-team-backend/internal/pkg/pdftext"
	"github.com/casemind/legal-team-backend/internal/pkg/validator"
	"github.com/casemind/legal-team-backend/internal/repository"
)

// SessionUsecase implements session lifecycle and document ingestion
type SessionUsecase struct {
	sessionRepo repository.SessionRepository
	chunkStore  repository.ChunkStore
	validator   *validator.Validator
	embedder    EmbeddingConnector
	kbCfg       config.KnowledgeBaseConfig

	credentialPresent bool

	// processed filenames per session, in memory only. A restart forgets
	// them, which at worst costs one redundant re-index.
	processed *cache.Cache

	logger *zap.Logger
}

// NewUsecase creates a new session use case
func NewUsecase(
	sessionRepo repository.SessionRepository,
	chunkStore repository.ChunkStore,
	validator *validator.Validator,
	embedder EmbeddingConnector,
	kbCfg config.KnowledgeBaseConfig,
	credentialPresent bool,
	logger *zap.Logger,
) *SessionUsecase {
	return &SessionUsecase{
		sessionRepo:       sessionRepo,
		chunkStore:        chunkStore,
		validator:         validator,
		embedder:          embedder,
		kbCfg:             kbCfg,
		credentialPresent: credentialPresent,
		processed:         cache.New(cache.NoExpiration, cache.NoExpiration),
		logger:            logger,
	}
}

// CreateSession opens a new analysis session without a knowledge base.
func (uc *SessionUsecase) CreateSession(ctx context.Context) (*entity.Session, error) {
	session := entity.Session{
		ID:         uuid.New().String(),
		Status:     entity.SessionStatusNoKnowledgeBase,
		Collection: uc.kbCfg.Collection,
	}

	created, err := uc.sessionRepo.Create(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	ctxzap.Info(ctx, "session created", zap.String("session_id", created.ID))

	return created, nil
}

// GetSession retrieves a session by ID
func (uc *SessionUsecase) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: invalid session ID format", entity.ErrInvalidParameter)
	}

	return uc.sessionRepo.Get(ctx, id)
}

// CountChunks reports how many chunks the session's knowledge base holds.
func (uc *SessionUsecase) CountChunks(ctx context.Context, id string) (int, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, fmt.Errorf("%w: invalid session ID format", entity.ErrInvalidParameter)
	}

	return uc.chunkStore.CountBySession(ctx, id)
}

// IngestDocument extracts text from an uploaded PDF, chunks it, embeds the
// chunks and appends them to the session's knowledge base. A filename already
// processed in this session is acknowledged without re-ingestion unless the
// force flag is set. Any failure leaves the session state untouched.
func (uc *SessionUsecase) IngestDocument(
	ctx context.Context,
	req *entity.IngestDocumentRequest,
) (*entity.IngestDocumentResponse, error) {
	session, err := uc.sessionRepo.Get(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if !uc.credentialPresent {
		return nil, entity.ErrMissingCredential
	}

	if err := uc.validator.ValidateIngest(req); err != nil {
		return nil, err
	}

	filename := validator.SanitizeFilename(req.File.Filename)
	dedupKey := session.ID + ":" + filename

	if _, seen := uc.processed.Get(dedupKey); seen && !req.Force {
		ctxzap.Info(ctx, "document already processed, skipping",
			zap.String("filename", filename),
		)
		return &entity.IngestDocumentResponse{
			Status:   "skipped",
			Filename: filename,
			Skipped:  true,
		}, nil
	}

	content, err := readUpload(req.File)
	if err != nil {
		return nil, err
	}

	text, err := pdftext.Extract(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidFile, err)
	}

	if strings.TrimSpace(text) == "" {
		return nil, entity.ErrEmptyDocument
	}

	spans := chunker.Split(text, req.ChunkSize, req.Overlap)

	ctxzap.Info(ctx, "document chunked",
		zap.String("filename", filename),
		zap.Int("text_runes", len([]rune(text))),
		zap.Int("chunks", len(spans)),
	)

	chunks, err := uc.embedSpans(ctx, session.ID, filename, spans)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}

	// The previous index is dropped only once the replacement is fully
	// extracted and embedded; a bad re-upload leaves it intact.
	if req.Force {
		if err := uc.chunkStore.DeleteDocument(ctx, session.ID, filename); err != nil {
			return nil, fmt.Errorf("remove previous chunks: %w", err)
		}
		uc.processed.Delete(dedupKey)
	}

	if err := uc.chunkStore.Store(ctx, session.Collection, chunks); err != nil {
		return nil, fmt.Errorf("store chunks: %w", err)
	}

	if session.Status == entity.SessionStatusNoKnowledgeBase {
		if _, err := uc.sessionRepo.UpdateStatus(ctx, session.ID, entity.SessionStatusKnowledgeBaseLoaded); err != nil {
			// The store has already committed, so remove the document's
			// chunks to keep a failed ingestion free of leftovers.
			if derr := uc.chunkStore.DeleteDocument(ctx, session.ID, filename); derr != nil {
				ctxzap.Warn(ctx, "failed to remove chunks after status update failure",
					zap.String("filename", filename),
					zap.Error(derr),
				)
			}
			return nil, fmt.Errorf("update session status: %w", err)
		}
	}

	uc.processed.Set(dedupKey, true, cache.NoExpiration)

	ctxzap.Info(ctx, "document ingested",
		zap.String("session_id", session.ID),
		zap.String("filename", filename),
		zap.Int("chunks_indexed", len(chunks)),
	)

	return &entity.IngestDocumentResponse{
		Status:        "indexed",
		Filename:      filename,
		ChunksIndexed: len(chunks),
	}, nil
}
