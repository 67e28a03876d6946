package session

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/casemind/legal-team-backend/internal/entity"
	"github.com/casemind/legal-team-backend/internal/pkg/chunker"
)

// readUpload reads the uploaded file into memory.
func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}

	return content, nil
}

// embedSpans embeds chunk texts in document order and pairs each span with
// its vector. The batch either succeeds whole or nothing is kept.
func (uc *SessionUsecase) embedSpans(
	ctx context.Context,
	sessionID string,
	document string,
	spans []chunker.Span,
) ([]entity.Chunk, error) {
	texts := make([]string, len(spans))
	for i, span := range spans {
		texts[i] = span.Content
	}

	vectors, err := uc.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(spans) {
		return nil, fmt.Errorf("embedding count mismatch: %d vectors for %d chunks", len(vectors), len(spans))
	}

	chunks := make([]entity.Chunk, len(spans))
	for i, span := range spans {
		chunks[i] = entity.Chunk{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Document:  document,
			Index:     span.Index,
			Content:   span.Content,
			Embedding: vectors[i],
		}
	}

	return chunks, nil
}
