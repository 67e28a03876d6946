package session

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/casemind/legal-team-backend/internal/config"
	"github.com/casemind/legal-team-backend/internal/entity"
	"github.com/casemind/legal-team-backend/internal/pkg/validator"
)

type fakeSessionRepo struct {
	session       *entity.Session
	statusUpdates []entity.SessionStatus
	statusErr     error
}

func (f *fakeSessionRepo) Create(_ context.Context, s entity.Session) (*entity.Session, error) {
	f.session = &s
	return &s, nil
}

func (f *fakeSessionRepo) Get(_ context.Context, id string) (*entity.Session, error) {
	if f.session == nil || f.session.ID != id {
		return nil, entity.ErrSessionNotFound
	}
	return f.session, nil
}

func (f *fakeSessionRepo) UpdateStatus(_ context.Context, id string, status entity.SessionStatus) (*entity.Session, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	f.statusUpdates = append(f.statusUpdates, status)
	f.session.Status = status
	return f.session, nil
}

type fakeChunkStore struct {
	stored  []entity.Chunk
	deleted []string
}

func (f *fakeChunkStore) Store(_ context.Context, _ string, chunks []entity.Chunk) error {
	f.stored = append(f.stored, chunks...)
	return nil
}

func (f *fakeChunkStore) Search(context.Context, string, []float32, int) ([]entity.ScoredChunk, error) {
	return nil, nil
}

func (f *fakeChunkStore) DeleteDocument(_ context.Context, _ string, document string) error {
	f.deleted = append(f.deleted, document)
	return nil
}

func (f *fakeChunkStore) CountBySession(context.Context, string) (int, error) {
	return len(f.stored), nil
}

type fakeEmbedder struct {
	batches int
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.batches++
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 2, 3, 4}
	}
	return vectors, nil
}

func newTestUsecase(repo *fakeSessionRepo, store *fakeChunkStore, embedder *fakeEmbedder, credentialPresent bool) *SessionUsecase {
	v := validator.NewValidator(
		config.FileUploadConfig{MaxFileSize: 10 << 20, MaxUploadSize: 32 << 20},
		config.ChunkingConfig{SizeMin: 1, SizeMax: 5000, SizeDefault: 1000, OverlapMin: 1, OverlapMax: 1000, OverlapDefault: 200},
	)
	return NewUsecase(repo, store, v, embedder, config.KnowledgeBaseConfig{Collection: "law", TopK: 5}, credentialPresent, zap.NewNop())
}

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(int64(buf.Len()) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	return form.File["file"][0]
}

func pdfFixture(t *testing.T, text string) []byte {
	t.Helper()

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Arial", "", 12)
	doc.MultiCell(190, 6, text, "", "L", false)

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

func TestCreateSession(t *testing.T) {
	repo := &fakeSessionRepo{}
	uc := newTestUsecase(repo, &fakeChunkStore{}, &fakeEmbedder{}, true)

	session, err := uc.CreateSession(context.Background())
	require.NoError(t, err)

	assert.Equal(t, entity.SessionStatusNoKnowledgeBase, session.Status)
	assert.Equal(t, "law", session.Collection)
	_, err = uuid.Parse(session.ID)
	assert.NoError(t, err)
}

func TestGetSessionInvalidID(t *testing.T) {
	uc := newTestUsecase(&fakeSessionRepo{}, &fakeChunkStore{}, &fakeEmbedder{}, true)

	_, err := uc.GetSession(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestIngestDocumentSessionNotFound(t *testing.T) {
	uc := newTestUsecase(&fakeSessionRepo{}, &fakeChunkStore{}, &fakeEmbedder{}, true)

	_, err := uc.IngestDocument(context.Background(), &entity.IngestDocumentRequest{
		SessionID: uuid.New().String(),
		File:      fileHeader(t, "contract.pdf", []byte("%PDF-1.4")),
		ChunkSize: 1000,
		Overlap:   200,
	})
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestIngestDocumentRequiresCredential(t *testing.T) {
	repo := &fakeSessionRepo{session: &entity.Session{
		ID:     uuid.New().String(),
		Status: entity.SessionStatusNoKnowledgeBase,
	}}
	uc := newTestUsecase(repo, &fakeChunkStore{}, &fakeEmbedder{}, false)

	_, err := uc.IngestDocument(context.Background(), &entity.IngestDocumentRequest{
		SessionID: repo.session.ID,
		File:      fileHeader(t, "contract.pdf", []byte("%PDF-1.4")),
		ChunkSize: 1000,
		Overlap:   200,
	})
	assert.ErrorIs(t, err, entity.ErrMissingCredential)
}

func TestIngestDocumentRejectsNonPDF(t *testing.T) {
	repo := &fakeSessionRepo{session: &entity.Session{
		ID:     uuid.New().String(),
		Status: entity.SessionStatusNoKnowledgeBase,
	}}
	uc := newTestUsecase(repo, &fakeChunkStore{}, &fakeEmbedder{}, true)

	_, err := uc.IngestDocument(context.Background(), &entity.IngestDocumentRequest{
		SessionID: repo.session.ID,
		File:      fileHeader(t, "notes.txt", []byte("plain text")),
		ChunkSize: 1000,
		Overlap:   200,
	})
	assert.ErrorIs(t, err, entity.ErrInvalidExtension)
}

func TestIngestDocumentChunkSizeOutOfBounds(t *testing.T) {
	repo := &fakeSessionRepo{session: &entity.Session{
		ID:     uuid.New().String(),
		Status: entity.SessionStatusNoKnowledgeBase,
	}}
	uc := newTestUsecase(repo, &fakeChunkStore{}, &fakeEmbedder{}, true)

	_, err := uc.IngestDocument(context.Background(), &entity.IngestDocumentRequest{
		SessionID: repo.session.ID,
		File:      fileHeader(t, "contract.pdf", []byte("%PDF-1.4")),
		ChunkSize: 9999,
		Overlap:   200,
	})
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestIngestDocumentCorruptPDF(t *testing.T) {
	repo := &fakeSessionRepo{session: &entity.Session{
		ID:     uuid.New().String(),
		Status: entity.SessionStatusNoKnowledgeBase,
	}}
	store := &fakeChunkStore{}
	uc := newTestUsecase(repo, store, &fakeEmbedder{}, true)

	_, err := uc.IngestDocument(context.Background(), &entity.IngestDocumentRequest{
		SessionID: repo.session.ID,
		File:      fileHeader(t, "contract.pdf", []byte("this is not a pdf at all")),
		ChunkSize: 1000,
		Overlap:   200,
	})
	assert.ErrorIs(t, err, entity.ErrInvalidFile)

	// nothing stored and the state is untouched
	assert.Empty(t, store.stored)
	assert.Empty(t, repo.statusUpdates)
}

func TestIngestDocumentSkipsProcessedFilename(t *testing.T) {
	repo := &fakeSessionRepo{session: &entity.Session{
		ID:     uuid.New().String(),
		Status: entity.SessionStatusKnowledgeBaseLoaded,
	}}
	embedder := &fakeEmbedder{}
	uc := newTestUsecase(repo, &fakeChunkStore{}, embedder, true)
	uc.processed.Set(repo.session.ID+":contract.pdf", true, cache.NoExpiration)

	resp, err := uc.IngestDocument(context.Background(), &entity.IngestDocumentRequest{
		SessionID: repo.session.ID,
		File:      fileHeader(t, "contract.pdf", []byte("%PDF-1.4")),
		ChunkSize: 1000,
		Overlap:   200,
	})
	require.NoError(t, err)

	assert.True(t, resp.Skipped)
	assert.Equal(t, "skipped", resp.Status)
	assert.Zero(t, embedder.batches)
}

func TestIngestDocumentSuccess(t *testing.T) {
	repo := &fakeSessionRepo{session: &entity.Session{
		ID:         uuid.New().String(),
		Status:     entity.SessionStatusNoKnowledgeBase,
		Collection: "law",
	}}
	store := &fakeChunkStore{}
	embedder := &fakeEmbedder{}
	uc := newTestUsecase(repo, store, embedder, true)

	resp, err := uc.IngestDocument(context.Background(), &entity.IngestDocumentRequest{
		SessionID: repo.session.ID,
		File:      fileHeader(t, "agreement.pdf", pdfFixture(t, "This agreement is entered into by the parties.")),
		ChunkSize: 1000,
		Overlap:   200,
	})
	require.NoError(t, err)

	assert.Equal(t, "indexed", resp.Status)
	assert.Equal(t, "agreement.pdf", resp.Filename)
	assert.False(t, resp.Skipped)
	require.NotZero(t, resp.ChunksIndexed)
	require.Len(t, store.stored, resp.ChunksIndexed)
	assert.Equal(t, "agreement.pdf", store.stored[0].Document)
	assert.NotEmpty(t, store.stored[0].Embedding)

	assert.Equal(t, []entity.SessionStatus{entity.SessionStatusKnowledgeBaseLoaded}, repo.statusUpdates)

	_, seen := uc.processed.Get(repo.session.ID + ":agreement.pdf")
	assert.True(t, seen)
}

func TestIngestDocumentForceCorruptFileKeepsPreviousChunks(t *testing.T) {
	repo := &fakeSessionRepo{session: &entity.Session{
		ID:     uuid.New().String(),
		Status: entity.SessionStatusKnowledgeBaseLoaded,
	}}
	store := &fakeChunkStore{}
	uc := newTestUsecase(repo, store, &fakeEmbedder{}, true)
	uc.processed.Set(repo.session.ID+":contract.pdf", true, cache.NoExpiration)

	// a force re-upload of a corrupt file fails before the old index is touched
	_, err := uc.IngestDocument(context.Background(), &entity.IngestDocumentRequest{
		SessionID: repo.session.ID,
		File:      fileHeader(t, "contract.pdf", []byte("broken")),
		ChunkSize: 1000,
		Overlap:   200,
		Force:     true,
	})
	assert.ErrorIs(t, err, entity.ErrInvalidFile)
	assert.Empty(t, store.deleted)

	_, seen := uc.processed.Get(repo.session.ID + ":contract.pdf")
	assert.True(t, seen)
}

func TestIngestDocumentForceReindexes(t *testing.T) {
	repo := &fakeSessionRepo{session: &entity.Session{
		ID:     uuid.New().String(),
		Status: entity.SessionStatusKnowledgeBaseLoaded,
	}}
	store := &fakeChunkStore{}
	uc := newTestUsecase(repo, store, &fakeEmbedder{}, true)
	uc.processed.Set(repo.session.ID+":contract.pdf", true, cache.NoExpiration)

	resp, err := uc.IngestDocument(context.Background(), &entity.IngestDocumentRequest{
		SessionID: repo.session.ID,
		File:      fileHeader(t, "contract.pdf", pdfFixture(t, "Amended and restated terms.")),
		ChunkSize: 1000,
		Overlap:   200,
		Force:     true,
	})
	require.NoError(t, err)

	assert.False(t, resp.Skipped)
	assert.Equal(t, []string{"contract.pdf"}, store.deleted)
	assert.NotEmpty(t, store.stored)
}

func TestIngestDocumentStatusUpdateFailureRemovesChunks(t *testing.T) {
	repo := &fakeSessionRepo{
		session: &entity.Session{
			ID:     uuid.New().String(),
			Status: entity.SessionStatusNoKnowledgeBase,
		},
		statusErr: errors.New("connection reset"),
	}
	store := &fakeChunkStore{}
	uc := newTestUsecase(repo, store, &fakeEmbedder{}, true)

	_, err := uc.IngestDocument(context.Background(), &entity.IngestDocumentRequest{
		SessionID: repo.session.ID,
		File:      fileHeader(t, "agreement.pdf", pdfFixture(t, "This agreement is entered into by the parties.")),
		ChunkSize: 1000,
		Overlap:   200,
	})
	require.Error(t, err)

	// the committed chunks are compensated away and the upload is retryable
	assert.Equal(t, []string{"agreement.pdf"}, store.deleted)
	_, seen := uc.processed.Get(repo.session.ID + ":agreement.pdf")
	assert.False(t, seen)
}

func TestCountChunks(t *testing.T) {
	repo := &fakeSessionRepo{session: &entity.Session{ID: uuid.New().String()}}
	store := &fakeChunkStore{stored: []entity.Chunk{{ID: uuid.New().String()}}}
	uc := newTestUsecase(repo, store, &fakeEmbedder{}, true)

	count, err := uc.CountChunks(context.Background(), repo.session.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = uc.CountChunks(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}
