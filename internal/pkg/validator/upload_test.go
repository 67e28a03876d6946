package validator

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casemind/legal-team-backend/internal/config"
	"github.com/casemind/legal-team-backend/internal/entity"
)

func newTestValidator() *Validator {
	return NewValidator(
		config.FileUploadConfig{MaxFileSize: 1 << 20, MaxUploadSize: 4 << 20},
		config.ChunkingConfig{SizeMin: 1, SizeMax: 5000, SizeDefault: 1000, OverlapMin: 1, OverlapMax: 1000, OverlapDefault: 200},
	)
}

func header(filename string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: filename,
		Size:     size,
		Header:   textproto.MIMEHeader{},
	}
}

func TestValidateIngest(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name    string
		req     *entity.IngestDocumentRequest
		wantErr error
	}{
		{
			name:    "missing file",
			req:     &entity.IngestDocumentRequest{ChunkSize: 1000, Overlap: 200},
			wantErr: entity.ErrMissingField,
		},
		{
			name: "valid",
			req: &entity.IngestDocumentRequest{
				File: header("contract.pdf", 1024), ChunkSize: 1000, Overlap: 200,
			},
		},
		{
			name: "wrong extension",
			req: &entity.IngestDocumentRequest{
				File: header("contract.docx", 1024), ChunkSize: 1000, Overlap: 200,
			},
			wantErr: entity.ErrInvalidExtension,
		},
		{
			name: "too large",
			req: &entity.IngestDocumentRequest{
				File: header("contract.pdf", 2<<20), ChunkSize: 1000, Overlap: 200,
			},
			wantErr: entity.ErrFileTooLarge,
		},
		{
			name: "chunk size too small",
			req: &entity.IngestDocumentRequest{
				File: header("contract.pdf", 1024), ChunkSize: 0, Overlap: 200,
			},
			wantErr: entity.ErrInvalidParameter,
		},
		{
			name: "chunk size too large",
			req: &entity.IngestDocumentRequest{
				File: header("contract.pdf", 1024), ChunkSize: 5001, Overlap: 200,
			},
			wantErr: entity.ErrInvalidParameter,
		},
		{
			name: "overlap too large",
			req: &entity.IngestDocumentRequest{
				File: header("contract.pdf", 1024), ChunkSize: 1000, Overlap: 1001,
			},
			wantErr: entity.ErrInvalidParameter,
		},
		{
			// the overlap/size relation itself is not constrained
			name: "overlap larger than chunk size",
			req: &entity.IngestDocumentRequest{
				File: header("contract.pdf", 1024), ChunkSize: 100, Overlap: 900,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateIngest(tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAnalyze(t *testing.T) {
	v := newTestValidator()

	assert.NoError(t, v.ValidateAnalyze(&entity.AnalyzeRequest{
		AnalysisType: entity.AnalysisContractReview,
	}))

	assert.NoError(t, v.ValidateAnalyze(&entity.AnalyzeRequest{
		AnalysisType: entity.AnalysisCustomQuery,
		Query:        "What are the termination clauses?",
	}))

	assert.ErrorIs(t, v.ValidateAnalyze(&entity.AnalyzeRequest{
		AnalysisType: entity.AnalysisCustomQuery,
		Query:        "  \t ",
	}), entity.ErrEmptyQuery)

	assert.ErrorIs(t, v.ValidateAnalyze(&entity.AnalyzeRequest{
		AnalysisType: entity.AnalysisType("SOMETHING_ELSE"),
	}), entity.ErrInvalidParameter)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_contract_v2.pdf", SanitizeFilename("my contract (v2).pdf"))
	assert.Equal(t, "contract.pdf", SanitizeFilename("../../etc/contract.pdf"))
}
