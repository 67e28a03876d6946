package validator

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/casemind/legal-team-backend/internal/config"
	"github.com/casemind/legal-team-backend/internal/entity"
)

var AllowedExtensions = map[string]bool{
	".pdf": true,
}

// Validator validates document uploads and chunking parameters.
type Validator struct {
	uploadCfg config.FileUploadConfig
	chunkCfg  config.ChunkingConfig
}

func NewValidator(uploadCfg config.FileUploadConfig, chunkCfg config.ChunkingConfig) *Validator {
	return &Validator{uploadCfg: uploadCfg, chunkCfg: chunkCfg}
}

// ValidateIngest checks the upload and its chunking parameters. The overlap
// is bounded but deliberately not constrained to be smaller than the chunk
// size.
func (v *Validator) ValidateIngest(req *entity.IngestDocumentRequest) error {
	if req.File == nil {
		return fmt.Errorf("%w: file", entity.ErrMissingField)
	}

	if err := v.ValidateUpload(req.File); err != nil {
		return err
	}

	if req.ChunkSize < v.chunkCfg.SizeMin || req.ChunkSize > v.chunkCfg.SizeMax {
		return fmt.Errorf("%w: chunk_size must be between %d and %d, got %d",
			entity.ErrInvalidParameter, v.chunkCfg.SizeMin, v.chunkCfg.SizeMax, req.ChunkSize)
	}

	if req.Overlap < v.chunkCfg.OverlapMin || req.Overlap > v.chunkCfg.OverlapMax {
		return fmt.Errorf("%w: overlap must be between %d and %d, got %d",
			entity.ErrInvalidParameter, v.chunkCfg.OverlapMin, v.chunkCfg.OverlapMax, req.Overlap)
	}

	return nil
}

// ValidateUpload validates a single uploaded file header.
func (v *Validator) ValidateUpload(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := AllowedExtensions[ext]; !ok {
		return fmt.Errorf("%w: %s (allowed: pdf)", entity.ErrInvalidExtension, ext)
	}

	if fh.Size > v.uploadCfg.MaxFileSize {
		return fmt.Errorf("%w: file '%s' is %d bytes (max %d)",
			entity.ErrFileTooLarge, fh.Filename, fh.Size, v.uploadCfg.MaxFileSize)
	}

	return nil
}

// ValidateAnalyze checks the analysis type and rejects empty custom queries
// before any model call is made.
func (v *Validator) ValidateAnalyze(req *entity.AnalyzeRequest) error {
	if err := req.AnalysisType.Validate(); err != nil {
		return err
	}

	if req.AnalysisType == entity.AnalysisCustomQuery && strings.TrimSpace(req.Query) == "" {
		return entity.ErrEmptyQuery
	}

	return nil
}

// SanitizeFilename sanitizes a filename for safe storage
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "_",
		"(", "",
		")", "",
		"[", "",
		"]", "",
		"{", "",
		"}", "",
	)
	return replacer.Replace(filename)
}
