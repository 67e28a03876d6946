package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound     = errors.New("session not found")
	ErrNoKnowledgeBase     = errors.New("knowledge base is not loaded")
	ErrReportNotFound      = errors.New("report not found")
	ErrAnalysisUnavailable = errors.New("no analysis response available")

	// File errors
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrEmptyDocument    = errors.New("document contains no extractable text")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrEmptyQuery       = errors.New("query must not be empty")

	// Configuration errors
	ErrMissingCredential = errors.New("model API key is not configured")

	// External service errors. Transient by classification; never retried.
	ErrServiceFailure = errors.New("transient service failure")
)
