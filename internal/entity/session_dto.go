package entity

import "mime/multipart"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type CreateSessionResponse struct {
	SessionID string        `json:"session_id"`
	Status    SessionStatus `json:"session_status"`
}

type SessionDetailResponse struct {
	SessionID  string        `json:"session_id"`
	Status     SessionStatus `json:"session_status"`
	Collection string        `json:"collection"`
	ChunkCount int           `json:"chunk_count"`
	CreatedAt  string        `json:"created_at"`
}

type IngestDocumentRequest struct {
	SessionID string
	File      *multipart.FileHeader
	ChunkSize int
	Overlap   int
	Force     bool
}

type IngestDocumentResponse struct {
	Status        string `json:"status"`
	Filename      string `json:"filename"`
	ChunksIndexed int    `json:"chunks_indexed"`
	Skipped       bool   `json:"skipped"`
}

type AnalyzeRequest struct {
	SessionID    string       `json:"-"`
	AnalysisType AnalysisType `json:"analysis_type"`
	Query        string       `json:"query,omitempty"`
}

type AnalyzeResponse struct {
	ReportID        string `json:"report_id"`
	Analysis        string `json:"analysis"`
	KeyPoints       string `json:"key_points"`
	Recommendations string `json:"recommendations"`
}

type AnalysisTypeInfo struct {
	Type  AnalysisType `json:"type"`
	Label string       `json:"label"`
	Query string       `json:"query,omitempty"`
}

type AnalysisTypesResponse struct {
	Types []AnalysisTypeInfo `json:"types"`
}

type ConfigResponse struct {
	CredentialPresent bool `json:"credential_present"`
	ChunkSizeDefault  int  `json:"chunk_size_default"`
	ChunkSizeMax      int  `json:"chunk_size_max"`
	OverlapDefault    int  `json:"overlap_default"`
	OverlapMax        int  `json:"overlap_max"`
}
