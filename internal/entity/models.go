package entity

import (
	"fmt"
	"time"
)

type SessionStatus string

// Session status follows the knowledge-base lifecycle: a session starts without
// a knowledge base, gains one after the first successful ingestion, and holds a
// response once an analysis has completed.
const (
	SessionStatusNoKnowledgeBase     SessionStatus = "NO_KNOWLEDGE_BASE"
	SessionStatusKnowledgeBaseLoaded SessionStatus = "KNOWLEDGE_BASE_LOADED"
	SessionStatusResponseAvailable   SessionStatus = "RESPONSE_AVAILABLE"
)

type Session struct {
	ID         string        `json:"session_id"`
	Status     SessionStatus `json:"session_status"`
	Collection string        `json:"collection"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// HasKnowledgeBase reports whether at least one document has been ingested.
func (s *Session) HasKnowledgeBase() bool {
	return s.Status == SessionStatusKnowledgeBaseLoaded || s.Status == SessionStatusResponseAvailable
}

// Document is an uploaded file held only for the duration of ingestion.
// It is never persisted; only its chunks survive.
type Document struct {
	Name    string
	Content []byte
}

// Chunk is a contiguous span of document text, immutable after creation.
type Chunk struct {
	ID        string
	SessionID string
	Document  string
	Index     int
	Content   string
	Embedding []float32
}

// ScoredChunk is a chunk ranked by similarity to a query embedding.
type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

type AnalysisType string

const (
	AnalysisContractReview  AnalysisType = "CONTRACT_REVIEW"
	AnalysisLegalResearch   AnalysisType = "LEGAL_RESEARCH"
	AnalysisRiskAssessment  AnalysisType = "RISK_ASSESSMENT"
	AnalysisComplianceCheck AnalysisType = "COMPLIANCE_CHECK"
	AnalysisCustomQuery     AnalysisType = "CUSTOM_QUERY"
)

func (at AnalysisType) Validate() error {
	switch at {
	case AnalysisContractReview, AnalysisLegalResearch, AnalysisRiskAssessment,
		AnalysisComplianceCheck, AnalysisCustomQuery:
		return nil
	default:
		return fmt.Errorf("%w: unknown analysis type %q", ErrInvalidParameter, string(at))
	}
}

// AgentRole is the configuration of one pipeline stage. All four roles share
// the same invocation contract and differ only in this data.
type AgentRole struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Instructions    []string `json:"instructions"`
	SearchKnowledge bool     `json:"search_knowledge"`
	WebSearch       bool     `json:"web_search"`
}

// AgentOutput is one worker role's free-text answer for a query.
type AgentOutput struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Report holds the three result views produced by one Analyze action.
type Report struct {
	ID              string       `json:"report_id"`
	SessionID       string       `json:"session_id"`
	AnalysisType    AnalysisType `json:"analysis_type"`
	Query           string       `json:"query"`
	Analysis        string       `json:"analysis"`
	KeyPoints       string       `json:"key_points"`
	Recommendations string       `json:"recommendations"`
	CreatedAt       time.Time    `json:"created_at"`
}

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}
