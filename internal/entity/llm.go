package entity

// Wire types for the Gemini-style generateContent / embedContent endpoints.

type LLMPart struct {
	Text string `json:"text"`
}

type LLMContent struct {
	Role  string    `json:"role,omitempty"`
	Parts []LLMPart `json:"parts"`
}

type LLMGenerateRequest struct {
	SystemInstruction *LLMContent  `json:"systemInstruction,omitempty"`
	Contents          []LLMContent `json:"contents"`
}

type LLMCandidate struct {
	Content LLMContent `json:"content"`
}

type LLMGenerateResponse struct {
	Candidates []LLMCandidate `json:"candidates"`
}

// Text returns the concatenated text parts of the first candidate.
func (r *LLMGenerateResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var out string
	for _, part := range r.Candidates[0].Content.Parts {
		out += part.Text
	}
	return out
}

type EmbedRequest struct {
	Model   string     `json:"model,omitempty"`
	Content LLMContent `json:"content"`
}

type EmbedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

// CompletionInput is the connector-agnostic prompt for one agent invocation:
// a system instruction assembled from the role configuration and a user prompt
// carrying the query plus any retrieved or searched context.
type CompletionInput struct {
	System string
	Prompt string
}
