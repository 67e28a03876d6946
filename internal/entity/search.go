package entity

// Wire types for the DuckDuckGo Instant Answer API (format=json).

type SearchTopic struct {
	Text     string        `json:"Text"`
	FirstURL string        `json:"FirstURL"`
	Topics   []SearchTopic `json:"Topics,omitempty"`
}

type SearchResponse struct {
	Heading       string        `json:"Heading"`
	AbstractText  string        `json:"AbstractText"`
	AbstractURL   string        `json:"AbstractURL"`
	RelatedTopics []SearchTopic `json:"RelatedTopics"`
}

// SearchResult is one flattened hit handed to an agent prompt.
type SearchResult struct {
	Text string
	URL  string
}
