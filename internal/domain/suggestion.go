package domain

import "time"

// ModelInfo records which capability produced a suggestion.
type ModelInfo struct {
	Provider      string `json:"provider"`
	Model         string `json:"model"`
	PromptVersion string `json:"prompt_version"`
	LatencyMS     int64  `json:"latency_ms"`
}

// Suggestion is the output of one triage run: the predicted category, the
// knowledge entries consulted, the drafted reply and the decision outcome.
// One suggestion exists per (ticket, trace) pair; retries overwrite it.
type Suggestion struct {
	ID                string
	TicketID          string
	TraceID           string
	PredictedCategory Category
	ArticleIDs        []string
	DraftReply        string
	Confidence        float64
	AutoClosed        bool
	Citations         []string
	ModelInfo         ModelInfo
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
