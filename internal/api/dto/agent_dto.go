package dto

import (
	"time"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
)

// TriggerTriageRequest payload.
type TriggerTriageRequest struct {
	TicketID string `json:"ticket_id"`
}

// TriageJobResponse returns the submitted job reference.
type TriageJobResponse struct {
	JobID   string `json:"job_id"`
	TraceID string `json:"trace_id"`
}

// UpdateDraftRequest payload.
type UpdateDraftRequest struct {
	DraftReply string `json:"draft_reply"`
}

// SuggestionResponse response.
type SuggestionResponse struct {
	ID                string           `json:"id"`
	TicketID          string           `json:"ticket_id"`
	TraceID           string           `json:"trace_id"`
	PredictedCategory domain.Category  `json:"predicted_category"`
	ArticleIDs        []string         `json:"article_ids"`
	DraftReply        string           `json:"draft_reply"`
	Confidence        float64          `json:"confidence"`
	AutoClosed        bool             `json:"auto_closed"`
	Citations         []string         `json:"citations"`
	ModelInfo         domain.ModelInfo `json:"model_info"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// QueueStatsResponse response.
type QueueStatsResponse struct {
	Enabled   bool   `json:"enabled"`
	Mode      string `json:"mode"`
	Waiting   int64  `json:"waiting"`
	Active    int64  `json:"active"`
	Completed int64  `json:"completed"`
	Failed    int64  `json:"failed"`
}
