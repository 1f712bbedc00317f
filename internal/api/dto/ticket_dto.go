package dto

import (
	"time"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    domain.Category       `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
}

// CreateReplyRequest payload.
type CreateReplyRequest struct {
	Content string `json:"content"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	AssigneeID *string `json:"assignee_id"`
}

// TicketSummary response.
type TicketSummary struct {
	ID          string                `json:"id"`
	ExternalKey string                `json:"external_key"`
	RequesterID string                `json:"requester_id"`
	AssigneeID  *string               `json:"assignee_id"`
	Title       string                `json:"title"`
	Category    domain.Category       `json:"category"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	ID           string                `json:"id"`
	ExternalKey  string                `json:"external_key"`
	RequesterID  string                `json:"requester_id"`
	AssigneeID   *string               `json:"assignee_id"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Category     domain.Category       `json:"category"`
	Status       domain.TicketStatus   `json:"status"`
	Priority     domain.TicketPriority `json:"priority"`
	SuggestionID *string               `json:"suggestion_id"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	ResolvedAt   *time.Time            `json:"resolved_at"`
	ClosedAt     *time.Time            `json:"closed_at"`
	Replies      []TicketReplyResponse `json:"replies"`
}

// TicketReplyResponse represents a thread message.
type TicketReplyResponse struct {
	ID           string    `json:"id"`
	AuthorID     *string   `json:"author_id"`
	Content      string    `json:"content"`
	IsAgentReply bool      `json:"is_agent_reply"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreatedTicketResponse returns the new ticket plus the triage trace id.
type CreatedTicketResponse struct {
	Ticket  TicketSummary `json:"ticket"`
	TraceID string        `json:"trace_id"`
}
