package events

import (
	"time"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketReplyAdded    EventType = "ticket_reply_added"
	EventTriageCompleted     EventType = "triage_completed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Type   domain.AuditActor `json:"type"`
	UserID *string           `json:"user_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	TraceID   string      `json:"trace_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Category domain.Category       `json:"category"`
	Priority domain.TicketPriority `json:"priority"`
	Title    string                `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketReplyAddedPayload payload.
type TicketReplyAddedPayload struct {
	ReplyID      string `json:"reply_id"`
	IsAgentReply bool   `json:"is_agent_reply"`
	BodyPreview  string `json:"body_preview"`
}

// TriageCompletedPayload payload.
type TriageCompletedPayload struct {
	Category   domain.Category `json:"category"`
	Confidence float64         `json:"confidence"`
	AutoClosed bool            `json:"auto_closed"`
}
