package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen         TicketStatus = "open"
	TicketStatusTriaged      TicketStatus = "triaged"
	TicketStatusWaitingHuman TicketStatus = "waiting_human"
	TicketStatusResolved     TicketStatus = "resolved"
	TicketStatusClosed       TicketStatus = "closed"
)

// TicketPriority enumerates SLA urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID           string
	ExternalKey  string
	RequesterID  string
	AssigneeID   *string
	Title        string
	Description  string
	Category     Category
	Status       TicketStatus
	Priority     TicketPriority
	SuggestionID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ResolvedAt   *time.Time
	ClosedAt     *time.Time
}

// TicketReply is a single message on a ticket thread.
type TicketReply struct {
	ID           string
	TicketID     string
	AuthorID     *string
	Content      string
	IsAgentReply bool
	CreatedAt    time.Time
}

var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:         {TicketStatusTriaged, TicketStatusClosed},
	TicketStatusTriaged:      {TicketStatusTriaged, TicketStatusResolved, TicketStatusWaitingHuman},
	TicketStatusWaitingHuman: {TicketStatusResolved, TicketStatusClosed},
	TicketStatusResolved:     {TicketStatusClosed, TicketStatusOpen},
	TicketStatusClosed:       {TicketStatusOpen},
}

// ValidTransition reports whether a ticket may move from current to next.
// The reopen edges (resolved/closed back to open) are administrative; the
// triage pipeline only uses open/triaged→triaged→{resolved,waiting_human}.
func ValidTransition(current, next TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
