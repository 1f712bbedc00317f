package domain

import "time"

// AuditActor identifies who performed an audited action.
type AuditActor string

const (
	ActorSystem AuditActor = "system"
	ActorAgent  AuditActor = "agent"
	ActorUser   AuditActor = "user"
)

// AuditAction is the fixed action vocabulary. Downstream tooling depends on
// these exact values; never extend or rename them silently.
type AuditAction string

const (
	ActionTicketCreated   AuditAction = "TICKET_CREATED"
	ActionAgentClassified AuditAction = "AGENT_CLASSIFIED"
	ActionKBRetrieved     AuditAction = "KB_RETRIEVED"
	ActionDraftGenerated  AuditAction = "DRAFT_GENERATED"
	ActionAutoClosed      AuditAction = "AUTO_CLOSED"
	ActionAssignedToHuman AuditAction = "ASSIGNED_TO_HUMAN"
	ActionReplySent       AuditAction = "REPLY_SENT"
	ActionStatusChanged   AuditAction = "STATUS_CHANGED"
	ActionTicketReopened  AuditAction = "TICKET_REOPENED"
	ActionTicketClosed    AuditAction = "TICKET_CLOSED"
)

// AuditEvent is an append-only record of one pipeline or lifecycle step.
// Events are never updated or deleted; for one trace id, ordered by
// timestamp, they form a replayable log of a triage run.
type AuditEvent struct {
	ID        string         `json:"id"`
	TicketID  string         `json:"ticket_id"`
	TraceID   string         `json:"trace_id"`
	Actor     AuditActor     `json:"actor"`
	Action    AuditAction    `json:"action"`
	Meta      map[string]any `json:"meta"`
	UserID    *string        `json:"user_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
