// Package audit provides the append-only trail recording every triage and
// lifecycle step. Recording never propagates failure to the caller; losing
// an audit line must not block a business outcome.
package audit

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
	"github.com/shubham7silyan/HelpDeskBackend/internal/repository"
)

// Trail wraps the audit repository with the swallow-and-report contract.
type Trail struct {
	repo   repository.AuditRepository
	logger *zap.Logger
}

// NewTrail constructs the trail.
func NewTrail(repo repository.AuditRepository, logger *zap.Logger) *Trail {
	return &Trail{repo: repo, logger: logger}
}

// Record appends an event. Append errors are logged and dropped.
func (t *Trail) Record(ctx context.Context, ticketID, traceID string, actor domain.AuditActor, action domain.AuditAction, meta map[string]any, userID *string) {
	if meta == nil {
		meta = map[string]any{}
	}
	event := &domain.AuditEvent{
		TicketID: ticketID,
		TraceID:  traceID,
		Actor:    actor,
		Action:   action,
		Meta:     meta,
		UserID:   userID,
	}
	if err := t.repo.Append(ctx, event); err != nil {
		t.logger.Error("failed to append audit event",
			zap.String("ticket_id", ticketID),
			zap.String("trace_id", traceID),
			zap.String("action", string(action)),
			zap.Error(err),
		)
		return
	}
	t.logger.Debug("audit event recorded",
		zap.String("ticket_id", ticketID),
		zap.String("action", string(action)),
	)
}

// TicketEvents lists events for a ticket, newest-first, with the total count.
func (t *Trail) TicketEvents(ctx context.Context, ticketID string, limit, offset int) ([]domain.AuditEvent, int, error) {
	return t.repo.ListByTicket(ctx, ticketID, limit, offset)
}

// TraceEvents lists the replayable event log of one triage run, oldest-first.
func (t *Trail) TraceEvents(ctx context.Context, traceID string) ([]domain.AuditEvent, error) {
	return t.repo.ListByTrace(ctx, traceID)
}

// ExportNDJSON streams events in the time range as line-delimited JSON.
func (t *Trail) ExportNDJSON(ctx context.Context, w io.Writer, from, to *time.Time) error {
	enc := json.NewEncoder(w)
	return t.repo.StreamRange(ctx, from, to, func(event domain.AuditEvent) error {
		return enc.Encode(event)
	})
}

// ExportJSON collects events in the time range into a slice.
func (t *Trail) ExportJSON(ctx context.Context, from, to *time.Time) ([]domain.AuditEvent, error) {
	events := []domain.AuditEvent{}
	err := t.repo.StreamRange(ctx, from, to, func(event domain.AuditEvent) error {
		events = append(events, event)
		return nil
	})
	return events, err
}
