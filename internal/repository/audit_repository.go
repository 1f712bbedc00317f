package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
)

// AuditRepository is append-only storage for audit events. There is no
// update or delete path by design.
type AuditRepository interface {
	Append(ctx context.Context, event *domain.AuditEvent) error
	// ListByTicket returns events newest-first with the total count.
	ListByTicket(ctx context.Context, ticketID string, limit, offset int) ([]domain.AuditEvent, int, error)
	// ListByTrace returns events oldest-first: the replayable log of one run.
	ListByTrace(ctx context.Context, traceID string) ([]domain.AuditEvent, error)
	// StreamRange invokes fn per event in the time range, newest-first.
	StreamRange(ctx context.Context, from, to *time.Time, fn func(domain.AuditEvent) error) error
}

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository instantiates repository.
func NewAuditRepository(pool *pgxpool.Pool) AuditRepository {
	return &auditRepository{pool: pool}
}

const auditColumns = `id, ticket_id, trace_id, actor, action, meta, user_id, timestamp`

func (r *auditRepository) Append(ctx context.Context, event *domain.AuditEvent) error {
	const query = `
        INSERT INTO audit_events (ticket_id, trace_id, actor, action, meta, user_id)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, timestamp`
	return r.pool.QueryRow(ctx, query,
		event.TicketID,
		event.TraceID,
		event.Actor,
		event.Action,
		event.Meta,
		event.UserID,
	).Scan(&event.ID, &event.Timestamp)
}

func (r *auditRepository) ListByTicket(ctx context.Context, ticketID string, limit, offset int) ([]domain.AuditEvent, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM audit_events WHERE ticket_id=$1`, ticketID).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := fmt.Sprintf(`SELECT %s FROM audit_events WHERE ticket_id=$1 ORDER BY timestamp DESC LIMIT %d OFFSET %d`,
		auditColumns, limit, offset)
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events, err := scanAuditEvents(rows)
	return events, total, err
}

func (r *auditRepository) ListByTrace(ctx context.Context, traceID string) ([]domain.AuditEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM audit_events WHERE trace_id=$1 ORDER BY timestamp ASC`, auditColumns)
	rows, err := r.pool.Query(ctx, query, traceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAuditEvents(rows)
}

func (r *auditRepository) StreamRange(ctx context.Context, from, to *time.Time, fn func(domain.AuditEvent) error) error {
	clauses := []string{"1=1"}
	args := []any{}
	if from != nil {
		args = append(args, *from)
		clauses = append(clauses, fmt.Sprintf("timestamp >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, *to)
		clauses = append(clauses, fmt.Sprintf("timestamp <= $%d", len(args)))
	}
	query := fmt.Sprintf(`SELECT %s FROM audit_events WHERE %s ORDER BY timestamp DESC`,
		auditColumns, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		event, err := scanAuditEvent(rows)
		if err != nil {
			return err
		}
		if err := fn(event); err != nil {
			return err
		}
	}
	return rows.Err()
}

func scanAuditEvents(rows pgx.Rows) ([]domain.AuditEvent, error) {
	var result []domain.AuditEvent
	for rows.Next() {
		event, err := scanAuditEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

func scanAuditEvent(rows pgx.Rows) (domain.AuditEvent, error) {
	var event domain.AuditEvent
	err := rows.Scan(
		&event.ID,
		&event.TicketID,
		&event.TraceID,
		&event.Actor,
		&event.Action,
		&event.Meta,
		&event.UserID,
		&event.Timestamp,
	)
	return event, err
}
