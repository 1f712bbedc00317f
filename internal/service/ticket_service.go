package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shubham7silyan/HelpDeskBackend/internal/audit"
	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
	"github.com/shubham7silyan/HelpDeskBackend/internal/events"
	"github.com/shubham7silyan/HelpDeskBackend/internal/repository"
	"github.com/shubham7silyan/HelpDeskBackend/pkg/util"
)

// TicketService coordinates ticket workflows around the triage pipeline.
type TicketService struct {
	tickets    repository.TicketRepository
	trail      *audit.Trail
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Trail      *audit.Trail
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Category    domain.Category
	Priority    domain.TicketPriority
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	Statuses    []domain.TicketStatus
	Categories  []domain.Category
	AssigneeID  *string
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		trail:      deps.Trail,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket creates a ticket and kicks off triage under a fresh trace id.
func (s *TicketService) CreateTicket(ctx context.Context, user *domain.User, input TicketCreateInput) (*domain.Ticket, string, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, "", util.NewValidationError("title and description required", nil)
	}
	category := input.Category
	if category == "" {
		category = domain.CategoryOther
	}
	if !domain.ValidCategory(category) {
		return nil, "", util.NewValidationError("invalid category", map[string]any{"category": category})
	}

	ticket := &domain.Ticket{
		ExternalKey: generateTicketKey(),
		RequesterID: user.ID,
		Title:       title,
		Description: description,
		Category:    category,
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityMedium
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, "", err
	}

	traceID := uuid.NewString()
	s.trail.Record(ctx, ticket.ID, traceID, domain.ActorUser, domain.ActionTicketCreated, map[string]any{
		"category": ticket.Category,
		"title":    ticket.Title,
	}, &user.ID)

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		TraceID:  traceID,
		Actor:    userActor(user),
		Payload: events.TicketCreatedPayload{
			Category: ticket.Category,
			Priority: ticket.Priority,
			Title:    ticket.Title,
		},
	})
	return ticket, traceID, nil
}

// ListTickets returns tickets visible to the caller. End users only ever
// see their own tickets.
func (s *TicketService) ListTickets(ctx context.Context, user *domain.User, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{
		Statuses:    filter.Statuses,
		Categories:  filter.Categories,
		SearchTerm:  filter.SearchTerm,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	if user.Role == domain.RoleUser {
		repoFilter.RequesterID = &user.ID
	} else if filter.AssigneeID != nil {
		repoFilter.AssigneeID = filter.AssigneeID
	}
	return s.tickets.ListWithFilter(ctx, repoFilter)
}

// GetTicket fetches a ticket with its reply thread, enforcing ownership for
// end users.
func (s *TicketService) GetTicket(ctx context.Context, user *domain.User, ticketID string) (*domain.Ticket, []domain.TicketReply, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, util.NewNotFound("ticket", nil)
		}
		return nil, nil, err
	}
	if user.Role == domain.RoleUser && ticket.RequesterID != user.ID {
		return nil, nil, util.NewForbidden("access denied")
	}
	replies, err := s.tickets.ListReplies(ctx, ticket.ID)
	if err != nil {
		return nil, nil, err
	}
	return ticket, replies, nil
}

// AddReply appends a reply. An agent replying to a waiting_human ticket
// resolves it.
func (s *TicketService) AddReply(ctx context.Context, user *domain.User, ticketID, content string) (*domain.TicketReply, *domain.Ticket, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, nil, util.NewValidationError("content required", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, util.NewNotFound("ticket", nil)
		}
		return nil, nil, err
	}
	if user.Role == domain.RoleUser && ticket.RequesterID != user.ID {
		return nil, nil, util.NewForbidden("access denied")
	}

	reply := &domain.TicketReply{
		TicketID:     ticket.ID,
		AuthorID:     &user.ID,
		Content:      content,
		IsAgentReply: user.Role.IsStaff(),
	}
	if err := s.tickets.AddReply(ctx, reply); err != nil {
		return nil, nil, err
	}

	statusChanged := false
	if user.Role.IsStaff() && ticket.Status == domain.TicketStatusWaitingHuman {
		now := time.Now()
		ticket.Status = domain.TicketStatusResolved
		ticket.ResolvedAt = &now
		if err := s.tickets.Update(ctx, ticket); err != nil {
			return nil, nil, err
		}
		statusChanged = true
	}

	traceID := uuid.NewString()
	s.trail.Record(ctx, ticket.ID, traceID, actorForRole(user.Role), domain.ActionReplySent, map[string]any{
		"reply_length":   len(content),
		"status_changed": statusChanged,
	}, &user.ID)

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketReplyAdded,
		TicketID: ticket.ID,
		TraceID:  traceID,
		Actor:    userActor(user),
		Payload: events.TicketReplyAddedPayload{
			ReplyID:      reply.ID,
			IsAgentReply: reply.IsAgentReply,
			BodyPreview:  stringPreview(content, 120),
		},
	})
	return reply, ticket, nil
}

// AssignTicket assigns a ticket to an agent, pulling it out of the human
// queue when needed.
func (s *TicketService) AssignTicket(ctx context.Context, agent *domain.User, ticketID string, assigneeID *string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("ticket", nil)
		}
		return nil, err
	}

	target := agent.ID
	if assigneeID != nil && *assigneeID != "" {
		target = *assigneeID
	}
	ticket.AssigneeID = &target
	if ticket.Status == domain.TicketStatusWaitingHuman {
		ticket.Status = domain.TicketStatusTriaged
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	traceID := uuid.NewString()
	s.trail.Record(ctx, ticket.ID, traceID, domain.ActorAgent, domain.ActionAssignedToHuman, map[string]any{
		"assigned_to": target,
		"assigned_by": agent.ID,
	}, &agent.ID)
	return ticket, nil
}

// UpdateStatus changes ticket status through the allowed transition graph.
func (s *TicketService) UpdateStatus(ctx context.Context, agent *domain.User, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("ticket", nil)
		}
		return nil, err
	}
	if !domain.ValidTransition(ticket.Status, newStatus) {
		return nil, util.NewValidationError("invalid status transition", map[string]any{
			"from": ticket.Status,
			"to":   newStatus,
		})
	}

	oldStatus := ticket.Status
	now := time.Now()
	switch newStatus {
	case domain.TicketStatusResolved:
		if ticket.ResolvedAt == nil {
			ticket.ResolvedAt = &now
		}
	case domain.TicketStatusClosed:
		ticket.ClosedAt = &now
	case domain.TicketStatusOpen:
		ticket.ResolvedAt = nil
		ticket.ClosedAt = nil
	}
	ticket.Status = newStatus
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	traceID := uuid.NewString()
	s.trail.Record(ctx, ticket.ID, traceID, domain.ActorAgent, statusAction(oldStatus, newStatus), map[string]any{
		"old_status": oldStatus,
		"new_status": newStatus,
	}, &agent.ID)

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		TraceID:  traceID,
		Actor:    userActor(agent),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return ticket, nil
}

// statusAction picks the audit action for a manual transition. Reopen and
// close have dedicated vocabulary entries.
func statusAction(_, newStatus domain.TicketStatus) domain.AuditAction {
	switch newStatus {
	case domain.TicketStatusClosed:
		return domain.ActionTicketClosed
	case domain.TicketStatusOpen:
		return domain.ActionTicketReopened
	default:
		return domain.ActionStatusChanged
	}
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func generateTicketKey() string {
	return "TCK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func userActor(user *domain.User) events.Actor {
	return events.Actor{
		Type:   actorForRole(user.Role),
		UserID: &user.ID,
	}
}

func actorForRole(role domain.Role) domain.AuditActor {
	if role.IsStaff() {
		return domain.ActorAgent
	}
	return domain.ActorUser
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
