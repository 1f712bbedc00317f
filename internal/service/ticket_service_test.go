package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shubham7silyan/HelpDeskBackend/internal/audit"
	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
	"github.com/shubham7silyan/HelpDeskBackend/internal/events"
	"github.com/shubham7silyan/HelpDeskBackend/internal/repository"
	"github.com/shubham7silyan/HelpDeskBackend/pkg/util"
)

type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
	replies []domain.TicketReply
	nextID  int
}

func newFakeTicketRepo(tickets ...*domain.Ticket) *fakeTicketRepo {
	repo := &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
	for _, ticket := range tickets {
		repo.tickets[ticket.ID] = ticket
	}
	return repo
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.nextID++
	ticket.ID = "t" + string(rune('0'+f.nextID))
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	copied := *ticket
	f.tickets[ticket.ID] = &copied
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := f.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *ticket
	f.tickets[ticket.ID] = &copied
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range f.tickets {
		if filter.RequesterID != nil && ticket.RequesterID != *filter.RequesterID {
			continue
		}
		result = append(result, *ticket)
	}
	return result, nil
}

func (f *fakeTicketRepo) AddReply(_ context.Context, reply *domain.TicketReply) error {
	reply.ID = "r1"
	reply.CreatedAt = time.Now()
	f.replies = append(f.replies, *reply)
	return nil
}

func (f *fakeTicketRepo) ListReplies(_ context.Context, ticketID string) ([]domain.TicketReply, error) {
	var result []domain.TicketReply
	for _, reply := range f.replies {
		if reply.TicketID == ticketID {
			result = append(result, reply)
		}
	}
	return result, nil
}

type captureAuditRepo struct {
	events []domain.AuditEvent
}

func (c *captureAuditRepo) Append(_ context.Context, event *domain.AuditEvent) error {
	event.ID = "evt"
	event.Timestamp = time.Now()
	c.events = append(c.events, *event)
	return nil
}

func (c *captureAuditRepo) ListByTicket(context.Context, string, int, int) ([]domain.AuditEvent, int, error) {
	return c.events, len(c.events), nil
}

func (c *captureAuditRepo) ListByTrace(context.Context, string) ([]domain.AuditEvent, error) {
	return c.events, nil
}

func (c *captureAuditRepo) StreamRange(_ context.Context, _, _ *time.Time, fn func(domain.AuditEvent) error) error {
	for _, event := range c.events {
		if err := fn(event); err != nil {
			return err
		}
	}
	return nil
}

func (c *captureAuditRepo) lastAction() domain.AuditAction {
	if len(c.events) == 0 {
		return ""
	}
	return c.events[len(c.events)-1].Action
}

type ticketFixture struct {
	service    *TicketService
	repo       *fakeTicketRepo
	auditRepo  *captureAuditRepo
	published  []events.Event
	dispatcher events.Dispatcher
}

func newTicketFixture(tickets ...*domain.Ticket) *ticketFixture {
	fx := &ticketFixture{
		repo:      newFakeTicketRepo(tickets...),
		auditRepo: &captureAuditRepo{},
	}
	fx.dispatcher = events.NewInMemoryDispatcher()
	for _, eventType := range []events.EventType{
		events.EventTicketCreated,
		events.EventTicketStatusChanged,
		events.EventTicketReplyAdded,
	} {
		fx.dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			fx.published = append(fx.published, event)
			return nil
		})
	}
	fx.service = NewTicketService(TicketDependencies{
		TicketRepo: fx.repo,
		Trail:      audit.NewTrail(fx.auditRepo, zap.NewNop()),
		Dispatcher: fx.dispatcher,
	})
	return fx
}

func endUser(id string) *domain.User {
	return &domain.User{ID: id, Name: "User", Email: id + "@example.com", Role: domain.RoleUser}
}

func agentUser(id string) *domain.User {
	return &domain.User{ID: id, Name: "Agent", Email: id + "@example.com", Role: domain.RoleAgent}
}

func TestCreateTicketPublishesAndAudits(t *testing.T) {
	fx := newTicketFixture()

	ticket, traceID, err := fx.service.CreateTicket(context.Background(), endUser("u1"), TicketCreateInput{
		Title:       "Refund please",
		Description: "I was charged twice",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, traceID)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.CategoryOther, ticket.Category)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)
	assert.NotEmpty(t, ticket.ExternalKey)

	require.Len(t, fx.auditRepo.events, 1)
	created := fx.auditRepo.events[0]
	assert.Equal(t, domain.ActionTicketCreated, created.Action)
	assert.Equal(t, domain.ActorUser, created.Actor)
	assert.Equal(t, traceID, created.TraceID)

	require.Len(t, fx.published, 1)
	assert.Equal(t, events.EventTicketCreated, fx.published[0].Type)
	assert.Equal(t, traceID, fx.published[0].TraceID)
	assert.Equal(t, ticket.ID, fx.published[0].TicketID)
}

func TestCreateTicketRejectsEmptyTitle(t *testing.T) {
	fx := newTicketFixture()

	_, _, err := fx.service.CreateTicket(context.Background(), endUser("u1"), TicketCreateInput{
		Title:       "   ",
		Description: "something",
	})
	require.Error(t, err)
	assert.True(t, util.IsValidation(err))
	assert.Empty(t, fx.published)
}

func TestGetTicketEnforcesOwnership(t *testing.T) {
	ticket := &domain.Ticket{ID: "t1", RequesterID: "owner", Status: domain.TicketStatusOpen}
	fx := newTicketFixture(ticket)

	_, _, err := fx.service.GetTicket(context.Background(), endUser("intruder"), "t1")
	require.Error(t, err)

	got, _, err := fx.service.GetTicket(context.Background(), endUser("owner"), "t1")
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)

	// Staff see everything.
	_, _, err = fx.service.GetTicket(context.Background(), agentUser("a1"), "t1")
	require.NoError(t, err)
}

func TestAgentReplyResolvesWaitingTicket(t *testing.T) {
	ticket := &domain.Ticket{ID: "t1", RequesterID: "owner", Status: domain.TicketStatusWaitingHuman}
	fx := newTicketFixture(ticket)

	reply, updated, err := fx.service.AddReply(context.Background(), agentUser("a1"), "t1", "Here is the fix.")
	require.NoError(t, err)
	assert.True(t, reply.IsAgentReply)
	assert.Equal(t, domain.TicketStatusResolved, updated.Status)
	require.NotNil(t, updated.ResolvedAt)

	assert.Equal(t, domain.ActionReplySent, fx.auditRepo.lastAction())
	last := fx.auditRepo.events[len(fx.auditRepo.events)-1]
	assert.Equal(t, true, last.Meta["status_changed"])
	assert.Equal(t, domain.ActorAgent, last.Actor)
}

func TestUserReplyDoesNotChangeStatus(t *testing.T) {
	ticket := &domain.Ticket{ID: "t1", RequesterID: "owner", Status: domain.TicketStatusWaitingHuman}
	fx := newTicketFixture(ticket)

	reply, updated, err := fx.service.AddReply(context.Background(), endUser("owner"), "t1", "Any update?")
	require.NoError(t, err)
	assert.False(t, reply.IsAgentReply)
	assert.Equal(t, domain.TicketStatusWaitingHuman, updated.Status)
}

func TestUserCannotReplyToOthersTicket(t *testing.T) {
	ticket := &domain.Ticket{ID: "t1", RequesterID: "owner", Status: domain.TicketStatusOpen}
	fx := newTicketFixture(ticket)

	_, _, err := fx.service.AddReply(context.Background(), endUser("intruder"), "t1", "hello")
	require.Error(t, err)
}

func TestAssignTicketPullsOutOfHumanQueue(t *testing.T) {
	ticket := &domain.Ticket{ID: "t1", RequesterID: "owner", Status: domain.TicketStatusWaitingHuman}
	fx := newTicketFixture(ticket)

	updated, err := fx.service.AssignTicket(context.Background(), agentUser("a1"), "t1", nil)
	require.NoError(t, err)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, "a1", *updated.AssigneeID)
	assert.Equal(t, domain.TicketStatusTriaged, updated.Status)
	assert.Equal(t, domain.ActionAssignedToHuman, fx.auditRepo.lastAction())
}

func TestUpdateStatusTransitions(t *testing.T) {
	ticket := &domain.Ticket{ID: "t1", RequesterID: "owner", Status: domain.TicketStatusResolved}
	fx := newTicketFixture(ticket)

	closed, err := fx.service.UpdateStatus(context.Background(), agentUser("a1"), "t1", domain.TicketStatusClosed)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, closed.Status)
	require.NotNil(t, closed.ClosedAt)
	assert.Equal(t, domain.ActionTicketClosed, fx.auditRepo.lastAction())

	reopened, err := fx.service.UpdateStatus(context.Background(), agentUser("a1"), "t1", domain.TicketStatusOpen)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, reopened.Status)
	assert.Nil(t, reopened.ClosedAt)
	assert.Nil(t, reopened.ResolvedAt)
	assert.Equal(t, domain.ActionTicketReopened, fx.auditRepo.lastAction())
}

func TestUpdateStatusRejectsInvalidTransition(t *testing.T) {
	ticket := &domain.Ticket{ID: "t1", RequesterID: "owner", Status: domain.TicketStatusOpen}
	fx := newTicketFixture(ticket)

	_, err := fx.service.UpdateStatus(context.Background(), agentUser("a1"), "t1", domain.TicketStatusResolved)
	require.Error(t, err)
	assert.True(t, util.IsValidation(err))
}

func TestListTicketsScopesEndUsers(t *testing.T) {
	fx := newTicketFixture(
		&domain.Ticket{ID: "t1", RequesterID: "owner"},
		&domain.Ticket{ID: "t2", RequesterID: "someone-else"},
	)

	mine, err := fx.service.ListTickets(context.Background(), endUser("owner"), TicketListFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "t1", mine[0].ID)

	all, err := fx.service.ListTickets(context.Background(), agentUser("a1"), TicketListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
