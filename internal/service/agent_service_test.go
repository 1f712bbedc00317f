package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
	"github.com/shubham7silyan/HelpDeskBackend/internal/queue"
	"github.com/shubham7silyan/HelpDeskBackend/pkg/util"
)

type fakeSuggestionRepo struct {
	suggestions map[string]*domain.Suggestion
}

func newFakeSuggestionRepo(suggestions ...*domain.Suggestion) *fakeSuggestionRepo {
	repo := &fakeSuggestionRepo{suggestions: map[string]*domain.Suggestion{}}
	for _, suggestion := range suggestions {
		repo.suggestions[suggestion.ID] = suggestion
	}
	return repo
}

func (f *fakeSuggestionRepo) Upsert(_ context.Context, suggestion *domain.Suggestion) error {
	f.suggestions[suggestion.ID] = suggestion
	return nil
}

func (f *fakeSuggestionRepo) Update(_ context.Context, suggestion *domain.Suggestion) error {
	if _, ok := f.suggestions[suggestion.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *suggestion
	f.suggestions[suggestion.ID] = &copied
	return nil
}

func (f *fakeSuggestionRepo) GetByID(_ context.Context, id string) (*domain.Suggestion, error) {
	suggestion, ok := f.suggestions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *suggestion
	return &copied, nil
}

func (f *fakeSuggestionRepo) GetByTicket(_ context.Context, ticketID string) (*domain.Suggestion, error) {
	for _, suggestion := range f.suggestions {
		if suggestion.TicketID == ticketID {
			copied := *suggestion
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeJobDispatcher struct {
	submitted []string
	stats     queue.Stats
}

func (f *fakeJobDispatcher) Submit(_ context.Context, ticketID, traceID string) (queue.Handle, error) {
	f.submitted = append(f.submitted, ticketID)
	return queue.Handle{ID: "job-" + ticketID, TraceID: traceID}, nil
}

func (f *fakeJobDispatcher) Stats(context.Context) (queue.Stats, error) { return f.stats, nil }
func (f *fakeJobDispatcher) Enabled() bool                              { return f.stats.Enabled }

func newAgentFixture(tickets *fakeTicketRepo, suggestions *fakeSuggestionRepo, jobs *fakeJobDispatcher) *AgentService {
	return NewAgentService(AgentDependencies{
		TicketRepo:     tickets,
		SuggestionRepo: suggestions,
		Jobs:           jobs,
		Logger:         zap.NewNop(),
	})
}

func TestTriggerTriageSubmitsFreshTrace(t *testing.T) {
	tickets := newFakeTicketRepo(&domain.Ticket{ID: "t1", RequesterID: "u1"})
	jobs := &fakeJobDispatcher{}
	svc := newAgentFixture(tickets, newFakeSuggestionRepo(), jobs)

	handle, err := svc.TriggerTriage(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, jobs.submitted)
	assert.NotEmpty(t, handle.TraceID)
}

func TestTriggerTriageUnknownTicket(t *testing.T) {
	svc := newAgentFixture(newFakeTicketRepo(), newFakeSuggestionRepo(), &fakeJobDispatcher{})

	_, err := svc.TriggerTriage(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, util.IsNotFound(err))
}

func TestUpdateSuggestionDraft(t *testing.T) {
	suggestions := newFakeSuggestionRepo(&domain.Suggestion{ID: "s1", TicketID: "t1", DraftReply: "original"})
	svc := newAgentFixture(newFakeTicketRepo(), suggestions, &fakeJobDispatcher{})

	updated, err := svc.UpdateSuggestionDraft(context.Background(), "s1", "edited reply")
	require.NoError(t, err)
	assert.Equal(t, "edited reply", updated.DraftReply)
}

func TestUpdateSuggestionDraftRejectsEmpty(t *testing.T) {
	suggestions := newFakeSuggestionRepo(&domain.Suggestion{ID: "s1", TicketID: "t1"})
	svc := newAgentFixture(newFakeTicketRepo(), suggestions, &fakeJobDispatcher{})

	_, err := svc.UpdateSuggestionDraft(context.Background(), "s1", "   ")
	require.Error(t, err)
	assert.True(t, util.IsValidation(err))
}

func TestUpdateSuggestionDraftRejectsAutoClosed(t *testing.T) {
	suggestions := newFakeSuggestionRepo(&domain.Suggestion{ID: "s1", TicketID: "t1", AutoClosed: true})
	svc := newAgentFixture(newFakeTicketRepo(), suggestions, &fakeJobDispatcher{})

	_, err := svc.UpdateSuggestionDraft(context.Background(), "s1", "too late")
	require.Error(t, err)
}

func TestQueueStatsPassthrough(t *testing.T) {
	jobs := &fakeJobDispatcher{stats: queue.Stats{Enabled: true, Mode: "queued", Waiting: 4}}
	svc := newAgentFixture(newFakeTicketRepo(), newFakeSuggestionRepo(), jobs)

	stats, err := svc.QueueStats(context.Background())
	require.NoError(t, err)
	assert.True(t, stats.Enabled)
	assert.Equal(t, int64(4), stats.Waiting)
}
