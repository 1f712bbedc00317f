package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
	"github.com/shubham7silyan/HelpDeskBackend/internal/queue"
	"github.com/shubham7silyan/HelpDeskBackend/internal/repository"
	"github.com/shubham7silyan/HelpDeskBackend/pkg/util"
)

// AgentService exposes the triage pipeline to staff: manual re-runs,
// suggestion review, and queue visibility.
type AgentService struct {
	tickets     repository.TicketRepository
	suggestions repository.SuggestionRepository
	jobs        queue.Dispatcher
	logger      *zap.Logger
}

// AgentDependencies bundles collaborators for agent service.
type AgentDependencies struct {
	TicketRepo     repository.TicketRepository
	SuggestionRepo repository.SuggestionRepository
	Jobs           queue.Dispatcher
	Logger         *zap.Logger
}

// NewAgentService constructs the service.
func NewAgentService(deps AgentDependencies) *AgentService {
	return &AgentService{
		tickets:     deps.TicketRepo,
		suggestions: deps.SuggestionRepo,
		jobs:        deps.Jobs,
		logger:      deps.Logger,
	}
}

// TriggerTriage re-runs the pipeline for a ticket under a fresh trace id.
func (s *AgentService) TriggerTriage(ctx context.Context, ticketID string) (queue.Handle, error) {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		if err == pgx.ErrNoRows {
			return queue.Handle{}, util.NewNotFound("ticket", nil)
		}
		return queue.Handle{}, err
	}

	traceID := uuid.NewString()
	handle, err := s.jobs.Submit(ctx, ticketID, traceID)
	if err != nil {
		return handle, err
	}
	s.logger.Info("manual triage triggered",
		zap.String("ticket_id", ticketID),
		zap.String("trace_id", traceID),
		zap.String("job_id", handle.ID),
	)
	return handle, nil
}

// GetSuggestion returns the latest pipeline output for a ticket.
func (s *AgentService) GetSuggestion(ctx context.Context, ticketID string) (*domain.Suggestion, error) {
	suggestion, err := s.suggestions.GetByTicket(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("suggestion", nil)
		}
		return nil, err
	}
	return suggestion, nil
}

// UpdateSuggestionDraft lets an agent edit the drafted reply before sending.
// Auto-closed suggestions already went out and stay immutable.
func (s *AgentService) UpdateSuggestionDraft(ctx context.Context, suggestionID, draft string) (*domain.Suggestion, error) {
	draft = strings.TrimSpace(draft)
	if draft == "" {
		return nil, util.NewValidationError("draft reply required", nil)
	}

	suggestion, err := s.suggestions.GetByID(ctx, suggestionID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, util.NewNotFound("suggestion", nil)
		}
		return nil, err
	}
	if suggestion.AutoClosed {
		return nil, util.NewConflict("suggestion already sent by auto-close", nil)
	}

	suggestion.DraftReply = draft
	if err := s.suggestions.Update(ctx, suggestion); err != nil {
		return nil, err
	}
	return suggestion, nil
}

// QueueStats reports dispatcher mode and depth.
func (s *AgentService) QueueStats(ctx context.Context) (queue.Stats, error) {
	return s.jobs.Stats(ctx)
}
