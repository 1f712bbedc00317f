package triage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/shubham7silyan/HelpDeskBackend/internal/audit"
	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
	"github.com/shubham7silyan/HelpDeskBackend/internal/events"
	"github.com/shubham7silyan/HelpDeskBackend/internal/observability"
	"github.com/shubham7silyan/HelpDeskBackend/internal/repository"
	"github.com/shubham7silyan/HelpDeskBackend/pkg/util"
)

// Engine orchestrates one triage run: classify, retrieve, draft, decide.
// Each stage emits exactly one audit event before the run advances.
type Engine struct {
	tickets     repository.TicketRepository
	suggestions repository.SuggestionRepository
	config      repository.ConfigRepository
	retriever   *Retriever
	provider    Provider
	trail       *audit.Trail
	events      events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// EngineDependencies bundles collaborators for the engine.
type EngineDependencies struct {
	TicketRepo     repository.TicketRepository
	SuggestionRepo repository.SuggestionRepository
	ConfigRepo     repository.ConfigRepository
	Retriever      *Retriever
	Provider       Provider
	Trail          *audit.Trail
	// Events is optional; when set, a triage_completed event is published
	// after every successful run.
	Events  events.Dispatcher
	Metrics *observability.Metrics
	Logger  *zap.Logger
}

// NewEngine constructs the decision engine.
func NewEngine(deps EngineDependencies) *Engine {
	return &Engine{
		tickets:     deps.TicketRepo,
		suggestions: deps.SuggestionRepo,
		config:      deps.ConfigRepo,
		retriever:   deps.Retriever,
		provider:    deps.Provider,
		trail:       deps.Trail,
		events:      deps.Events,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
	}
}

// Run executes the full pipeline for one ticket and trace id. Safe to
// repeat: classification and retrieval are pure, and the suggestion upsert
// is keyed by (ticket, trace). Concurrent runs on the same ticket are not
// serialized here; callers must not submit them in parallel.
func (e *Engine) Run(ctx context.Context, ticketID, traceID string) error {
	started := time.Now()
	e.metrics.RecordTriageStarted()

	ticket, err := e.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return e.fail(ctx, ticketID, traceID, util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID}))
		}
		return e.fail(ctx, ticketID, traceID, util.NewTransient("load ticket", err))
	}

	text := ticket.Title + " " + ticket.Description

	classification := e.provider.Classify(text)
	e.trail.Record(ctx, ticketID, traceID, domain.ActorSystem, domain.ActionAgentClassified, map[string]any{
		"step":               "classification_complete",
		"predicted_category": classification.Category,
		"confidence":         classification.Confidence,
	}, nil)

	entries, err := e.retriever.Retrieve(ctx, text, classification.Category)
	if err != nil {
		return e.fail(ctx, ticketID, traceID, util.NewTransient("knowledge retrieval", err))
	}
	articleIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		articleIDs = append(articleIDs, entry.ID)
	}
	e.trail.Record(ctx, ticketID, traceID, domain.ActorSystem, domain.ActionKBRetrieved, map[string]any{
		"step":           "kb_retrieval_complete",
		"articles_found": len(entries),
		"article_ids":    articleIDs,
	}, nil)

	draft := e.provider.Draft(ticket.Title, entries)
	e.trail.Record(ctx, ticketID, traceID, domain.ActorSystem, domain.ActionDraftGenerated, map[string]any{
		"step":            "draft_complete",
		"draft_length":    len(draft.Reply),
		"citations_count": len(draft.Citations),
	}, nil)

	info := e.provider.Info()
	suggestion := &domain.Suggestion{
		TicketID:          ticketID,
		TraceID:           traceID,
		PredictedCategory: classification.Category,
		ArticleIDs:        articleIDs,
		DraftReply:        draft.Reply,
		Confidence:        classification.Confidence,
		Citations:         draft.Citations,
		ModelInfo: domain.ModelInfo{
			Provider:      info.Provider,
			Model:         info.Model,
			PromptVersion: info.PromptVersion,
			LatencyMS:     time.Since(started).Milliseconds(),
		},
	}
	if err := e.suggestions.Upsert(ctx, suggestion); err != nil {
		return e.fail(ctx, ticketID, traceID, util.NewTransient("persist suggestion", err))
	}

	ticket.SuggestionID = &suggestion.ID
	ticket.Category = classification.Category
	ticket.Status = domain.TicketStatusTriaged
	if err := e.tickets.Update(ctx, ticket); err != nil {
		return e.fail(ctx, ticketID, traceID, util.NewTransient("update ticket", err))
	}

	cfg, err := e.config.Get(ctx)
	if err != nil {
		return e.fail(ctx, ticketID, traceID, util.NewTransient("load triage config", err))
	}

	autoClose := cfg.AutoCloseEnabled && classification.Confidence >= cfg.ConfidenceThreshold
	if autoClose {
		if err := e.autoClose(ctx, ticket, suggestion, traceID); err != nil {
			return e.fail(ctx, ticketID, traceID, err)
		}
	} else {
		if err := e.escalate(ctx, ticket, traceID); err != nil {
			return e.fail(ctx, ticketID, traceID, err)
		}
	}

	e.metrics.RecordTriageOutcome(autoClose)
	if e.events != nil {
		_ = e.events.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTriageCompleted,
			TicketID:  ticketID,
			TraceID:   traceID,
			Actor:     events.Actor{Type: domain.ActorSystem},
			Timestamp: time.Now(),
			Payload: events.TriageCompletedPayload{
				Category:   classification.Category,
				Confidence: classification.Confidence,
				AutoClosed: autoClose,
			},
		})
	}
	e.logger.Info("triage completed",
		zap.String("ticket_id", ticketID),
		zap.String("trace_id", traceID),
		zap.String("category", string(classification.Category)),
		zap.Float64("confidence", classification.Confidence),
		zap.Bool("auto_closed", autoClose),
	)
	return nil
}

// autoClose appends the draft as a system reply, resolves the ticket and
// marks the suggestion immutable.
func (e *Engine) autoClose(ctx context.Context, ticket *domain.Ticket, suggestion *domain.Suggestion, traceID string) error {
	reply := &domain.TicketReply{
		TicketID:     ticket.ID,
		Content:      suggestion.DraftReply,
		IsAgentReply: true,
	}
	if err := e.tickets.AddReply(ctx, reply); err != nil {
		return util.NewTransient("append system reply", err)
	}

	now := time.Now()
	ticket.Status = domain.TicketStatusResolved
	ticket.ResolvedAt = &now
	if err := e.tickets.Update(ctx, ticket); err != nil {
		return util.NewTransient("resolve ticket", err)
	}

	suggestion.AutoClosed = true
	if err := e.suggestions.Update(ctx, suggestion); err != nil {
		return util.NewTransient("mark suggestion auto-closed", err)
	}

	e.trail.Record(ctx, ticket.ID, traceID, domain.ActorSystem, domain.ActionAutoClosed, map[string]any{
		"confidence":    suggestion.Confidence,
		"articles_used": len(suggestion.ArticleIDs),
	}, nil)
	return nil
}

// escalate routes the ticket to the human queue.
func (e *Engine) escalate(ctx context.Context, ticket *domain.Ticket, traceID string) error {
	ticket.Status = domain.TicketStatusWaitingHuman
	if err := e.tickets.Update(ctx, ticket); err != nil {
		return util.NewTransient("escalate ticket", err)
	}

	e.trail.Record(ctx, ticket.ID, traceID, domain.ActorSystem, domain.ActionAssignedToHuman, map[string]any{
		"reason": "confidence_below_threshold",
	}, nil)
	return nil
}

// fail records the aborted run and propagates the error to the dispatcher,
// whose retry policy decides what happens next. The action vocabulary is
// fixed, so the failure rides on AGENT_CLASSIFIED with a triage_failed step.
func (e *Engine) fail(ctx context.Context, ticketID, traceID string, err error) error {
	e.metrics.RecordTriageFailure()
	e.trail.Record(ctx, ticketID, traceID, domain.ActorSystem, domain.ActionAgentClassified, map[string]any{
		"step":  "triage_failed",
		"error": err.Error(),
	}, nil)
	e.logger.Error("triage failed",
		zap.String("ticket_id", ticketID),
		zap.String("trace_id", traceID),
		zap.Error(err),
	)
	return err
}
