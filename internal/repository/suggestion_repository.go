package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
)

// SuggestionRepository encapsulates suggestion persistence.
type SuggestionRepository interface {
	// Upsert persists a suggestion keyed by (ticket_id, trace_id) so a
	// retried pipeline run overwrites rather than duplicates.
	Upsert(ctx context.Context, suggestion *domain.Suggestion) error
	Update(ctx context.Context, suggestion *domain.Suggestion) error
	GetByID(ctx context.Context, id string) (*domain.Suggestion, error)
	GetByTicket(ctx context.Context, ticketID string) (*domain.Suggestion, error)
}

type suggestionRepository struct {
	pool *pgxpool.Pool
}

// NewSuggestionRepository instantiates repository.
func NewSuggestionRepository(pool *pgxpool.Pool) SuggestionRepository {
	return &suggestionRepository{pool: pool}
}

func (r *suggestionRepository) Upsert(ctx context.Context, suggestion *domain.Suggestion) error {
	modelInfo, err := json.Marshal(suggestion.ModelInfo)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO suggestions (ticket_id, trace_id, predicted_category, article_ids, draft_reply, confidence, auto_closed, citations, model_info)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (ticket_id, trace_id) DO UPDATE SET
            predicted_category=EXCLUDED.predicted_category,
            article_ids=EXCLUDED.article_ids,
            draft_reply=EXCLUDED.draft_reply,
            confidence=EXCLUDED.confidence,
            auto_closed=EXCLUDED.auto_closed,
            citations=EXCLUDED.citations,
            model_info=EXCLUDED.model_info,
            updated_at=NOW()
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		suggestion.TicketID,
		suggestion.TraceID,
		suggestion.PredictedCategory,
		suggestion.ArticleIDs,
		suggestion.DraftReply,
		suggestion.Confidence,
		suggestion.AutoClosed,
		suggestion.Citations,
		modelInfo,
	).Scan(&suggestion.ID, &suggestion.CreatedAt, &suggestion.UpdatedAt)
}

func (r *suggestionRepository) Update(ctx context.Context, suggestion *domain.Suggestion) error {
	const query = `
        UPDATE suggestions SET draft_reply=$1, auto_closed=$2, updated_at=NOW()
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query,
		suggestion.DraftReply,
		suggestion.AutoClosed,
		suggestion.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *suggestionRepository) GetByID(ctx context.Context, id string) (*domain.Suggestion, error) {
	return r.fetchSingle(ctx, `WHERE id=$1`, id)
}

func (r *suggestionRepository) GetByTicket(ctx context.Context, ticketID string) (*domain.Suggestion, error) {
	return r.fetchSingle(ctx, `WHERE ticket_id=$1 ORDER BY updated_at DESC LIMIT 1`, ticketID)
}

func (r *suggestionRepository) fetchSingle(ctx context.Context, clause string, arg any) (*domain.Suggestion, error) {
	query := `
        SELECT id, ticket_id, trace_id, predicted_category, article_ids, draft_reply, confidence, auto_closed, citations, model_info, created_at, updated_at
        FROM suggestions ` + clause
	var suggestion domain.Suggestion
	var modelInfo []byte
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&suggestion.ID,
		&suggestion.TicketID,
		&suggestion.TraceID,
		&suggestion.PredictedCategory,
		&suggestion.ArticleIDs,
		&suggestion.DraftReply,
		&suggestion.Confidence,
		&suggestion.AutoClosed,
		&suggestion.Citations,
		&modelInfo,
		&suggestion.CreatedAt,
		&suggestion.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(modelInfo) > 0 {
		if err := json.Unmarshal(modelInfo, &suggestion.ModelInfo); err != nil {
			return nil, err
		}
	}
	return &suggestion, nil
}
