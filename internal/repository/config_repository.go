package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
)

// ConfigRepository reads and writes the singleton triage policy row.
type ConfigRepository interface {
	// Get returns the stored policy, or the documented defaults when no
	// row exists. It never fails a triage run on a missing row.
	Get(ctx context.Context) (domain.TriageConfig, error)
	Update(ctx context.Context, cfg domain.TriageConfig) (domain.TriageConfig, error)
}

type configRepository struct {
	pool *pgxpool.Pool
}

// NewConfigRepository instantiates repository.
func NewConfigRepository(pool *pgxpool.Pool) ConfigRepository {
	return &configRepository{pool: pool}
}

func (r *configRepository) Get(ctx context.Context) (domain.TriageConfig, error) {
	const query = `
        SELECT auto_close_enabled, confidence_threshold, sla_hours, updated_at
        FROM triage_config ORDER BY updated_at DESC LIMIT 1`
	var cfg domain.TriageConfig
	err := r.pool.QueryRow(ctx, query).Scan(
		&cfg.AutoCloseEnabled,
		&cfg.ConfidenceThreshold,
		&cfg.SLAHours,
		&cfg.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DefaultTriageConfig(), nil
	}
	if err != nil {
		return domain.TriageConfig{}, err
	}
	return cfg, nil
}

func (r *configRepository) Update(ctx context.Context, cfg domain.TriageConfig) (domain.TriageConfig, error) {
	const query = `
        INSERT INTO triage_config (id, auto_close_enabled, confidence_threshold, sla_hours)
        VALUES (1,$1,$2,$3)
        ON CONFLICT (id) DO UPDATE SET
            auto_close_enabled=EXCLUDED.auto_close_enabled,
            confidence_threshold=EXCLUDED.confidence_threshold,
            sla_hours=EXCLUDED.sla_hours,
            updated_at=NOW()
        RETURNING auto_close_enabled, confidence_threshold, sla_hours, updated_at`
	var out domain.TriageConfig
	err := r.pool.QueryRow(ctx, query,
		cfg.AutoCloseEnabled,
		cfg.ConfidenceThreshold,
		cfg.SLAHours,
	).Scan(&out.AutoCloseEnabled, &out.ConfidenceThreshold, &out.SLAHours, &out.UpdatedAt)
	return out, err
}
