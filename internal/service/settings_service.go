package service

import (
	"context"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
	"github.com/shubham7silyan/HelpDeskBackend/internal/repository"
	"github.com/shubham7silyan/HelpDeskBackend/pkg/util"
)

// SettingsService reads and writes the triage policy knobs.
type SettingsService struct {
	configs repository.ConfigRepository
}

// NewSettingsService constructs the service.
func NewSettingsService(configs repository.ConfigRepository) *SettingsService {
	return &SettingsService{configs: configs}
}

// TriageConfig returns the effective policy, falling back to defaults.
func (s *SettingsService) TriageConfig(ctx context.Context) (domain.TriageConfig, error) {
	return s.configs.Get(ctx)
}

// UpdateTriageConfig persists a new policy after validating its ranges.
func (s *SettingsService) UpdateTriageConfig(ctx context.Context, cfg domain.TriageConfig) (domain.TriageConfig, error) {
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return domain.TriageConfig{}, util.NewValidationError("confidence threshold must be between 0 and 1", map[string]any{
			"confidence_threshold": cfg.ConfidenceThreshold,
		})
	}
	if cfg.SLAHours < 1 {
		return domain.TriageConfig{}, util.NewValidationError("sla hours must be at least 1", map[string]any{
			"sla_hours": cfg.SLAHours,
		})
	}
	return s.configs.Update(ctx, cfg)
}
