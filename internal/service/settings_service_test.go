package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
	"github.com/shubham7silyan/HelpDeskBackend/pkg/util"
)

type fakeConfigRepo struct {
	cfg domain.TriageConfig
}

func (f *fakeConfigRepo) Get(context.Context) (domain.TriageConfig, error) { return f.cfg, nil }
func (f *fakeConfigRepo) Update(_ context.Context, cfg domain.TriageConfig) (domain.TriageConfig, error) {
	f.cfg = cfg
	return cfg, nil
}

func TestUpdateTriageConfigValidatesRanges(t *testing.T) {
	svc := NewSettingsService(&fakeConfigRepo{cfg: domain.DefaultTriageConfig()})

	_, err := svc.UpdateTriageConfig(context.Background(), domain.TriageConfig{
		ConfidenceThreshold: 1.2,
		SLAHours:            24,
	})
	require.Error(t, err)
	assert.True(t, util.IsValidation(err))

	_, err = svc.UpdateTriageConfig(context.Background(), domain.TriageConfig{
		ConfidenceThreshold: 0.5,
		SLAHours:            0,
	})
	require.Error(t, err)
	assert.True(t, util.IsValidation(err))

	cfg, err := svc.UpdateTriageConfig(context.Background(), domain.TriageConfig{
		AutoCloseEnabled:    false,
		ConfidenceThreshold: 0.5,
		SLAHours:            12,
	})
	require.NoError(t, err)
	assert.False(t, cfg.AutoCloseEnabled)
	assert.InDelta(t, 0.5, cfg.ConfidenceThreshold, 0.001)
}

func TestTriageConfigReadsStore(t *testing.T) {
	svc := NewSettingsService(&fakeConfigRepo{cfg: domain.DefaultTriageConfig()})

	cfg, err := svc.TriageConfig(context.Background())
	require.NoError(t, err)
	assert.True(t, cfg.AutoCloseEnabled)
	assert.InDelta(t, domain.DefaultConfidenceThreshold, cfg.ConfidenceThreshold, 0.001)
}
