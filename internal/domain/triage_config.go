package domain

import "time"

// Documented fallbacks applied when no config row exists.
const (
	DefaultAutoCloseEnabled    = true
	DefaultConfidenceThreshold = 0.78
	DefaultSLAHours            = 24
)

// TriageConfig is the runtime policy the decision engine reads on every run.
type TriageConfig struct {
	AutoCloseEnabled    bool
	ConfidenceThreshold float64
	SLAHours            int
	UpdatedAt           time.Time
}

// DefaultTriageConfig returns the documented defaults.
func DefaultTriageConfig() TriageConfig {
	return TriageConfig{
		AutoCloseEnabled:    DefaultAutoCloseEnabled,
		ConfidenceThreshold: DefaultConfidenceThreshold,
		SLAHours:            DefaultSLAHours,
	}
}
