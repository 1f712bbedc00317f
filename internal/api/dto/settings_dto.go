package dto

import "time"

// TriageConfigRequest payload for policy updates.
type TriageConfigRequest struct {
	AutoCloseEnabled    bool    `json:"auto_close_enabled"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
	SLAHours            int     `json:"sla_hours"`
}

// TriageConfigResponse response.
type TriageConfigResponse struct {
	AutoCloseEnabled    bool      `json:"auto_close_enabled"`
	ConfidenceThreshold float64   `json:"confidence_threshold"`
	SLAHours            int       `json:"sla_hours"`
	UpdatedAt           time.Time `json:"updated_at"`
}
