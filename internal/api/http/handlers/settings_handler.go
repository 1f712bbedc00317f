package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shubham7silyan/HelpDeskBackend/internal/api/dto"
	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
	"github.com/shubham7silyan/HelpDeskBackend/internal/service"
	"github.com/shubham7silyan/HelpDeskBackend/pkg/util"
)

// SettingsHandler manages the triage policy endpoints.
type SettingsHandler struct {
	service *service.SettingsService
}

// NewSettingsHandler constructs handler.
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: settingsService}
}

// GetConfig GET /api/config.
func (h *SettingsHandler) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.service.TriageConfig(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": configResponse(cfg)})
}

// UpdateConfig PUT /api/config.
func (h *SettingsHandler) UpdateConfig(c *fiber.Ctx) error {
	var req dto.TriageConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	cfg, err := h.service.UpdateTriageConfig(c.Context(), domain.TriageConfig{
		AutoCloseEnabled:    req.AutoCloseEnabled,
		ConfidenceThreshold: req.ConfidenceThreshold,
		SLAHours:            req.SLAHours,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": configResponse(cfg)})
}

func configResponse(cfg domain.TriageConfig) dto.TriageConfigResponse {
	return dto.TriageConfigResponse{
		AutoCloseEnabled:    cfg.AutoCloseEnabled,
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		SLAHours:            cfg.SLAHours,
		UpdatedAt:           cfg.UpdatedAt,
	}
}
