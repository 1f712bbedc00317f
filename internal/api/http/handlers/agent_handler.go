package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/shubham7silyan/HelpDeskBackend/internal/api/dto"
	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
	"github.com/shubham7silyan/HelpDeskBackend/internal/queue"
	"github.com/shubham7silyan/HelpDeskBackend/internal/service"
	"github.com/shubham7silyan/HelpDeskBackend/pkg/util"
)

// AgentHandler exposes triage internals to staff.
type AgentHandler struct {
	service *service.AgentService
}

// NewAgentHandler constructs handler.
func NewAgentHandler(agentService *service.AgentService) *AgentHandler {
	return &AgentHandler{service: agentService}
}

// TriggerTriage POST /api/agent/triage.
func (h *AgentHandler) TriggerTriage(c *fiber.Ctx) error {
	var req dto.TriggerTriageRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.TicketID == "" {
		return util.NewValidationError("ticket_id required", nil)
	}
	handle, err := h.service.TriggerTriage(c.Context(), req.TicketID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": dto.TriageJobResponse{
		JobID:   handle.ID,
		TraceID: handle.TraceID,
	}})
}

// GetSuggestion GET /api/agent/suggestion/:ticketId.
func (h *AgentHandler) GetSuggestion(c *fiber.Ctx) error {
	suggestion, err := h.service.GetSuggestion(c.Context(), c.Params("ticketId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": suggestionResponse(suggestion)})
}

// UpdateSuggestionDraft PATCH /api/agent/suggestion/:id/draft.
func (h *AgentHandler) UpdateSuggestionDraft(c *fiber.Ctx) error {
	var req dto.UpdateDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	suggestion, err := h.service.UpdateSuggestionDraft(c.Context(), c.Params("id"), req.DraftReply)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": suggestionResponse(suggestion)})
}

// QueueStats GET /api/agent/queue/stats.
func (h *AgentHandler) QueueStats(c *fiber.Ctx) error {
	stats, err := h.service.QueueStats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": queueStatsResponse(stats)})
}

func suggestionResponse(suggestion *domain.Suggestion) dto.SuggestionResponse {
	return dto.SuggestionResponse{
		ID:                suggestion.ID,
		TicketID:          suggestion.TicketID,
		TraceID:           suggestion.TraceID,
		PredictedCategory: suggestion.PredictedCategory,
		ArticleIDs:        suggestion.ArticleIDs,
		DraftReply:        suggestion.DraftReply,
		Confidence:        suggestion.Confidence,
		AutoClosed:        suggestion.AutoClosed,
		Citations:         suggestion.Citations,
		ModelInfo:         suggestion.ModelInfo,
		CreatedAt:         suggestion.CreatedAt,
		UpdatedAt:         suggestion.UpdatedAt,
	}
}

func queueStatsResponse(stats queue.Stats) dto.QueueStatsResponse {
	return dto.QueueStatsResponse{
		Enabled:   stats.Enabled,
		Mode:      stats.Mode,
		Waiting:   stats.Waiting,
		Active:    stats.Active,
		Completed: stats.Completed,
		Failed:    stats.Failed,
	}
}
