package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/shubham7silyan/HelpDeskBackend/internal/api/dto"
	"github.com/shubham7silyan/HelpDeskBackend/internal/auth"
	"github.com/shubham7silyan/HelpDeskBackend/internal/domain"
	"github.com/shubham7silyan/HelpDeskBackend/internal/service"
	"github.com/shubham7silyan/HelpDeskBackend/pkg/util"
)

// TicketsHandler manages ticket lifecycle endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	user := auth.UserFromContext(c)
	if user == nil {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	ticket, traceID, err := h.service.CreateTicket(c.Context(), user, service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CreatedTicketResponse{
		Ticket:  ticketSummary(ticket),
		TraceID: traceID,
	}})
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	user := auth.UserFromContext(c)
	if user == nil {
		return util.NewUnauthorized("authentication required")
	}
	tickets, err := h.service.ListTickets(c.Context(), user, parseTicketQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	user := auth.UserFromContext(c)
	if user == nil {
		return util.NewUnauthorized("authentication required")
	}
	ticket, replies, err := h.service.GetTicket(c.Context(), user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket, replies)})
}

// AddReply POST /api/tickets/:id/replies.
func (h *TicketsHandler) AddReply(c *fiber.Ctx) error {
	user := auth.UserFromContext(c)
	if user == nil {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.CreateReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	reply, ticket, err := h.service.AddReply(c.Context(), user, c.Params("id"), req.Content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": fiber.Map{
		"reply":  ticketReplyResponse(reply),
		"ticket": ticketSummary(ticket),
	}})
}

// AssignTicket POST /api/tickets/:id/assign.
func (h *TicketsHandler) AssignTicket(c *fiber.Ctx) error {
	user := auth.UserFromContext(c)
	if user == nil {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.AssignTicket(c.Context(), user, c.Params("id"), req.AssigneeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// UpdateStatus PATCH /api/tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	user := auth.UserFromContext(c)
	if user == nil {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return util.NewValidationError("status required", nil)
	}
	ticket, err := h.service.UpdateStatus(c.Context(), user, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	if categoryStr := c.Query("category"); categoryStr != "" {
		for _, part := range strings.Split(categoryStr, ",") {
			filter.Categories = append(filter.Categories, domain.Category(strings.TrimSpace(part)))
		}
	}
	if assignee := c.Query("assignee_id"); assignee != "" {
		filter.AssigneeID = &assignee
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:          ticket.ID,
		ExternalKey: ticket.ExternalKey,
		RequesterID: ticket.RequesterID,
		AssigneeID:  ticket.AssigneeID,
		Title:       ticket.Title,
		Category:    ticket.Category,
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}

func ticketDetail(ticket *domain.Ticket, replies []domain.TicketReply) dto.TicketDetailResponse {
	items := make([]dto.TicketReplyResponse, 0, len(replies))
	for i := range replies {
		items = append(items, ticketReplyResponse(&replies[i]))
	}
	return dto.TicketDetailResponse{
		ID:           ticket.ID,
		ExternalKey:  ticket.ExternalKey,
		RequesterID:  ticket.RequesterID,
		AssigneeID:   ticket.AssigneeID,
		Title:        ticket.Title,
		Description:  ticket.Description,
		Category:     ticket.Category,
		Status:       ticket.Status,
		Priority:     ticket.Priority,
		SuggestionID: ticket.SuggestionID,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
		ResolvedAt:   ticket.ResolvedAt,
		ClosedAt:     ticket.ClosedAt,
		Replies:      items,
	}
}

func ticketReplyResponse(reply *domain.TicketReply) dto.TicketReplyResponse {
	return dto.TicketReplyResponse{
		ID:           reply.ID,
		AuthorID:     reply.AuthorID,
		Content:      reply.Content,
		IsAgentReply: reply.IsAgentReply,
		CreatedAt:    reply.CreatedAt,
	}
}
