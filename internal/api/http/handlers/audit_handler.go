package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shubham7silyan/HelpDeskBackend/internal/audit"
)

// AuditHandler exposes the append-only trail.
type AuditHandler struct {
	trail *audit.Trail
}

// NewAuditHandler constructs handler.
func NewAuditHandler(trail *audit.Trail) *AuditHandler {
	return &AuditHandler{trail: trail}
}

// TicketEvents GET /api/tickets/:id/audit.
func (h *AuditHandler) TicketEvents(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	events, total, err := h.trail.TicketEvents(c.Context(), c.Params("id"), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": events,
		"meta": fiber.Map{"total": total, "page": page, "page_size": pageSize},
	})
}

// TraceEvents GET /api/audit/trace/:traceId.
func (h *AuditHandler) TraceEvents(c *fiber.Ctx) error {
	events, err := h.trail.TraceEvents(c.Context(), c.Params("traceId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": events})
}

// Export GET /api/audit/export. Streams NDJSON by default; format=json
// returns a single array.
func (h *AuditHandler) Export(c *fiber.Ctx) error {
	from := parseTime(c.Query("from"))
	to := parseTime(c.Query("to"))

	if c.Query("format") == "json" {
		events, err := h.trail.ExportJSON(c.Context(), from, to)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": events})
	}

	c.Set(fiber.HeaderContentType, "application/x-ndjson")
	return h.trail.ExportNDJSON(c.Context(), c.Response().BodyWriter(), from, to)
}
