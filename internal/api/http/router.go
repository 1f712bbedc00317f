package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shubham7silyan/HelpDeskBackend/internal/api/http/handlers"
	"github.com/shubham7silyan/HelpDeskBackend/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	KB             *handlers.KBHandler
	Agent          *handlers.AgentHandler
	Audit          *handlers.AuditHandler
	Settings       *handlers.SettingsHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Users.Me)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	tickets := api.Group("/tickets")
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/:id/replies", cfg.Tickets.AddReply)
	tickets.Get("/:id/audit", cfg.Audit.TicketEvents)
	tickets.Post("/:id/assign", auth.RequireStaff(), cfg.Tickets.AssignTicket)
	tickets.Patch("/:id/status", auth.RequireStaff(), cfg.Tickets.UpdateStatus)

	kb := api.Group("/kb")
	kb.Get("/", cfg.KB.ListArticles)
	kb.Get("/:id", cfg.KB.GetArticle)
	kb.Post("/", auth.RequireAdmin(), cfg.KB.CreateArticle)
	kb.Put("/:id", auth.RequireAdmin(), cfg.KB.UpdateArticle)
	kb.Delete("/:id", auth.RequireAdmin(), cfg.KB.DeleteArticle)

	agent := api.Group("/agent", auth.RequireStaff())
	agent.Post("/triage", cfg.Agent.TriggerTriage)
	agent.Get("/suggestion/:ticketId", cfg.Agent.GetSuggestion)
	agent.Patch("/suggestion/:id/draft", cfg.Agent.UpdateSuggestionDraft)
	agent.Get("/queue/stats", cfg.Agent.QueueStats)

	audit := api.Group("/audit", auth.RequireStaff())
	audit.Get("/trace/:traceId", cfg.Audit.TraceEvents)
	audit.Get("/export", cfg.Audit.Export)

	config := api.Group("/config", auth.RequireAdmin())
	config.Get("/", cfg.Settings.GetConfig)
	config.Put("/", cfg.Settings.UpdateConfig)
}
