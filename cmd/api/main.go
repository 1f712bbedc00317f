package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/shubham7silyan/HelpDeskBackend/internal/api/http"
	"github.com/shubham7silyan/HelpDeskBackend/internal/api/http/handlers"
	"github.com/shubham7silyan/HelpDeskBackend/internal/audit"
	"github.com/shubham7silyan/HelpDeskBackend/internal/auth"
	"github.com/shubham7silyan/HelpDeskBackend/internal/config"
	"github.com/shubham7silyan/HelpDeskBackend/internal/events"
	"github.com/shubham7silyan/HelpDeskBackend/internal/observability"
	"github.com/shubham7silyan/HelpDeskBackend/internal/persistence"
	"github.com/shubham7silyan/HelpDeskBackend/internal/queue"
	"github.com/shubham7silyan/HelpDeskBackend/internal/repository"
	"github.com/shubham7silyan/HelpDeskBackend/internal/service"
	"github.com/shubham7silyan/HelpDeskBackend/internal/triage"
	"github.com/shubham7silyan/HelpDeskBackend/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	broker := persistence.NewRedis(cfg.Redis, logger)
	defer broker.Close()

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	articleRepo := repository.NewArticleRepository(pool)
	suggestionRepo := repository.NewSuggestionRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	configRepo := repository.NewConfigRepository(pool)

	trail := audit.NewTrail(auditRepo, logger)

	dispatcher := events.NewInMemoryDispatcher()

	engine := triage.NewEngine(triage.EngineDependencies{
		TicketRepo:     ticketRepo,
		SuggestionRepo: suggestionRepo,
		ConfigRepo:     configRepo,
		Retriever:      triage.NewRetriever(articleRepo),
		Provider:       triage.NewProvider(cfg.Triage.Provider),
		Trail:          trail,
		Events:         dispatcher,
		Metrics:        metrics,
		Logger:         logger,
	})

	jobs := queue.NewDispatcher(ctx, broker, engine, cfg.Queue, logger)

	worker.StartTriageWorker(dispatcher, jobs, logger)
	worker.StartNotifier(dispatcher, logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewMiddleware(tokens, userRepo)

	authService := service.NewAuthService(userRepo, tokens, cfg.Auth.BcryptCost)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Trail:      trail,
		Dispatcher: dispatcher,
	})
	kbService := service.NewKBService(articleRepo)
	agentService := service.NewAgentService(service.AgentDependencies{
		TicketRepo:     ticketRepo,
		SuggestionRepo: suggestionRepo,
		Jobs:           jobs,
		Logger:         logger,
	})
	settingsService := service.NewSettingsService(configRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, broker, jobs),
		Users:          handlers.NewUsersHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		KB:             handlers.NewKBHandler(kbService),
		Agent:          handlers.NewAgentHandler(agentService),
		Audit:          handlers.NewAuditHandler(trail),
		Settings:       handlers.NewSettingsHandler(settingsService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
