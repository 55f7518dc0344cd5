package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/campus-it/helpdesk-service/internal/api/http/handlers"
	"github.com/campus-it/helpdesk-service/internal/auth"
	"github.com/campus-it/helpdesk-service/internal/cache"
	"github.com/campus-it/helpdesk-service/internal/config"
	"github.com/campus-it/helpdesk-service/internal/events"
	"github.com/campus-it/helpdesk-service/internal/observability"
	"github.com/campus-it/helpdesk-service/internal/persistence"
	"github.com/campus-it/helpdesk-service/internal/repository"
	"github.com/campus-it/helpdesk-service/internal/service"
	"github.com/campus-it/helpdesk-service/internal/worker"

	httptransport "github.com/campus-it/helpdesk-service/internal/api/http"
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

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	ticketRepo := repository.NewTicketRepository(pool)
	profileRepo := repository.NewProfileRepository(pool)
	announcementRepo := repository.NewAnnouncementRepository(pool)
	statusRepo := repository.NewStatusRepository(pool)

	metrics := observability.NewMetrics()
	listings := cache.NewListingCache(cache.NewRedisStore(redis.Client), cfg.Dashboard.CacheTTL(), logger)
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartRefreshWorker(dispatcher, listings)

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Listings:   listings,
		Dispatcher: dispatcher,
	})
	reassignmentService := service.NewReassignmentService(service.ReassignmentDependencies{
		TicketRepo:  ticketRepo,
		ProfileRepo: profileRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	statusService := service.NewStatusService(statusRepo, logger, metrics)
	reportService := service.NewReportService(ticketRepo)
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		TicketRepo:       ticketRepo,
		StatusService:    statusService,
		AnnouncementRepo: announcementRepo,
		Listings:         listings,
		Config:           cfg.Dashboard,
		Logger:           logger,
	})

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret)
	authMiddleware := auth.NewAuthMiddleware(tokenManager)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Admin:          handlers.NewAdminHandler(ticketService, reassignmentService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService, statusService),
		Reports:        handlers.NewReportsHandler(reportService),
		Announcements:  handlers.NewAnnouncementsHandler(announcementRepo, cfg.Dashboard.AnnouncementLimit),
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
