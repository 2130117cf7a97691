package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/trackerhq/project-tracker/internal/api/http"
	"github.com/trackerhq/project-tracker/internal/api/http/handlers"
	"github.com/trackerhq/project-tracker/internal/auth"
	"github.com/trackerhq/project-tracker/internal/batch"
	"github.com/trackerhq/project-tracker/internal/config"
	"github.com/trackerhq/project-tracker/internal/dashboard"
	"github.com/trackerhq/project-tracker/internal/events"
	"github.com/trackerhq/project-tracker/internal/observability"
	"github.com/trackerhq/project-tracker/internal/persistence"
	"github.com/trackerhq/project-tracker/internal/repository"
	"github.com/trackerhq/project-tracker/internal/service"
	"github.com/trackerhq/project-tracker/internal/worker"
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
	if cfg.Postgres.SeedDevData && cfg.App.Env != "production" {
		if err := persistence.SeedDevAccounts(ctx, pg.PoolHandle(), cfg.Auth.BcryptCost, logger); err != nil {
			logger.Fatal("failed to seed dev accounts", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	projectRepo := repository.NewProjectRepository(pool)
	taskRepo := repository.NewTaskRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	hub := dashboard.NewHub(logger)
	go hub.Run(ctx)

	identity := service.NewIdentityService(userRepo, logger)
	validator := auth.NewCredentialValidator(identity, logger)
	codec := auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	sessions := persistence.NewRedisSessionStore(redis, cfg.Auth.SessionTTL())

	gateway := auth.NewGateway(auth.GatewayConfig{
		APIPrefix:          cfg.Auth.APIPrefix,
		LoginPath:          cfg.Auth.LoginPath,
		PublicPathPrefixes: cfg.Auth.PublicPathPrefixes,
	}, codec, validator, sessions, logger)

	projectService := service.NewProjectService(projectRepo, dispatcher)
	taskService := service.NewTaskService(projectRepo, taskRepo, dispatcher)
	reportService := service.NewReportService(projectRepo, taskRepo, dispatcher, logger)
	notificationService := service.NewNotificationService(dispatcher, hub, logger)
	worker.StartNotificationWorker(notificationService)

	importer := batch.NewTaskImporter(projectRepo, taskRepo, dispatcher, cfg.Import.ChunkSize, logger)

	cleanup := worker.NewCleanupWorker(taskRepo, dispatcher, cfg.Cleanup.Interval(), cfg.Cleanup.Retention(), logger)
	go cleanup.Run(ctx)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		APIPrefix: cfg.Auth.APIPrefix,
		Gateway:   gateway,
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:      handlers.NewAuthHandler(validator, codec),
		Web:       handlers.NewWebHandler(sessions, projectService),
		Projects:  handlers.NewProjectsHandler(projectService),
		Tasks:     handlers.NewTasksHandler(taskService, importer),
		Reports:   handlers.NewReportsHandler(reportService),
		Dashboard: handlers.NewDashboardHandler(hub),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
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
