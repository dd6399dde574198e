package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/event-registration/internal/api/http"
	"github.com/spec-kit/event-registration/internal/api/http/handlers"
	"github.com/spec-kit/event-registration/internal/auth"
	"github.com/spec-kit/event-registration/internal/config"
	"github.com/spec-kit/event-registration/internal/events"
	"github.com/spec-kit/event-registration/internal/mail"
	"github.com/spec-kit/event-registration/internal/observability"
	"github.com/spec-kit/event-registration/internal/persistence"
	"github.com/spec-kit/event-registration/internal/repository"
	"github.com/spec-kit/event-registration/internal/service"
	"github.com/spec-kit/event-registration/internal/storage"
	"github.com/spec-kit/event-registration/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	subscriptionRepo := repository.NewSubscriptionRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, userRepo, redis)
	userService := service.NewUserService(userRepo, authService.TokenManager(), dispatcher, cfg.Auth.BcryptCost)
	eventService := service.NewEventService(eventRepo, subscriptionRepo, dispatcher)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, userRepo, eventRepo, dispatcher)

	seedService := service.NewSeedService(userRepo, cfg.Seed, cfg.Auth.BcryptCost, logger)
	if err := seedService.EnsureDefaultAdmin(ctx); err != nil {
		logger.Fatal("failed to seed default admin", zap.Error(err))
	}

	var sender mail.Sender
	if cfg.Mail.Enabled() {
		sender, err = mail.NewSMTPSender(cfg.Mail)
		if err != nil {
			logger.Fatal("failed to init mail sender", zap.Error(err))
		}
	} else {
		logger.Warn("mail delivery disabled, notifications will be dropped")
	}

	notificationService := service.NewNotificationService(dispatcher, sender, logger, cfg.Mail)
	worker.StartNotificationWorker(notificationService)

	var store storage.ObjectStore
	if cfg.Storage.Dir != "" && cfg.Storage.BaseURL != "" {
		localStore, err := storage.NewLocalStore(cfg.Storage)
		if err != nil {
			logger.Fatal("failed to init object store", zap.Error(err))
		}
		store = localStore
	} else {
		logger.Warn("object storage disabled, image uploads will be rejected")
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Storage.MaxUploadBytes) + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService, store, cfg.Storage.MaxUploadBytes),
		Events:         handlers.NewEventsHandler(eventService, store, cfg.Storage.MaxUploadBytes),
		Subscriptions:  handlers.NewSubscriptionsHandler(subscriptionService),
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
