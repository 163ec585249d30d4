package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/helpdesk-bot/internal/api/http"
	"github.com/spec-kit/helpdesk-bot/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-bot/internal/api/telegram"
	"github.com/spec-kit/helpdesk-bot/internal/auth"
	"github.com/spec-kit/helpdesk-bot/internal/config"
	"github.com/spec-kit/helpdesk-bot/internal/events"
	"github.com/spec-kit/helpdesk-bot/internal/messaging"
	"github.com/spec-kit/helpdesk-bot/internal/observability"
	"github.com/spec-kit/helpdesk-bot/internal/persistence"
	"github.com/spec-kit/helpdesk-bot/internal/repository"
	"github.com/spec-kit/helpdesk-bot/internal/service"
	"github.com/spec-kit/helpdesk-bot/internal/session"
	"github.com/spec-kit/helpdesk-bot/internal/worker"
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

	if cfg.Bot.Token == "" {
		logger.Fatal("BOT_TOKEN is required")
	}
	if len(cfg.Bot.AdminIDs) == 0 {
		logger.Warn("BOT_ADMIN_IDS is empty; no one can perform admin actions")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	if pg.PoolHandle() == nil {
		logger.Fatal("POSTGRES_DSN is required")
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	admins := auth.NewAdminSet(cfg.Bot.AdminIDs)
	dispatcher := events.NewInMemoryDispatcher()

	ticketRepo := repository.NewTicketRepository(pg.PoolHandle())
	sessions := session.NewRedisStore(redis.Client, cfg.Session.DraftTTL())

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Admins:     admins,
		Dispatcher: dispatcher,
	})

	bot, err := messaging.NewTelegramBot(cfg.Bot, logger)
	if err != nil {
		logger.Fatal("failed to connect telegram", zap.Error(err))
	}

	notificationService := service.NewNotificationService(dispatcher, bot, admins, logger, metrics)
	worker.StartNotificationWorker(notificationService)

	handler := telegram.NewHandler(telegram.HandlerDependencies{
		TicketService: ticketService,
		Sessions:      sessions,
		Admins:        admins,
		Messenger:     bot,
		Logger:        logger,
		Metrics:       metrics,
	})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Metrics: handlers.NewMetricsHandler(metrics),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	go bot.Poll(ctx, handler.HandleUpdate)

	waitForShutdown(logger)
	cancel()

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
