package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/booking-gateway/internal/api/http"
	"github.com/spec-kit/booking-gateway/internal/api/http/handlers"
	"github.com/spec-kit/booking-gateway/internal/auth"
	"github.com/spec-kit/booking-gateway/internal/config"
	"github.com/spec-kit/booking-gateway/internal/events"
	"github.com/spec-kit/booking-gateway/internal/observability"
	"github.com/spec-kit/booking-gateway/internal/persistence"
	"github.com/spec-kit/booking-gateway/internal/repository"
	"github.com/spec-kit/booking-gateway/internal/service"
	"github.com/spec-kit/booking-gateway/internal/upstream"
	"github.com/spec-kit/booking-gateway/internal/worker"
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

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	apiClient := upstream.NewClient(cfg.Upstream, logger)
	authClient := upstream.NewAuthClient(apiClient)
	bookingClient := upstream.NewBookingClient(apiClient)

	auditRepo := repository.NewAuditEventRepository(pg.PoolHandle())
	bookingCache := repository.NewBookingCache(redis.Client, cfg.Cache.BookingTTL())

	sessionService := service.NewSessionService(authClient, dispatcher, metrics, logger)
	checkoutService := service.NewCheckoutService(bookingClient, bookingCache, dispatcher, metrics, logger)
	auditService := service.NewAuditService(dispatcher, auditRepo, logger)
	worker.StartAuditWorker(auditService)

	lifecycle := auth.NewLifecycle(authClient, logger)
	cookieCodec := auth.NewCookieCodec(cfg.Session.CookieName, cfg.Session.CookieSecret, cfg.Session.CookieTTL())
	sessionMiddleware := auth.NewSessionMiddleware(cookieCodec, lifecycle, sessionService, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:     handlers.NewAuthHandler(sessionService, sessionMiddleware),
		Checkout: handlers.NewCheckoutHandler(checkoutService),
		Ops:      handlers.NewOpsHandler(metrics, auditService),
		Session:  sessionMiddleware,
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
