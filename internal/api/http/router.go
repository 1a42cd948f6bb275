package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/booking-gateway/internal/api/http/handlers"
	"github.com/spec-kit/booking-gateway/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Checkout *handlers.CheckoutHandler
	Ops      *handlers.OpsHandler
	Session  *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/ops/metrics", cfg.Ops.Metrics)
	app.Get("/ops/audit", cfg.Ops.AuditTrail)

	// Everything below sees the resolved session.
	app.Use(cfg.Session.Handle)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/session", cfg.Auth.Session)
	authGroup.Post("/session/refresh", auth.RequireSession(), cfg.Auth.RefreshProfile)

	checkoutGroup := app.Group("/checkout", auth.RequireSession())
	checkoutGroup.Get("/", cfg.Checkout.Info)
	checkoutGroup.Get("/payment", cfg.Checkout.Payment)
	checkoutGroup.Get("/confirm", cfg.Checkout.Confirm)
	checkoutGroup.Get("/complete", cfg.Checkout.Complete)
}
