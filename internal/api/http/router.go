package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/pizza-delivery/internal/api/http/handlers"
	"github.com/spec-kit/pizza-delivery/internal/auth"
	"github.com/spec-kit/pizza-delivery/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Orders         *handlers.OrdersHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        nethttp.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)

	mw := cfg.AuthMiddleware
	userOnly := mw.RequireRoles(domain.RoleUser)
	adminOnly := mw.RequireRoles(domain.RoleAdmin)
	anyRole := mw.RequireRoles(domain.RoleUser, domain.RoleAdmin)

	orders := api.Group("/orders", mw.Handle)
	orders.Post("/", userOnly, cfg.Orders.Create)
	orders.Get("/", anyRole, cfg.Orders.List)
	orders.Get("/:id", userOnly, cfg.Orders.Get)
	orders.Get("/:id/status", anyRole, cfg.Orders.Status)
	orders.Patch("/:id/status", adminOnly, cfg.Orders.UpdateStatus)
	orders.Delete("/:id", userOnly, cfg.Orders.Delete)
}
