package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-registration/internal/api/http/handlers"
	"github.com/spec-kit/event-registration/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Events         *handlers.EventsHandler
	Subscriptions  *handlers.SubscriptionsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/verify-email", cfg.Auth.VerifyEmail)

	users := app.Group("/users")
	users.Post("", cfg.Users.Register)
	users.Get("", cfg.AuthMiddleware.Handle, auth.RequireCapability(auth.OpUsersList), cfg.Users.List)
	users.Get("/:id", cfg.AuthMiddleware.Handle, auth.RequireCapability(auth.OpUsersGet), cfg.Users.Get)
	users.Patch("/:id", cfg.AuthMiddleware.Handle, auth.RequireCapability(auth.OpUsersPatch), cfg.Users.Patch)
	users.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireCapability(auth.OpUsersDelete), cfg.Users.Delete)

	events := app.Group("/events", cfg.AuthMiddleware.Handle)
	events.Post("", auth.RequireCapability(auth.OpEventsCreate), cfg.Events.Create)
	events.Get("", auth.RequireCapability(auth.OpEventsList), cfg.Events.List)
	events.Get("/:id", auth.RequireCapability(auth.OpEventsGet), cfg.Events.Get)
	events.Patch("/:id", auth.RequireCapability(auth.OpEventsPatch), cfg.Events.Patch)
	events.Delete("/:id", auth.RequireCapability(auth.OpEventsDelete), cfg.Events.Delete)

	subscriptions := app.Group("/subscriptions", cfg.AuthMiddleware.Handle)
	subscriptions.Post("", auth.RequireCapability(auth.OpSubscriptionsCreate), cfg.Subscriptions.Create)
	subscriptions.Get("", auth.RequireCapability(auth.OpSubscriptionsList), cfg.Subscriptions.List)
	subscriptions.Get("/:id", auth.RequireCapability(auth.OpSubscriptionsGet), cfg.Subscriptions.Get)
	subscriptions.Delete("/:id", auth.RequireCapability(auth.OpSubscriptionsDelete), cfg.Subscriptions.Delete)
}
