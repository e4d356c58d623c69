package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/study-service/internal/api/http/handlers"
	"github.com/spec-kit/study-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Pairing        *handlers.PairingHandler
	Studies        *handlers.StudiesHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	// PIN redemption is the unauthenticated half of device pairing.
	authGroup.Post("/pin/login", cfg.Pairing.LoginWithPin)
	authGroup.Post("/pin/request", cfg.AuthMiddleware.Handle, auth.RequireUser(), cfg.Pairing.RequestPin)

	users := app.Group("/users", cfg.AuthMiddleware.Handle)
	users.Get("/me", auth.RequireUser(), cfg.Users.Me)
	users.Put("/me", auth.RequireUser(), cfg.Users.Update)
	users.Delete("/me", auth.RequireUser(), cfg.Users.Delete)
	users.Get("", auth.RequireAdmin(), cfg.Users.List)

	study := app.Group("/study", cfg.AuthMiddleware.Handle, auth.RequireUser())
	study.Post("/session/start", cfg.Studies.StartSession)
	study.Post("/session/end", cfg.Studies.EndSession)
	study.Get("/session", cfg.Studies.ListSessions)
	study.Delete("/session/:session_id", cfg.Studies.DeleteSession)
	study.Post("/data", cfg.Studies.RecordData)
	study.Get("/data/:session_id", cfg.Studies.ListSessionData)
}
