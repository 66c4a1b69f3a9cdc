package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/central/authentication-service/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, auth *handlers.AuthHandler, users *handlers.UserHandler, health *handlers.HealthHandler, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/login", auth.Login)
	a.Get("/validate", auth.Validate)

	// User management; creation is open (signup), reads require a token.
	u := v1.Group("/users")
	u.Post("/", users.Create)
	u.Get("/", authMW, users.Search)
	u.Get("/:userCode", authMW, users.GetByUserCode)
}
