package handler

import (
	"github.com/labstack/echo/v4"

	"hello-api/internal/config"
)

// RegisterRoutes wires all route handlers onto the Echo instance.
// Static routes take precedence over /:name in Echo's router, so
// GET /api is never treated as a greeting.
func RegisterRoutes(e *echo.Echo, greeting *GreetingHandler, relay *RelayHandler, health *HealthHandler) {
	e.GET(config.HealthzPath, health.Healthz)
	e.GET(config.StatusPath, health.Status)

	e.GET("/", greeting.Root)
	e.GET("/api", relay.Handle)
	e.GET("/:name", greeting.Named)
}
