package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// GreetingHandler serves the static and named greetings.
type GreetingHandler struct{}

// NewGreetingHandler creates a GreetingHandler.
func NewGreetingHandler() *GreetingHandler {
	return &GreetingHandler{}
}

// Root answers GET / with a fixed greeting.
func (h *GreetingHandler) Root(c echo.Context) error {
	return c.String(http.StatusOK, "Hello, World!")
}

// Named answers GET /:name with the path segment as the router yields it.
// Echo's param route also matches deeper paths such as /a/b or /a/, which
// are not greetings and answer 404.
func (h *GreetingHandler) Named(c echo.Context) error {
	name := c.Param("name")
	if name == "" || strings.Contains(name, "/") {
		return echo.ErrNotFound
	}
	return c.String(http.StatusOK, "Hello, "+name)
}
