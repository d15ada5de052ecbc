package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HomeHandler handles requests for the site root.
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// HomeGet sends visitors to the login form.
func (h *HomeHandler) HomeGet(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/login")
}

// Health reports liveness for load balancers (GET /health).
func (h *HomeHandler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
