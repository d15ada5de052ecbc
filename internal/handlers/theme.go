package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/authforms/internal/middleware"
	"github.com/nfrund/authforms/internal/theme"
)

// ThemeHandler switches between the light and dark palette.
type ThemeHandler struct{}

// NewThemeHandler creates a new ThemeHandler.
func NewThemeHandler() *ThemeHandler {
	return &ThemeHandler{}
}

// TogglePost flips the saved theme and asks htmx to reload the page
// (POST /theme). The reload mounts a fresh form.
func (h *ThemeHandler) TogglePost(c echo.Context) error {
	next := theme.ToggleContext(c)
	middleware.FromContext(c.Request().Context()).Debug("Theme toggled", "theme", next)
	c.Response().Header().Set(headerHXRefresh, "true")
	return c.NoContent(http.StatusNoContent)
}
