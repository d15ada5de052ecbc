package theme

import (
	"log/slog"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

const (
	sessionName = "theme-session"
	sessionKey  = "theme"
)

// FromContext reads the saved theme, falling back to Default.
func FromContext(c echo.Context) Theme {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return Default
	}
	raw, _ := sess.Values[sessionKey].(string)
	t, err := Parse(raw)
	if err != nil {
		return Default
	}
	return t
}

// Save persists t in the visitor's cookie.
func Save(c echo.Context, t Theme) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values[sessionKey] = string(t)
	return sess.Save(c.Request(), c.Response())
}

// ToggleContext flips and saves the theme, returning the new value. A failed
// save is logged and the toggled theme is still returned for this response.
func ToggleContext(c echo.Context) Theme {
	next := FromContext(c).Toggle()
	if err := Save(c, next); err != nil {
		slog.Error("Failed to save theme", "error", err)
	}
	return next
}
