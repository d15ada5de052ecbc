package server

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/authforms/internal/middleware"
)

// setupErrorHandling installs an error handler that logs unhandled errors
// with a stack trace before echo renders the response.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		logger := middleware.FromContext(c.Request().Context())

		var he *echo.HTTPError
		switch {
		case errors.As(err, &he) && he.Code < http.StatusInternalServerError:
			logger.Debug("Request rejected", "status", he.Code, "error", err)
		case he != nil:
			logger.Error("Internal Server Error", "status", he.Code, "error", err, "path", c.Request().URL.Path)
		default:
			logger.Error("Internal Server Error (Unhandled)",
				"error", err,
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}
