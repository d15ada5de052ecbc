package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/authforms/internal/config"
	"github.com/nfrund/authforms/internal/formstore"
	"github.com/nfrund/authforms/internal/handlers"
	"github.com/nfrund/authforms/internal/middleware"
	"github.com/nfrund/authforms/internal/pubsub"
	"github.com/nfrund/authforms/internal/rendering"
	"github.com/nfrund/authforms/web"
	"github.com/samber/do/v2"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E        *echo.Echo
	Cfg      config.Provider
	injector do.Injector
	forms    *formstore.Store
	bus      *pubsub.WatermillBridge
}

// New creates a Server with its middleware and routes registered.
func New(cfg config.Provider) (*Server, error) {
	injector := NewInjector(cfg)
	forms, err := do.Invoke[*formstore.Store](injector)
	if err != nil {
		return nil, err
	}
	bus, err := do.Invoke[*pubsub.WatermillBridge](injector)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.Renderer = rendering.NewUniversalRenderer()
	setupErrorHandling(e)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			middleware.FromContext(c.Request().Context()).LogAttrs(c.Request().Context(), slog.LevelInfo, "Request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	// Cookie sessions carry flashes and the theme; form state stays server side.
	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   !cfg.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	s := &Server{
		E:        e,
		Cfg:      cfg,
		injector: injector,
		forms:    forms,
		bus:      bus,
	}
	s.RegisterRoutes()
	return s, nil
}

// Forms exposes the mounted form sessions, useful for testing.
func (s *Server) Forms() *formstore.Store {
	return s.forms
}
