package server

import (
	"github.com/nfrund/authforms/internal/handlers"
	"github.com/nfrund/authforms/internal/middleware"
	"github.com/nfrund/authforms/internal/validation"
	"github.com/samber/do/v2"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	homeHandler := do.MustInvoke[*handlers.HomeHandler](s.injector)
	authHandler := do.MustInvoke[*handlers.AuthHandler](s.injector)
	themeHandler := do.MustInvoke[*handlers.ThemeHandler](s.injector)
	rateLimiter := middleware.RateLimiter(s.Cfg.GetRateLimit())

	s.E.GET("/", homeHandler.HomeGet)
	s.E.GET("/health", homeHandler.Health)
	s.E.POST("/theme", themeHandler.TogglePost)

	s.E.GET("/login", authHandler.LoginGetHandler)
	s.E.GET("/register", authHandler.RegisterGetHandler)

	for _, kind := range []validation.Kind{validation.KindLogin, validation.KindRegister} {
		g := s.E.Group("/" + kind.String())
		g.POST("", authHandler.SubmitPost(kind), rateLimiter)
		g.POST("/fields/:field", authHandler.FieldPost(kind))
		g.POST("/blur/:field", authHandler.BlurPost(kind))
		g.POST("/reveal/:field", authHandler.RevealPost(kind))
	}
	s.E.POST("/login/remember", authHandler.RememberPost)
	s.E.POST("/login/forgot", authHandler.ForgotPost, rateLimiter)
}
