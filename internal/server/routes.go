package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/clubportal/internal/handlers"
	"github.com/nfrund/clubportal/internal/middleware"
	"github.com/nfrund/clubportal/web"
)

// RegisterRoutes sets up the core routes; feature pages come from the modules.
func (s *Server) RegisterRoutes() {
	homeHandler := handlers.NewHomeHandler(s.core.Backend)
	authHandler := handlers.NewAuthHandler(s.core.Backend, s.core.Views)
	feedbackHandler := handlers.NewFeedbackHandler(s.core.Feedback)
	healthHandler := handlers.NewHealthHandler(s.core.Activity)
	rateLimiter := middleware.RateLimiter(middleware.DefaultAuthAttemptsPerMinute)

	s.E.StaticFS("/static", web.Static())

	s.E.GET("/", homeHandler.HomeGet)

	s.E.GET("/login", authHandler.LoginGet)
	s.E.POST("/login", authHandler.LoginPost, rateLimiter)
	s.E.GET("/signup", authHandler.SignupGet)
	s.E.POST("/signup", authHandler.SignupPost, rateLimiter)
	s.E.POST("/logout", authHandler.LogoutPost)

	s.E.GET("/admin/login", authHandler.AdminLoginGet)
	s.E.POST("/admin/login", authHandler.AdminLoginPost, rateLimiter)

	s.E.GET("/feedback/:page", feedbackHandler.Get)
	s.E.POST("/feedback/:page/dismiss", feedbackHandler.Dismiss)

	s.E.GET("/health", healthHandler.Get)

	// Old bookmarks of the logout link.
	s.E.GET("/logout", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/")
	})
}
