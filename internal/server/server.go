package server

import (
	"context"
	"errors"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nfrund/clubportal/internal/app"
	"github.com/nfrund/clubportal/internal/config"
	"github.com/nfrund/clubportal/internal/handlers"
	"github.com/nfrund/clubportal/internal/identity"
	appmiddleware "github.com/nfrund/clubportal/internal/middleware"
	"github.com/nfrund/clubportal/internal/module"
	"github.com/nfrund/clubportal/internal/registry"
	"github.com/nfrund/clubportal/internal/rendering"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E       *echo.Echo
	Cfg     *config.Config
	core    app.Dependencies
	modules []module.Module
}

// Dependencies are what New needs to build a server.
type Dependencies struct {
	Config *config.Config
	Core   app.Dependencies
	// Echo is optional; tests pass their own instance.
	Echo *echo.Echo
}

// New creates a new Server with the middleware stack applied. Routes are
// added by InitModules and RegisterRoutes.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, errors.New("server: config is required")
	}
	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	e.Renderer = rendering.NewUniversalRenderer()
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)

	cfg := deps.Config
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret), []byte(cfg.SessionEncryptionKey))
	store.Options = identity.Options(cfg.SecureCookies)

	e.Use(middleware.RequestID())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.Recover())
	e.Use(appmiddleware.SecurityHeaders())
	e.Use(session.Middleware(store))
	e.Use(appmiddleware.CSRF([]byte(cfg.CSRFKey), cfg.SecureCookies))

	return &Server{E: e, Cfg: cfg, core: deps.Core}, nil
}

// InitModules registers and boots modules on the root group and keeps them
// for Shutdown.
func (s *Server) InitModules(ctx context.Context, modules []module.Module, reg *registry.Registry) error {
	if err := module.Init(ctx, modules, reg, s.E.Group("")); err != nil {
		return err
	}
	s.modules = modules
	return nil
}
