// Package bytereg is the BYTE class registration page.
package bytereg

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/clubportal/internal/middleware"
	"github.com/nfrund/clubportal/internal/module"
	"github.com/nfrund/clubportal/internal/registry"
	"github.com/nfrund/clubportal/internal/viewstate"
)

// Module implements the module.Module interface.
type Module struct {
	module.BaseModule
	handler *Handler
}

// New creates a new instance of the BYTE module.
func New() *Module {
	return &Module{}
}

// Name returns the unique name for the module.
func (m *Module) Name() string {
	return "byte"
}

// Register builds the handler and hooks its view store into logout teardown.
func (m *Module) Register(reg *registry.Registry) error {
	m.handler = NewHandler(Dependencies{
		Backend:   registry.MustGet(reg, registry.BackendKey),
		Feedback:  registry.MustGet(reg, registry.FeedbackKey),
		Publisher: registry.MustGet(reg, registry.PublisherKey),
		Fallback:  registry.MustGet(reg, registry.FallbackKey),
	})
	registry.MustGet(reg, registry.ViewsKey).Register(viewstate.DropperFunc(m.handler.views.DropView))
	return nil
}

// Boot registers the BYTE routes.
func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting BYTE module: Setting up routes...")
	g.GET("/byte-register", m.handler.Get, middleware.RequireMember)
	g.POST("/byte-register", m.handler.Post, middleware.RequireMember)
	return nil
}
