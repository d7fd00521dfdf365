// Package eventreg is the events catalog page and event registration.
package eventreg

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

// New creates a new instance of the events module.
func New() *Module {
	return &Module{}
}

// Name returns the unique name for the module.
func (m *Module) Name() string {
	return "events"
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

// Boot registers the events routes.
func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting events module: Setting up routes...")
	g.GET("/events", m.handler.Get, middleware.RequireMember)
	g.POST("/events/register", m.handler.Register, middleware.RequireMember)
	return nil
}
