// Package admin is the administrator dashboard.
package admin

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/clubportal/internal/middleware"
	"github.com/nfrund/clubportal/internal/module"
	"github.com/nfrund/clubportal/internal/registry"
)

// Module implements the module.Module interface.
type Module struct {
	module.BaseModule
	handler *Handler
}

// New creates a new instance of the admin module.
func New() *Module {
	return &Module{}
}

// Name returns the unique name for the module.
func (m *Module) Name() string {
	return "admin"
}

// Boot registers the dashboard route. The admin login pages are core routes.
func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting admin module: Setting up routes...")
	m.handler = NewHandler(registry.MustGet(reg, registry.BackendKey))
	g.GET("/admin/dashboard", m.handler.Dashboard, middleware.RequireAdmin)
	return nil
}
