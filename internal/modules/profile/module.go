package profile

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/clubportal/internal/middleware"
	"github.com/nfrund/clubportal/internal/module"
	"github.com/nfrund/clubportal/internal/registry"
)

type Module struct {
	module.BaseModule
	handler *Handler
}

func New() *Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "profile"
}

func (m *Module) Boot(ctx context.Context, group *echo.Group, reg *registry.Registry) error {
	m.handler = NewHandler(registry.MustGet(reg, registry.BackendKey))
	group.GET("/profile", m.handler.Get, middleware.RequireMember)
	return nil
}
