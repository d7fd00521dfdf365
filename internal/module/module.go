// Package module defines the lifecycle every portal feature goes through:
// all modules register, then all modules boot, and on exit they shut down in
// reverse order.
package module

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/nfrund/clubportal/internal/registry"
)

// Module is a self-contained portal feature (a page and its routes).
type Module interface {
	// Name is unique across modules and labels logs.
	Name() string

	// Register runs once the core services are in reg. A module builds its
	// handlers here and hooks into shared services such as logout teardown.
	Register(reg *registry.Registry) error

	// Boot runs after every module registered, and mounts routes on router.
	Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error

	// Shutdown releases whatever the module holds.
	Shutdown(ctx context.Context) error
}

// BaseModule gives a module no-op Register, Boot and Shutdown.
type BaseModule struct{}

func (BaseModule) Register(*registry.Registry) error { return nil }

func (BaseModule) Boot(context.Context, *echo.Group, *registry.Registry) error { return nil }

func (BaseModule) Shutdown(context.Context) error { return nil }

// Init registers every module, then boots each on router. It stops at the
// first failure.
func Init(ctx context.Context, modules []Module, reg *registry.Registry, router *echo.Group) error {
	for _, m := range modules {
		slog.Debug("Registering module", "module", m.Name())
		if err := m.Register(reg); err != nil {
			return fmt.Errorf("register module %s: %w", m.Name(), err)
		}
	}
	slog.Debug("Modules registered", "services", reg.Keys())
	for _, m := range modules {
		if err := m.Boot(ctx, router, reg); err != nil {
			return fmt.Errorf("boot module %s: %w", m.Name(), err)
		}
	}
	return nil
}

// ShutdownAll shuts modules down in reverse order. Every module is given the
// chance to shut down; the failures are joined.
func ShutdownAll(ctx context.Context, modules []Module) error {
	var errs []error
	for i := len(modules) - 1; i >= 0; i-- {
		m := modules[i]
		if err := m.Shutdown(ctx); err != nil {
			slog.Error("Module shutdown failed", "module", m.Name(), "error", err)
			errs = append(errs, fmt.Errorf("shutdown module %s: %w", m.Name(), err))
		}
	}
	return errors.Join(errs...)
}
