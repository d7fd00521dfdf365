package module

import (
	"context"
	"errors"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/clubportal/internal/registry"
)

type recorder struct {
	BaseModule
	name        string
	calls       *[]string
	registerErr error
	shutdownErr error
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Register(*registry.Registry) error {
	*r.calls = append(*r.calls, "register "+r.name)
	return r.registerErr
}

func (r *recorder) Boot(context.Context, *echo.Group, *registry.Registry) error {
	*r.calls = append(*r.calls, "boot "+r.name)
	return nil
}

func (r *recorder) Shutdown(context.Context) error {
	*r.calls = append(*r.calls, "shutdown "+r.name)
	return r.shutdownErr
}

func TestInit_RegistersAllBeforeBooting(t *testing.T) {
	var calls []string
	mods := []Module{
		&recorder{name: "byte", calls: &calls},
		&recorder{name: "events", calls: &calls},
	}

	require.NoError(t, Init(context.Background(), mods, registry.New(nil), echo.New().Group("")))
	assert.Equal(t, []string{"register byte", "register events", "boot byte", "boot events"}, calls)
}

func TestInit_StopsOnRegisterError(t *testing.T) {
	var calls []string
	mods := []Module{
		&recorder{name: "byte", calls: &calls, registerErr: errors.New("no backend")},
		&recorder{name: "events", calls: &calls},
	}

	err := Init(context.Background(), mods, registry.New(nil), echo.New().Group(""))
	assert.ErrorContains(t, err, "register module byte: no backend")
	assert.Equal(t, []string{"register byte"}, calls)
}

func TestShutdownAll_ReverseOrderJoinsErrors(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	mods := []Module{
		&recorder{name: "byte", calls: &calls, shutdownErr: boom},
		&recorder{name: "events", calls: &calls},
		&recorder{name: "admin", calls: &calls},
	}

	err := ShutdownAll(context.Background(), mods)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"shutdown admin", "shutdown events", "shutdown byte"}, calls)
}

func TestBaseModule_NoOps(t *testing.T) {
	var m BaseModule
	assert.NoError(t, m.Register(nil))
	assert.NoError(t, m.Boot(context.Background(), nil, nil))
	assert.NoError(t, m.Shutdown(context.Background()))
}
