package app

import (
	"fmt"
	"net/http"

	"github.com/nfrund/clubportal/internal/activity"
	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/config"
	"github.com/nfrund/clubportal/internal/feedback"
	"github.com/nfrund/clubportal/internal/pubsub"
	"github.com/nfrund/clubportal/internal/registration"
	"github.com/nfrund/clubportal/internal/registry"
	"github.com/nfrund/clubportal/internal/viewstate"
)

// Dependencies holds the core services that are required by the application's modules.
// This struct is built by the main application entrypoint and published to the
// registry before any module registers.
type Dependencies struct {
	Backend   *backend.Factory
	Feedback  *feedback.Hub
	Publisher pubsub.Publisher

	// Bus is the in-process bus behind Publisher; the activity log subscribes to it.
	Bus      *pubsub.WatermillBridge
	Activity *activity.Log
	Fallback registration.Fallback
	Views    *viewstate.Registry
}

// Populate stores the core services in reg under their shared keys.
func Populate(reg *registry.Registry, deps Dependencies) {
	registry.Set(reg, registry.BackendKey, deps.Backend)
	registry.Set(reg, registry.FeedbackKey, deps.Feedback)
	registry.Set(reg, registry.PublisherKey, deps.Publisher)
	registry.Set(reg, registry.ActivityKey, deps.Activity)
	registry.Set(reg, registry.FallbackKey, deps.Fallback)
	registry.Set(reg, registry.ViewsKey, deps.Views)
}

// NewDependencies builds the core services from cfg. Logging out of a view
// drops its state from every module and closes its feedback channels.
func NewDependencies(cfg *config.Config) (Dependencies, error) {
	fallback, err := registration.ParseFallback(cfg.StatusFallback)
	if err != nil {
		return Dependencies{}, fmt.Errorf("build dependencies: %w", err)
	}

	hub := feedback.NewHub(feedback.WithTTL(cfg.FeedbackTTL))
	views := viewstate.NewRegistry()
	views.Register(viewstate.DropperFunc(hub.CloseView))

	bus := pubsub.NewWatermillBridge()
	return Dependencies{
		Backend:   backend.NewFactory(cfg.BackendURL, cfg.AdminURL, &http.Client{Timeout: cfg.BackendTimeout}),
		Feedback:  hub,
		Publisher: bus,
		Bus:       bus,
		Activity:  activity.NewLog(),
		Fallback:  fallback,
		Views:     views,
	}, nil
}
