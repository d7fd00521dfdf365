package registry

import (
	"github.com/nfrund/clubportal/internal/activity"
	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/feedback"
	"github.com/nfrund/clubportal/internal/pubsub"
	"github.com/nfrund/clubportal/internal/registration"
	"github.com/nfrund/clubportal/internal/viewstate"
)

// Service keys shared by the portal modules. Using constants prevents typos.
const (
	BackendKey   Key[*backend.Factory]      = "core.backend"
	FeedbackKey  Key[*feedback.Hub]         = "core.feedback"
	PublisherKey Key[pubsub.Publisher]      = "core.publisher"
	ActivityKey  Key[*activity.Log]         = "core.activity"
	FallbackKey  Key[registration.Fallback] = "core.status_fallback"
	ViewsKey     Key[*viewstate.Registry]   = "core.views"
)
