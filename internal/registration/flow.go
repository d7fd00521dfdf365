package registration

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/nfrund/clubportal/internal/backend"
	"github.com/nfrund/clubportal/internal/domain"
	"github.com/nfrund/clubportal/internal/feedback"
	"github.com/nfrund/clubportal/internal/pubsub"
)

// TopicOutcome carries one Outcome per submission.
const TopicOutcome = "registration.outcome"

// ErrEmptySubject is returned by Submit when no subject was selected.
var ErrEmptySubject = domain.ErrEmptySubject

// Transport is the part of backend.Client a flow needs.
type Transport interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
}

// Endpoint describes one registrable resource: where its status lives, where
// submissions go and how the status response maps onto statuses.
type Endpoint[R any] struct {
	// Name labels the flow in logs and outcome events ("byte", "events").
	Name       string
	StatusPath string
	SubmitPath string
	// Decode turns the status response into statuses.
	Decode func(R) []Status
	// Body builds the submission body for subject.
	Body        func(subject string) any
	SuccessText string
	FailureText string
}

// Outcome is published on TopicOutcome after every submission.
type Outcome struct {
	Flow        string    `json:"flow"`
	Subject     string    `json:"subject"`
	Success     bool      `json:"success"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Flow fetches and submits registrations for one Endpoint on behalf of one identity.
type Flow[R any] struct {
	endpoint  Endpoint[R]
	transport Transport
	fallback  Fallback
	publisher pubsub.Publisher
	viewID    string
	logger    *slog.Logger
}

// FlowOption configures a Flow.
type FlowOption func(*flowOptions)

type flowOptions struct {
	fallback  Fallback
	publisher pubsub.Publisher
	viewID    string
}

// WithFallback sets what a failed status check degrades to.
func WithFallback(f Fallback) FlowOption {
	return func(o *flowOptions) { o.fallback = f }
}

// WithPublisher publishes submission outcomes for viewID on pub.
func WithPublisher(pub pubsub.Publisher, viewID string) FlowOption {
	return func(o *flowOptions) {
		o.publisher = pub
		o.viewID = viewID
	}
}

// NewFlow creates a flow for endpoint over transport.
func NewFlow[R any](endpoint Endpoint[R], transport Transport, opts ...FlowOption) *Flow[R] {
	o := flowOptions{fallback: FallbackNotRegistered, publisher: pubsub.Nop{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.publisher == nil {
		o.publisher = pubsub.Nop{}
	}
	return &Flow[R]{
		endpoint:  endpoint,
		transport: transport,
		fallback:  o.fallback,
		publisher: o.publisher,
		viewID:    o.viewID,
		logger:    slog.Default().With("component", "registration", "flow", endpoint.Name),
	}
}

// Fetch issues the status GET. The raw response is returned alongside the
// snapshot so pages can render extra fields from it. A failed check is logged
// and degrades to the configured fallback with a zero response.
func (f *Flow[R]) Fetch(ctx context.Context) (R, Snapshot) {
	var resp R
	if err := f.transport.Get(ctx, f.endpoint.StatusPath, &resp); err != nil {
		f.logger.WarnContext(ctx, "Registration status check failed", "path", f.endpoint.StatusPath, "error", err)
		var zero R
		return zero, Degraded(f.fallback)
	}
	var statuses []Status
	if f.endpoint.Decode != nil {
		statuses = f.endpoint.Decode(resp)
	}
	return resp, NewSnapshot(statuses...)
}

// Submit registers the identity for subject. On success the returned snapshot
// marks subject pending; on failure snap is returned unchanged. The message is
// what the feedback channel should show. Only an empty subject returns an
// error, and in that case no request is sent.
func (f *Flow[R]) Submit(ctx context.Context, snap Snapshot, subject string) (Snapshot, feedback.Message, error) {
	if strings.TrimSpace(subject) == "" {
		return snap, feedback.Message{}, ErrEmptySubject
	}

	var body any
	if f.endpoint.Body != nil {
		body = f.endpoint.Body(subject)
	}

	var resp backend.MessageResponse
	err := f.transport.Post(ctx, f.endpoint.SubmitPath, body, &resp)
	if errors.Is(err, backend.ErrDecode) {
		// The status was 2xx; only the body was not {message}.
		f.logger.WarnContext(ctx, "Registration accepted with an unreadable body", "subject", subject, "error", err)
		resp, err = backend.MessageResponse{}, nil
	}

	var (
		next Snapshot
		msg  feedback.Message
	)
	if err != nil {
		f.logger.InfoContext(ctx, "Registration rejected", "subject", subject, "error", err)
		next = snap
		msg = feedback.Danger(backend.MessageOr(err, f.endpoint.FailureText))
	} else {
		next = snap.With(Pending(subject))
		text := resp.Message
		if strings.TrimSpace(text) == "" {
			text = f.endpoint.SuccessText
		}
		msg = feedback.Success(text)
	}

	f.publish(ctx, Outcome{
		Flow:        f.endpoint.Name,
		Subject:     subject,
		Success:     err == nil,
		Message:     msg.Text,
		SubmittedAt: time.Now().UTC(),
	})
	return next, msg, nil
}

func (f *Flow[R]) publish(ctx context.Context, out Outcome) {
	if err := pubsub.PublishJSON(ctx, f.publisher, TopicOutcome, f.viewID, out); err != nil {
		f.logger.ErrorContext(ctx, "Failed to publish registration outcome", "error", err)
	}
}
