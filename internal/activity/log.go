// Package activity consumes registration outcomes from the bus. It writes one
// structured log line per outcome and keeps per-flow counters that the health
// endpoint reports.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nfrund/clubportal/internal/pubsub"
	"github.com/nfrund/clubportal/internal/registration"
)

// Counts is the tally for one flow.
type Counts struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Log records registration outcomes.
type Log struct {
	mu     sync.Mutex
	counts map[string]Counts
	logger *slog.Logger
}

// NewLog creates an empty activity log.
func NewLog() *Log {
	return &Log{
		counts: make(map[string]Counts),
		logger: slog.Default().With("component", "activity"),
	}
}

// Start subscribes the log to registration outcomes. Delivery stops when ctx
// is done or the subscriber is closed.
func (l *Log) Start(ctx context.Context, sub pubsub.Subscriber) error {
	if err := sub.Subscribe(ctx, registration.TopicOutcome, l.Handle); err != nil {
		return fmt.Errorf("subscribe to %s: %w", registration.TopicOutcome, err)
	}
	return nil
}

// Handle is the bus handler for registration.TopicOutcome.
func (l *Log) Handle(ctx context.Context, msg pubsub.Message) error {
	var out registration.Outcome
	if err := json.Unmarshal(msg.Payload, &out); err != nil {
		return fmt.Errorf("decode outcome: %w", err)
	}

	l.mu.Lock()
	c := l.counts[out.Flow]
	if out.Success {
		c.Succeeded++
	} else {
		c.Failed++
	}
	l.counts[out.Flow] = c
	l.mu.Unlock()

	l.logger.InfoContext(ctx, "Registration outcome",
		"flow", out.Flow,
		"subject", out.Subject,
		"success", out.Success,
		"message", out.Message,
		"view_id", msg.ViewID,
		"submitted_at", out.SubmittedAt,
	)
	return nil
}

// Snapshot returns a copy of the per-flow counters.
func (l *Log) Snapshot() map[string]Counts {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]Counts, len(l.counts))
	for k, v := range l.counts {
		out[k] = v
	}
	return out
}
