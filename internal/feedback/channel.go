package feedback

import (
	"sync"
	"time"
)

// DefaultTTL is how long a message stays visible before it clears itself.
const DefaultTTL = 4 * time.Second

// Severity selects how a message is styled.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
	SeverityInfo    Severity = "info"
)

// Message is one outcome notification.
type Message struct {
	Text     string
	Severity Severity
}

// Success builds a success message.
func Success(text string) Message { return Message{Text: text, Severity: SeveritySuccess} }

// Danger builds a failure message.
func Danger(text string) Message { return Message{Text: text, Severity: SeverityDanger} }

// Timer is the part of *time.Timer the channel needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once adapted.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Channel.
type Option func(*Channel)

// WithTTL overrides DefaultTTL.
func WithTTL(d time.Duration) Option {
	return func(c *Channel) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithAfterFunc replaces the scheduler, e.g. with a fake clock in tests.
func WithAfterFunc(fn AfterFunc) Option {
	return func(c *Channel) {
		if fn != nil {
			c.afterFunc = fn
		}
	}
}

// Channel holds at most one message. Showing a message makes it visible at
// once and arms a timer that clears it after the TTL; showing another message
// replaces it and restarts the timer. There is no queue.
type Channel struct {
	mu        sync.Mutex
	current   Message
	visible   bool
	timer     Timer
	gen       uint64
	closed    bool
	ttl       time.Duration
	afterFunc AfterFunc
}

// NewChannel creates an empty channel.
func NewChannel(opts ...Option) *Channel {
	c := &Channel{
		ttl:       DefaultTTL,
		afterFunc: realAfterFunc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the auto-dismiss window.
func (c *Channel) TTL() time.Duration {
	return c.ttl
}

// Show replaces the current message and restarts the auto-dismiss timer.
func (c *Channel) Show(m Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.stopLocked()
	c.gen++
	gen := c.gen
	c.current = m
	c.visible = true
	c.timer = c.afterFunc(c.ttl, func() { c.expire(gen) })
}

// Dismiss hides the current message before its timer fires.
func (c *Channel) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.gen++
	c.clearLocked()
}

// Current returns the visible message, if any.
func (c *Channel) Current() (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.visible {
		return Message{}, false
	}
	return c.current, true
}

// Close stops the pending timer and ignores later Show calls. It is called
// when the owning view is torn down.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	c.gen++
	c.clearLocked()
	c.closed = true
	return nil
}

// expire clears the message only if no newer Show or Dismiss happened since
// the timer was armed; a stale timer that fires late is a no-op.
func (c *Channel) expire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.timer = nil
	c.clearLocked()
}

func (c *Channel) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Channel) clearLocked() {
	c.current = Message{}
	c.visible = false
}
