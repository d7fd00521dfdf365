package feedback

import (
	"strings"
	"sync"
)

// Hub tracks one Channel per view key ("<view id>:<page>").
type Hub struct {
	mu       sync.Mutex
	channels map[string]*Channel
	opts     []Option
}

// NewHub creates a hub whose channels are built with opts.
func NewHub(opts ...Option) *Hub {
	return &Hub{
		channels: make(map[string]*Channel),
		opts:     opts,
	}
}

// Key builds the hub key for a page of a view.
func Key(viewID, page string) string {
	return viewID + ":" + page
}

// Open returns a fresh channel for key, closing any previous one.
func (h *Hub) Open(key string) *Channel {
	h.mu.Lock()
	defer h.mu.Unlock()
	if prev, ok := h.channels[key]; ok {
		_ = prev.Close()
	}
	ch := NewChannel(h.opts...)
	h.channels[key] = ch
	return ch
}

// Channel returns the channel for key, opening one if none exists.
func (h *Hub) Channel(key string) *Channel {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.channels[key]; ok {
		return ch
	}
	ch := NewChannel(h.opts...)
	h.channels[key] = ch
	return ch
}

// Get returns the channel for key without creating one.
func (h *Hub) Get(key string) (*Channel, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch, ok := h.channels[key]
	return ch, ok
}

// Close closes and forgets the channel for key.
func (h *Hub) Close(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.channels[key]; ok {
		_ = ch.Close()
		delete(h.channels, key)
	}
}

// CloseView closes every channel belonging to viewID.
func (h *Hub) CloseView(viewID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	prefix := viewID + ":"
	for key, ch := range h.channels {
		if strings.HasPrefix(key, prefix) {
			_ = ch.Close()
			delete(h.channels, key)
		}
	}
}

// Len reports how many channels are open.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.channels)
}
