// Package viewstate keeps the in-memory state of mounted views. A view is one
// page opened by one browser; it lives from the page GET that mounts it until
// the browser mounts the page again, signs out, or the server stops.
package viewstate

import (
	"strings"
	"sync"

	"github.com/nfrund/clubportal/internal/domain"
)

// Key identifies a mounted view.
func Key(viewID, page string) string {
	return viewID + ":" + page
}

// Teardown runs when a view is replaced or dropped.
type Teardown func(key string)

// Store holds one T per mounted view.
type Store[T any] struct {
	mu       sync.Mutex
	views    map[string]*T
	teardown []Teardown
}

// New creates a store. Every teardown hook runs, in order, for each view that
// leaves the store.
func New[T any](teardown ...Teardown) *Store[T] {
	return &Store[T]{
		views:    make(map[string]*T),
		teardown: teardown,
	}
}

// Mount stores state under key, tearing down any view it replaces.
func (s *Store[T]) Mount(key string, state T) {
	s.mu.Lock()
	_, replaced := s.views[key]
	s.views[key] = &state
	s.mu.Unlock()

	if replaced {
		s.runTeardown(key)
	}
}

// Get returns a copy of the state mounted under key.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.views[key]
	if !ok {
		var zero T
		return zero, false
	}
	return *st, true
}

// Update applies fn to the state under key and returns the result. fn runs
// with the store locked, so concurrent submits on the same view apply one
// after another.
func (s *Store[T]) Update(key string, fn func(*T)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.views[key]
	if !ok {
		var zero T
		return zero, domain.ErrViewNotFound
	}
	fn(st)
	return *st, nil
}

// Delete tears down the view under key.
func (s *Store[T]) Delete(key string) {
	s.mu.Lock()
	_, ok := s.views[key]
	delete(s.views, key)
	s.mu.Unlock()

	if ok {
		s.runTeardown(key)
	}
}

// DropView tears down every page mounted by viewID.
func (s *Store[T]) DropView(viewID string) {
	prefix := viewID + ":"
	var dropped []string

	s.mu.Lock()
	for key := range s.views {
		if strings.HasPrefix(key, prefix) {
			delete(s.views, key)
			dropped = append(dropped, key)
		}
	}
	s.mu.Unlock()

	for _, key := range dropped {
		s.runTeardown(key)
	}
}

// Len returns the number of mounted views.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

func (s *Store[T]) runTeardown(key string) {
	for _, fn := range s.teardown {
		fn(key)
	}
}
