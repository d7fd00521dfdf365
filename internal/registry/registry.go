// Package registry is the typed service directory the portal modules share.
// Core services are published under the keys in keys.go before any module
// registers; modules resolve them by key.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/nfrund/clubportal/internal/config"
)

var (
	// ErrNotFound is returned by Resolve for a key nothing was stored under.
	ErrNotFound = errors.New("registry: service not found")
	// ErrWrongType is returned by Resolve when the stored value is not the key's type.
	ErrWrongType = errors.New("registry: service has the wrong type")
)

// Key is a typed service key, e.g. Key[*feedback.Hub]("core.feedback").
// Values follow "<owner>.<service>".
type Key[T any] string

// Registry maps keys to service instances. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	services map[string]any
	cfg      *config.Config
}

// New creates an empty registry holding cfg.
func New(cfg *config.Config) *Registry {
	return &Registry{services: make(map[string]any), cfg: cfg}
}

// Config returns the portal configuration.
func (r *Registry) Config() *config.Config {
	return r.cfg
}

// Keys lists the keys currently stored, sorted.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.services))
	for k := range r.services {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set stores value under key, replacing any previous value.
func Set[T any](r *Registry, key Key[T], value T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[string(key)] = value
}

// Resolve returns the service stored under key.
func Resolve[T any](r *Registry, key Key[T]) (T, error) {
	var zero T
	r.mu.RLock()
	val, ok := r.services[string(key)]
	r.mu.RUnlock()
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, string(key))
	}
	result, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s holds %T", ErrWrongType, string(key), val)
	}
	return result, nil
}

// Get is Resolve reporting only whether the service was found.
func Get[T any](r *Registry, key Key[T]) (T, bool) {
	val, err := Resolve(r, key)
	return val, err == nil
}

// MustGet resolves a service or panics. Modules use it while registering,
// where a missing core service is a wiring bug.
func MustGet[T any](r *Registry, key Key[T]) T {
	val, err := Resolve(r, key)
	if err != nil {
		panic(err.Error())
	}
	return val
}
