package viewstate

import "sync"

// Dropper is anything holding per-view resources keyed by view id.
type Dropper interface {
	DropView(viewID string)
}

// DropperFunc adapts a function to Dropper.
type DropperFunc func(viewID string)

func (f DropperFunc) DropView(viewID string) { f(viewID) }

// Registry fans a view teardown out to every store and hub that registered.
// Logging out, or signing in as someone else, drops all of a browser's views.
type Registry struct {
	mu       sync.Mutex
	droppers []Dropper
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds d to the teardown fan-out.
func (r *Registry) Register(d Dropper) {
	r.mu.Lock()
	r.droppers = append(r.droppers, d)
	r.mu.Unlock()
}

// DropView tears down every view viewID owns.
func (r *Registry) DropView(viewID string) {
	if viewID == "" {
		return
	}
	r.mu.Lock()
	droppers := append([]Dropper(nil), r.droppers...)
	r.mu.Unlock()

	for _, d := range droppers {
		d.DropView(viewID)
	}
}
