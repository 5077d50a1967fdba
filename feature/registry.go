package feature

import (
	"sort"
	"sync"
)

// Registry is an append-only ordering of feature names. Every name observed
// is assigned the next free position, and positions never change or go away,
// so a vector projected against an older, narrower ordering stays a prefix
// of any later projection.
//
// A Registry may be shared by several estimators so their vectors agree on
// coordinate meaning. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	names []string
	pos   map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		pos: make(map[string]int),
	}
}

// Len returns the number of registered names, which is the current vector
// width.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.names)
}

// Names returns the registered names in position order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.names))
	copy(out, r.names)

	return out
}

// Index returns the position of a name, if registered.
func (r *Registry) Index(name string) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.pos[name]

	return i, ok
}

// Observe registers the name if it is new and returns its position.
func (r *Registry) Observe(name string) int {
	r.mu.RLock()
	i, ok := r.pos[name]
	r.mu.RUnlock()

	if ok {
		return i
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.pos[name]; ok {
		return i
	}

	return r.append(name)
}

// ObserveAll registers every name in x that is not yet known. Names new in
// the same observation are registered in sorted order so that repeated runs
// over the same data produce the same ordering.
func (r *Registry) ObserveAll(x Features) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var missing []string

	for name := range x {
		if _, ok := r.pos[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) == 0 {
		return
	}

	sort.Strings(missing)

	for _, name := range missing {
		r.append(name)
	}
}

// append registers a name at the next free position. Caller holds the write
// lock.
func (r *Registry) append(name string) int {
	i := len(r.names)
	r.names = append(r.names, name)
	r.pos[name] = i

	return i
}
