package deprecation

import "sync"

// Registry keeps track of the deprecation notices that have already been emitted.
type Registry interface {
	// HasWarned returns true if a notice identified by key has already been emitted.
	HasWarned(key string) bool

	// MarkWarned records that a notice identified by key has been emitted.
	MarkWarned(key string)

	// Reset forgets every emitted notice.
	Reset()
}

// registry is a Registry implementation backed by a map.
type registry struct {
	mu     sync.RWMutex
	warned map[string]struct{}
}

// HasWarned returns true if key has been marked.
func (r *registry) HasWarned(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.warned[key]
	return ok
}

// MarkWarned marks key as warned.
func (r *registry) MarkWarned(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warned[key] = struct{}{}
}

// Reset removes every marked key.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warned = make(map[string]struct{})
}

// NewRegistry initializes a new empty Registry.
func NewRegistry() Registry {
	return &registry{
		warned: make(map[string]struct{}),
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide Registry.
func Default() Registry {
	return defaultRegistry
}
