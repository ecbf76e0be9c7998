package chainkit

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps schemes to backends. The zero value is not usable; create
// one with NewRegistry. Reads may run concurrently with registration, so the
// mapping is guarded by an RWMutex; registrations are expected to be rare
// and take the write lock.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

// NewRegistry creates an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]Backend),
	}
}

// Register inserts or replaces the backend for a scheme. Re-registering a
// scheme simply replaces the entry.
func (r *Registry) Register(scheme string, backend Backend) error {
	if scheme == "" {
		return ErrEmptyScheme
	}
	if backend == nil {
		return fmt.Errorf("%w: scheme %q", ErrNilBackend, scheme)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[scheme] = backend

	return nil
}

// Backend returns the backend registered for a scheme.
func (r *Registry) Backend(scheme string) (Backend, error) {
	r.mu.RLock()
	backend, exists := r.backends[scheme]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	return backend, nil
}

// Schemes returns all registered schemes in sorted order.
func (r *Registry) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schemes := make([]string, 0, len(r.backends))
	for scheme := range r.backends {
		schemes = append(schemes, scheme)
	}
	sort.Strings(schemes)
	return schemes
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry. Backends registered here are
// visible to every Resolver created with a nil registry.
func Default() *Registry {
	return defaultRegistry
}

// Register registers a backend in the process-wide default registry.
func Register(scheme string, backend Backend) error {
	return defaultRegistry.Register(scheme, backend)
}
