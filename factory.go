package chainkit

import (
	"fmt"
	"strings"
	"sync"
)

// BackendFactory is a function that creates a Backend from a config
type BackendFactory func(cfg *Config) (Backend, error)

var (
	backendFactories = make(map[string]BackendFactory)
	factoryMutex     sync.RWMutex
)

// RegisterBackendFactory registers a backend factory for a scheme. Backend
// packages call this from init, so a blank import is enough to make a scheme
// constructible via BuildRegistry.
func RegisterBackendFactory(scheme string, factory BackendFactory) {
	factoryMutex.Lock()
	defer factoryMutex.Unlock()
	backendFactories[scheme] = factory
}

// CreateBackend creates a backend instance for a scheme from config.
func CreateBackend(scheme string, cfg *Config) (Backend, error) {
	factoryMutex.RLock()
	factory, exists := backendFactories[scheme]
	factoryMutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: no factory for %q", ErrUnknownScheme, scheme)
	}

	return factory(cfg)
}

// BuildRegistry constructs a registry holding one backend per scheme named
// in cfg.Schemes.
func BuildRegistry(cfg *Config) (*Registry, error) {
	registry := NewRegistry()

	for _, scheme := range strings.Split(cfg.Schemes, ",") {
		scheme = strings.TrimSpace(scheme)
		if scheme == "" {
			continue
		}

		backend, err := CreateBackend(scheme, cfg)
		if err != nil {
			return nil, fmt.Errorf("build registry: %w", err)
		}
		if err := registry.Register(scheme, backend); err != nil {
			return nil, fmt.Errorf("build registry: %w", err)
		}
	}

	return registry, nil
}
