package chainkit

import (
	"context"
	"fmt"
	"io"
)

// Resolver turns locators into open streams by walking their hop chain
// against a backend registry. A Resolver is stateless apart from the
// registry and safe for concurrent use.
type Resolver struct {
	registry *Registry
}

// New creates a Resolver backed by the given registry. A nil registry means
// the process-wide default registry.
func New(registry *Registry) *Resolver {
	if registry == nil {
		registry = Default()
	}
	return &Resolver{registry: registry}
}

// Registry returns the registry the resolver reads from.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Open resolves a locator into a single readable stream. The outermost hop
// is opened first; each inner hop is opened through the previous hop's
// stream by that hop's ContainerOpener backend. Hops open strictly in order.
//
// On failure at any hop, every stream opened so far is closed in reverse
// order and a *HopError identifying the failing hop is returned; no partial
// stream ever escapes. The returned Stream owns the whole chain and must be
// closed by the caller.
func (r *Resolver) Open(ctx context.Context, locator string) (*Stream, error) {
	hops, err := ParseLocator(locator)
	if err != nil {
		return nil, err
	}
	return r.openChain(ctx, hops)
}

func (r *Resolver) openChain(ctx context.Context, hops []Hop) (*Stream, error) {
	opened := make([]io.ReadCloser, 0, len(hops))

	// Release in reverse order: the innermost stream opened last closes
	// first, so no inner reader outlives its container.
	fail := func(err error) error {
		for i := len(opened) - 1; i >= 0; i-- {
			opened[i].Close()
		}
		return err
	}

	for i, hop := range hops {
		backend, err := r.registry.Backend(hop.Scheme)
		if err != nil {
			return nil, fail(&HopError{Index: i, Scheme: hop.Scheme, Path: hop.Path, Err: err})
		}

		var rc io.ReadCloser
		if i == 0 {
			rc, err = backend.Open(ctx, hop.Path)
		} else {
			opener, ok := backend.(ContainerOpener)
			if !ok {
				return nil, fail(&HopError{
					Index:  i,
					Scheme: hop.Scheme,
					Path:   hop.Path,
					Err:    fmt.Errorf("%w: %q backend cannot open within a container", ErrNotSupported, hop.Scheme),
				})
			}
			rc, err = opener.OpenWithin(ctx, opened[i-1], hop.Path)
		}
		if err != nil {
			return nil, fail(&HopError{
				Index:  i,
				Scheme: hop.Scheme,
				Path:   hop.Path,
				Err:    fmt.Errorf("%w: %w", ErrHopNotFound, err),
			})
		}
		opened = append(opened, rc)
	}

	return &Stream{hops: hops, chain: opened}, nil
}

// ReadAll resolves a locator and reads the innermost stream fully into
// memory. Use for small files only.
func (r *Resolver) ReadAll(ctx context.Context, locator string) ([]byte, error) {
	stream, err := r.Open(ctx, locator)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	return io.ReadAll(stream)
}

// Stream is the open handle for a resolved locator. Reads come from the
// innermost hop; the Stream owns every stream in the chain and closes them
// all, innermost first, on Close. A Stream belongs to a single caller and is
// not safe for concurrent use.
type Stream struct {
	hops   []Hop
	chain  []io.ReadCloser // outermost first
	closed bool
}

// Read implements io.Reader against the innermost hop's stream.
func (s *Stream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return s.chain[len(s.chain)-1].Read(p)
}

// Close closes every stream in the chain, innermost first. Close is
// idempotent; the first error encountered is returned after all layers have
// been closed.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	for i := len(s.chain) - 1; i >= 0; i-- {
		if err := s.chain[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Hops returns a copy of the resolved hop chain, outermost first.
func (s *Stream) Hops() []Hop {
	hops := make([]Hop, len(s.hops))
	copy(hops, s.hops)
	return hops
}
