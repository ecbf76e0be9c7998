package chainkit

import (
	"context"
	"fmt"
)

// List returns the entries directly under a locator's innermost path. For a
// single-hop locator this is the backend's List; for a chained locator the
// innermost backend must implement ContainerLister, and the container is
// read through the outer chain.
func (r *Resolver) List(ctx context.Context, locator string) ([]EntryInfo, error) {
	hops, err := ParseLocator(locator)
	if err != nil {
		return nil, err
	}

	inner := hops[len(hops)-1]

	if len(hops) == 1 {
		backend, err := r.registry.Backend(inner.Scheme)
		if err != nil {
			return nil, &HopError{Index: 0, Scheme: inner.Scheme, Path: inner.Path, Err: err}
		}
		return backend.List(ctx, inner.Path)
	}

	backend, err := r.registry.Backend(inner.Scheme)
	if err != nil {
		return nil, &HopError{Index: len(hops) - 1, Scheme: inner.Scheme, Path: inner.Path, Err: err}
	}
	lister, ok := backend.(ContainerLister)
	if !ok {
		return nil, &HopError{
			Index:  len(hops) - 1,
			Scheme: inner.Scheme,
			Path:   inner.Path,
			Err:    fmt.Errorf("%w: %q backend cannot list within a container", ErrNotSupported, inner.Scheme),
		}
	}

	outer, err := r.openChain(ctx, hops[:len(hops)-1])
	if err != nil {
		return nil, err
	}
	defer outer.Close()

	return lister.ListWithin(ctx, outer, inner.Path)
}

// Remove deletes the resource a single-hop locator points at. Removing an
// entry nested inside a container is not supported: containers are read
// through a byte stream and never rewritten in place.
func (r *Resolver) Remove(ctx context.Context, locator string) error {
	hops, err := ParseLocator(locator)
	if err != nil {
		return err
	}
	if len(hops) > 1 {
		return &LocatorError{
			Op:      "remove",
			Locator: locator,
			Err:     fmt.Errorf("%w: cannot remove inside a container", ErrNotSupported),
		}
	}

	backend, err := r.registry.Backend(hops[0].Scheme)
	if err != nil {
		return &HopError{Index: 0, Scheme: hops[0].Scheme, Path: hops[0].Path, Err: err}
	}
	return backend.Remove(ctx, hops[0].Path)
}

// Copy resolves the source locator and writes its bytes to the destination.
// The destination must be a single-hop locator whose backend implements
// Writer. Source and destination may use different backends, which is how a
// file nested in a remote archive lands on local disk:
//
//	r.Copy(ctx, "zip://inner.png::s3://bucket/archive.zip", "local://inner.png")
func (r *Resolver) Copy(ctx context.Context, src, dst string) error {
	dstHops, err := ParseLocator(dst)
	if err != nil {
		return err
	}
	if len(dstHops) > 1 {
		return &LocatorError{
			Op:      "copy",
			Locator: dst,
			Err:     fmt.Errorf("%w: cannot write inside a container", ErrNotSupported),
		}
	}

	backend, err := r.registry.Backend(dstHops[0].Scheme)
	if err != nil {
		return &HopError{Index: 0, Scheme: dstHops[0].Scheme, Path: dstHops[0].Path, Err: err}
	}
	writer, ok := backend.(Writer)
	if !ok {
		return &LocatorError{
			Op:      "copy",
			Locator: dst,
			Err:     fmt.Errorf("%w: %q backend is not writable", ErrNotSupported, dstHops[0].Scheme),
		}
	}

	stream, err := r.Open(ctx, src)
	if err != nil {
		return err
	}
	defer stream.Close()

	return writer.Write(ctx, dstHops[0].Path, stream)
}
