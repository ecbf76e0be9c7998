package chainkit

import (
	"context"
	"io"
	"time"
)

// EntryInfo describes one entry returned by a backend listing.
type EntryInfo struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Backend provides access to resources for one scheme. Backends are
// registered in a Registry under their scheme name; the resolver selects
// them per hop.
//
// A backend that can only operate inside another backend's stream (archive
// readers, decompressors) returns ErrNotSupported from these methods and
// implements ContainerOpener instead.
type Backend interface {
	// Open returns a stream for reading the resource at path.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// List returns the entries directly under path.
	List(ctx context.Context, path string) ([]EntryInfo, error)

	// Remove deletes the resource at path.
	Remove(ctx context.Context, path string) error
}

// ============================================================================
// Optional Capability Interfaces
// ============================================================================
// Backends expose extra capabilities through these interfaces. The resolver
// and the locator-level helpers check for them with type assertions:
//
//	if co, ok := b.(ContainerOpener); ok {
//	    rc, err := co.OpenWithin(ctx, outer, path)
//	}

// ContainerOpener indicates the backend can open a path nested inside
// another backend's byte stream. Every backend serving a non-outermost hop
// must implement it: the resolver hands it the previous hop's stream instead
// of letting it fetch the resource itself.
type ContainerOpener interface {
	OpenWithin(ctx context.Context, outer io.Reader, path string) (io.ReadCloser, error)
}

// ContainerLister indicates the backend can list entries of a container read
// from another backend's stream.
type ContainerLister interface {
	ListWithin(ctx context.Context, outer io.Reader, path string) ([]EntryInfo, error)
}

// ContainerExpander indicates the backend can expand a wildcard pattern
// against a container read from another backend's stream. Expanded paths are
// returned in lexicographic order.
type ContainerExpander interface {
	ExpandWithin(ctx context.Context, outer io.Reader, pattern string) ([]string, error)
}

// Writer indicates the backend supports writing, which makes it a valid
// copy destination.
type Writer interface {
	Write(ctx context.Context, path string, r io.Reader) error
}

// Expander indicates the backend can expand a wildcard pattern into the
// concrete paths it matches, in lexicographic order. The resolver core never
// expands patterns itself; it delegates to this capability.
type Expander interface {
	Expand(ctx context.Context, pattern string) ([]string, error)
}

// Watcher indicates the backend supports change notifications for paths
// matching a glob pattern.
type Watcher interface {
	Watch(ctx context.Context, pattern string) (ChangeToken, error)
}
