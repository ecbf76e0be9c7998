package chainkit

import (
	"errors"
	"fmt"
)

// Common resolution errors
var (
	ErrMalformedLocator = errors.New("malformed locator")
	ErrUnknownScheme    = errors.New("unknown scheme")
	ErrHopNotFound      = errors.New("hop not found")
	ErrNotExist         = errors.New("file does not exist")
	ErrClosed           = errors.New("stream already closed")
	ErrNotSupported     = errors.New("operation not supported")
	ErrNotAllowed       = errors.New("operation not allowed")
	ErrNoSpace          = errors.New("no space left in store")
	ErrEmptyScheme      = errors.New("scheme cannot be empty")
	ErrNilBackend       = errors.New("backend cannot be nil")
)

// PathError records an error and the backend operation and path that caused
// it. Backends wrap their failures in PathError so callers can tell the
// operation apart from the cause.
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

// LocatorError records an error concerning a locator as a whole, before any
// hop was opened (parsing, unsupported operation shapes).
type LocatorError struct {
	Op      string
	Locator string
	Err     error
}

// Error implements the error interface
func (e *LocatorError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Locator, e.Err)
}

// Unwrap returns the underlying error
func (e *LocatorError) Unwrap() error {
	return e.Err
}

// HopError records a failure at one hop of a chain resolution. Index is the
// position of the failing hop, outermost first, so callers can tell which
// nesting level broke.
type HopError struct {
	Index  int
	Scheme string
	Path   string
	Err    error
}

// Error implements the error interface
func (e *HopError) Error() string {
	return fmt.Sprintf("hop %d (%s%s%s): %v", e.Index, e.Scheme, SchemeSeparator, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *HopError) Unwrap() error {
	return e.Err
}

// IsMalformed reports whether an error indicates a locator that violates the
// scheme://path grammar.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedLocator)
}

// IsUnknownScheme reports whether an error indicates a scheme with no
// registered backend.
func IsUnknownScheme(err error) bool {
	return errors.Is(err, ErrUnknownScheme)
}

// IsHopNotFound reports whether an error indicates that a backend could not
// locate the requested path within its hop.
func IsHopNotFound(err error) bool {
	return errors.Is(err, ErrHopNotFound)
}

// IsNotExist reports whether an error indicates that a file or entry does
// not exist.
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

// IsNotSupported reports whether an error indicates an operation the backend
// does not support.
func IsNotSupported(err error) bool {
	return errors.Is(err, ErrNotSupported)
}
