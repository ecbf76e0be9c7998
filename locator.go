package chainkit

import (
	"fmt"
	"strings"
)

const (
	// ChainSeparator joins the segments of a chained locator,
	// innermost level first.
	ChainSeparator = "::"

	// SchemeSeparator splits a segment into its scheme and path.
	SchemeSeparator = "://"
)

// Hop is one level of container nesting extracted from a locator: the scheme
// selecting a backend and the path that backend should open. Hops are built
// once at parse time and never mutated.
type Hop struct {
	Scheme string
	Path   string
}

// String returns the hop in scheme://path form.
func (h Hop) String() string {
	return h.Scheme + SchemeSeparator + h.Path
}

// ParseLocator splits a chained locator into hops ordered outermost first.
// The rightmost segment of the locator is the outermost, physically
// reachable resource, so hops[0] corresponds to the end of the string.
//
// Every segment must carry a scheme://path form with a non-empty scheme; the
// path may be empty (decompression hops address the whole stream). No
// percent-decoding or wildcard expansion happens here: patterns like "*.png"
// pass through verbatim for the responsible backend to expand.
func ParseLocator(locator string) ([]Hop, error) {
	if locator == "" {
		return nil, &LocatorError{
			Op:      "parse",
			Locator: locator,
			Err:     fmt.Errorf("%w: empty string", ErrMalformedLocator),
		}
	}

	segments := strings.Split(locator, ChainSeparator)
	hops := make([]Hop, 0, len(segments))

	// Walk right to left so hops come out outermost first.
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		sep := strings.Index(seg, SchemeSeparator)
		if sep <= 0 {
			return nil, &LocatorError{
				Op:      "parse",
				Locator: locator,
				Err:     fmt.Errorf("%w: segment %q lacks a scheme", ErrMalformedLocator, seg),
			}
		}
		hops = append(hops, Hop{
			Scheme: seg[:sep],
			Path:   seg[sep+len(SchemeSeparator):],
		})
	}

	return hops, nil
}

// FormatLocator joins hops (ordered outermost first, as returned by
// ParseLocator) back into the chained string form. FormatLocator is the
// inverse of ParseLocator for every well-formed locator.
func FormatLocator(hops []Hop) string {
	segments := make([]string, 0, len(hops))
	for i := len(hops) - 1; i >= 0; i-- {
		segments = append(segments, hops[i].String())
	}
	return strings.Join(segments, ChainSeparator)
}
