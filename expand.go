package chainkit

import (
	"context"
	"fmt"
	"strings"
)

// wildcardChars are the characters that make a path a pattern rather than a
// concrete name, in the glob dialect the shipped backends use.
const wildcardChars = "*?[{"

// HasWildcard reports whether a path contains wildcard characters and should
// be expanded by the responsible backend before resolution.
func HasWildcard(path string) bool {
	return strings.ContainsAny(path, wildcardChars)
}

// Expand expands wildcard characters in a locator's innermost path into the
// concrete locators it matches, each resolvable on its own. The core never
// expands patterns itself: a single-hop pattern is delegated to the
// backend's Expander capability, and a nested pattern to the innermost
// backend's ContainerExpander, reading the container through the outer
// chain. Expanded locators follow the backend's ordering contract
// (lexicographic for the shipped backends).
//
// A locator without wildcard characters expands to itself:
//
//	r.Expand(ctx, "zip://*.png::local://archive.zip")
//	// → ["zip://a.png::local://archive.zip", "zip://b.png::local://archive.zip"]
func (r *Resolver) Expand(ctx context.Context, locator string) ([]string, error) {
	hops, err := ParseLocator(locator)
	if err != nil {
		return nil, err
	}

	inner := hops[len(hops)-1]
	if !HasWildcard(inner.Path) {
		return []string{locator}, nil
	}

	backend, err := r.registry.Backend(inner.Scheme)
	if err != nil {
		return nil, &HopError{Index: len(hops) - 1, Scheme: inner.Scheme, Path: inner.Path, Err: err}
	}

	var paths []string
	if len(hops) == 1 {
		expander, ok := backend.(Expander)
		if !ok {
			return nil, &LocatorError{
				Op:      "expand",
				Locator: locator,
				Err:     fmt.Errorf("%w: %q backend cannot expand patterns", ErrNotSupported, inner.Scheme),
			}
		}
		paths, err = expander.Expand(ctx, inner.Path)
	} else {
		expander, ok := backend.(ContainerExpander)
		if !ok {
			return nil, &LocatorError{
				Op:      "expand",
				Locator: locator,
				Err:     fmt.Errorf("%w: %q backend cannot expand patterns within a container", ErrNotSupported, inner.Scheme),
			}
		}

		var outer *Stream
		outer, err = r.openChain(ctx, hops[:len(hops)-1])
		if err != nil {
			return nil, err
		}
		defer outer.Close()

		paths, err = expander.ExpandWithin(ctx, outer, inner.Path)
	}
	if err != nil {
		return nil, err
	}

	// Rebuild a full locator per match, substituting the innermost path.
	locators := make([]string, 0, len(paths))
	expanded := make([]Hop, len(hops))
	copy(expanded, hops)
	for _, p := range paths {
		expanded[len(expanded)-1].Path = p
		locators = append(locators, FormatLocator(expanded))
	}

	return locators, nil
}
