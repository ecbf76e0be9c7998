// Package tar implements a chainkit container backend for tar archives. Tar
// is a sequential format, so unlike the zip backend it streams through the
// outer hop without buffering the whole archive: an entry near the front of
// a large archive costs only the bytes up to it.
package tar

import (
	"archive/tar"
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/gobeaver/chainkit"
	"github.com/gobwas/glob"
)

// Adapter provides a tar archive implementation of the chainkit container
// capabilities. Direct Open/List/Remove are unsupported: address the archive
// with an outer hop, e.g. "tar://a.txt::gzip://::local://a.tar.gz".
type Adapter struct{}

// New creates a new tar container backend
func New() *Adapter {
	return &Adapter{}
}

// Open implements chainkit.Backend
func (a *Adapter) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return nil, &chainkit.PathError{Op: "open", Path: path, Err: chainkit.ErrNotSupported}
}

// List implements chainkit.Backend
func (a *Adapter) List(ctx context.Context, path string) ([]chainkit.EntryInfo, error) {
	return nil, &chainkit.PathError{Op: "list", Path: path, Err: chainkit.ErrNotSupported}
}

// Remove implements chainkit.Backend
func (a *Adapter) Remove(ctx context.Context, path string) error {
	return &chainkit.PathError{Op: "remove", Path: path, Err: chainkit.ErrNotSupported}
}

// OpenWithin implements chainkit.ContainerOpener. It scans the archive until
// it reaches the named entry; the returned reader yields that entry's bytes
// and depends on the outer stream staying open until it is drained.
func (a *Adapter) OpenWithin(ctx context.Context, outer io.Reader, path string) (io.ReadCloser, error) {
	name := normalizeName(path)
	tr := tar.NewReader(outer)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, &chainkit.PathError{Op: "open", Path: path, Err: chainkit.ErrNotExist}
		}
		if err != nil {
			return nil, &chainkit.PathError{Op: "open", Path: path, Err: err}
		}
		if header.Typeflag != tar.TypeReg || normalizeName(header.Name) != name {
			continue
		}
		return io.NopCloser(tr), nil
	}
}

// ListWithin implements chainkit.ContainerLister. It returns the entries
// directly under path; path "" lists the archive root.
func (a *Adapter) ListWithin(ctx context.Context, outer io.Reader, path string) ([]chainkit.EntryInfo, error) {
	prefix := normalizeName(path)
	if prefix != "" {
		prefix += "/"
	}

	var entries []chainkit.EntryInfo
	seenDirs := make(map[string]bool)

	err := a.scan(ctx, outer, path, "list", func(header *tar.Header) {
		name := normalizeName(header.Name)
		if name == "" || !strings.HasPrefix(name, prefix) {
			return
		}
		rest := name[len(prefix):]
		if idx := strings.Index(rest, "/"); idx >= 0 {
			dir := rest[:idx]
			if !seenDirs[dir] {
				seenDirs[dir] = true
				entries = append(entries, chainkit.EntryInfo{Name: dir, Path: prefix + dir, IsDir: true})
			}
			return
		}
		if header.Typeflag == tar.TypeDir {
			if !seenDirs[rest] {
				seenDirs[rest] = true
				entries = append(entries, chainkit.EntryInfo{Name: rest, Path: name, IsDir: true})
			}
			return
		}
		if header.Typeflag != tar.TypeReg {
			return
		}
		entries = append(entries, chainkit.EntryInfo{
			Name:    rest,
			Path:    name,
			Size:    header.Size,
			ModTime: header.ModTime,
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// ExpandWithin implements chainkit.ContainerExpander. Matching entry names
// are returned in lexicographic order.
func (a *Adapter) ExpandWithin(ctx context.Context, outer io.Reader, pattern string) ([]string, error) {
	matcher, err := glob.Compile(normalizeName(pattern), '/')
	if err != nil {
		return nil, &chainkit.PathError{Op: "expand", Path: pattern, Err: err}
	}

	var matches []string
	err = a.scan(ctx, outer, pattern, "expand", func(header *tar.Header) {
		if header.Typeflag != tar.TypeReg {
			return
		}
		name := normalizeName(header.Name)
		if matcher.Match(name) {
			matches = append(matches, name)
		}
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}

// scan walks every header in the archive, invoking visit for each.
func (a *Adapter) scan(ctx context.Context, outer io.Reader, path, op string, visit func(*tar.Header)) error {
	tr := tar.NewReader(outer)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &chainkit.PathError{Op: op, Path: path, Err: err}
		}
		visit(header)
	}
}

func normalizeName(name string) string {
	return strings.Trim(strings.TrimPrefix(name, "./"), "/")
}
