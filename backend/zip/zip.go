// Package zip implements a chainkit container backend for ZIP archives. It
// reads the archive from the previous hop's stream, so the archive itself
// can live on any backend: local disk, memory, S3 or behind another hop.
//
// ZIP needs random access to its central directory, so the outer stream is
// buffered in memory before parsing. Keep archives reasonably sized or stage
// them locally first.
package zip

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"sort"
	"strings"

	"github.com/gobeaver/chainkit"
	"github.com/gobwas/glob"
)

// Adapter provides a ZIP archive implementation of the chainkit container
// capabilities. It is stateless; every call parses the archive from the
// outer stream it is handed.
//
// Direct Open/List/Remove are unsupported: address the archive itself with
// an outer hop, e.g. "zip://inner.png::local://archive.zip".
type Adapter struct{}

// New creates a new ZIP container backend
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

// OpenWithin implements chainkit.ContainerOpener. It parses the archive from
// the outer stream and returns a reader for the named entry.
func (a *Adapter) OpenWithin(ctx context.Context, outer io.Reader, path string) (io.ReadCloser, error) {
	reader, err := a.load(ctx, outer, "open", path)
	if err != nil {
		return nil, err
	}

	name := normalizeName(path)
	for _, f := range reader.File {
		if normalizeName(f.Name) != name || f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, &chainkit.PathError{Op: "open", Path: path, Err: err}
		}
		return rc, nil
	}

	return nil, &chainkit.PathError{Op: "open", Path: path, Err: chainkit.ErrNotExist}
}

// ListWithin implements chainkit.ContainerLister. It returns the entries
// directly under path inside the archive; path "" lists the archive root.
func (a *Adapter) ListWithin(ctx context.Context, outer io.Reader, path string) ([]chainkit.EntryInfo, error) {
	reader, err := a.load(ctx, outer, "list", path)
	if err != nil {
		return nil, err
	}

	prefix := normalizeName(path)
	if prefix != "" {
		prefix += "/"
	}

	var entries []chainkit.EntryInfo
	seenDirs := make(map[string]bool)

	for _, f := range reader.File {
		name := normalizeName(f.Name)
		if name == "" || !strings.HasPrefix(name, prefix) {
			continue
		}
		rest := name[len(prefix):]
		if idx := strings.Index(rest, "/"); idx >= 0 {
			dir := rest[:idx]
			if !seenDirs[dir] {
				seenDirs[dir] = true
				entries = append(entries, chainkit.EntryInfo{
					Name:  dir,
					Path:  prefix + dir,
					IsDir: true,
				})
			}
			continue
		}
		if f.FileInfo().IsDir() {
			if !seenDirs[rest] {
				seenDirs[rest] = true
				entries = append(entries, chainkit.EntryInfo{Name: rest, Path: name, IsDir: true})
			}
			continue
		}
		entries = append(entries, chainkit.EntryInfo{
			Name:    rest,
			Path:    name,
			Size:    f.FileInfo().Size(),
			ModTime: f.Modified,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// ExpandWithin implements chainkit.ContainerExpander. Matching entry names
// are returned in lexicographic order.
func (a *Adapter) ExpandWithin(ctx context.Context, outer io.Reader, pattern string) ([]string, error) {
	reader, err := a.load(ctx, outer, "expand", pattern)
	if err != nil {
		return nil, err
	}

	matcher, err := glob.Compile(normalizeName(pattern), '/')
	if err != nil {
		return nil, &chainkit.PathError{Op: "expand", Path: pattern, Err: err}
	}

	var matches []string
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := normalizeName(f.Name)
		if matcher.Match(name) {
			matches = append(matches, name)
		}
	}

	sort.Strings(matches)
	return matches, nil
}

// load buffers the outer stream and parses the archive's central directory.
func (a *Adapter) load(ctx context.Context, outer io.Reader, op, path string) (*zip.Reader, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := io.ReadAll(outer)
	if err != nil {
		return nil, &chainkit.PathError{Op: op, Path: path, Err: err}
	}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &chainkit.PathError{Op: op, Path: path, Err: err}
	}
	return reader, nil
}

func normalizeName(name string) string {
	return strings.Trim(name, "/")
}
