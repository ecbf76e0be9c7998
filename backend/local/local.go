// Package local implements a chainkit backend over a directory on the local
// filesystem. All paths are resolved relative to the backend's root and may
// not escape it.
package local

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobeaver/chainkit"
	"github.com/gobwas/glob"
)

// Adapter provides a local filesystem implementation of chainkit.Backend.
// It also implements chainkit.Writer, chainkit.Expander and chainkit.Watcher.
type Adapter struct {
	root string
}

// New creates a local backend rooted at the given directory, creating it if
// needed.
func New(root string) (*Adapter, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(absRoot, 0755); err != nil {
		return nil, err
	}

	return &Adapter{root: absRoot}, nil
}

// Root returns the absolute root directory the backend serves.
func (a *Adapter) Root() string {
	return a.root
}

// resolve maps a backend path onto the disk, refusing paths that would
// escape the root.
func (a *Adapter) resolve(op, path string) (string, error) {
	full := filepath.Join(a.root, filepath.Clean("/"+filepath.FromSlash(path)))
	if full != a.root && !strings.HasPrefix(full, a.root+string(filepath.Separator)) {
		return "", &chainkit.PathError{Op: op, Path: path, Err: chainkit.ErrNotAllowed}
	}
	return full, nil
}

// Open implements chainkit.Backend
func (a *Adapter) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	full, err := a.resolve("open", path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &chainkit.PathError{Op: "open", Path: path, Err: chainkit.ErrNotExist}
		}
		return nil, &chainkit.PathError{Op: "open", Path: path, Err: err}
	}
	return f, nil
}

// List implements chainkit.Backend
func (a *Adapter) List(ctx context.Context, path string) ([]chainkit.EntryInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	full, err := a.resolve("list", path)
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &chainkit.PathError{Op: "list", Path: path, Err: chainkit.ErrNotExist}
		}
		return nil, &chainkit.PathError{Op: "list", Path: path, Err: err}
	}

	entries := make([]chainkit.EntryInfo, 0, len(dirEntries))
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, chainkit.EntryInfo{
			Name:    de.Name(),
			Path:    joinSlash(path, de.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			IsDir:   de.IsDir(),
		})
	}
	return entries, nil
}

// Remove implements chainkit.Backend
func (a *Adapter) Remove(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	full, err := a.resolve("remove", path)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return &chainkit.PathError{Op: "remove", Path: path, Err: chainkit.ErrNotExist}
		}
		return &chainkit.PathError{Op: "remove", Path: path, Err: err}
	}
	return nil
}

// Write implements chainkit.Writer
func (a *Adapter) Write(ctx context.Context, path string, content io.Reader) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	full, err := a.resolve("write", path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return &chainkit.PathError{Op: "write", Path: path, Err: err}
	}

	f, err := os.Create(full)
	if err != nil {
		return &chainkit.PathError{Op: "write", Path: path, Err: err}
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return &chainkit.PathError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Expand implements chainkit.Expander. Matches are slash-separated paths
// relative to the root, in lexicographic order.
func (a *Adapter) Expand(ctx context.Context, pattern string) ([]string, error) {
	matcher, err := glob.Compile(strings.TrimPrefix(pattern, "/"), '/')
	if err != nil {
		return nil, &chainkit.PathError{Op: "expand", Path: pattern, Err: err}
	}

	var matches []string
	err = filepath.WalkDir(a.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(a.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if matcher.Match(rel) {
			matches = append(matches, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}

func joinSlash(dir, name string) string {
	dir = strings.Trim(dir, "/")
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
