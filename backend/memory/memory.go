// Package memory implements an in-memory chainkit backend. Useful for tests
// and for staging fixture containers without touching disk.
package memory

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gobeaver/chainkit"
	"github.com/gobwas/glob"
)

// memoryFile represents a file stored in memory
type memoryFile struct {
	content []byte
	modTime time.Time
}

// watchEntry represents a single watch subscription
type watchEntry struct {
	matcher glob.Glob
	token   *chainkit.CallbackChangeToken
}

// Adapter provides an in-memory implementation of chainkit.Backend. It also
// implements chainkit.Writer, chainkit.Expander and chainkit.Watcher.
type Adapter struct {
	mu      sync.RWMutex
	files   map[string]*memoryFile
	maxSize int64 // Maximum total storage size (0 = unlimited)
	size    int64 // Current total size

	watchMu sync.RWMutex
	watches []*watchEntry
}

// Config holds configuration for the memory adapter
type Config struct {
	// MaxSize is the maximum total storage size in bytes (0 = unlimited)
	MaxSize int64
}

// New creates a new in-memory backend
func New(cfg ...Config) *Adapter {
	var maxSize int64
	if len(cfg) > 0 {
		maxSize = cfg[0].MaxSize
	}

	return &Adapter{
		files:   make(map[string]*memoryFile),
		maxSize: maxSize,
	}
}

func normalizePath(path string) string {
	return strings.Trim(path, "/")
}

// Open implements chainkit.Backend
func (a *Adapter) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	path = normalizePath(path)

	a.mu.RLock()
	file, exists := a.files[path]
	a.mu.RUnlock()

	if !exists {
		return nil, &chainkit.PathError{Op: "open", Path: path, Err: chainkit.ErrNotExist}
	}

	// Copy so later writes don't race the reader.
	content := make([]byte, len(file.content))
	copy(content, file.content)

	return io.NopCloser(bytes.NewReader(content)), nil
}

// List implements chainkit.Backend
func (a *Adapter) List(ctx context.Context, path string) ([]chainkit.EntryInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	prefix := normalizePath(path)
	if prefix != "" {
		prefix += "/"
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	var entries []chainkit.EntryInfo
	seenDirs := make(map[string]bool)

	for p, f := range a.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := p[len(prefix):]
		if idx := strings.Index(rest, "/"); idx >= 0 {
			// Descendant of a subdirectory: report the subdirectory once.
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
		entries = append(entries, chainkit.EntryInfo{
			Name:    rest,
			Path:    p,
			Size:    int64(len(f.content)),
			ModTime: f.modTime,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// Remove implements chainkit.Backend
func (a *Adapter) Remove(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path = normalizePath(path)

	a.mu.Lock()
	file, exists := a.files[path]
	if exists {
		a.size -= int64(len(file.content))
		delete(a.files, path)
	}
	a.mu.Unlock()

	if !exists {
		return &chainkit.PathError{Op: "remove", Path: path, Err: chainkit.ErrNotExist}
	}

	a.notifyChange(path)
	return nil
}

// Write implements chainkit.Writer
func (a *Adapter) Write(ctx context.Context, path string, content io.Reader) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	path = normalizePath(path)

	data, err := io.ReadAll(content)
	if err != nil {
		return &chainkit.PathError{Op: "write", Path: path, Err: err}
	}

	a.mu.Lock()
	newSize := a.size + int64(len(data))
	if existing, exists := a.files[path]; exists {
		newSize -= int64(len(existing.content))
	}
	if a.maxSize > 0 && newSize > a.maxSize {
		a.mu.Unlock()
		return &chainkit.PathError{Op: "write", Path: path, Err: chainkit.ErrNoSpace}
	}
	a.files[path] = &memoryFile{content: data, modTime: time.Now()}
	a.size = newSize
	a.mu.Unlock()

	a.notifyChange(path)
	return nil
}

// Expand implements chainkit.Expander. Matches are returned in lexicographic
// order.
func (a *Adapter) Expand(ctx context.Context, pattern string) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	matcher, err := glob.Compile(normalizePath(pattern), '/')
	if err != nil {
		return nil, &chainkit.PathError{Op: "expand", Path: pattern, Err: err}
	}

	a.mu.RLock()
	var matches []string
	for p := range a.files {
		if matcher.Match(p) {
			matches = append(matches, p)
		}
	}
	a.mu.RUnlock()

	sort.Strings(matches)
	return matches, nil
}

// Watch implements chainkit.Watcher. The token signals on the first write or
// removal of a path matching the pattern.
func (a *Adapter) Watch(ctx context.Context, pattern string) (chainkit.ChangeToken, error) {
	matcher, err := glob.Compile(normalizePath(pattern), '/')
	if err != nil {
		return nil, &chainkit.PathError{Op: "watch", Path: pattern, Err: err}
	}

	token := chainkit.NewCallbackChangeToken()

	a.watchMu.Lock()
	a.watches = append(a.watches, &watchEntry{matcher: matcher, token: token})
	a.watchMu.Unlock()

	return token, nil
}

func (a *Adapter) notifyChange(path string) {
	a.watchMu.RLock()
	watches := make([]*watchEntry, len(a.watches))
	copy(watches, a.watches)
	a.watchMu.RUnlock()

	for _, w := range watches {
		if w.matcher.Match(path) {
			w.token.SignalChange()
		}
	}
}
