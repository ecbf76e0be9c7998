package local

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/gobeaver/chainkit"

	"github.com/gobwas/glob"
)

// Watch implements chainkit.Watcher. The returned token signals once when a
// file matching the pattern (slash-separated, relative to the root) is
// created, modified or deleted. The watch goroutine exits after the first
// signal or when ctx is done.
func (a *Adapter) Watch(ctx context.Context, pattern string) (chainkit.ChangeToken, error) {
	matcher, err := glob.Compile(strings.TrimPrefix(pattern, "/"), '/')
	if err != nil {
		return nil, &chainkit.PathError{Op: "watch", Path: pattern, Err: err}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the root and every existing subdirectory; fsnotify does not
	// recurse on its own.
	err = filepath.WalkDir(a.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, err
	}

	token := chainkit.NewCallbackChangeToken()

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				rel, err := filepath.Rel(a.root, event.Name)
				if err != nil {
					continue
				}
				rel = filepath.ToSlash(rel)
				if matcher.Match(rel) {
					token.SignalChange()
					return
				}
				// Created directories need their own watch.
				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						watcher.Add(event.Name)
					}
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return token, nil
}
