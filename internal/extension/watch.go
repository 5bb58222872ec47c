package extension

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch invalidates the memoized collection whenever the install manifest
// changes on disk, then calls onRefresh (which may be nil). It watches the
// manifest's parent directory so the file can be replaced atomically via
// rename. The returned stop function releases the watcher.
//
// Watching only makes sense when the registry reads the real filesystem;
// with an in-memory Fs there is nothing to observe.
func (r *Registry) Watch(onRefresh func()) (stop func() error, err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	manifestPath := r.paths.InstallManifest()
	if err := watcher.Add(filepath.Dir(manifestPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(manifestPath), err)
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != manifestPath {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				r.Refresh()
				if onRefresh != nil {
					onRefresh()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return watcher.Close, nil
}
