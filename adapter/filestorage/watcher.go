package filestorage

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// DirWatcher is the per-directory change subscription the storage
// consumes. Implementations invoke onChange on any modification inside
// dir; the storage filters by mtime to decide whether the event
// reflects a real external change.
type DirWatcher interface {
	// Watch subscribes onChange to modifications of dir and returns a
	// stop function that cancels the subscription.
	Watch(dir string, onChange func()) (stop func(), err error)
}

// FSNotifyWatcher is the fsnotify-backed DirWatcher.
//
// It watches the directory rather than the file itself: atomic saves
// (write temp + rename) change the inode, and a watch pinned to the
// old inode would go quiet after the first replacement.
type FSNotifyWatcher struct{}

// Ensure FSNotifyWatcher implements DirWatcher.
var _ DirWatcher = (*FSNotifyWatcher)(nil)

// NewFSNotifyWatcher creates an fsnotify-backed directory watcher.
func NewFSNotifyWatcher() *FSNotifyWatcher {
	return &FSNotifyWatcher{}
}

// Watch subscribes onChange to all events under dir. Events are
// forwarded as-is on the watch goroutine; watcher errors are dropped.
func (w *FSNotifyWatcher) Watch(dir string, onChange func()) (stop func(), err error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("add %q: %w", dir, err)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case _, ok := <-fsw.Events:
				if !ok {
					return
				}
				onChange()
			case _, ok := <-fsw.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			_ = fsw.Close()
		})
	}, nil
}
