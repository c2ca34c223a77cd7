package filestorage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	atomicfile "github.com/natefinch/atomic"

	"github.com/mapoio/prefstore/prefstore"
)

// Options configures a Storage.
type Options struct {
	// Path is the overwrites file location. Its parent directory must
	// exist; the file itself may not yet.
	Path string

	// Watcher supplies directory change events. Defaults to an
	// fsnotify-backed watcher.
	Watcher DirWatcher

	// Logger receives watcher diagnostics. Defaults to a no-op logger.
	Logger prefstore.Logger
}

// Storage is a file-backed prefstore.OverwritesStorage.
//
// Writes go through a temporary file renamed over the destination, so
// concurrent readers never observe a torn blob. External edits are
// detected through a directory watcher; the mtime recorded after each
// internal write filters out the watcher echo of our own rename.
//
// Write is not safe against concurrent Write calls; the store
// guarantees single-threaded write scheduling.
type Storage struct {
	path     string
	log      prefstore.Logger
	modTime  atomic.Int64 // unix nanos of the last observed or written mtime
	mu       sync.Mutex
	onChange func()
	stop     func()
}

// Ensure Storage implements prefstore.OverwritesStorage.
var _ prefstore.OverwritesStorage = (*Storage)(nil)

// New creates a file-backed storage and starts watching the file's
// directory for external changes.
func New(opts Options) (*Storage, error) {
	if opts.Path == "" {
		return nil, errors.New("filestorage: path is empty")
	}
	watcher := opts.Watcher
	if watcher == nil {
		watcher = NewFSNotifyWatcher()
	}
	log := opts.Logger
	if log == nil {
		log = prefstore.NewNoOpLogger()
	}

	s := &Storage{
		path: opts.Path,
		log:  log,
	}
	if info, err := os.Stat(opts.Path); err == nil {
		s.modTime.Store(info.ModTime().UnixNano())
	}

	stop, err := watcher.Watch(filepath.Dir(opts.Path), s.dirChanged)
	if err != nil {
		return nil, fmt.Errorf("filestorage: watch %q: %w", filepath.Dir(opts.Path), err)
	}
	s.stop = stop

	return s, nil
}

// Read returns the current overwrites blob. A missing file is an
// empty overlay, not a failure.
func (s *Storage) Read() ([]byte, error) {
	blob, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("filestorage: read %q: %w", s.path, err)
	}
	return blob, nil
}

// Write atomically replaces the overwrites file: the blob lands in a
// temporary file next to the destination which is then renamed over
// it. The resulting mtime is recorded so the watcher event triggered
// by our own rename does not surface as an external change.
func (s *Storage) Write(blob []byte) error {
	if err := atomicfile.WriteFile(s.path, bytes.NewReader(blob)); err != nil {
		return fmt.Errorf("filestorage: write %q: %w", s.path, err)
	}
	if info, err := os.Stat(s.path); err == nil {
		s.modTime.Store(info.ModTime().UnixNano())
	}
	return nil
}

// SetExternalChangeCallback registers the single-slot callback for
// external modifications.
func (s *Storage) SetExternalChangeCallback(callback func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = callback
}

// Close stops the directory watcher. The storage keeps serving Read
// and Write afterwards; only change notification ends.
func (s *Storage) Close() {
	if s.stop != nil {
		s.stop()
	}
}

// dirChanged handles a directory event: the callback fires only when
// the target file's mtime moved past the one recorded by the last
// internal write, which suppresses the echo of our own renames.
func (s *Storage) dirChanged() {
	info, err := os.Stat(s.path)
	if err != nil {
		// The overwrites file is gone or unreadable; nothing to surface.
		return
	}
	mt := info.ModTime().UnixNano()
	if mt <= s.modTime.Load() {
		return
	}
	s.modTime.Store(mt)

	s.mu.Lock()
	callback := s.onChange
	s.mu.Unlock()

	if callback != nil {
		callback()
	}
}
