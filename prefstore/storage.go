package prefstore

import (
	"bytes"
	"sync"
)

// OverwritesStorage is where the persisted overwrites blob lives.
//
// The store is the single writer: it guarantees at most one Write call
// runs at a time. Read may race with Write; file-backed
// implementations handle that with atomic rename.
type OverwritesStorage interface {
	// Read returns the current serialized overwrites blob. An error
	// signals "read failed, use an empty overlay".
	Read() ([]byte, error)

	// Write persists blob. Durability guarantees match an atomic
	// write-temp-then-rename.
	Write(blob []byte) error

	// SetExternalChangeCallback registers the single-slot callback
	// invoked when the backing store changed outside of Write.
	SetExternalChangeCallback(callback func())
}

// MemoryStorage is an in-process OverwritesStorage, used in tests and
// for configurations that should not persist.
type MemoryStorage struct {
	mu       sync.Mutex
	data     []byte
	onChange func()
}

// Ensure MemoryStorage implements OverwritesStorage.
var _ OverwritesStorage = (*MemoryStorage)(nil)

// NewMemoryStorage creates an in-memory storage seeded with initial.
func NewMemoryStorage(initial string) *MemoryStorage {
	return &MemoryStorage{data: []byte(initial)}
}

// Read returns the currently stored blob.
func (s *MemoryStorage) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bytes.Clone(s.data), nil
}

// Write replaces the stored blob.
func (s *MemoryStorage) Write(blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = bytes.Clone(blob)
	return nil
}

// SetExternalChangeCallback registers the change callback.
func (s *MemoryStorage) SetExternalChangeCallback(callback func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = callback
}

// ExternalWrite behaves like a modification made behind the store's
// back: it replaces the blob and invokes the change callback, but only
// when the content actually changed.
func (s *MemoryStorage) ExternalWrite(blob []byte) {
	s.mu.Lock()
	if bytes.Equal(s.data, blob) {
		s.mu.Unlock()
		return
	}
	s.data = bytes.Clone(blob)
	callback := s.onChange
	s.mu.Unlock()

	if callback != nil {
		callback()
	}
}
