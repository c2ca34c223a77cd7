package prefstore

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrInvalidDefaults indicates the defaults document handed to New
// could not be parsed. It is the only error the store surfaces;
// everything later (broken overlays, bad paths, failed writes) is
// swallowed so readers always see a sane value.
var ErrInvalidDefaults = errors.New("prefstore: invalid defaults document")

// Options configures a Store.
type Options struct {
	// Defaults is the JSON text of the compile-time defaults document.
	// Comments and trailing commas are tolerated. Empty text means an
	// empty document.
	Defaults string

	// Storage holds the persisted overwrites overlay. Defaults to a
	// fresh in-memory storage.
	Storage OverwritesStorage

	// WriteExecutor coalesces overwrites dumps. Defaults to an
	// immediate (synchronous) executor.
	WriteExecutor Executor

	// ReloadExecutor coalesces reloads after external changes.
	// Defaults to an immediate (synchronous) executor.
	ReloadExecutor Executor

	// Logger receives diagnostics for swallowed failures. Defaults to
	// a no-op logger.
	Logger Logger
}

// Store is the layered configuration engine: an immutable defaults
// tree plus a mutable effective document, queryable by dotted paths,
// observable for change, and persisted as a diff-against-defaults
// overlay through an OverwritesStorage.
//
// All methods are safe for concurrent use.
type Store struct {
	defaults Value // never mutated after New

	docMu sync.RWMutex
	doc   Value

	registry *observerRegistry

	writeScheduled atomic.Bool
	readScheduled  atomic.Bool

	storage    OverwritesStorage
	writeExec  Executor
	reloadExec Executor
	log        Logger
}

// Ensure Store implements Config.
var _ Config = (*Store)(nil)

// New creates a Store from the given options.
//
// The defaults text is parsed once; a parse failure is the one loud
// error ([ErrInvalidDefaults]). The effective document starts as a
// copy of defaults with the storage's overwrites overlay merged on
// top; an unreadable or unparseable overlay is logged and ignored.
// New also registers for external storage changes, which schedule a
// reload through the reload executor.
func New(opts Options) (*Store, error) {
	defaults, err := parseDocument([]byte(opts.Defaults))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDefaults, err)
	}
	// An empty defaults text still yields a usable, settable document.
	if defaults.IsNull() {
		defaults = ObjectValue()
	}

	s := &Store{
		defaults:   defaults,
		doc:        defaults.Clone(),
		registry:   newObserverRegistry(),
		storage:    opts.Storage,
		writeExec:  opts.WriteExecutor,
		reloadExec: opts.ReloadExecutor,
		log:        opts.Logger,
	}
	if s.storage == nil {
		s.storage = NewMemoryStorage("")
	}
	if s.writeExec == nil {
		s.writeExec = NewImmediateExecutor()
	}
	if s.reloadExec == nil {
		s.reloadExec = NewImmediateExecutor()
	}
	if s.log == nil {
		s.log = NewNoOpLogger()
	}

	if blob, readErr := s.storage.Read(); readErr != nil {
		s.log.Warn("failed to read overwrites, using defaults only", "error", readErr)
	} else if overlay, parseErr := parseDocument(blob); parseErr != nil {
		s.log.Warn("ignoring broken overwrites", "error", parseErr)
	} else {
		mergeOverlay(&s.doc, overlay)
	}

	s.storage.SetExternalChangeCallback(s.scheduleReload)

	return s, nil
}

// Has reports whether the effective document contains a value at path.
func (s *Store) Has(path string) bool {
	segments, ok := splitPath(path)
	if !ok {
		return false
	}
	s.docMu.RLock()
	defer s.docMu.RUnlock()
	return s.doc.lookup(segments) != nil
}

// Get returns a deep copy of the value at path, or null.
func (s *Store) Get(path string) Value {
	segments, ok := splitPath(path)
	if !ok {
		return Null()
	}
	s.docMu.RLock()
	defer s.docMu.RUnlock()
	if v := s.doc.lookup(segments); v != nil {
		return v.Clone()
	}
	return Null()
}

// GetDefault returns a deep copy of the defaults value at path, or
// null. Defaults are immutable, so no locking is involved.
func (s *Store) GetDefault(path string) Value {
	segments, ok := splitPath(path)
	if !ok {
		return Null()
	}
	if v := s.defaults.lookup(segments); v != nil {
		return v.Clone()
	}
	return Null()
}

// GetString returns the string at path, or "".
func (s *Store) GetString(path string) string {
	return getScalar(s, path, Value.Str)
}

// GetBool returns the boolean at path, or false.
func (s *Store) GetBool(path string) bool {
	return getScalar(s, path, Value.Bool)
}

// GetInt returns the number at path truncated toward zero, or 0.
func (s *Store) GetInt(path string) int {
	return int(getScalar(s, path, Value.asInt64))
}

// GetUint returns the number at path as an unsigned value, or 0.
func (s *Store) GetUint(path string) uint {
	return uint(getScalar(s, path, Value.asUint64))
}

// GetInt64 returns the number at path truncated toward zero, or 0.
func (s *Store) GetInt64(path string) int64 {
	return getScalar(s, path, Value.asInt64)
}

// GetUint64 returns the number at path as an unsigned value, or 0.
func (s *Store) GetUint64(path string) uint64 {
	return getScalar(s, path, Value.asUint64)
}

// GetFloat64 returns the number at path, or 0.
func (s *Store) GetFloat64(path string) float64 {
	return getScalar(s, path, Value.asFloat64)
}

// getScalar resolves path under the shared read lock and extracts a
// scalar through extract, yielding the type's zero value on any miss.
func getScalar[T any](s *Store, path string, extract func(Value) T) T {
	var zero T
	segments, ok := splitPath(path)
	if !ok {
		return zero
	}
	s.docMu.RLock()
	defer s.docMu.RUnlock()
	v := s.doc.lookup(segments)
	if v == nil {
		return zero
	}
	return extract(*v)
}

// SetValue writes value at path.
//
// The write descends pre-existing objects only: when an intermediate
// segment is missing or not an object the call is silently dropped.
// The leaf itself may be inserted. Writing a value structurally equal
// to the current one neither marks the store dirty nor fires
// observers.
func (s *Store) SetValue(path string, value Value) {
	segments, ok := splitPath(path)
	if !ok {
		return
	}

	s.docMu.Lock()
	changed := replaceOrInsert(&s.doc, segments, value)
	s.docMu.Unlock()

	if !changed {
		return
	}
	s.markDirty()
	s.registry.fire(path)
}

// SetString writes a string value at path.
func (s *Store) SetString(path string, value string) { s.SetValue(path, StringValue(value)) }

// SetBool writes a boolean value at path.
func (s *Store) SetBool(path string, value bool) { s.SetValue(path, BoolValue(value)) }

// SetInt writes a signed integer value at path.
func (s *Store) SetInt(path string, value int) { s.SetValue(path, IntValue(value)) }

// SetUint writes an unsigned integer value at path.
func (s *Store) SetUint(path string, value uint) { s.SetValue(path, UintValue(value)) }

// SetInt64 writes a 64-bit signed integer value at path.
func (s *Store) SetInt64(path string, value int64) { s.SetValue(path, Int64Value(value)) }

// SetUint64 writes a 64-bit unsigned integer value at path.
func (s *Store) SetUint64(path string, value uint64) { s.SetValue(path, Uint64Value(value)) }

// SetFloat64 writes a floating-point value at path.
func (s *Store) SetFloat64(path string, value float64) { s.SetValue(path, DoubleValue(value)) }

// replaceOrInsert walks doc along segments and writes a clone of value
// at the leaf. It reports whether the document actually changed.
func replaceOrInsert(doc *Value, segments []string, value Value) bool {
	cur := doc
	for _, seg := range segments[:len(segments)-1] {
		cur = cur.member(seg)
		if cur == nil || !cur.IsObject() {
			return false
		}
	}
	if !cur.IsObject() {
		return false
	}
	leaf := segments[len(segments)-1]
	if existing := cur.member(leaf); existing != nil && existing.Equal(value) {
		return false
	}
	cur.setMember(leaf, value.Clone())
	return true
}

// Observe registers onChange for path and returns its token.
func (s *Store) Observe(path string, onChange func()) *Token {
	rec := s.registry.observe(path, onChange)
	return &Token{registry: s.registry, id: rec.token}
}

// ObserveForever registers onChange for path with no way to
// unregister it.
func (s *Store) ObserveForever(path string, onChange func()) {
	s.registry.observe(path, onChange)
}

// ResetToDefaults reverts the effective document to the defaults
// state, synchronously persists the empty overlay, and fires the
// observers of every path whose value changed, ancestors included.
func (s *Store) ResetToDefaults() {
	s.docMu.Lock()
	next := s.defaults.Clone()
	paths := changedPaths(s.doc, next)
	s.doc = next
	s.docMu.Unlock()

	// The overlay is now empty by definition; cancel any pending dump
	// and write the empty overlay right away.
	s.writeScheduled.Store(false)
	if err := s.storage.Write(nil); err != nil {
		s.log.Error("failed to write overwrites", "error", err)
	}

	s.firePaths(paths)
}

// Commit writes pending overwrites immediately, bypassing the write
// executor. Does nothing when no changes are pending.
func (s *Store) Commit() {
	if s.writeScheduled.CompareAndSwap(true, false) {
		s.flushOverwrites()
	}
}

// markDirty arms the at-most-one-pending-writeback pipeline: the first
// mutation after a flush schedules a dump task through the write
// executor, later mutations ride along until the task runs.
func (s *Store) markDirty() {
	if s.writeScheduled.CompareAndSwap(false, true) {
		s.writeExec.Execute(s.writeOverwrites)
	}
}

// writeOverwrites is the scheduled dump task. The flag is cleared
// before serializing, so a mutation racing the dump re-arms
// scheduling instead of being lost.
func (s *Store) writeOverwrites() {
	if !s.writeScheduled.CompareAndSwap(true, false) {
		return
	}
	s.flushOverwrites()
}

// flushOverwrites serializes the diff against defaults and hands it to
// storage. On failure the dirty flag is restored so a later Commit can
// retry; there is no failure callback in the public surface.
func (s *Store) flushOverwrites() {
	s.docMu.RLock()
	overlay := diffDocuments(s.doc, s.defaults)
	s.docMu.RUnlock()

	if err := s.storage.Write(serializeDocument(overlay)); err != nil {
		s.log.Error("failed to write overwrites", "error", err)
		s.writeScheduled.Store(true)
	}
}

// scheduleReload is the storage's external-change callback. Scheduling
// is idempotent: while a reload is pending, further change events are
// absorbed by the flag.
func (s *Store) scheduleReload() {
	if s.readScheduled.CompareAndSwap(false, true) {
		s.reloadExec.Execute(s.reloadOverwrites)
	}
}

// reloadOverwrites re-reads the overlay and reconciles the effective
// document with it. The pending flag drops first, so a change arriving
// mid-reload schedules a fresh pass. A failed read or a broken overlay
// abandons the reload, keeping the previous state.
func (s *Store) reloadOverwrites() {
	s.readScheduled.Store(false)

	blob, err := s.storage.Read()
	if err != nil {
		s.log.Warn("failed to read overwrites, reload abandoned", "error", err)
		return
	}
	overlay, err := parseDocument(blob)
	if err != nil {
		s.log.Warn("ignoring broken overwrites, reload abandoned", "error", err)
		return
	}

	next := s.defaults.Clone()
	mergeOverlay(&next, overlay)

	s.docMu.Lock()
	paths := changedPaths(s.doc, next)
	s.doc = next
	s.docMu.Unlock()

	s.firePaths(paths)
}

func (s *Store) firePaths(paths []string) {
	for _, path := range paths {
		s.registry.fire(path)
	}
}
