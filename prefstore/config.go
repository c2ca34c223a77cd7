package prefstore

import "sync/atomic"

// Config is the read/write surface of a layered configuration store.
//
// Values are addressed by dotted paths such as "viewer.font.size";
// each segment is an object key. Invalid paths (empty, leading or
// trailing dots, consecutive dots) make getters return the zero-like
// value for their type and make setters do nothing.
type Config interface {
	// Has reports whether the effective document contains a value at
	// the specified path.
	Has(path string) bool

	// Get returns a deep copy of the value at path, or null when the
	// value can't be found.
	Get(path string) Value

	// GetDefault is Get against the defaults document instead of the
	// effective one.
	GetDefault(path string) Value

	// GetString returns "" when the value is missing or not a string.
	GetString(path string) string

	// GetBool returns false when the value is missing or not a bool.
	GetBool(path string) bool

	// GetInt returns 0 when the value is missing or not a number.
	// Floating-point values truncate toward zero.
	GetInt(path string) int

	// GetUint returns 0 when the value is missing, not a number, or
	// negative.
	GetUint(path string) uint

	// GetInt64 returns 0 when the value is missing or not a number.
	GetInt64(path string) int64

	// GetUint64 returns 0 when the value is missing, not a number, or
	// negative.
	GetUint64(path string) uint64

	// GetFloat64 returns 0 when the value is missing or not a number.
	GetFloat64(path string) float64

	// SetValue writes value at path. Only whole-path leaf writes are
	// performed: every intermediate segment must already resolve to an
	// object, the leaf itself may be inserted. Writing a value equal
	// to the current one is a no-op that fires no observers.
	SetValue(path string, value Value)

	// SetString writes a string value at path.
	SetString(path string, value string)

	// SetBool writes a boolean value at path.
	SetBool(path string, value bool)

	// SetInt writes a signed integer value at path.
	SetInt(path string, value int)

	// SetUint writes an unsigned integer value at path.
	SetUint(path string, value uint)

	// SetInt64 writes a 64-bit signed integer value at path.
	SetInt64(path string, value int64)

	// SetUint64 writes a 64-bit unsigned integer value at path.
	SetUint64(path string, value uint64)

	// SetFloat64 writes a floating-point value at path.
	SetFloat64(path string, value float64)

	// Observe registers onChange for the path. The callback can fire
	// from any goroutine that mutates the store and is never invoked
	// after the returned token is closed. Closing the token from
	// inside the callback itself is safe.
	Observe(path string, onChange func()) *Token

	// ObserveForever is Observe without a way to unregister.
	ObserveForever(path string, onChange func())

	// ResetToDefaults discards any overwrites and reverts the store to
	// the defaults state, persisting the now-empty overlay.
	ResetToDefaults()

	// Commit writes pending overwrites immediately, bypassing the
	// write executor. Does nothing when no changes are pending.
	Commit()
}

// Token is a scoped handle over one observation. Closing it
// unsubscribes the callback; after Close returns (from any goroutine
// other than the callback's own), the callback is guaranteed not to
// be running and never runs again. The zero Token is inert.
type Token struct {
	registry *observerRegistry
	id       uint64
	closed   atomic.Bool
}

// Close unsubscribes the observation. Safe to call more than once,
// on the zero token, and from inside the observed callback itself.
func (t *Token) Close() {
	if t == nil || t.registry == nil {
		return
	}
	if !t.closed.CompareAndSwap(false, true) {
		return
	}
	t.registry.drop(t.id)
}

// ObservePaths registers one callback for several paths at once and
// returns the tokens in path order.
func ObservePaths(c Config, onChange func(), paths ...string) []*Token {
	tokens := make([]*Token, 0, len(paths))
	for _, path := range paths {
		tokens = append(tokens, c.Observe(path, onChange))
	}
	return tokens
}
