package prefstore

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// observer is one registered callback. Records are shared between the
// registry and any live token, so a drop may race an in-flight fire;
// the removed flag, guarded by the record's own reentrant lock,
// arbitrates.
type observer struct {
	callback func()
	mu       reentrantMutex
	removed  bool // guarded by mu
	token    uint64
}

// observerList is an immutable-once-published snapshot of a path's
// observers. Edits go through copy-on-write: build a new list, swap
// the bucket. Firing therefore iterates a private snapshot without
// holding the registry lock.
type observerList struct {
	records []*observer
}

// observerRegistry maps a path string to its published observer list.
type observerRegistry struct {
	mu        sync.Mutex
	buckets   map[string]*observerList
	nextToken atomic.Uint64
}

func newObserverRegistry() *observerRegistry {
	return &observerRegistry{buckets: make(map[string]*observerList)}
}

// observe registers callback for path and returns the new record.
// Observation is on the path string; the path does not need to exist
// in any document. Tokens are monotonically increasing and skip 0.
func (r *observerRegistry) observe(path string, callback func()) *observer {
	rec := &observer{
		callback: callback,
		token:    r.nextToken.Add(1),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.buckets[path]
	next := &observerList{}
	if prev != nil {
		next.records = append(next.records, prev.records...)
	}
	next.records = append(next.records, rec)
	r.buckets[path] = next

	return rec
}

// drop unsubscribes the record with the given token. The containing
// bucket is rewritten copy-on-write, then the record is flagged
// removed under its own lock. Because that lock is reentrant, a
// callback may drop its own token; because a concurrent fire holds
// the same lock around the invocation, drop returning from another
// goroutine implies the callback is not running anymore.
func (r *observerRegistry) drop(token uint64) {
	r.mu.Lock()
	var rec *observer
	for path, list := range r.buckets {
		idx := -1
		for i, candidate := range list.records {
			if candidate.token == token {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		rec = list.records[idx]
		next := &observerList{records: make([]*observer, 0, len(list.records)-1)}
		next.records = append(next.records, list.records[:idx]...)
		next.records = append(next.records, list.records[idx+1:]...)
		if len(next.records) == 0 {
			delete(r.buckets, path)
		} else {
			r.buckets[path] = next
		}
		break
	}
	r.mu.Unlock()

	if rec == nil {
		return
	}
	rec.mu.Lock()
	rec.removed = true
	rec.mu.Unlock()
}

// fire invokes every live observer registered for path. Callbacks run
// on the calling goroutine with no registry lock held; each record's
// removed flag is re-checked under its own lock immediately before
// invocation, so a token dropped by an earlier callback in the same
// snapshot silences the later one.
func (r *observerRegistry) fire(path string) {
	r.mu.Lock()
	list := r.buckets[path]
	r.mu.Unlock()
	if list == nil {
		return
	}

	for _, rec := range list.records {
		rec.mu.Lock()
		if !rec.removed {
			rec.callback()
		}
		rec.mu.Unlock()
	}
}

// reentrantMutex is a mutex that may be re-acquired by the goroutine
// already holding it. Observer callbacks run under their record's
// lock and are allowed to call back into the store, which may end up
// dropping that same record; a plain mutex would self-deadlock there.
type reentrantMutex struct {
	mu    sync.Mutex
	owner atomic.Int64
	depth int // touched only by the owning goroutine
}

func (m *reentrantMutex) Lock() {
	id := goid()
	if m.owner.Load() == id {
		m.depth++
		return
	}
	m.mu.Lock()
	m.owner.Store(id)
	m.depth = 1
}

func (m *reentrantMutex) Unlock() {
	m.depth--
	if m.depth > 0 {
		return
	}
	m.owner.Store(0)
	m.mu.Unlock()
}

// goid returns the current goroutine id, parsed from the runtime stack
// header ("goroutine N [running]:"). Goroutine ids start at 1, so 0 is
// a safe "unowned" sentinel.
func goid() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return -1
	}
	id, err := strconv.ParseInt(string(fields[1]), 10, 64)
	if err != nil {
		return -1
	}
	return id
}
