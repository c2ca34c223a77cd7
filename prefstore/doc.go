// Package prefstore implements a hierarchical configuration store with
// layered defaults and overwrites, dotted-path access, typed
// accessors, and thread-safe change notification.
//
// A store holds two JSON trees: an immutable defaults document parsed
// once at construction, and the effective document readers query. User
// changes land in the effective document and are persisted as a
// diff-against-defaults overlay through a pluggable
// [OverwritesStorage]; when the storage changes behind the store's
// back, the store reloads itself and notifies the observers of every
// path whose value differs.
//
// # Basic Usage
//
//	store, err := prefstore.New(prefstore.Options{
//	    Defaults: defaultsJSON,
//	    Storage:  storage,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	size := store.GetInt("viewer.font.size")
//	store.SetBool("viewer.wrap_lines", true)
//
// # Change Notification
//
//	token := store.Observe("viewer.font.size", func() {
//	    applyFontSize(store.GetInt("viewer.font.size"))
//	})
//	defer token.Close()
//
// Callbacks fire on whichever goroutine mutates the store (or on the
// reload executor's goroutine for external changes), with no store
// lock held, so they may freely call back into the store.
//
// # Persistence
//
// Mutations mark the store dirty and schedule a single pending dump
// through the write [Executor]; [Store.Commit] flushes synchronously.
// The file-backed storage lives in adapter/filestorage and pairs
// atomic rename writes with a directory watcher for external edits.
package prefstore
