// Package filestorage provides the file-backed overwrites storage for
// prefstore.
//
// The overwrites blob lives in a single JSON file. Writes are atomic
// (temp file + rename), and a directory watcher surfaces external
// edits to the store, with mtime tracking to suppress the watcher echo
// of the storage's own renames.
//
//	storage, err := filestorage.New(filestorage.Options{
//	    Path: filepath.Join(cfgDir, "overwrites.json"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer storage.Close()
//
//	store, err := prefstore.New(prefstore.Options{
//	    Defaults: defaultsJSON,
//	    Storage:  storage,
//	})
package filestorage
