// Package store provides the storage abstraction layer for gitodo.
//
// The package defines the [KeyValueStore] interface, a string-keyed store
// with Get/Set/Remove semantics. Three implementations exist:
//
//   - [Bolt]: BoltDB file, the default backend
//   - [SQLite]: single kv table in a SQLite database
//   - [Memory]: map-backed store for tests
//
// Use [GetDB] to obtain the process-wide instance in the application data
// directory, or [Open] to place a backend explicitly. The store assumes a
// single writer; Set overwrites whatever is currently stored under the key.
package store
