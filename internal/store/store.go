package store

import (
	"fmt"
	"path/filepath"
	"sync"

	"gitodo/internal/params"
)

// KeyValueStore is the persistence primitive the settings and state layers
// are built on. Get reports ok=false when the key is absent; Set overwrites
// unconditionally.
type KeyValueStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// Backend selects the on-disk storage engine.
type Backend string

const (
	// BackendBolt stores state in a BoltDB file (default)
	BackendBolt Backend = "bolt"

	// BackendSQLite stores state in a SQLite database
	BackendSQLite Backend = "sqlite"
)

// Open creates a KeyValueStore of the given backend under dir.
func Open(backend Backend, dir string) (KeyValueStore, error) {
	switch backend {
	case BackendBolt, "":
		return NewBolt(filepath.Join(dir, "gitodo.bolt"))
	case BackendSQLite:
		return NewSQLite(filepath.Join(dir, "gitodo.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}

var (
	instance KeyValueStore
	once     sync.Once
	initErr  error
)

// GetDB returns the process-wide store, opening the given backend in the
// application data directory on first use. The backend passed to the first
// call wins; later calls return the same instance.
func GetDB(backend Backend) (KeyValueStore, error) {
	once.Do(func() {
		instance, initErr = Open(backend, params.AppdataDir)
	})

	return instance, initErr
}
