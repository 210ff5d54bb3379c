// Package badger implements infocache.Cache on BadgerDB.
//
// The persistent backend keeps classifications across restarts, which
// matters for large directories of extension-less files where every cold
// resolution would otherwise sniff file content again.
//
// Storage model: one key per path under the "info:" prefix, JSON-encoded
// infocache.Entry values. JSON is deliberate, matching the trade-off used
// elsewhere in this codebase: debuggability and schema flexibility over
// raw encode speed.
package badger

import (
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/evandroforks/xfce4-thunar/pkg/store/infocache"
)

// keyPrefix namespaces cache entries inside the database.
const keyPrefix = "info:"

// Config holds BadgerDB cache options.
type Config struct {
	// Path is the database directory. Required unless InMemory is set.
	Path string `mapstructure:"path"`

	// InMemory runs BadgerDB without persistence (used by tests).
	InMemory bool `mapstructure:"in_memory"`
}

// Cache is a BadgerDB-backed infocache.Cache.
type Cache struct {
	db *badger.DB
}

// New opens (or creates) the cache database.
func New(cfg Config) (*Cache, error) {
	if cfg.Path == "" && !cfg.InMemory {
		return nil, fmt.Errorf("badger cache requires a database path")
	}

	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database at %s: %w", cfg.Path, err)
	}

	return &Cache{db: db}, nil
}

// Get implements infocache.Cache.
func (c *Cache) Get(path string) (infocache.Entry, bool, error) {
	var entry infocache.Entry
	found := false

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entryKey(path))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &entry); err != nil {
				return fmt.Errorf("failed to decode cache entry for %s: %w", path, err)
			}
			found = true
			return nil
		})
	})
	if err != nil {
		return infocache.Entry{}, false, err
	}

	return entry, found, nil
}

// Put implements infocache.Cache.
func (c *Cache) Put(entry infocache.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry for %s: %w", entry.Path, err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(entryKey(entry.Path), data)
	})
}

// Forget implements infocache.Cache.
func (c *Cache) Forget(path string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(entryKey(path))
	})
}

// Close implements infocache.Cache.
func (c *Cache) Close() error {
	return c.db.Close()
}

func entryKey(path string) []byte {
	return []byte(keyPrefix + path)
}
