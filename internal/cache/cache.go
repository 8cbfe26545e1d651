// Package cache stores check results keyed by changeset fingerprint so
// re-running prguard on an unchanged diff is instant.
package cache

import (
	"encoding/json"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/prguard/prguard/internal/logger"
	"github.com/prguard/prguard/internal/report"
)

// DefaultTTL is used when the configured TTL is zero.
const DefaultTTL = 24 * time.Hour

// Cache is a BadgerDB-backed result cache. A nil *Cache is valid and
// behaves as a disabled cache, so callers never need a nil check.
type Cache struct {
	db  *badger.DB
	ttl time.Duration
	log *logger.Logger
}

// Open opens (or creates) the cache under dir.
func Open(dir string, ttl time.Duration) (*Cache, error) {
	badgerOpts := badger.DefaultOptions(dir)
	badgerOpts.Logger = nil // BadgerDB is chatty, route nothing through it

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache{
		db:  db,
		ttl: ttl,
		log: logger.Default().WithPrefix("CACHE"),
	}, nil
}

// Get returns the cached report for a fingerprint, or nil on a miss.
// Corrupt entries are treated as misses.
func (c *Cache) Get(fingerprint string) *report.Report {
	if c == nil {
		return nil
	}

	var rep report.Report
	err := c.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get([]byte(fingerprint))
		if getErr != nil {
			return getErr
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rep)
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		c.log.Debug("cache read failed for %s: %v", fingerprint[:min(12, len(fingerprint))], err)
		return nil
	}

	rep.Cached = true
	return &rep
}

// Put stores a report under a fingerprint with the configured TTL.
func (c *Cache) Put(fingerprint string, rep *report.Report) error {
	if c == nil || rep == nil {
		return nil
	}

	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(fingerprint), data).WithTTL(c.ttl)
		return txn.SetEntry(entry)
	})
}

// Clear removes every cached entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	return c.db.DropAll()
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	_ = c.db.RunValueLogGC(0.5)
	return c.db.Close()
}
