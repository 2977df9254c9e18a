// Package cache implements the scan cache for folio.
// It remembers the class names found in each source file, keyed by path and
// content hash, so incremental rebuilds only rescan files that changed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketEntries = []byte("entries")

// Cache is a bbolt-backed store of per-file scan results
type Cache struct {
	db     *bolt.DB
	maxAge time.Duration
	now    func() time.Time

	mu    sync.RWMutex
	stats Stats
}

// Entry is a single cached scan result
type Entry struct {
	Hash        string    `json:"hash"`
	Tokens      []string  `json:"tokens"`
	Created     time.Time `json:"created"`
	LastAccess  time.Time `json:"last_access"`
	AccessCount int       `json:"access_count"`
}

// Stats tracks cache performance metrics
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Pruned  int64 `json:"pruned"`
	Entries int   `json:"entries"`
}

// Config holds cache configuration
type Config struct {
	Path   string        // Database file (default: .folio/cache.db)
	MaxAge time.Duration // Maximum age for entries (default: 7 days, 0 keeps forever)
}

// DefaultConfig returns the default cache configuration
func DefaultConfig() Config {
	return Config{
		Path:   filepath.Join(".folio", "cache.db"),
		MaxAge: 7 * 24 * time.Hour,
	}
}

// New opens (or creates) the cache database
func New(config Config) (*Cache, error) {
	if config.Path == "" {
		config = DefaultConfig()
	}

	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := bolt.Open(config.Path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEntries)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache bucket: %w", err)
	}

	return &Cache{
		db:     db,
		maxAge: config.MaxAge,
		now:    time.Now,
	}, nil
}

// Get returns the cached tokens for key when the stored hash matches.
// Expired entries are treated as misses.
func (c *Cache) Get(key, hash string) ([]string, bool) {
	var entry *Entry

	err := c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEntries)
		v := b.Get([]byte(key))
		if v == nil {
			return nil
		}

		var e Entry
		if err := json.Unmarshal(v, &e); err != nil {
			// corrupted entry, drop it
			return b.Delete([]byte(key))
		}
		if e.Hash != hash {
			return nil
		}
		if c.isExpired(&e) {
			return b.Delete([]byte(key))
		}

		e.LastAccess = c.now()
		e.AccessCount++
		data, err := json.Marshal(&e)
		if err != nil {
			return err
		}
		entry = &e
		return b.Put([]byte(key), data)
	})

	if err != nil || entry == nil {
		c.recordMiss()
		return nil, false
	}
	c.recordHit()
	return entry.Tokens, true
}

// Put stores the tokens scanned from key with content hash
func (c *Cache) Put(key, hash string, tokens []string) error {
	now := c.now()
	data, err := json.Marshal(&Entry{
		Hash:       hash,
		Tokens:     tokens,
		Created:    now,
		LastAccess: now,
	})
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEntries).Put([]byte(key), data)
	})
}

// Delete removes a cached entry. Deleting a missing key is not an error.
func (c *Cache) Delete(key string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEntries).Delete([]byte(key))
	})
}

// Keys returns every cached key
func (c *Cache) Keys() ([]string, error) {
	var keys []string
	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEntries).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Prune removes expired entries and returns how many were removed
func (c *Cache) Prune() (int, error) {
	if c.maxAge <= 0 {
		return 0, nil
	}

	var removed int
	err := c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEntries)
		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil || c.isExpired(&e) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.stats.Pruned += int64(removed)
	c.mu.Unlock()
	return removed, nil
}

// Clear removes all entries
func (c *Cache) Clear() error {
	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketEntries); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketEntries)
		return err
	})
}

// GetStats returns current cache statistics
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	stats := c.stats
	c.mu.RUnlock()

	_ = c.db.View(func(tx *bolt.Tx) error {
		stats.Entries = tx.Bucket(bucketEntries).Stats().KeyN
		return nil
	})
	return stats
}

// Close closes the underlying database
func (c *Cache) Close() error {
	return c.db.Close()
}

// Hash returns the content hash used for cache validation
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (c *Cache) isExpired(e *Entry) bool {
	if c.maxAge <= 0 {
		return false
	}
	return c.now().Sub(e.Created) > c.maxAge
}

func (c *Cache) recordHit() {
	c.mu.Lock()
	c.stats.Hits++
	c.mu.Unlock()
}

func (c *Cache) recordMiss() {
	c.mu.Lock()
	c.stats.Misses++
	c.mu.Unlock()
}
