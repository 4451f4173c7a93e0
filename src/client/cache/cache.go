// Package cache stores API responses between CLI invocations.
// Entries live in memory for the current process and on disk under the cache dir.
package cache

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config holds cache configuration
type Config struct {
	Enabled bool          // false turns every call into a no-op
	TTL     time.Duration // default: 5 minutes
	MaxSize int           // MB held in memory (default: 10)
	Dir     string        // on-disk location; empty keeps entries in memory only
}

type entry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Cache is safe for concurrent use
type Cache struct {
	mu        sync.RWMutex
	memory    map[string]entry
	ttl       time.Duration
	maxSize   int64
	totalSize int64
	dir       string
	enabled   bool

	now func() time.Time
}

// New returns a cache for cfg, creating its directory if needed
func New(cfg Config) (*Cache, error) {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = 10
	}

	c := &Cache{
		memory:  make(map[string]entry),
		ttl:     ttl,
		maxSize: int64(maxSize) << 20,
		dir:     cfg.Dir,
		enabled: cfg.Enabled,
		now:     time.Now,
	}

	if c.enabled && c.dir != "" {
		if err := os.MkdirAll(c.dir, 0700); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}
	return c, nil
}

// Enabled reports whether the cache stores anything
func (c *Cache) Enabled() bool {
	return c != nil && c.enabled
}

// Get returns a live value for key
func (c *Cache) Get(key string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.memory[key]
	c.mu.RUnlock()
	if ok && c.now().Before(e.ExpiresAt) {
		return e.Data, true
	}

	return c.readFile(key)
}

// GetJSON decodes a cached value into v
func (c *Cache) GetJSON(key string, v any) bool {
	data, ok := c.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// Set stores data under key for the configured TTL
func (c *Cache) Set(key string, data []byte) {
	if !c.Enabled() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{Data: data, ExpiresAt: c.now().Add(c.ttl)}
	size := int64(len(data))

	if old, ok := c.memory[key]; ok {
		c.totalSize -= int64(len(old.Data))
		delete(c.memory, key)
	}
	// entries larger than the whole budget live on disk only
	if size <= c.maxSize {
		if c.totalSize+size > c.maxSize {
			c.evictOldest(size)
		}
		c.memory[key] = e
		c.totalSize += size
	}

	c.writeFile(key, e)
}

// SetJSON encodes v and stores it under key
func (c *Cache) SetJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.Set(key, data)
	return nil
}

// Delete removes key
func (c *Cache) Delete(key string) {
	if !c.Enabled() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.memory[key]; ok {
		c.totalSize -= int64(len(e.Data))
		delete(c.memory, key)
	}
	c.removeFile(key)
}

// Clear removes every entry
func (c *Cache) Clear() error {
	if !c.Enabled() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.memory = make(map[string]entry)
	c.totalSize = 0

	if c.dir == "" {
		return nil
	}
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0700)
}

// Cleanup drops expired entries
func (c *Cache) Cleanup() {
	if !c.Enabled() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.memory {
		if now.After(e.ExpiresAt) {
			c.totalSize -= int64(len(e.Data))
			delete(c.memory, key)
			c.removeFile(key)
		}
	}
}

// evictOldest drops the soonest-expiring entries until needed bytes fit
func (c *Cache) evictOldest(needed int64) {
	for c.totalSize+needed > c.maxSize && len(c.memory) > 0 {
		var oldestKey string
		var oldest time.Time
		for key, e := range c.memory {
			if oldestKey == "" || e.ExpiresAt.Before(oldest) {
				oldestKey, oldest = key, e.ExpiresAt
			}
		}
		c.totalSize -= int64(len(c.memory[oldestKey].Data))
		delete(c.memory, oldestKey)
		c.removeFile(oldestKey)
	}
}

func (c *Cache) readFile(key string) ([]byte, bool) {
	if c.dir == "" {
		return nil, false
	}
	path := c.filePath(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		_ = os.Remove(path)
		return nil, false
	}
	if !c.now().Before(e.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}
	return e.Data, true
}

func (c *Cache) writeFile(key string, e entry) {
	if c.dir == "" {
		return
	}
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	_ = os.WriteFile(c.filePath(key), data, 0600)
}

func (c *Cache) removeFile(key string) {
	if c.dir == "" {
		return
	}
	_ = os.Remove(c.filePath(key))
}

func (c *Cache) filePath(key string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	return filepath.Join(c.dir, fmt.Sprintf("%016x.cache", h.Sum64()))
}
