package thumbs

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"
)

// Cache stores encoded thumbnails.
type Cache interface {
	// Get returns the cached bytes for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
	// Invalidate drops every cached size of the asset at path.
	Invalidate(ctx context.Context, path string) error
}

const keyPrefix = "thumb"

// Key builds the cache key for one rendering of an asset. The modification
// time is part of the key so edited files never hit a stale entry.
func Key(path string, size int, modTime time.Time) string {
	return pathPrefix(path) + strconv.Itoa(size) + ":" + strconv.FormatInt(modTime.UnixNano(), 10)
}

func pathPrefix(path string) string {
	return keyPrefix + ":" + strings.Trim(path, "/") + ":"
}

// MemoryCache is an in-process LRU cache.
type MemoryCache struct {
	mu     sync.Mutex
	lru    *lru.Cache
	byPath map[string]map[string]struct{}
}

// NewMemoryCache keeps at most maxEntries thumbnails.
func NewMemoryCache(maxEntries int) *MemoryCache {
	c := &MemoryCache{
		lru:    lru.New(maxEntries),
		byPath: map[string]map[string]struct{}{},
	}
	c.lru.OnEvicted = func(key lru.Key, _ any) {
		c.forget(key.(string))
	}
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return value.([]byte), true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, data)
	prefix := prefixOf(key)
	keys, ok := c.byPath[prefix]
	if !ok {
		keys = map[string]struct{}{}
		c.byPath[prefix] = keys
	}
	keys[key] = struct{}{}
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.byPath[pathPrefix(path)] {
		c.lru.Remove(key)
	}
	return nil
}

// Len reports the number of cached thumbnails.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// forget runs under c.mu from the LRU eviction callback.
func (c *MemoryCache) forget(key string) {
	prefix := prefixOf(key)
	keys := c.byPath[prefix]
	delete(keys, key)
	if len(keys) == 0 {
		delete(c.byPath, prefix)
	}
}

// prefixOf strips the size and modtime suffix from a key.
func prefixOf(key string) string {
	idx := strings.LastIndex(key, ":")
	if idx < 0 {
		return key
	}
	idx = strings.LastIndex(key[:idx], ":")
	if idx < 0 {
		return key
	}
	return key[:idx+1]
}
