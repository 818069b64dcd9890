package cache

import (
	"sync"
	"time"
)

type item struct {
	val       any
	expiresAt time.Time
}

func (it item) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && now.After(it.expiresAt)
}

// TTLCache is an in-memory cache with per-entry TTL. Expired entries are
// evicted lazily on read; the scanner stores at most a handful of keys, so
// no background janitor is needed.
type TTLCache struct {
	mu    sync.RWMutex
	items map[string]item
}

func NewTTLCache() *TTLCache {
	return &TTLCache{items: make(map[string]item)}
}

// Get returns the live value for key, evicting it when the TTL has passed.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	it, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if it.expired(time.Now()) {
		c.mu.Lock()
		// re-check under the write lock; a Set may have raced the eviction
		if cur, still := c.items[key]; still && cur.expired(time.Now()) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return it.val, true
}

// Set stores a value for key. A non-positive ttl keeps the entry forever.
func (c *TTLCache) Set(key string, v any, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = item{val: v, expiresAt: exp}
	c.mu.Unlock()
}

// GetBytes implements BytesCache; non-byte values stored under the key
// report a miss rather than an error.
func (c *TTLCache) GetBytes(key string) ([]byte, bool, error) {
	v, ok := c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return b, true, nil
}

// SetBytes implements BytesCache.
func (c *TTLCache) SetBytes(key string, value []byte, ttl time.Duration) error {
	c.Set(key, value, ttl)
	return nil
}
