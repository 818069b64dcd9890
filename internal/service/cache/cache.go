package cache

import "time"

// BytesCache stores serialized values with a TTL. Both the in-memory and
// the Redis implementation satisfy it, so callers can swap persistence
// without caring which one is wired.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool, err error)
	SetBytes(key string, value []byte, ttl time.Duration) error
}

var (
	_ BytesCache = (*TTLCache)(nil)
	_ BytesCache = (*RedisCache)(nil)
)
