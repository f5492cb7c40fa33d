// Package cache keeps provider search payloads in memory for a TTL so that
// repeated nearby searches do not spend provider quota.
package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/rgreinho/request-yo-racks-api/pkg/places"
)

// Cache wraps go-cache for provider payloads.
type Cache struct {
	store *gocache.Cache
}

// New creates a cache whose entries expire after ttl. Expired entries are
// purged every cleanupInterval.
func New(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(ttl, cleanupInterval),
	}
}

// Key builds a cache key from request parts. Parts are trimmed and lower
// cased so equivalent requests share an entry.
func Key(parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(normalized, "|")
}

// Get returns the payload stored under key.
func (c *Cache) Get(key string) (places.Payload, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	p, ok := v.(places.Payload)
	return p, ok
}

// Set stores a payload with the default TTL.
func (c *Cache) Set(key string, p places.Payload) {
	c.store.Set(key, p, gocache.DefaultExpiration)
}

// GetOrLoad returns the cached payload for key, or calls load and caches its
// result. Errors are not cached. The boolean reports a cache hit.
func (c *Cache) GetOrLoad(key string, load func() (places.Payload, error)) (places.Payload, bool, error) {
	if p, ok := c.Get(key); ok {
		return p, true, nil
	}
	p, err := load()
	if err != nil {
		return nil, false, err
	}
	c.Set(key, p)
	return p, false, nil
}

// Clear removes all items.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of cached items, expired ones included until
// the next cleanup.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}
