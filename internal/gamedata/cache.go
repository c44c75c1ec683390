package gamedata

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheSchemaVersion is the current version of the cached servant shape.
// Increment when the Servant structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

type cachedServantEntry struct {
	Version  string
	Servant  *Servant
	CachedAt time.Time
}

// ServantCache is an in-memory LRU cache for servant catalog lookups with
// time-based expiration and version-based invalidation. It fronts a
// repository-backed catalog so hot servants avoid a database round trip.
type ServantCache struct {
	lru *expirable.LRU[int, *cachedServantEntry]
}

// NewServantCache creates a servant cache.
// size: maximum number of cached servants
// ttl: time-to-live for cached entries
func NewServantCache(size int, ttl time.Duration) *ServantCache {
	return &ServantCache{
		lru: expirable.NewLRU[int, *cachedServantEntry](size, nil, ttl),
	}
}

// Get retrieves a servant from the cache.
// Returns (servant, true) on a hit with a matching schema version.
// Entries with a mismatched version are evicted and reported as misses.
func (c *ServantCache) Get(servantID int) (*Servant, bool) {
	entry, found := c.lru.Get(servantID)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(servantID)
		return nil, false
	}
	return entry.Servant, true
}

// Set stores a servant in the cache with the current schema version.
func (c *ServantCache) Set(servant *Servant) {
	if servant == nil {
		return
	}
	c.lru.Add(servant.ID, &cachedServantEntry{
		Version:  CacheSchemaVersion,
		Servant:  servant,
		CachedAt: time.Now(),
	})
}

// Invalidate removes a servant from the cache.
func (c *ServantCache) Invalidate(servantID int) {
	c.lru.Remove(servantID)
}

// Clear removes all entries from the cache.
func (c *ServantCache) Clear() {
	c.lru.Purge()
}
