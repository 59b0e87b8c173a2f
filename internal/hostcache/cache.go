// Package hostcache implements an LRU of canonical hostnames.
package hostcache

import (
	"time"

	"github.com/segmentio/agecache"
)

// Entry represents a cached lookup.
type entry struct {
	host string
	ok   bool
}

// Cache implements an LRU hostname cache.
//
// The cache maintains an LRU of raw URLs into their
// canonical hostnames, when a URL is seen for the first
// time the cache calls the lookup function and stores
// its result, failed lookups included.
type Cache struct {
	lru *agecache.Cache
}

// New returns a new cache.
func New(capacity int) *Cache {
	lru := agecache.New(agecache.Config{
		Capacity:           capacity,
		MaxAge:             1 * time.Hour,
		ExpirationType:     agecache.PassiveExpration,
		ExpirationInterval: 1 * time.Minute,
	})
	return &Cache{lru: lru}
}

// Lookup returns the canonical hostname of rawurl.
//
// The method returns false if the lookup function
// failed for rawurl.
func (c *Cache) Lookup(rawurl string, lookup func(string) (string, error)) (string, bool) {
	if v, ok := c.lru.Get(rawurl); ok {
		e := v.(entry)
		return e.host, e.ok
	}

	host, err := lookup(rawurl)
	e := entry{host: host, ok: err == nil}
	c.lru.Set(rawurl, e)
	return e.host, e.ok
}
