package colors

import (
	"hash/fnv"

	lru "github.com/hashicorp/golang-lru/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Cache keeps the most recent scan result per document, keyed by content
// hash so an edit can never serve a stale result. Bounded so long-lived
// sessions with many documents stay flat.
type Cache struct {
	lru *lru.Cache[string, cacheEntry]
}

type cacheEntry struct {
	hash   uint64
	colors []protocol.ColorInformation
}

// NewCache creates a cache holding results for up to size documents.
func NewCache(size int) (*Cache, error) {
	inner, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: inner}, nil
}

// Get returns the cached scan for uri when the content hash still
// matches.
func (c *Cache) Get(uri string, hash uint64) ([]protocol.ColorInformation, bool) {
	entry, ok := c.lru.Get(uri)
	if !ok || entry.hash != hash {
		return nil, false
	}
	return entry.colors, true
}

// Put stores a scan result for uri at the given content hash.
func (c *Cache) Put(uri string, hash uint64, colors []protocol.ColorInformation) {
	c.lru.Add(uri, cacheEntry{hash: hash, colors: colors})
}

// Drop evicts a closed document.
func (c *Cache) Drop(uri string) {
	c.lru.Remove(uri)
}

// HashText is the content hash used for cache keys.
func HashText(text string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	return h.Sum64()
}
