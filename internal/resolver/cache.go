// Package resolver walks slash-separated paths through a Catalog to a
// terminal record, resolving hard-link sentinels and /rsrc fork suffixes
// along the way. Results are cached by path in a fixed-capacity ring
// buffer so repeated lookups of the same path (stat-then-open is the
// common case) skip the B-tree descent entirely.
package resolver

import (
	"sync"

	"github.com/0x09/go-hfsplus/internal/interfaces"
	"github.com/0x09/go-hfsplus/internal/types"
)

// ringCapacity is the number of entries the record cache holds before
// it starts evicting the oldest lookup on every insert.
const ringCapacity = 1024

type cacheEntry struct {
	path   string
	record interfaces.CatalogRecord
	key    types.CatalogKey
}

// recordCache is a fixed-size ring of the most recently resolved paths.
// It mirrors a doubly-linked ring of slots rather than a map so the
// eviction policy is always "overwrite the oldest slot" with no
// separate bookkeeping of insertion order.
type recordCache struct {
	mu      sync.RWMutex
	entries [ringCapacity]cacheEntry
	oldest  int // index of the next slot to be overwritten
	filled  int // number of populated slots, caps at ringCapacity
}

func newRecordCache() *recordCache {
	return &recordCache{}
}

// lookup returns the cached record for path, if present. The scan walks
// every filled slot rather than keying off a map because the cache is
// small and fixed-size; it mirrors the original ring buffer's linear
// scan rather than reaching for a different data structure.
func (c *recordCache) lookup(path string) (interfaces.CatalogRecord, types.CatalogKey, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := 0; i < c.filled; i++ {
		e := &c.entries[i]
		if e.path == path {
			return e.record, e.key, true
		}
	}
	return interfaces.CatalogRecord{}, types.CatalogKey{}, false
}

// add inserts path into the oldest slot, evicting whatever was cached
// there. The just-written slot becomes the newest and the slot after it
// becomes the new oldest, matching the original ring buffer's
// head-follows-tail rotation.
func (c *recordCache) add(path string, record interfaces.CatalogRecord, key types.CatalogKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.oldest] = cacheEntry{path: path, record: record, key: key}
	c.oldest = (c.oldest + 1) % ringCapacity
	if c.filled < ringCapacity {
		c.filled++
	}
}
