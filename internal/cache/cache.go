// Package cache provides the block cache consulted by sst.Table: an
// LRU keyed by (sstID, blockIndex) mapping to decoded blocks.
//
// The cache is optional — an sst.Table with a nil *Cache decodes every
// block straight from its file object, per the block cache contract.
// Eviction policy beyond simple LRU-by-byte-charge is out of scope;
// this cache exists to give readers of the same hot blocks a way to
// skip repeated decode work, not to model a production eviction
// strategy.
package cache

import (
	"container/list"
	"sync"

	"github.com/kvforge/lsmtree/internal/block"
)

// Key identifies one cached block by its SST and position within it.
type Key struct {
	SSTID      uint64
	BlockIndex int
}

// Cache is a thread-safe, fixed-capacity LRU cache of decoded blocks.
type Cache struct {
	mu       sync.Mutex
	capacity uint64
	usage    uint64
	table    map[Key]*list.Element
	lru      *list.List
}

type entry struct {
	key   Key
	blk   *block.Block
	bytes uint64
}

// New creates an LRU cache with the given capacity in bytes of decoded
// block data.
func New(capacity uint64) *Cache {
	return &Cache{
		capacity: capacity,
		table:    make(map[Key]*list.Element),
		lru:      list.New(),
	}
}

// Get returns the cached block for key, if present, moving it to the
// front of the LRU list.
func (c *Cache) Get(key Key) (*block.Block, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.table[key]
	if !ok {
		return nil, false
	}
	c.lru.MoveToFront(elem)
	return elem.Value.(*entry).blk, true
}

// Put inserts blk under key, evicting least-recently-used entries if
// the cache is over capacity.
func (c *Cache) Put(key Key, blk *block.Block) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.table[key]; ok {
		c.lru.MoveToFront(elem)
		old := elem.Value.(*entry)
		c.usage = c.usage - old.bytes + uint64(len(blk.Data()))
		elem.Value = &entry{key: key, blk: blk, bytes: uint64(len(blk.Data()))}
		return
	}

	charge := uint64(len(blk.Data()))
	elem := c.lru.PushFront(&entry{key: key, blk: blk, bytes: charge})
	c.table[key] = elem
	c.usage += charge

	for c.usage > c.capacity && c.lru.Len() > 1 {
		c.evictOldest()
	}
}

func (c *Cache) evictOldest() {
	oldest := c.lru.Back()
	if oldest == nil {
		return
	}
	c.lru.Remove(oldest)
	e := oldest.Value.(*entry)
	delete(c.table, e.key)
	c.usage -= e.bytes
}

// Len returns the number of entries currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.table)
}
