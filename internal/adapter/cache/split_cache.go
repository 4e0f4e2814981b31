package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"dslsplit/internal/domain"
)

// Key identifies one split request.
type Key struct {
	Word     string
	Method   domain.Method
	Variant  string
	Language string
}

type entry struct {
	response *domain.SplitResponse
	gen      uint64
}

// SplitCache is an LRU of split responses. Entries written before the last
// Invalidate are never returned.
type SplitCache struct {
	entries *lru.Cache[Key, entry]
	gen     atomic.Uint64
}

func NewSplitCache(maxSize int) (*SplitCache, error) {
	if maxSize <= 0 {
		maxSize = 1000
	}
	entries, err := lru.New[Key, entry](maxSize)
	if err != nil {
		return nil, err
	}
	return &SplitCache{entries: entries}, nil
}

func (c *SplitCache) Get(key Key) (*domain.SplitResponse, bool) {
	e, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	if e.gen != c.gen.Load() {
		c.entries.Remove(key)
		return nil, false
	}
	return e.response, true
}

// Put stores a response computed from tables read at generation gen. A
// response from before the last Invalidate is dropped. An entry that slips
// in while Invalidate runs keeps its old generation and Get discards it.
func (c *SplitCache) Put(key Key, response *domain.SplitResponse, gen uint64) {
	if gen != c.gen.Load() {
		return
	}
	c.entries.Add(key, entry{response: response, gen: gen})
}

// Invalidate drops every entry.
func (c *SplitCache) Invalidate() {
	c.gen.Add(1)
	c.entries.Purge()
}

func (c *SplitCache) Size() int {
	return c.entries.Len()
}

// Generation is the number of invalidations so far.
func (c *SplitCache) Generation() uint64 {
	return c.gen.Load()
}
