package analysis

import (
	"sync"
	"sync/atomic"

	"github.com/hailam/chesscore/internal/board"
)

// Cached memoizes another analyzer by board hash.
//
// Entries live in two generations. New results go into the young one; when
// it fills, the old generation is dropped and the young one takes its place.
// A hit in the old generation is promoted, so positions that keep coming
// back survive rotation. At most size entries are held.
//
// Cached is safe for concurrent use provided no board is mutated while it is
// being analysed.
type Cached struct {
	inner Analyzer
	half  int

	mu    sync.Mutex
	young map[uint64]Status
	old   map[uint64]Status

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewCached wraps inner with a cache of at most size entries.
func NewCached(inner Analyzer, size int) *Cached {
	half := size / 2
	if half < 1 {
		half = 1
	}
	return &Cached{
		inner: inner,
		half:  half,
		young: make(map[uint64]Status, half),
		old:   make(map[uint64]Status),
	}
}

func (c *Cached) Analyze(b *board.Board) Status {
	key := b.Hash()

	if s, ok := c.lookup(key); ok {
		c.hits.Add(1)
		return s
	}
	c.misses.Add(1)

	s := c.inner.Analyze(b)

	c.mu.Lock()
	c.store(key, s)
	c.mu.Unlock()
	return s
}

func (c *Cached) lookup(key uint64) (Status, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.young[key]; ok {
		return s, true
	}
	s, ok := c.old[key]
	if ok {
		delete(c.old, key)
		c.store(key, s)
	}
	return s, ok
}

// store inserts into the young generation, rotating first if it is full.
// c.mu must be held.
func (c *Cached) store(key uint64, s Status) {
	if len(c.young) >= c.half {
		c.old = c.young
		c.young = make(map[uint64]Status, c.half)
	}
	c.young[key] = s
}

// HitRate returns the percentage of lookups answered from the cache.
func (c *Cached) HitRate() float64 {
	hits, misses := c.hits.Load(), c.misses.Load()
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses) * 100
}

// Len returns the number of cached positions.
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.young) + len(c.old)
}

// Clear drops every entry and resets the counters.
func (c *Cached) Clear() {
	c.mu.Lock()
	c.young = make(map[uint64]Status, c.half)
	c.old = make(map[uint64]Status)
	c.mu.Unlock()

	c.hits.Store(0)
	c.misses.Store(0)
}
