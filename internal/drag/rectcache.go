package drag

import (
	"sync"
	"sync/atomic"

	"github.com/dshills/dragstream/internal/dom"
)

// RectCache memoizes element bounding rectangles for the duration of one
// drag, keyed by the element's extracted identity. Entries are
// authoritative between a Flush (issued at drag start) and the end of that
// drag; geometry is assumed stable within a single drag, so stale entries
// inside that window are the intended trade-off.
type RectCache struct {
	mu      sync.Mutex
	entries map[string]dom.Rect

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewRectCache creates an empty cache.
func NewRectCache() *RectCache {
	return &RectCache{entries: make(map[string]dom.Rect)}
}

// Get returns the cached rectangle for the element's identity, querying
// the live geometry and storing it on first access. Within one drag each
// distinct identity hits the live dom at most once.
func (c *RectCache) Get(n *dom.Node, identity func(*dom.Node) string) dom.Rect {
	key := identity(n)

	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.entries[key]; ok {
		c.hits.Add(1)
		return r
	}
	c.misses.Add(1)
	r := n.Rect()
	c.entries[key] = r
	return r
}

// Flush clears all entries. Called exactly once per drag, at drag start,
// before any over-event processing.
func (c *RectCache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]dom.Rect)
}

// Size returns the number of cached entries.
func (c *RectCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns hit and miss counts since creation.
func (c *RectCache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
