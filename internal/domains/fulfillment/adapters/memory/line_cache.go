package memory

import (
	"context"
	"sync"

	"github.com/CeDev0224/inventree/internal/domains/fulfillment/domain"
	"github.com/CeDev0224/inventree/internal/domains/fulfillment/ports"
)

// LineCache is an in-process snapshot cache of open lines per order.
// Entries are whole-snapshot only: a mutation invalidates the order's entry
// and the next read repopulates it from the backend.
type LineCache struct {
	mu      sync.RWMutex
	entries map[int64][]domain.LineItem
}

// NewLineCache builds an empty cache.
func NewLineCache() *LineCache {
	return &LineCache{entries: make(map[int64][]domain.LineItem)}
}

var _ ports.LineCache = (*LineCache)(nil)

// Get returns a copy of the cached snapshot, if present.
func (c *LineCache) Get(_ context.Context, orderID int64) ([]domain.LineItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	lines, ok := c.entries[orderID]
	if !ok {
		return nil, false
	}
	return copyLines(lines), true
}

// Put stores a snapshot, replacing any previous entry for the order.
func (c *LineCache) Put(_ context.Context, orderID int64, lines []domain.LineItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[orderID] = copyLines(lines)
}

// Invalidate drops the snapshot for the order.
func (c *LineCache) Invalidate(_ context.Context, orderID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, orderID)
}

// copyLines keeps callers from mutating cached state through shared slices.
func copyLines(lines []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(lines))
	copy(out, lines)
	return out
}
