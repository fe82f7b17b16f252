package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CeDev0224/inventree/internal/domains/fulfillment/domain"
)

func TestLineCacheRoundTrip(t *testing.T) {
	cache := NewLineCache()
	ctx := context.Background()

	_, ok := cache.Get(ctx, 7)
	require.False(t, ok)

	cache.Put(ctx, 7, []domain.LineItem{{ID: 11, OrderID: 7, Quantity: 3}})
	lines, ok := cache.Get(ctx, 7)
	require.True(t, ok)
	require.Len(t, lines, 1)
	require.Equal(t, int64(11), lines[0].ID)
}

func TestLineCacheInvalidate(t *testing.T) {
	cache := NewLineCache()
	ctx := context.Background()

	cache.Put(ctx, 7, []domain.LineItem{{ID: 11}})
	cache.Invalidate(ctx, 7)

	_, ok := cache.Get(ctx, 7)
	require.False(t, ok)
}

func TestLineCacheCopiesOnReadAndWrite(t *testing.T) {
	cache := NewLineCache()
	ctx := context.Background()

	source := []domain.LineItem{{ID: 11, Shipped: 0}}
	cache.Put(ctx, 7, source)
	source[0].Shipped = 99

	lines, ok := cache.Get(ctx, 7)
	require.True(t, ok)
	require.Equal(t, 0.0, lines[0].Shipped)

	lines[0].Shipped = 50
	again, _ := cache.Get(ctx, 7)
	require.Equal(t, 0.0, again[0].Shipped)
}
