package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeProgressSumsQuantities(t *testing.T) {
	lines := []LineItem{
		{Quantity: 3, Shipped: 1},
		{Quantity: 2, Shipped: 2},
	}

	progress := ComputeProgress(lines)
	require.Equal(t, 5.0, progress.Total)
	require.Equal(t, 3.0, progress.Completed)
	require.False(t, progress.Complete())
}

func TestProgressCompleteWhenAllShipped(t *testing.T) {
	progress := ComputeProgress([]LineItem{
		{Quantity: 1, Shipped: 1},
		{Quantity: 2, Shipped: 2},
	})
	require.True(t, progress.Complete())
}

func TestProgressEmptyOrderNeverComplete(t *testing.T) {
	progress := ComputeProgress(nil)
	require.Equal(t, 0.0, progress.Total)
	require.False(t, progress.Complete())
}
