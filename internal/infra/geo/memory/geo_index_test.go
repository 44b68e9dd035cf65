package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridIndex_SearchWithinRadius(t *testing.T) {
	ctx := context.Background()
	index := NewGridIndex(0.5)

	require.NoError(t, index.Index(ctx, "a1", 12.9716, 77.5946)) // Bangalore center
	require.NoError(t, index.Index(ctx, "a2", 12.9720, 77.5950)) // ~60m away
	require.NoError(t, index.Index(ctx, "a3", 13.0827, 80.2707)) // Chennai, ~290km

	matches, err := index.Search(ctx, 12.9716, 77.5946, 1.0)
	require.NoError(t, err)

	require.Len(t, matches, 2)
	for _, m := range matches {
		assert.LessOrEqual(t, m.DistanceKm, 1.0)
	}
}

func TestGridIndex_SearchOrderedByDistance(t *testing.T) {
	ctx := context.Background()
	index := NewGridIndex(0.5)

	require.NoError(t, index.Index(ctx, "far", 12.9800, 77.6030))
	require.NoError(t, index.Index(ctx, "near", 12.9717, 77.5947))
	require.NoError(t, index.Index(ctx, "mid", 12.9750, 77.5980))

	matches, err := index.Search(ctx, 12.9716, 77.5946, 5.0)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "near", matches[0].AdID)
	assert.Equal(t, "mid", matches[1].AdID)
	assert.Equal(t, "far", matches[2].AdID)
	assert.LessOrEqual(t, matches[0].DistanceKm, matches[1].DistanceKm)
	assert.LessOrEqual(t, matches[1].DistanceKm, matches[2].DistanceKm)
}

func TestGridIndex_ExactPointZeroDistance(t *testing.T) {
	ctx := context.Background()
	index := NewGridIndex(0.5)

	require.NoError(t, index.Index(ctx, "a1", 12.9716, 77.5946))

	matches, err := index.Search(ctx, 12.9716, 77.5946, 1.0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.InDelta(t, 0, matches[0].DistanceKm, 1e-9)
}

func TestGridIndex_IndexIsIdempotentAndReplaces(t *testing.T) {
	ctx := context.Background()
	index := NewGridIndex(0.5)

	require.NoError(t, index.Index(ctx, "a1", 12.9716, 77.5946))
	require.NoError(t, index.Index(ctx, "a1", 12.9716, 77.5946))
	assert.Equal(t, 1, index.Size())

	// Move the point far away; the old cell entry must be gone.
	require.NoError(t, index.Index(ctx, "a1", 13.0827, 80.2707))
	assert.Equal(t, 1, index.Size())

	matches, err := index.Search(ctx, 12.9716, 77.5946, 1.0)
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = index.Search(ctx, 13.0827, 80.2707, 1.0)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "a1", matches[0].AdID)
}

func TestGridIndex_EmptyIndex(t *testing.T) {
	index := NewGridIndex(0.5)

	matches, err := index.Search(context.Background(), 25.0, 121.0, 1.0)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestGridIndex_TiesBreakByAdID(t *testing.T) {
	ctx := context.Background()
	index := NewGridIndex(0.5)

	// Two ads at the identical coordinate.
	require.NoError(t, index.Index(ctx, "b", 12.9716, 77.5946))
	require.NoError(t, index.Index(ctx, "a", 12.9716, 77.5946))

	matches, err := index.Search(ctx, 12.9716, 77.5946, 1.0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].AdID)
	assert.Equal(t, "b", matches[1].AdID)
}

func TestGridIndex_ConcurrentIndexAndSearch(t *testing.T) {
	ctx := context.Background()
	index := NewGridIndex(0.5)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = index.Index(ctx, fmt.Sprintf("ad-%d", n), 12.9716+float64(n)*1e-5, 77.5946)
		}(i)
		go func() {
			defer wg.Done()
			matches, err := index.Search(ctx, 12.9716, 77.5946, 1.0)
			assert.NoError(t, err)
			for _, m := range matches {
				// A search must never observe a half-written point.
				assert.NotEmpty(t, m.AdID)
				assert.LessOrEqual(t, m.DistanceKm, 1.0)
			}
		}()
	}
	wg.Wait()

	matches, err := index.Search(ctx, 12.9716, 77.5946, 1.0)
	require.NoError(t, err)
	assert.Len(t, matches, 50)
}
