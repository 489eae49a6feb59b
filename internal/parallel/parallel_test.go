package parallel

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForCoversRangeExactlyOnce(t *testing.T) {
	t.Parallel()

	const n = 100003

	counts := make([]int32, n)
	var outOfBounds atomic.Int32
	For(n, 7, func(begin, end int) {
		if begin < 0 || begin >= end || end > n {
			outOfBounds.Add(1)
			return
		}
		for i := begin; i < end; i++ {
			atomic.AddInt32(&counts[i], 1)
		}
	})
	require.Zero(t, outOfBounds.Load())

	for i, c := range counts {
		require.EqualValues(t, 1, c, "index %d", i)
	}
}

func TestForSmallRangeRunsInline(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		calls [][2]int
	)
	For(5, 100, func(begin, end int) {
		mu.Lock()
		calls = append(calls, [2]int{begin, end})
		mu.Unlock()
	})

	require.Equal(t, [][2]int{{0, 5}}, calls)
}

func TestForRespectsGrain(t *testing.T) {
	t.Parallel()

	var (
		mu    sync.Mutex
		sizes []int
	)
	For(1000, 64, func(begin, end int) {
		mu.Lock()
		sizes = append(sizes, end-begin)
		mu.Unlock()
	})

	total, short := 0, 0
	for _, s := range sizes {
		if s < 64 {
			short++
		}
		total += s
	}
	require.Equal(t, 1000, total)
	// Only the tail chunk may come in under the grain.
	require.LessOrEqual(t, short, 1)
}

func TestForEmptyRange(t *testing.T) {
	t.Parallel()

	called := false
	For(0, 1, func(begin, end int) { called = true })
	require.False(t, called)

	For(-3, 1, func(begin, end int) { called = true })
	require.False(t, called)
}

func TestForZeroGrain(t *testing.T) {
	t.Parallel()

	counts := make([]int32, 64)
	For(len(counts), 0, func(begin, end int) {
		for i := begin; i < end; i++ {
			atomic.AddInt32(&counts[i], 1)
		}
	})
	for i, c := range counts {
		require.EqualValues(t, 1, c, "index %d", i)
	}
}
