package hermitian

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDimKindSeekAdvanceConsistency(t *testing.T) {
	t.Parallel()

	for _, kind := range []DimKind{Identity, Mirrored} {
		for _, stride := range []int{-3, 1, 4} {
			for size := 1; size <= 6; size++ {
				require.Zero(t, kind.Seek(0, size, stride))
				for idx := 1; idx < size; idx++ {
					got := kind.Seek(idx-1, size, stride) + kind.Advance(idx, size, stride)
					require.Equal(t, kind.Seek(idx, size, stride), got,
						"kind=%d size=%d stride=%d idx=%d", kind, size, stride, idx)
				}
			}
		}
	}
}

func TestMirroredSeekReflects(t *testing.T) {
	t.Parallel()

	const size, stride = 5, 7

	require.Equal(t, 0, Mirrored.Seek(0, size, stride))
	for idx := 1; idx < size; idx++ {
		require.Equal(t, (size-idx)*stride, Mirrored.Seek(idx, size, stride))
	}
}

func TestLinearToIndexRoundTrip(t *testing.T) {
	t.Parallel()

	sizes := []int{3, 1, 4, 2}
	numel := 3 * 1 * 4 * 2
	index := make([]int, len(sizes))

	for pos := 0; pos < numel; pos++ {
		for i := range index {
			index[i] = 0
		}
		linearToIndex(pos, sizes, index)

		flat, radix := 0, 1
		for i, s := range sizes {
			require.Less(t, index[i], s, "pos %d dim %d", pos, i)
			flat += index[i] * radix
			radix *= s
		}
		require.Equal(t, pos, flat, "pos %d decoded to %v", pos, index)
	}
}

// randomLayout builds a dense layout over random half sizes with dimension 0
// fastest, and a random subset of mirrored dimensions. Mirrored dimensions
// keep their full extent, so all mirror targets stay in bounds.
func randomLayout(rng *rand.Rand) Layout {
	ndim := 1 + rng.Intn(3)
	sizes := make([]int, ndim)
	kinds := make([]DimKind, ndim)
	strides := make([]int, ndim)
	radix := 1
	for i := 0; i < ndim; i++ {
		sizes[i] = 1 + rng.Intn(4)
		strides[i] = radix
		radix *= sizes[i]
		if rng.Intn(2) == 1 {
			kinds[i] = Mirrored
		}
	}
	return Layout{
		HalfSizes:  sizes,
		Kinds:      kinds,
		InStrides:  strides,
		OutStrides: strides,
	}
}

// expandReference computes the expansion by reseeking every cell from
// scratch, the naive counterpart of the incremental walker.
func expandReference(l Layout, in, out []complex128) {
	ndim := len(l.HalfSizes)
	index := make([]int, ndim)
	for pos := 0; pos < l.Numel(); pos++ {
		for i := range index {
			index[i] = 0
		}
		linearToIndex(pos, l.HalfSizes, index)

		inOff, outOff := l.InOffset, l.OutOffset
		for i := 0; i < ndim; i++ {
			inOff += index[i] * l.InStrides[i]
			outOff += l.Kinds[i].Seek(index[i], l.HalfSizes[i], l.OutStrides[i])
		}
		out[outOff] = conj(in[inOff])
	}
}

func TestExpandSliceMatchesReference(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(31))
	for loopIdx := 0; loopIdx < 200; loopIdx++ {
		l := randomLayout(rng)
		numel := l.Numel()

		in := make([]complex128, numel)
		for i := range in {
			in[i] = complex(rng.NormFloat64(), rng.NormFloat64())
		}

		want := make([]complex128, numel)
		expandReference(l, in, want)

		got := make([]complex128, numel)
		ExpandSlice(l, 0, numel, in, got)

		require.Equal(t, want, got, "layout %+v", l)
	}
}

// Splitting the flat range across workers must write exactly the cells a
// single full-range walk writes.
func TestExpandSliceSplitEquivalence(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(47))
	for loopIdx := 0; loopIdx < 200; loopIdx++ {
		l := randomLayout(rng)
		numel := l.Numel()

		in := make([]complex128, numel)
		for i := range in {
			in[i] = complex(rng.NormFloat64(), rng.NormFloat64())
		}

		want := make([]complex128, numel)
		ExpandSlice(l, 0, numel, in, want)

		got := make([]complex128, numel)
		a := rng.Intn(numel + 1)
		b := a + rng.Intn(numel-a+1)
		ExpandSlice(l, 0, a, in, got)
		ExpandSlice(l, a, b, in, got)
		ExpandSlice(l, b, numel, in, got)

		require.Equal(t, want, got, "layout %+v splits (%d,%d)", l, a, b)
	}
}

func TestExpandSliceComplex64(t *testing.T) {
	t.Parallel()

	l := Layout{
		HalfSizes:  []int{4},
		Kinds:      []DimKind{Mirrored},
		InStrides:  []int{1},
		OutStrides: []int{1},
	}

	in := []complex64{1 + 1i, 2 + 2i, 3 + 3i, 4 + 4i}
	out := make([]complex64, 4)
	ExpandSlice(l, 0, 4, in, out)

	require.Equal(t, []complex64{1 - 1i, 4 - 4i, 3 - 3i, 2 - 2i}, out)
}
