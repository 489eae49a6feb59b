// Package hermitian implements the strided index-space walker that mirrors
// the computed half of a one-sided transform result into the implied
// conjugate-symmetric half.
//
// The walker treats the half-extent shape as an n-dimensional space with
// dimension 0 innermost. A worker is handed a contiguous range of the
// flattened space and derives its own cursor and buffer offsets from the
// range alone, so disjoint ranges touch disjoint destination elements.
package hermitian

// Complex is a type constraint for the element types the walker supports.
// Conjugation requires a defined imaginary component, so real element types
// are rejected one layer up.
type Complex interface {
	~complex64 | ~complex128
}

// DimKind selects the per-dimension offset rule of the destination buffer.
type DimKind uint8

const (
	// Identity advances the destination in step with the source.
	Identity DimKind = iota
	// Mirrored reflects the destination index as (size - i) mod size,
	// the Hermitian mirror position of source index i.
	Mirrored
)

// Seek returns the destination offset contribution of position idx along a
// dimension of the given size and stride.
func (k DimKind) Seek(idx, size, stride int) int {
	if idx == 0 {
		return 0
	}
	if k == Mirrored {
		return (size - idx) * stride
	}
	return idx * stride
}

// Advance returns the offset delta when moving from position idx-1 to idx.
// idx must be at least 1. Seek(idx) == Seek(idx-1) + Advance(idx) holds for
// every position, which makes the incremental walk equivalent to reseeking.
func (k DimKind) Advance(idx, size, stride int) int {
	if k == Mirrored {
		if idx == 1 {
			return (size - 1) * stride
		}
		return -stride
	}
	return stride
}

// Layout describes one expansion: the half-extent index space and the
// strided addressing of the source and destination buffers. Offsets and
// strides are in element units; strides may be negative.
type Layout struct {
	HalfSizes  []int
	Kinds      []DimKind
	InStrides  []int
	InOffset   int
	OutStrides []int
	OutOffset  int
}

// Numel returns the number of cells in the half-extent index space.
func (l *Layout) Numel() int {
	n := 1
	for _, s := range l.HalfSizes {
		n *= s
	}
	return n
}

// linearToIndex fills index with the cursor position of flat position pos,
// with dimension 0 varying fastest.
func linearToIndex(pos int, sizes, index []int) {
	index[0] = pos % sizes[0]
	pos /= sizes[0]
	for i := 1; i < len(sizes) && pos > 0; i++ {
		index[i] = pos % sizes[i]
		pos /= sizes[i]
	}
}

// ExpandSlice conjugate-mirrors the flattened half-space positions
// [begin, end) from in to out. Dimension 0 is iterated as the innermost run;
// higher dimensions advance through a mixed-radix carry. Bounds are
// guaranteed by the caller's construction of the layout.
func ExpandSlice[T Complex](l Layout, begin, end int, in, out []T) {
	ndim := len(l.HalfSizes)
	index := make([]int, ndim)
	inOff := l.InOffset
	outOff := l.OutOffset

	// Advance the cursor by one run of dimension 0, carrying over with
	// wraparound like a mixed-radix counter. A wrapped dimension rewinds by
	// its full seek offset, which is exact even for extents of 1.
	advanceRow := func() {
		for i := 1; i < ndim; i++ {
			if index[i]+1 < l.HalfSizes[i] {
				index[i]++
				inOff += l.InStrides[i]
				outOff += l.Kinds[i].Advance(index[i], l.HalfSizes[i], l.OutStrides[i])
				return
			}
			inOff -= l.InStrides[i] * index[i]
			outOff -= l.Kinds[i].Seek(index[i], l.HalfSizes[i], l.OutStrides[i])
			index[i] = 0
		}
	}

	// The assigned range may start part-way into the space; position the
	// cursor and offsets at its first cell. Dimension 0 is left to the row
	// loops below, which index relative to the row base.
	if begin > 0 {
		linearToIndex(begin, l.HalfSizes, index)
		for i := 1; i < ndim; i++ {
			if index[i] > 0 {
				inOff += l.InStrides[i] * index[i]
				outOff += l.Kinds[i].Seek(index[i], l.HalfSizes[i], l.OutStrides[i])
			}
		}
	}

	remaining := end - begin
	size0 := l.HalfSizes[0]
	istr0 := l.InStrides[0]
	ostr0 := l.OutStrides[0]

	if l.Kinds[0] == Mirrored {
		// Hermitian-mirrored innermost dimension. Index 0 maps to
		// (size - 0) mod size, i.e. offset 0: the mirror of the zero
		// frequency is itself.
		if index[0] > 0 {
			rowEnd := min(size0, index[0]+remaining)
			for i := index[0]; i < rowEnd; i++ {
				out[outOff+(size0-i)*ostr0] = conj(in[inOff+i*istr0])
			}
			remaining -= rowEnd - index[0]
			index[0] = 0
			advanceRow()
		}
		for remaining > 0 {
			rowEnd := min(size0, remaining)
			out[outOff] = conj(in[inOff])
			for i := 1; i < rowEnd; i++ {
				out[outOff+(size0-i)*ostr0] = conj(in[inOff+i*istr0])
			}
			remaining -= rowEnd
			advanceRow()
		}
	} else {
		// Plain conjugated copy along the innermost dimension.
		for remaining > 0 {
			rowEnd := min(size0, index[0]+remaining)
			for i := index[0]; i < rowEnd; i++ {
				out[outOff+i*ostr0] = conj(in[inOff+i*istr0])
			}
			remaining -= rowEnd - index[0]
			index[0] = 0
			advanceRow()
		}
	}
}

func conj[T Complex](v T) T {
	switch x := any(v).(type) {
	case complex64:
		return any(complex(real(x), -imag(x))).(T)
	case complex128:
		return any(complex(real(x), -imag(x))).(T)
	default:
		return v
	}
}
