package spectral

import (
	"fmt"
	"slices"
	"sort"

	"github.com/cwbudde/algo-spectral/internal/hermitian"
	"github.com/cwbudde/algo-spectral/internal/parallel"
	"github.com/cwbudde/algo-spectral/tensor"
)

// MirrorSpec describes a conjugate-symmetry expansion: the half-extent
// source index space and the dimensions along which destination indices are
// reflected as (size - i) mod size with conjugation.
type MirrorSpec struct {
	// HalfSizes is the per-dimension extent of the source space.
	HalfSizes []int

	// MirroredDims holds the indices of reflected dimensions. Every entry
	// must be less than len(HalfSizes).
	MirroredDims []int
}

// expandGrain is the minimum number of half-space cells per worker range.
const expandGrain = 32768

// ExpandConjugateSymmetry fills out with the values of in extended by
// conjugate symmetry along the mirrored dimensions. in and out must share
// an element type, which must be complex; they may alias the same buffer,
// the usual case when expanding a one-sided result in place. The mirrored
// destination addresses of distinct source cells are distinct by
// construction, so the fill is parallelized over disjoint ranges of the
// flattened source space.
//
// Bounds are the caller's responsibility: every source cell and its mirror
// destination must lie inside the respective buffers.
func ExpandConjugateSymmetry(mirror MirrorSpec, in, out *tensor.Array) error {
	if !in.Dtype().IsComplex() || in.Dtype() != out.Dtype() {
		return fmt.Errorf("%w: expansion requires matching complex dtypes, got %v and %v",
			ErrUnsupportedDtype, in.Dtype(), out.Dtype())
	}
	ndim := len(mirror.HalfSizes)
	if ndim == 0 || in.Rank() != ndim || out.Rank() != ndim {
		return fmt.Errorf("%w: %d half sizes for arrays of rank %d and %d",
			ErrShapeMismatch, ndim, in.Rank(), out.Rank())
	}
	kinds := make([]hermitian.DimKind, ndim)
	for _, d := range mirror.MirroredDims {
		if d < 0 || d >= ndim {
			return fmt.Errorf("%w: mirrored dimension %d out of range", ErrShapeMismatch, d)
		}
		kinds[d] = hermitian.Mirrored
	}

	layout := hermitian.Layout{
		HalfSizes:  mirror.HalfSizes,
		Kinds:      kinds,
		InStrides:  in.Strides(),
		InOffset:   in.Offset(),
		OutStrides: out.Strides(),
		OutOffset:  out.Offset(),
	}
	numel := layout.Numel()
	if numel == 0 {
		return nil
	}

	switch src := in.Data().(type) {
	case []complex64:
		dst := out.Data().([]complex64)
		parallel.For(numel, expandGrain, func(begin, end int) {
			hermitian.ExpandSlice(layout, begin, end, src, dst)
		})
	case []complex128:
		dst := out.Data().([]complex128)
		parallel.For(numel, expandGrain, func(begin, end int) {
			hermitian.ExpandSlice(layout, begin, end, src, dst)
		})
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedDtype, in.Dtype())
	}
	return nil
}

// ExpandConjugateSymmetryInPlace expands a one-sided transform result held
// in arr into its full conjugate-symmetric form, in place. dims lists the
// transform axes; only bins [0, n/2] of the last listed axis need hold
// valid data, where n is that axis's extent.
//
// The last listed axis is mirrored through a negative output stride with
// shifted base offsets, so its half extent is (n-1)/2 and bin 0 and the
// even-n Nyquist bin are never written. The remaining listed axes are
// reflected as (size - i) mod size. Dimensions are walked in increasing
// input-stride order for locality.
func ExpandConjugateSymmetryInPlace(arr *tensor.Array, dims []int) error {
	if !arr.Dtype().IsComplex() {
		return fmt.Errorf("%w: %v", ErrUnsupportedDtype, arr.Dtype())
	}
	if len(dims) == 0 {
		return fmt.Errorf("%w: no transform dimensions", ErrShapeMismatch)
	}
	ndim := arr.Rank()
	for _, d := range dims {
		if d < 0 || d >= ndim {
			return fmt.Errorf("%w: dimension %d out of range for rank %d", ErrShapeMismatch, d, ndim)
		}
	}

	last := dims[len(dims)-1]
	if arr.Numel() == 0 || arr.Size(last) <= 2 {
		return nil // no elements need writing
	}

	inStrides := slices.Clone(arr.Strides())
	outStrides := slices.Clone(arr.Strides())
	halfSizes := slices.Clone(arr.Shape())
	mirrored := make([]bool, ndim)
	for _, d := range dims[:len(dims)-1] {
		mirrored[d] = true
	}

	n := arr.Size(last)
	stride := arr.Stride(last)
	halfSizes[last] = (n - 1) / 2
	outStrides[last] = -stride
	inOff := arr.Offset() + stride
	outOff := arr.Offset() + stride*(n-1)

	// Reorder dimensions by input stride to maximize data locality.
	perm := make([]int, ndim)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return inStrides[perm[a]] < inStrides[perm[b]]
	})

	permHalf := make([]int, ndim)
	permIn := make([]int, ndim)
	permOut := make([]int, ndim)
	var mirroredDims []int
	for i, p := range perm {
		permHalf[i] = halfSizes[p]
		permIn[i] = inStrides[p]
		permOut[i] = outStrides[p]
		if mirrored[p] {
			mirroredDims = append(mirroredDims, i)
		}
	}

	in := arr.AsStrided(permHalf, permIn, inOff)
	out := arr.AsStrided(permHalf, permOut, outOff)
	return ExpandConjugateSymmetry(MirrorSpec{HalfSizes: permHalf, MirroredDims: mirroredDims}, in, out)
}
