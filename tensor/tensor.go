// Package tensor provides the strided n-dimensional array container consumed
// by the spectral transform driver.
//
// An Array couples a flat typed buffer with a shape, per-dimension strides in
// element units, and an element offset. Strides may be negative; views built
// with AsStrided share the backing buffer. The package implements only what
// the transform path needs: allocation, contiguous materialization, and
// reinterpretation of a real array with trailing dimension 2 as complex.
package tensor

import (
	"errors"
	"fmt"
	"slices"
	"unsafe"
)

// Elem is a type constraint for element types an Array can hold.
type Elem interface {
	~float32 | ~float64 | ~complex64 | ~complex128
}

// Dtype identifies the runtime element type of an Array.
type Dtype uint8

// Supported element types.
const (
	Float32 Dtype = iota
	Float64
	Complex64
	Complex128
)

// Size returns the element size in bytes.
func (d Dtype) Size() int {
	switch d {
	case Float32:
		return 4
	case Float64, Complex64:
		return 8
	case Complex128:
		return 16
	default:
		panic("tensor: unknown dtype")
	}
}

// String returns a human-readable name for the dtype.
func (d Dtype) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	default:
		return "unknown"
	}
}

// IsComplex reports whether the dtype is a complex type.
func (d Dtype) IsComplex() bool {
	return d == Complex64 || d == Complex128
}

// Complex returns the complex counterpart of a real dtype.
// The second result is false if d is already complex.
func (d Dtype) Complex() (Dtype, bool) {
	switch d {
	case Float32:
		return Complex64, true
	case Float64:
		return Complex128, true
	default:
		return d, false
	}
}

// Errors returned by view operations.
var (
	// ErrNotAligned is returned by ViewAsComplex when the real/imaginary
	// components are not layout-aligned for complex reinterpretation.
	ErrNotAligned = errors.New("tensor: layout not aligned for complex view")

	// ErrBadShape is returned when a shape, stride set, or backing buffer
	// length is inconsistent.
	ErrBadShape = errors.New("tensor: inconsistent shape")
)

// Array is a strided view over a flat typed buffer.
//
// The element at index (i0, ..., ik) lives at buffer position
// off + sum(strides[d]*id). The caller owns the buffer; Array never frees
// or reallocates it.
type Array struct {
	dtype   Dtype
	shape   []int
	strides []int
	off     int
	data    any
}

// Empty allocates a zeroed contiguous row-major array.
func Empty(dtype Dtype, shape []int) *Array {
	n := numelOf(shape)
	var data any
	switch dtype {
	case Float32:
		data = make([]float32, n)
	case Float64:
		data = make([]float64, n)
	case Complex64:
		data = make([]complex64, n)
	case Complex128:
		data = make([]complex128, n)
	}
	return &Array{
		dtype:   dtype,
		shape:   slices.Clone(shape),
		strides: contiguousStrides(shape),
		data:    data,
	}
}

// Of wraps an existing slice as a contiguous row-major array.
// The slice must hold at least the product of the shape's extents.
func Of[T Elem](shape []int, data []T) (*Array, error) {
	n := numelOf(shape)
	if len(data) < n {
		return nil, fmt.Errorf("%w: %d elements for shape %v", ErrBadShape, len(data), shape)
	}
	var zero T
	return &Array{
		dtype:   dtypeOf(zero),
		shape:   slices.Clone(shape),
		strides: contiguousStrides(shape),
		data:    data,
	}, nil
}

// Dtype returns the element type.
func (a *Array) Dtype() Dtype { return a.dtype }

// Rank returns the number of dimensions.
func (a *Array) Rank() int { return len(a.shape) }

// Shape returns the per-dimension extents. The slice must not be mutated.
func (a *Array) Shape() []int { return a.shape }

// Size returns the extent of dimension i.
func (a *Array) Size(i int) int { return a.shape[i] }

// Strides returns the per-dimension strides in element units.
// The slice must not be mutated.
func (a *Array) Strides() []int { return a.strides }

// Stride returns the stride of dimension i in element units.
func (a *Array) Stride(i int) int { return a.strides[i] }

// Offset returns the element offset of the logical origin.
func (a *Array) Offset() int { return a.off }

// Numel returns the number of logical elements.
func (a *Array) Numel() int { return numelOf(a.shape) }

// Data returns the backing buffer as one of []float32, []float64,
// []complex64, or []complex128.
func (a *Array) Data() any { return a.data }

// AsStrided returns a view sharing the backing buffer with the given shape,
// strides, and element offset. Bounds are the caller's responsibility.
func (a *Array) AsStrided(shape, strides []int, off int) *Array {
	return &Array{
		dtype:   a.dtype,
		shape:   slices.Clone(shape),
		strides: slices.Clone(strides),
		off:     off,
		data:    a.data,
	}
}

// IsContiguous reports whether the array is a dense row-major layout
// starting at offset zero.
func (a *Array) IsContiguous() bool {
	if a.off != 0 {
		return false
	}
	expect := 1
	for i := len(a.shape) - 1; i >= 0; i-- {
		if a.shape[i] != 1 && a.strides[i] != expect {
			return false
		}
		expect *= a.shape[i]
	}
	return true
}

// Contiguous returns a dense row-major array with the same contents.
// If the array is already contiguous it is returned unchanged, otherwise
// a freshly allocated copy is materialized.
func (a *Array) Contiguous() *Array {
	if a.IsContiguous() {
		return a
	}
	dst := Empty(a.dtype, a.shape)
	if a.Numel() == 0 {
		return dst
	}
	switch src := a.data.(type) {
	case []float32:
		gather(dst.data.([]float32), src, a.shape, a.strides, a.off)
	case []float64:
		gather(dst.data.([]float64), src, a.shape, a.strides, a.off)
	case []complex64:
		gather(dst.data.([]complex64), src, a.shape, a.strides, a.off)
	case []complex128:
		gather(dst.data.([]complex128), src, a.shape, a.strides, a.off)
	}
	return dst
}

// ViewAsComplex reinterprets a real array whose trailing dimension has
// extent 2 as a complex array, grouping adjacent (real, imaginary) pairs.
// The trailing stride must be 1 and every other stride and the offset must
// be even, otherwise ErrNotAligned is returned.
func (a *Array) ViewAsComplex() (*Array, error) {
	cdt, ok := a.dtype.Complex()
	if !ok {
		return nil, fmt.Errorf("%w: dtype %v is already complex", ErrNotAligned, a.dtype)
	}
	r := len(a.shape)
	if r == 0 || a.shape[r-1] != 2 {
		return nil, fmt.Errorf("%w: trailing dimension must have extent 2", ErrNotAligned)
	}
	if a.strides[r-1] != 1 || a.off%2 != 0 {
		return nil, ErrNotAligned
	}
	strides := make([]int, r-1)
	for i := 0; i < r-1; i++ {
		if a.strides[i]%2 != 0 {
			return nil, ErrNotAligned
		}
		strides[i] = a.strides[i] / 2
	}
	view := &Array{
		dtype:   cdt,
		shape:   slices.Clone(a.shape[:r-1]),
		strides: strides,
		off:     a.off / 2,
	}
	switch data := a.data.(type) {
	case []float32:
		view.data = reinterpret[complex64](data)
	case []float64:
		view.data = reinterpret[complex128](data)
	}
	return view, nil
}

// At returns the element at the given index vector.
func At[T Elem](a *Array, index ...int) T {
	return a.data.([]T)[a.elemOffset(index)]
}

// Put stores v at the given index vector.
func Put[T Elem](a *Array, v T, index ...int) {
	a.data.([]T)[a.elemOffset(index)] = v
}

func (a *Array) elemOffset(index []int) int {
	off := a.off
	for d, i := range index {
		off += i * a.strides[d]
	}
	return off
}

func numelOf(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

func contiguousStrides(shape []int) []int {
	strides := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

func dtypeOf[T Elem](v T) Dtype {
	switch any(v).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	}
	panic("tensor: unsupported element type")
}

// gather copies the strided source into a dense row-major destination,
// advancing a mixed-radix counter over the index space.
func gather[T Elem](dst, src []T, shape, strides []int, off int) {
	index := make([]int, len(shape))
	pos := off
	for k := range dst {
		dst[k] = src[pos]
		for d := len(shape) - 1; d >= 0; d-- {
			index[d]++
			pos += strides[d]
			if index[d] < shape[d] {
				break
			}
			pos -= strides[d] * shape[d]
			index[d] = 0
		}
	}
}

// reinterpret views a scalar slice as its paired complex type.
// Alignment holds because Go allocates float slices at element alignment
// matching the complex type's scalar parts.
func reinterpret[C Elem, F Elem](data []F) []C {
	if len(data) < 2 {
		return nil
	}
	return unsafe.Slice((*C)(unsafe.Pointer(&data[0])), len(data)/2)
}
