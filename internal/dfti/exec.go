package dfti

import (
	"errors"
	"fmt"
	"slices"
)

// ComputeForward executes the committed descriptor in the forward direction
// over raw scalar buffers. Buffer element types must match the descriptor's
// precision; complex values are interleaved scalar pairs.
func (d *Descriptor) ComputeForward(in, out any) error {
	return d.compute(in, out, false)
}

// ComputeBackward executes the committed descriptor in the backward
// direction.
func (d *Descriptor) ComputeBackward(in, out any) error {
	return d.compute(in, out, true)
}

// buffer adapts a scalar slice for strided real and complex access.
// Complex offsets are in complex-element units.
type buffer interface {
	loadReal(off int) float64
	storeReal(off int, v float64)
	loadComplex(off int) complex128
	storeComplex(off int, v complex128)
}

type f32buf []float32

func (b f32buf) loadReal(off int) float64     { return float64(b[off]) }
func (b f32buf) storeReal(off int, v float64) { b[off] = float32(v) }
func (b f32buf) loadComplex(off int) complex128 {
	return complex(float64(b[2*off]), float64(b[2*off+1]))
}

func (b f32buf) storeComplex(off int, v complex128) {
	b[2*off] = float32(real(v))
	b[2*off+1] = float32(imag(v))
}

type f64buf []float64

func (b f64buf) loadReal(off int) float64       { return b[off] }
func (b f64buf) storeReal(off int, v float64)   { b[off] = v }
func (b f64buf) loadComplex(off int) complex128 { return complex(b[2*off], b[2*off+1]) }
func (b f64buf) storeComplex(off int, v complex128) {
	b[2*off] = real(v)
	b[2*off+1] = imag(v)
}

func (d *Descriptor) compute(in, out any, backward bool) error {
	if !d.committed {
		return errors.New("dfti: descriptor not committed")
	}

	var src, dst buffer
	switch d.prec {
	case Single:
		s, ok := in.([]float32)
		t, ok2 := out.([]float32)
		if !ok || !ok2 {
			return fmt.Errorf("dfti: single precision requires []float32 buffers, got %T and %T", in, out)
		}
		src, dst = f32buf(s), f32buf(t)
	case Double:
		s, ok := in.([]float64)
		t, ok2 := out.([]float64)
		if !ok || !ok2 {
			return fmt.Errorf("dfti: double precision requires []float64 buffers, got %T and %T", in, out)
		}
		src, dst = f64buf(s), f64buf(t)
	}

	scale := d.fwdScale
	if backward {
		scale = d.bwdScale
	}
	// Scales are applied in the working precision.
	if d.prec == Single {
		scale = float64(float32(scale))
	}

	if d.domain == DomainComplex {
		d.runComplex(src, dst, backward, scale)
		return nil
	}
	if backward {
		d.runRealBackward(src, dst, scale)
	} else {
		d.runRealForward(src, dst, scale)
	}
	return nil
}

func (d *Descriptor) runComplex(src, dst buffer, backward bool, scale float64) {
	sizes := longsToInts(d.sizes)
	istr := longsToInts(d.istrides)
	ostr := longsToInts(d.ostrides)
	work := make([]complex128, prod(sizes))

	for b := 0; b < int(d.transforms); b++ {
		gatherComplex(work, src, istr[0]+b*int(d.idist), sizes, istr[1:])
		for axis := len(sizes) - 1; axis >= 0; axis-- {
			d.transformAxis(work, sizes, axis, backward)
		}
		scaleWork(work, scale)
		scatterComplex(work, dst, ostr[0]+b*int(d.odist), sizes, ostr[1:])
	}
}

// runRealForward computes the real-to-complex transform, storing the
// conjugate-even result one-sided: only bins [0, n/2] of the last transform
// axis are written.
func (d *Descriptor) runRealForward(src, dst buffer, scale float64) {
	sizes := longsToInts(d.sizes)
	istr := longsToInts(d.istrides)
	ostr := longsToInts(d.ostrides)
	rank := len(sizes)
	n := sizes[rank-1]

	half := slices.Clone(sizes)
	half[rank-1] = n/2 + 1
	rowLen := half[rank-1]
	prefix := half[:rank-1]
	rows := prod(prefix)

	rwork := make([]float64, n)
	coeff := make([]complex128, rowLen)
	work := make([]complex128, rows*rowLen)
	lastStride := istr[rank]

	for b := 0; b < int(d.transforms); b++ {
		off := istr[0] + b*int(d.idist)
		index := make([]int, rank-1)
		for r := 0; r < rows; r++ {
			for i := 0; i < n; i++ {
				rwork[i] = src.loadReal(off + i*lastStride)
			}
			d.rfft.Coefficients(coeff, rwork)
			copy(work[r*rowLen:(r+1)*rowLen], coeff)

			for dim := rank - 2; dim >= 0; dim-- {
				index[dim]++
				off += istr[1+dim]
				if index[dim] < prefix[dim] {
					break
				}
				off -= istr[1+dim] * prefix[dim]
				index[dim] = 0
			}
		}
		for axis := rank - 2; axis >= 0; axis-- {
			d.transformAxis(work, half, axis, false)
		}
		scaleWork(work, scale)
		scatterComplex(work, dst, ostr[0]+b*int(d.odist), half, ostr[1:])
	}
}

// runRealBackward computes the complex-to-real transform from a one-sided
// conjugate-even input: only bins [0, n/2] of the last transform axis are
// read.
func (d *Descriptor) runRealBackward(src, dst buffer, scale float64) {
	sizes := longsToInts(d.sizes)
	istr := longsToInts(d.istrides)
	ostr := longsToInts(d.ostrides)
	rank := len(sizes)
	n := sizes[rank-1]

	half := slices.Clone(sizes)
	half[rank-1] = n/2 + 1
	rowLen := half[rank-1]
	prefix := half[:rank-1]
	rows := prod(prefix)

	rwork := make([]float64, n)
	coeff := make([]complex128, rowLen)
	work := make([]complex128, rows*rowLen)
	lastStride := ostr[rank]

	for b := 0; b < int(d.transforms); b++ {
		gatherComplex(work, src, istr[0]+b*int(d.idist), half, istr[1:])
		for axis := 0; axis <= rank-2; axis++ {
			d.transformAxis(work, half, axis, true)
		}

		off := ostr[0] + b*int(d.odist)
		index := make([]int, rank-1)
		for r := 0; r < rows; r++ {
			copy(coeff, work[r*rowLen:(r+1)*rowLen])
			d.rfft.Sequence(rwork, coeff)
			for i := 0; i < n; i++ {
				dst.storeReal(off+i*lastStride, rwork[i]*scale)
			}

			for dim := rank - 2; dim >= 0; dim-- {
				index[dim]++
				off += ostr[1+dim]
				if index[dim] < prefix[dim] {
					break
				}
				off -= ostr[1+dim] * prefix[dim]
				index[dim] = 0
			}
		}
	}
}

// transformAxis applies the 1-D complex transform along one axis of a dense
// row-major work grid.
func (d *Descriptor) transformAxis(work []complex128, sizes []int, axis int, backward bool) {
	n := sizes[axis]
	if n == 1 {
		return
	}
	fft := d.cffts[n]

	inner := 1
	for _, s := range sizes[axis+1:] {
		inner *= s
	}
	outer := 1
	for _, s := range sizes[:axis] {
		outer *= s
	}

	line := make([]complex128, n)
	res := make([]complex128, n)
	for o := 0; o < outer; o++ {
		base := o * n * inner
		for j := 0; j < inner; j++ {
			for i := 0; i < n; i++ {
				line[i] = work[base+j+i*inner]
			}
			if backward {
				fft.Sequence(res, line)
			} else {
				fft.Coefficients(res, line)
			}
			for i := 0; i < n; i++ {
				work[base+j+i*inner] = res[i]
			}
		}
	}
}

func gatherComplex(work []complex128, src buffer, base int, sizes, strides []int) {
	index := make([]int, len(sizes))
	off := base
	for k := range work {
		work[k] = src.loadComplex(off)
		for dim := len(sizes) - 1; dim >= 0; dim-- {
			index[dim]++
			off += strides[dim]
			if index[dim] < sizes[dim] {
				break
			}
			off -= strides[dim] * sizes[dim]
			index[dim] = 0
		}
	}
}

func scatterComplex(work []complex128, dst buffer, base int, sizes, strides []int) {
	index := make([]int, len(sizes))
	off := base
	for k := range work {
		dst.storeComplex(off, work[k])
		for dim := len(sizes) - 1; dim >= 0; dim-- {
			index[dim]++
			off += strides[dim]
			if index[dim] < sizes[dim] {
				break
			}
			off -= strides[dim] * sizes[dim]
			index[dim] = 0
		}
	}
}

func scaleWork(work []complex128, scale float64) {
	if scale == 1 {
		return
	}
	for i := range work {
		work[i] *= complex(scale, 0)
	}
}

func longsToInts(v []Long) []int {
	out := make([]int, len(v))
	for i, x := range v {
		out[i] = int(x)
	}
	return out
}

func prod(v []int) int {
	n := 1
	for _, x := range v {
		n *= x
	}
	return n
}
