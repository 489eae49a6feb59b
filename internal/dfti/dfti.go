// Package dfti models a DFTI-style transform-plan interface: a descriptor is
// created for a precision, forward domain, and signal size, configured with
// placement, batch, distance, and stride options, committed, and then
// executed over raw scalar buffers. The transform math is delegated to
// gonum's fourier package.
//
// Complex data is interleaved (real, imaginary) scalar pairs. Strides and
// distances are expressed in complex-element units on complex sides of a
// transform and in scalar units on real sides, following the DFTI
// convention.
package dfti

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Long is the descriptor API's integer type. It is deliberately narrower
// than int; callers must range-check configuration values against LongMax.
type Long int32

// LongMax is the largest value representable by Long.
const LongMax = math.MaxInt32

// Precision selects the working floating-point width of a descriptor.
type Precision uint8

// Descriptor precisions.
const (
	Single Precision = iota
	Double
)

// Domain describes the forward domain of a transform. A real-domain
// descriptor computes real-to-complex transforms forward and
// complex-to-real transforms backward.
type Domain uint8

// Forward domains.
const (
	DomainReal Domain = iota
	DomainComplex
)

// Placement selects in-place or out-of-place execution.
type Placement uint8

// Placements. InPlace is the descriptor default, matching the vendor
// convention, but is not implemented by this backend.
const (
	InPlace Placement = iota
	OutOfPlace
)

// Storage selects how the conjugate-even (one-sided) result of a
// real-domain transform is stored.
type Storage uint8

// Conjugate-even storage schemes. Only StorageComplexComplex, which stores
// both real and imaginary parts explicitly, is implemented.
const (
	StorageComplexReal Storage = iota
	StorageComplexComplex
)

// Descriptor accumulates a transform configuration. A zero distance with a
// batch greater than one, mismatched stride vector lengths, or unsupported
// placement/storage combinations are rejected at Commit time.
type Descriptor struct {
	prec   Precision
	domain Domain
	sizes  []Long

	placement  Placement
	transforms Long
	idist      Long
	odist      Long
	istrides   []Long
	ostrides   []Long
	storage    Storage
	fwdScale   float64
	bwdScale   float64

	committed bool
	cffts     map[int]*fourier.CmplxFFT
	rfft      *fourier.FFT
}

// New creates a descriptor for a transform of the given precision, forward
// domain, and per-axis signal sizes. The rank is len(sizes).
func New(prec Precision, domain Domain, sizes []Long) (*Descriptor, error) {
	if len(sizes) == 0 {
		return nil, errors.New("dfti: transform rank must be at least 1")
	}
	for _, n := range sizes {
		if n < 1 {
			return nil, fmt.Errorf("dfti: invalid transform size %d", n)
		}
	}
	return &Descriptor{
		prec:       prec,
		domain:     domain,
		sizes:      slices.Clone(sizes),
		transforms: 1,
		fwdScale:   1,
		bwdScale:   1,
	}, nil
}

// Rank returns the number of transform axes.
func (d *Descriptor) Rank() int { return len(d.sizes) }

// SetPlacement configures in-place or out-of-place execution.
func (d *Descriptor) SetPlacement(p Placement) {
	d.placement = p
	d.committed = false
}

// SetNumberOfTransforms configures the batch count.
func (d *Descriptor) SetNumberOfTransforms(n Long) {
	d.transforms = n
	d.committed = false
}

// SetInputDistance configures the element distance between consecutive
// batch items in the input buffer.
func (d *Descriptor) SetInputDistance(dist Long) {
	d.idist = dist
	d.committed = false
}

// SetOutputDistance configures the element distance between consecutive
// batch items in the output buffer.
func (d *Descriptor) SetOutputDistance(dist Long) {
	d.odist = dist
	d.committed = false
}

// SetInputStrides configures the input stride vector. The vector holds
// rank+1 values; the first is a flat element offset, the rest are per-axis
// strides.
func (d *Descriptor) SetInputStrides(strides []Long) {
	d.istrides = slices.Clone(strides)
	d.committed = false
}

// SetOutputStrides configures the output stride vector, with the same
// layout as SetInputStrides.
func (d *Descriptor) SetOutputStrides(strides []Long) {
	d.ostrides = slices.Clone(strides)
	d.committed = false
}

// SetConjugateEvenStorage configures how the one-sided result of a
// real-domain transform is stored.
func (d *Descriptor) SetConjugateEvenStorage(s Storage) {
	d.storage = s
	d.committed = false
}

// SetForwardScale configures the factor applied to forward results.
func (d *Descriptor) SetForwardScale(scale float64) {
	d.fwdScale = scale
	d.committed = false
}

// SetBackwardScale configures the factor applied to backward results.
func (d *Descriptor) SetBackwardScale(scale float64) {
	d.bwdScale = scale
	d.committed = false
}

// Commit validates the accumulated configuration and prepares the
// per-axis transform plans. It must be called before ComputeForward or
// ComputeBackward.
func (d *Descriptor) Commit() error {
	rank := len(d.sizes)
	if d.placement != OutOfPlace {
		return errors.New("dfti: in-place transforms are not supported")
	}
	if d.domain == DomainReal && d.storage != StorageComplexComplex {
		return errors.New("dfti: packed conjugate-even storage is not supported")
	}
	if d.transforms < 1 {
		return fmt.Errorf("dfti: invalid number of transforms %d", d.transforms)
	}
	if d.transforms > 1 && (d.idist == 0 || d.odist == 0) {
		return errors.New("dfti: batched transform requires nonzero distances")
	}
	if len(d.istrides) != rank+1 {
		return fmt.Errorf("dfti: input strides hold %d values, want %d", len(d.istrides), rank+1)
	}
	if len(d.ostrides) != rank+1 {
		return fmt.Errorf("dfti: output strides hold %d values, want %d", len(d.ostrides), rank+1)
	}

	d.cffts = make(map[int]*fourier.CmplxFFT)
	complexAxes := d.sizes
	if d.domain == DomainReal {
		complexAxes = d.sizes[:rank-1]
		d.rfft = fourier.NewFFT(int(d.sizes[rank-1]))
	}
	for _, n := range complexAxes {
		if _, ok := d.cffts[int(n)]; !ok {
			d.cffts[int(n)] = fourier.NewCmplxFFT(int(n))
		}
	}

	d.committed = true
	return nil
}
