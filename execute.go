//go:build !purego

package spectral

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/internal/dfti"
	"github.com/cwbudde/algo-spectral/tensor"
)

// Execute runs the batched transform described by req over input and
// returns a freshly allocated output array of req.OutputShape.
//
// The input dtype must be float32 or float64; complex values are
// interleaved pairs along a trailing dimension of extent 2. When the
// transform is real-to-complex and req.Onesided is false, the
// conjugate-symmetric half the backend does not compute is filled in
// before returning.
//
// Execute may materialize one contiguous copy of the input: when complex
// pairs are not layout-aligned for reinterpretation, or when an input
// stride does not fit the descriptor's integer type but the contiguous
// layout would.
func Execute(input *tensor.Array, req TransformRequest) (*tensor.Array, error) {
	var prec dfti.Precision
	switch input.Dtype() {
	case tensor.Float32:
		prec = dfti.Single
	case tensor.Float64:
		prec = dfti.Double
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedDtype, input.Dtype())
	}

	rank := req.SignalRank
	if rank < 1 || len(req.SignalSizes) != rank {
		return nil, fmt.Errorf("%w: %d signal sizes for rank %d", ErrShapeMismatch, len(req.SignalSizes), rank)
	}
	if input.Rank() < rank+1 || len(req.OutputShape) < rank+1 {
		return nil, fmt.Errorf("%w: rank %d needs at least %d array dimensions", ErrShapeMismatch, rank, rank+1)
	}

	batch := input.Size(0)

	// Real/imaginary pairs must stay aligned when the buffer is addressed
	// in complex-element units: unit trailing stride, even element offset,
	// and even strides over the batch and transform axes.
	if req.ComplexInput {
		needContiguous := input.Stride(input.Rank()-1) != 1 || input.Offset()%2 != 0
		for i := 0; !needContiguous && i <= rank; i++ {
			needContiguous = input.Stride(i)%2 != 0
		}
		if needContiguous {
			input = input.Contiguous()
		}
	}

	// The descriptor API's integer type is narrower than int, so every
	// size, stride, and offset it will see must be validated first.
	needContiguous, err := dftiRangeCheck(input.Shape(), input.Strides(), input.Offset(), req.OutputShape, rank, req.ComplexInput)
	if err != nil {
		return nil, err
	}
	if needContiguous {
		input = input.Contiguous()
	}

	output := tensor.Empty(input.Dtype(), req.OutputShape)

	var domain dfti.Domain
	if !req.Inverse {
		domain = transformDomain(req.ComplexInput)
	} else {
		domain = transformDomain(req.ComplexOutput)
	}

	sizes := make([]dfti.Long, rank)
	for i, n := range req.SignalSizes {
		sizes[i] = dfti.Long(n)
	}
	desc, err := dfti.New(prec, domain, sizes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanCommit, err)
	}

	desc.SetPlacement(dfti.OutOfPlace)
	desc.SetNumberOfTransforms(dfti.Long(batch))

	// Batch distance and per-axis strides are halved on complex sides,
	// where the descriptor counts complex elements rather than scalars.
	idist := input.Stride(0)
	if req.ComplexInput {
		idist >>= 1
	}
	odist := output.Stride(0)
	if req.ComplexOutput {
		odist >>= 1
	}
	desc.SetInputDistance(dfti.Long(idist))
	desc.SetOutputDistance(dfti.Long(odist))

	// First stride slot is the flat element offset of the view's origin.
	istrides := make([]dfti.Long, rank+1)
	ostrides := make([]dfti.Long, rank+1)
	ioff := input.Offset()
	if req.ComplexInput {
		ioff >>= 1
	}
	ooff := output.Offset()
	if req.ComplexOutput {
		ooff >>= 1
	}
	istrides[0] = dfti.Long(ioff)
	ostrides[0] = dfti.Long(ooff)
	for i := 1; i <= rank; i++ {
		is := input.Stride(i)
		if req.ComplexInput {
			is >>= 1
		}
		os := output.Stride(i)
		if req.ComplexOutput {
			os >>= 1
		}
		istrides[i] = dfti.Long(is)
		ostrides[i] = dfti.Long(os)
	}
	desc.SetInputStrides(istrides)
	desc.SetOutputStrides(ostrides)

	// Whenever a real side is involved, store both real and imaginary
	// parts explicitly so the one-sided half can be expanded in place
	// afterwards.
	if !req.ComplexInput || !req.ComplexOutput {
		desc.SetConjugateEvenStorage(dfti.StorageComplexComplex)
	}

	if req.Normalization != NormNone {
		signalNumel := 1
		for _, n := range req.SignalSizes {
			signalNumel *= n
		}
		var scale float64
		if req.Normalization == NormByRootN {
			scale = 1 / math.Sqrt(float64(signalNumel))
		} else {
			scale = 1 / float64(signalNumel)
		}
		if req.Inverse {
			desc.SetBackwardScale(scale)
		} else {
			desc.SetForwardScale(scale)
		}
	}

	if err := desc.Commit(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanCommit, err)
	}

	if req.Inverse {
		err = desc.ComputeBackward(input.Data(), output.Data())
	} else {
		err = desc.ComputeForward(input.Data(), output.Data())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecution, err)
	}

	// A two-sided real-to-complex result needs the half the backend did
	// not compute filled in by conjugate symmetry over the transform axes.
	if !req.ComplexInput && req.ComplexOutput && !req.Onesided {
		outc, err := output.ViewAsComplex()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExecution, err)
		}
		dims := make([]int, rank)
		for i := range dims {
			dims[i] = i + 1
		}
		if err := ExpandConjugateSymmetryInPlace(outc, dims); err != nil {
			return nil, err
		}
	}
	return output, nil
}

func transformDomain(isComplex bool) dfti.Domain {
	if isComplex {
		return dfti.DomainComplex
	}
	return dfti.DomainReal
}

// dftiRangeCheck verifies that every per-axis size and stride the
// descriptor will see, along with the input view's element offset, fits
// dfti.Long. Axes are walked innermost to outermost. Output strides are
// checked as the cumulative element count, the stride a tightly packed
// output will have. For input strides, the first overflow switches the
// check to the cumulative input element count for that axis and all
// remaining outer axes: that is the stride the input would have after a
// contiguous copy, and it is non-decreasing, so the switch never reverts.
// An out-of-range offset triggers the same switch, since the copy resets
// the offset to zero. The returned flag reports whether that copy is
// required.
func dftiRangeCheck(isizes, istrides []int, ioffset int, osizes []int, rank int, complexInput bool) (needContiguous bool, err error) {
	if complexInput {
		ioffset >>= 1
	}
	needContiguous = ioffset > dfti.LongMax
	inumel, onumel := 1, 1
	for i := rank; i >= 0; i-- {
		isize := isizes[i]
		osize := osizes[i]
		istride := istrides[i]
		if complexInput {
			istride >>= 1
		}
		ostride := onumel
		if isize > dfti.LongMax || osize > dfti.LongMax || ostride > dfti.LongMax {
			return false, fmt.Errorf("%w: signal numel outside [1, %d]", ErrRangeExceeded, dfti.LongMax)
		}
		if !needContiguous && istride > dfti.LongMax {
			needContiguous = true
		}
		if needContiguous && inumel > dfti.LongMax {
			return false, fmt.Errorf("%w: signal numel outside [1, %d]", ErrRangeExceeded, dfti.LongMax)
		}
		inumel *= isize
		onumel *= osize
	}
	return needContiguous, nil
}
