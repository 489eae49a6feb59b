package spectral

// Normalization selects the scale factor applied to transform results.
type Normalization uint8

const (
	// NormNone applies no scaling.
	NormNone Normalization = iota
	// NormByN scales by 1/numel of the signal.
	NormByN
	// NormByRootN scales by 1/sqrt(numel) of the signal.
	NormByRootN
)

// String returns a human-readable name for the normalization mode.
func (n Normalization) String() string {
	switch n {
	case NormNone:
		return "none"
	case NormByN:
		return "by_n"
	case NormByRootN:
		return "by_root_n"
	default:
		return "unknown"
	}
}

// TransformRequest describes one batched transform over an input array.
//
// Axis 0 of both input and output is the batch dimension; axes 1 through
// SignalRank are the transform axes. Complex input and output are real
// arrays with a trailing dimension of extent 2 holding interleaved
// real/imaginary pairs.
type TransformRequest struct {
	// SignalRank is the number of transform axes, excluding the batch axis.
	SignalRank int

	// ComplexInput reports whether the input holds interleaved complex
	// values.
	ComplexInput bool

	// ComplexOutput reports whether the output holds interleaved complex
	// values.
	ComplexOutput bool

	// Inverse selects the backward transform.
	Inverse bool

	// SignalSizes holds the extent of each transform axis. Its length must
	// equal SignalRank.
	SignalSizes []int

	// Normalization selects the scale factor applied to the result.
	Normalization Normalization

	// Onesided, for real-to-complex transforms, keeps only the first
	// n/2+1 bins of the last transform axis. When false, the full
	// conjugate-symmetric spectrum is materialized.
	Onesided bool

	// OutputShape is the full result shape, including the batch axis and,
	// for complex output, the trailing pair dimension.
	OutputShape []int
}
