// Package spectral drives batched, strided, real-or-complex discrete
// Fourier transforms over n-dimensional arrays through a DFTI-style
// descriptor backend, and reconstructs the Hermitian-symmetric half of
// one-sided real-input transforms.
//
// The package has two independent entry points. Execute maps an array's
// shape, strides, and dtype onto a transform descriptor, validates every
// quantity against the descriptor API's narrow integer type, runs the
// transform, and expands the conjugate-symmetric half when a two-sided
// real-to-complex result was requested. ExpandConjugateSymmetry and
// ExpandConjugateSymmetryInPlace expose the expansion step on its own for
// callers that already hold a one-sided result.
//
// Complex data follows the interleaved convention: a complex array is a
// real-typed array whose trailing dimension has extent 2, reinterpreted in
// place when complex element access is needed.
package spectral
