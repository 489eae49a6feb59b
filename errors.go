package spectral

import "errors"

// Sentinel errors returned by transform and expansion operations.
var (
	// ErrUnsupportedDtype is returned when an array's element type is not
	// handled by the requested code path.
	ErrUnsupportedDtype = errors.New("spectral: unsupported dtype")

	// ErrRangeExceeded is returned when a size or stride cannot be
	// represented in the plan API's narrow integer type, even after the
	// contiguous-copy fallback.
	ErrRangeExceeded = errors.New("spectral: value exceeds plan integer range")

	// ErrPlanCommit is returned when the transform backend rejects the
	// descriptor configuration. The backend's diagnostic is attached.
	ErrPlanCommit = errors.New("spectral: plan commit failed")

	// ErrExecution is returned when the transform backend fails during
	// execution. The backend's diagnostic is attached.
	ErrExecution = errors.New("spectral: transform execution failed")

	// ErrBackendUnavailable is returned by Execute when the package was
	// built without the transform backend (purego build tag).
	ErrBackendUnavailable = errors.New("spectral: built without transform backend")

	// ErrShapeMismatch is returned when a request's rank, sizes, or shapes
	// are inconsistent with the supplied arrays.
	ErrShapeMismatch = errors.New("spectral: shape mismatch")
)
