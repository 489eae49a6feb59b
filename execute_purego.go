//go:build purego

package spectral

import "github.com/cwbudde/algo-spectral/tensor"

// Execute always fails: the package was built without the transform
// backend. The expansion entry points remain available.
func Execute(input *tensor.Array, req TransformRequest) (*tensor.Array, error) {
	return nil, ErrBackendUnavailable
}
