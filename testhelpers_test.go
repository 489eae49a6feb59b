package spectral

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-spectral/tensor"
)

// Shared test helper functions used across multiple test files

func assertApproxComplex128Tolf(t *testing.T, got, want complex128, tol float64, format string, args ...any) {
	t.Helper()

	if cmplx.Abs(got-want) > tol {
		t.Fatalf(format+": got %v want %v (diff=%v)", append(args, got, want, cmplx.Abs(got-want))...)
	}
}

func assertApproxFloat64Tolf(t *testing.T, got, want, tol float64, format string, args ...any) {
	t.Helper()

	if math.Abs(got-want) > tol {
		t.Fatalf(format+": got %v want %v (diff=%v)", append(args, got, want, math.Abs(got-want))...)
	}
}

// randomRealArray builds a contiguous float64 array with deterministic
// pseudo-random contents.
func randomRealArray(t *testing.T, seed int64, shape ...int) *tensor.Array {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	n := 1
	for _, s := range shape {
		n *= s
	}
	data := make([]float64, n)
	for i := range data {
		data[i] = rng.NormFloat64()
	}

	arr, err := tensor.Of(shape, data)
	if err != nil {
		t.Fatalf("tensor.Of failed: %v", err)
	}

	return arr
}

// dft1d computes the O(n^2) reference DFT of one line.
func dft1d(in []complex128, inverse bool) []complex128 {
	n := len(in)
	sign := -1.0
	if inverse {
		sign = 1.0
	}

	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for j := 0; j < n; j++ {
			ang := sign * 2 * math.Pi * float64((k*j)%n) / float64(n)
			sum += in[j] * cmplx.Exp(complex(0, ang))
		}
		out[k] = sum
	}

	return out
}

// dftGrid applies dft1d along every axis of a dense row-major grid.
func dftGrid(sizes []int, data []complex128, inverse bool) []complex128 {
	out := append([]complex128(nil), data...)
	for axis := len(sizes) - 1; axis >= 0; axis-- {
		n := sizes[axis]
		inner := 1
		for _, s := range sizes[axis+1:] {
			inner *= s
		}
		outer := len(out) / (n * inner)

		line := make([]complex128, n)
		for o := 0; o < outer; o++ {
			base := o * n * inner
			for j := 0; j < inner; j++ {
				for i := 0; i < n; i++ {
					line[i] = out[base+j+i*inner]
				}
				res := dft1d(line, inverse)
				for i := 0; i < n; i++ {
					out[base+j+i*inner] = res[i]
				}
			}
		}
	}

	return out
}

// viewComplex reinterprets a transform output as complex or fails the test.
func viewComplex(t *testing.T, arr *tensor.Array) *tensor.Array {
	t.Helper()

	c, err := arr.ViewAsComplex()
	if err != nil {
		t.Fatalf("ViewAsComplex failed: %v", err)
	}

	return c
}
