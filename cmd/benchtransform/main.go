// Command benchtransform measures transform driver throughput over a list
// of signal sizes and prints a ns/op table.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	spectral "github.com/cwbudde/algo-spectral"
	"github.com/cwbudde/algo-spectral/tensor"
)

func main() {
	var (
		sizeList = flag.String("sizes", "1024,4096,16384,65536", "comma-separated signal sizes")
		batch    = flag.Int("batch", 8, "transforms per call")
		iters    = flag.Int("iters", 50, "benchmark iterations")
		warmup   = flag.Int("warmup", 5, "warmup iterations")
		mode     = flag.String("mode", "forward", "benchmark mode: forward, inverse, all")
		twoSided = flag.Bool("twosided", false, "expand the full spectrum on forward transforms")
		seed     = flag.Int64("seed", 1, "rng seed")
	)
	flag.Parse()

	sizes := parseSizes(*sizeList)
	if len(sizes) == 0 {
		fmt.Println("no sizes specified")
		return
	}
	modes, ok := resolveModes(*mode)
	if !ok {
		fmt.Printf("unknown mode %q\n", *mode)
		os.Exit(2)
	}

	rnd := rand.New(rand.NewSource(*seed))

	fmt.Printf("batch=%d iters=%d warmup=%d twosided=%v\n", *batch, *iters, *warmup, *twoSided)
	fmt.Printf("%8s  %8s  %12s\n", "size", "mode", "ns/op")

	for _, n := range sizes {
		for _, runMode := range modes {
			ns, err := benchmarkSize(rnd, n, *batch, *iters, *warmup, runMode, *twoSided)
			if err != nil {
				fmt.Printf("%8d  %8s  error: %v\n", n, runMode, err)
				continue
			}
			fmt.Printf("%8d  %8s  %12.1f\n", n, runMode, ns)
		}
	}
}

func benchmarkSize(rnd *rand.Rand, n, batch, iters, warmup int, mode string, twoSided bool) (float64, error) {
	data := make([]float64, batch*n)
	for i := range data {
		data[i] = rnd.NormFloat64()
	}
	input, err := tensor.Of([]int{batch, n}, data)
	if err != nil {
		return 0, err
	}

	fwdReq := spectral.TransformRequest{
		SignalRank:    1,
		ComplexOutput: true,
		Onesided:      !twoSided,
		SignalSizes:   []int{n},
		OutputShape:   []int{batch, n/2 + 1, 2},
	}
	if twoSided {
		fwdReq.OutputShape = []int{batch, n, 2}
	}

	var run func(*tensor.Array) (*tensor.Array, error)
	switch mode {
	case "forward":
		run = func(in *tensor.Array) (*tensor.Array, error) {
			return spectral.Execute(in, fwdReq)
		}
	case "inverse":
		spectrum, err := spectral.Execute(input, spectral.TransformRequest{
			SignalRank:    1,
			ComplexOutput: true,
			Onesided:      true,
			SignalSizes:   []int{n},
			OutputShape:   []int{batch, n/2 + 1, 2},
		})
		if err != nil {
			return 0, err
		}
		input = spectrum
		run = func(in *tensor.Array) (*tensor.Array, error) {
			return spectral.Execute(in, spectral.TransformRequest{
				SignalRank:    1,
				ComplexInput:  true,
				Inverse:       true,
				SignalSizes:   []int{n},
				Normalization: spectral.NormByN,
				OutputShape:   []int{batch, n},
			})
		}
	}

	for i := 0; i < warmup; i++ {
		if _, err := run(input); err != nil {
			return 0, err
		}
	}

	start := time.Now()
	for i := 0; i < iters; i++ {
		if _, err := run(input); err != nil {
			return 0, err
		}
	}
	elapsed := time.Since(start)
	return float64(elapsed.Nanoseconds()) / float64(iters), nil
}

func parseSizes(list string) []int {
	var sizes []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			fmt.Printf("skipping invalid size %q\n", part)
			continue
		}
		sizes = append(sizes, n)
	}
	return sizes
}

func resolveModes(mode string) ([]string, bool) {
	switch mode {
	case "forward", "inverse":
		return []string{mode}, true
	case "all":
		return []string{"forward", "inverse"}, true
	}
	return nil, false
}
