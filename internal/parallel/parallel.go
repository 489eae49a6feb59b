// Package parallel provides the range-splitting primitive used to fan
// independent element ranges out over worker goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// chunkCursor hands out chunk indices to workers. The pad keeps the hot
// atomic off the cache line shared with the surrounding join state.
type chunkCursor struct {
	next atomic.Int64
	_    cpu.CacheLinePad
}

// For invokes fn over disjoint sub-ranges covering [0, n). Each sub-range
// holds at least grain elements; fn may be invoked concurrently and in any
// order, so invocations must not depend on one another. For returns once
// every invocation has completed.
func For(n, grain int, fn func(begin, end int)) {
	if n <= 0 {
		return
	}
	if grain < 1 {
		grain = 1
	}

	procs := runtime.GOMAXPROCS(0)
	chunk := (n + procs - 1) / procs
	if chunk < grain {
		chunk = grain
	}
	chunks := (n + chunk - 1) / chunk
	if chunks == 1 || procs == 1 {
		fn(0, n)
		return
	}

	workers := procs
	if workers > chunks {
		workers = chunks
	}

	var (
		cur chunkCursor
		wg  sync.WaitGroup
	)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				c := int(cur.next.Add(1)) - 1
				if c >= chunks {
					return
				}
				begin := c * chunk
				end := begin + chunk
				if end > n {
					end = n
				}
				fn(begin, end)
			}
		}()
	}
	wg.Wait()
}
