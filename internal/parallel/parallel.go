// Package parallel provides a small parallel-for over integer index ranges.
// Indices are split into contiguous, disjoint chunks and each chunk runs on its
// own goroutine, so callers that only touch data owned by index i need no locks.
package parallel

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// MinRows is the smallest index count that is fanned out across goroutines.
// Shorter loops run inline on the calling goroutine.
const MinRows = 64

// Loop describes how an index range is split across workers.
type Loop struct {
	Workers   int // Maximum goroutines (values < 2 mean inline)
	Threshold int // Ranges shorter than this run inline
}

// Default returns a Loop sized to GOMAXPROCS with the MinRows threshold.
func Default() Loop {
	return Loop{Workers: runtime.GOMAXPROCS(0), Threshold: MinRows}
}

// Rows calls fn(i) for every i in [0, n) using the default loop.
func Rows(n int, fn func(i int)) {
	Default().Each(n, fn)
}

// Any calls fn(i) for every i in [0, n) and reports whether any call returned true.
// Every index is visited; there is no short-circuit.
func Any(n int, fn func(i int) bool) bool {
	return Default().Any(n, fn)
}

// Sum calls fn(i) for every i in [0, n) and returns the total of the results.
func Sum(n int, fn func(i int) int) int {
	return Default().Sum(n, fn)
}

// Each calls fn(i) for every i in [0, n).
func (l Loop) Each(n int, fn func(i int)) {
	l.run(n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			fn(i)
		}
	})
}

// Any is the OR-reduction of fn over [0, n).
func (l Loop) Any(n int, fn func(i int) bool) bool {
	if l.inline(n) {
		found := false
		for i := 0; i < n; i++ {
			if fn(i) {
				found = true
			}
		}
		return found
	}

	var found atomic.Bool
	l.run(n, func(lo, hi int) {
		local := false
		for i := lo; i < hi; i++ {
			if fn(i) {
				local = true
			}
		}
		if local {
			found.Store(true)
		}
	})
	return found.Load()
}

// Sum is the additive reduction of fn over [0, n). Each chunk keeps a private
// partial sum that is folded into the total once, when the chunk finishes.
func (l Loop) Sum(n int, fn func(i int) int) int {
	if l.inline(n) {
		total := 0
		for i := 0; i < n; i++ {
			total += fn(i)
		}
		return total
	}

	var total atomic.Int64
	l.run(n, func(lo, hi int) {
		partial := 0
		for i := lo; i < hi; i++ {
			partial += fn(i)
		}
		total.Add(int64(partial))
	})
	return int(total.Load())
}

func (l Loop) inline(n int) bool {
	return l.Workers < 2 || n < l.Threshold || n < 2
}

// run splits [0, n) into at most Workers chunks and waits for all of them.
func (l Loop) run(n int, chunkFn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if l.inline(n) {
		chunkFn(0, n)
		return
	}

	workers := min(l.Workers, n)
	size := (n + workers - 1) / workers

	var g errgroup.Group
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		g.Go(func() error {
			chunkFn(lo, hi)
			return nil
		})
	}
	//nolint:errcheck // chunk functions cannot fail
	g.Wait()
}
