package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoopEach(t *testing.T) {
	loops := map[string]Loop{
		"inline":   {Workers: 1, Threshold: MinRows},
		"fan out":  {Workers: 4, Threshold: 2},
		"too many": {Workers: 64, Threshold: 2},
	}

	for name, loop := range loops {
		t.Run(name, func(t *testing.T) {
			const n = 100
			var visits [n]atomic.Int32

			loop.Each(n, func(i int) {
				visits[i].Add(1)
			})

			for i := range visits {
				require.Equal(t, int32(1), visits[i].Load(), "index %d should be visited exactly once", i)
			}
		})
	}
}

func TestLoopAny(t *testing.T) {
	t.Run("visits every index without short-circuit", func(t *testing.T) {
		loop := Loop{Workers: 3, Threshold: 2}
		var calls atomic.Int32

		got := loop.Any(10, func(i int) bool {
			calls.Add(1)
			return i == 0
		})

		require.True(t, got)
		require.Equal(t, int32(10), calls.Load())
	})

	t.Run("false when no index matches", func(t *testing.T) {
		require.False(t, Any(8, func(int) bool { return false }))
		require.False(t, Loop{Workers: 4, Threshold: 2}.Any(8, func(int) bool { return false }))
	})
}

func TestLoopSum(t *testing.T) {
	want := 0
	for i := 0; i < 1000; i++ {
		want += i
	}

	require.Equal(t, want, Sum(1000, func(i int) int { return i }))
	require.Equal(t, want, Loop{Workers: 7, Threshold: 2}.Sum(1000, func(i int) int { return i }))
}

func TestLoopEmptyRange(t *testing.T) {
	called := false
	Rows(0, func(int) { called = true })
	require.False(t, called)
	require.Zero(t, Sum(0, func(int) int { return 1 }))
}
