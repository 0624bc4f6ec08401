package montecarlo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mc2048/internal/game"
)

func TestRankingOrder(t *testing.T) {
	tests := []struct {
		name   string
		sums   []int64
		counts []int64
		want   []game.Move
	}{
		{
			name:   "distinct scores",
			sums:   []int64{10, 40, 20, 30},
			counts: []int64{1, 1, 1, 1},
			want:   []game.Move{game.Right, game.Down, game.Up, game.Left},
		},
		{
			name:   "ties keep enumeration order",
			sums:   []int64{50, 80, 50, 80},
			counts: []int64{1, 1, 1, 1},
			want:   []game.Move{game.Right, game.Down, game.Left, game.Up},
		},
		{
			name:   "all equal",
			sums:   []int64{0, 0, 0, 0},
			counts: []int64{0, 0, 0, 0},
			want:   []game.Move{game.Left, game.Right, game.Up, game.Down},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRanking(tt.sums, tt.counts)
			require.Len(t, r, 4, "a tie must never drop a move")
			require.Equal(t, tt.want, r.Moves())
			require.Equal(t, tt.want[0], r.Best())
		})
	}
}

func TestRankingAccessors(t *testing.T) {
	r := newRanking([]int64{300, 0, 100, 200}, []int64{3, 0, 2, 4})

	s, ok := r.Lookup(game.Up)
	require.True(t, ok)
	require.Equal(t, 50.0, s.Mean())

	s, ok = r.Lookup(game.Right)
	require.True(t, ok)
	require.Zero(t, s.Mean())

	_, ok = r.Lookup(game.Move(7))
	require.False(t, ok)

	require.Equal(t, 9, r.Playouts())
	require.Equal(t, game.Left, Ranking(nil).Best())

	out := r.String()
	require.Contains(t, out, "1. left")
	require.Contains(t, out, "n=4")
}

func TestCollectors(t *testing.T) {
	c := NewCollector()
	c.Start(2)
	c.AddPlayout(10)
	c.AddPlayout(5)
	m := c.Complete(true)

	require.Equal(t, 2, m.Workers)
	require.Equal(t, int64(2), m.Playouts)
	require.Equal(t, int64(15), m.SimulatedMoves)
	require.True(t, m.Capped)

	noop := NewNoopCollector()
	noop.Start(4)
	noop.AddPlayout(3)
	require.Equal(t, Metrics{}, noop.Complete(true))

	require.Zero(t, Metrics{}.PlayoutsPerSecond())
	require.Equal(t, 20.0, Metrics{Playouts: 10, Duration: 500 * time.Millisecond}.PlayoutsPerSecond())
}
