package montecarlo

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/vovakirdan/mc2048/internal/game"
)

// MoveScore aggregates the playouts that started with one move.
type MoveScore struct {
	Move     game.Move
	Score    float64 // sum of final playout scores
	Playouts int
}

// Mean returns the average final score, or 0 without playouts.
func (s MoveScore) Mean() float64 {
	if s.Playouts == 0 {
		return 0
	}
	return s.Score / float64(s.Playouts)
}

// Ranking lists every move by descending aggregate score. Equal scores keep
// move enumeration order, so no move is ever dropped on a tie.
type Ranking []MoveScore

func newRanking(sums, counts []int64) Ranking {
	r := make(Ranking, len(game.Moves))
	for i, m := range game.Moves {
		r[i] = MoveScore{
			Move:     m,
			Score:    float64(sums[i]),
			Playouts: int(counts[i]),
		}
	}
	slices.SortStableFunc(r, func(a, b MoveScore) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return r
}

// Best returns the top-ranked move. An empty ranking yields game.Left.
func (r Ranking) Best() game.Move {
	if len(r) == 0 {
		return game.Left
	}
	return r[0].Move
}

// Moves returns the moves in rank order.
func (r Ranking) Moves() []game.Move {
	out := make([]game.Move, len(r))
	for i, s := range r {
		out[i] = s.Move
	}
	return out
}

// Lookup returns the entry for m.
func (r Ranking) Lookup(m game.Move) (MoveScore, bool) {
	for _, s := range r {
		if s.Move == m {
			return s, true
		}
	}
	return MoveScore{}, false
}

// Playouts returns the total number of playouts behind the ranking.
func (r Ranking) Playouts() int {
	n := 0
	for _, s := range r {
		n += s.Playouts
	}
	return n
}

func (r Ranking) String() string {
	var sb strings.Builder
	for i, s := range r {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d. %-5s  mean %9.1f  total %12.0f  n=%d",
			i+1, s.Move, s.Mean(), s.Score, s.Playouts)
	}
	return sb.String()
}
