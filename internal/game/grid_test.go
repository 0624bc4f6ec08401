package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlideLeftRow(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		score    int
		changed  bool
	}{
		{
			name:     "simple merge",
			input:    []int{2, 2, 0, 0},
			expected: []int{4, 0, 0, 0},
			score:    4,
			changed:  true,
		},
		{
			name:     "merge with trailing tile",
			input:    []int{2, 2, 2, 0},
			expected: []int{4, 2, 0, 0},
			score:    4,
			changed:  true,
		},
		{
			name:     "only the first pair merges",
			input:    []int{2, 2, 2, 2},
			expected: []int{4, 2, 2, 0},
			score:    4,
			changed:  true,
		},
		{
			name:     "second pair waits for the next move",
			input:    []int{4, 4, 8, 8},
			expected: []int{8, 8, 8, 0},
			score:    8,
			changed:  true,
		},
		{
			name:     "no merge possible",
			input:    []int{2, 4, 8, 16},
			expected: []int{2, 4, 8, 16},
		},
		{
			name:     "slide with gap",
			input:    []int{0, 0, 2, 2},
			expected: []int{4, 0, 0, 0},
			score:    4,
			changed:  true,
		},
		{
			name:     "merge across gap",
			input:    []int{2, 0, 2, 0},
			expected: []int{4, 0, 0, 0},
			score:    4,
			changed:  true,
		},
		{
			name:     "no change needed",
			input:    []int{4, 2, 0, 0},
			expected: []int{4, 2, 0, 0},
		},
		{
			name:     "empty row",
			input:    []int{0, 0, 0, 0},
			expected: []int{0, 0, 0, 0},
		},
		{
			name:     "single tile slides",
			input:    []int{0, 4, 0, 0},
			expected: []int{4, 0, 0, 0},
			changed:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Grid{append([]int(nil), tt.input...)}

			changed, score := g.slideLeft()

			require.Equal(t, tt.expected, g[0])
			require.Equal(t, tt.score, score)
			require.Equal(t, tt.changed, changed)
		})
	}
}

func TestGridSlide(t *testing.T) {
	rows := Grid{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}
	column := Grid{
		{2, 0, 0, 0},
		{2, 0, 0, 0},
		{4, 0, 0, 0},
		{4, 0, 0, 0},
	}

	tests := []struct {
		name     string
		board    Grid
		move     Move
		expected Grid
		score    int
	}{
		{
			name:  "left",
			board: rows,
			move:  Left,
			expected: Grid{
				{4, 0, 0, 0},
				{8, 0, 0, 0},
				{4, 2, 2, 0},
				{2, 0, 0, 0},
			},
			score: 16,
		},
		{
			name:  "right",
			board: rows,
			move:  Right,
			expected: Grid{
				{0, 0, 0, 4},
				{0, 0, 0, 8},
				{0, 2, 2, 4},
				{0, 0, 0, 2},
			},
			score: 16,
		},
		{
			name:  "up",
			board: column,
			move:  Up,
			expected: Grid{
				{4, 0, 0, 0},
				{4, 0, 0, 0},
				{4, 0, 0, 0},
				{0, 0, 0, 0},
			},
			score: 4,
		},
		{
			name:  "down",
			board: column,
			move:  Down,
			expected: Grid{
				{0, 0, 0, 0},
				{2, 0, 0, 0},
				{2, 0, 0, 0},
				{8, 0, 0, 0},
			},
			score: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.board.Clone()

			changed, score := g.Slide(tt.move)

			require.True(t, changed)
			require.Equal(t, tt.expected, g)
			require.Equal(t, tt.score, score)
		})
	}
}

func TestGridSlideUnchanged(t *testing.T) {
	locked := Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}

	for _, m := range Moves {
		g := locked.Clone()
		changed, score := g.Slide(m)
		require.False(t, changed, "move %s", m)
		require.Zero(t, score)
		require.Equal(t, locked, g, "ineffective %s must leave the grid untouched", m)
	}
}

func TestTransformInvolutions(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	// 80 rows crosses parallel.MinRows, so the fan-out path runs too.
	for _, n := range []int{2, 3, 4, 8, 80} {
		for range 20 {
			g := randomGrid(rng, n)
			orig := g.Clone()

			g.mirror()
			g.mirror()
			require.Equal(t, orig, g, "mirror twice on %dx%d", n, n)

			g.transpose()
			for i := range n {
				for j := range n {
					require.Equal(t, orig[j][i], g[i][j])
				}
			}
			g.transpose()
			require.Equal(t, orig, g, "transpose twice on %dx%d", n, n)
		}
	}
}

func TestSlideLargeGridMatchesRowwise(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := randomGrid(rng, 96)

	want := g.Clone()
	wantScore := 0
	for i := range want {
		wantScore += slideRowOnly(want[i])
	}

	_, score := g.Slide(Left)
	require.Equal(t, want, g)
	require.Equal(t, wantScore, score)
}

func slideRowOnly(row []int) int {
	compressRow(row)
	gained := mergeRow(row)
	compressRow(row)
	return gained
}

func TestParseGrid(t *testing.T) {
	t.Run("slash and comma separated", func(t *testing.T) {
		g, err := ParseGrid("2,2,0,0/0,0,0,0/0,0,4,0/0,0,0,8")
		require.NoError(t, err)
		require.Equal(t, Grid{{2, 2, 0, 0}, {0, 0, 0, 0}, {0, 0, 4, 0}, {0, 0, 0, 8}}, g)
		require.Equal(t, "2,2,0,0/0,0,0,0/0,0,4,0/0,0,0,8", g.String())
	})

	t.Run("newlines and spaces", func(t *testing.T) {
		g, err := ParseGrid("2 4\n8 0\n")
		require.NoError(t, err)
		require.Equal(t, Grid{{2, 4}, {8, 0}}, g)
	})

	t.Run("not a power of two", func(t *testing.T) {
		_, err := ParseGrid("2,3/0,0")
		require.ErrorIs(t, err, ErrInvalidGrid)
	})

	t.Run("ragged rows", func(t *testing.T) {
		_, err := ParseGrid("2,2,0/0,0")
		require.ErrorIs(t, err, ErrInvalidGrid)
	})

	t.Run("single cell", func(t *testing.T) {
		_, err := ParseGrid("2")
		require.ErrorIs(t, err, ErrGridTooSmall)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseGrid("2,x/0,0")
		require.ErrorIs(t, err, ErrInvalidGrid)
	})
}

func TestGridHelpers(t *testing.T) {
	g := Grid{
		{2, 0},
		{0, 16},
	}

	require.Equal(t, 2, g.Occupied())
	require.Equal(t, 16, g.MaxTile())
	require.Equal(t, []Cell{{Row: 0, Col: 1}, {Row: 1, Col: 0}}, g.EmptyCells())
	require.True(t, g.Equal(g.Clone()))
	require.False(t, g.Equal(NewGrid(2)))
	require.False(t, g.Equal(NewGrid(3)))
}

func TestParseMove(t *testing.T) {
	for _, m := range Moves {
		got, err := ParseMove(m.String())
		require.NoError(t, err)
		require.Equal(t, m, got)

		got, err = ParseMove(m.String()[:1])
		require.NoError(t, err)
		require.Equal(t, m, got)
	}

	_, err := ParseMove("sideways")
	require.ErrorIs(t, err, ErrUnknownMove)
	require.False(t, Move(9).Valid())
	require.Equal(t, "move(9)", Move(9).String())
}

// randomGrid fills an n x n grid with empty cells and small tiles.
func randomGrid(rng *rand.Rand, n int) Grid {
	tiles := []int{0, 0, 2, 4, 8, 16}
	g := NewGrid(n)
	for i := range g {
		for j := range g[i] {
			g[i][j] = tiles[rng.Intn(len(tiles))]
		}
	}
	return g
}
