package game

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/vovakirdan/mc2048/internal/parallel"
)

// Grid is a square board of tiles stored row-major. Zero is an empty cell,
// every other value is a power of two >= 2.
type Grid [][]int

// Cell addresses a grid position.
type Cell struct {
	Row, Col int
}

// NewGrid allocates an n x n grid of empty cells backed by one slice.
func NewGrid(n int) Grid {
	if n <= 0 {
		return Grid{}
	}
	cells := make([]int, n*n)
	g := make(Grid, n)
	for i := range g {
		g[i] = cells[i*n : (i+1)*n : (i+1)*n]
	}
	return g
}

// Size returns the grid dimension.
func (g Grid) Size() int {
	return len(g)
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	c := NewGrid(len(g))
	c.copyFrom(g)
	return c
}

// copyFrom overwrites g with src. Both grids must have the same size.
func (g Grid) copyFrom(src Grid) {
	for i := range g {
		copy(g[i], src[i])
	}
}

// Equal reports whether both grids have the same size and cells.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if !slices.Equal(g[i], other[i]) {
			return false
		}
	}
	return true
}

// EmptyCells returns the coordinates of all empty cells in row-major order.
func (g Grid) EmptyCells() []Cell {
	var cells []Cell
	for y, row := range g {
		for x, v := range row {
			if v == 0 {
				cells = append(cells, Cell{Row: y, Col: x})
			}
		}
	}
	return cells
}

// Occupied returns the number of non-empty cells.
func (g Grid) Occupied() int {
	n := 0
	for _, row := range g {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// MaxTile returns the largest tile value on the grid.
func (g Grid) MaxTile() int {
	maxVal := 0
	for _, row := range g {
		for _, v := range row {
			maxVal = max(maxVal, v)
		}
	}
	return maxVal
}

// Valid checks the grid shape and tile values.
func (g Grid) Valid() error {
	n := len(g)
	if n <= 1 {
		return fmt.Errorf("%w: size %d", ErrGridTooSmall, n)
	}
	for y, row := range g {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidGrid, y, len(row), n)
		}
		for x, v := range row {
			if v != 0 && !isTile(v) {
				return fmt.Errorf("%w: cell (%d,%d) holds %d", ErrInvalidGrid, y, x, v)
			}
		}
	}
	return nil
}

// isTile reports whether v is a power of two >= 2.
func isTile(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// String renders rows as comma-separated cells joined by '/'.
func (g Grid) String() string {
	var sb strings.Builder
	for y, row := range g {
		if y > 0 {
			sb.WriteByte('/')
		}
		for x, v := range row {
			if x > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(v))
		}
	}
	return sb.String()
}

// ParseGrid reads a grid from text. Rows are separated by '/', ';' or newlines,
// cells by commas or whitespace, e.g. "2,2,0,0/0,0,0,0/0,0,0,0/0,0,0,0".
func ParseGrid(s string) (Grid, error) {
	rows := strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == ';' || r == '\n'
	})

	g := make(Grid, 0, len(rows))
	for _, line := range rows {
		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\r'
		})
		if len(fields) == 0 {
			continue
		}
		row := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: cell %q: %v", ErrInvalidGrid, f, err)
			}
			row[i] = v
		}
		g = append(g, row)
	}

	if err := g.Valid(); err != nil {
		return nil, err
	}
	return g, nil
}

// Slide applies a move to the grid in place without spawning a tile.
// Returns whether any cell changed and the score gained from merges.
// When nothing changed the grid is left exactly as it was.
func (g Grid) Slide(m Move) (changed bool, gained int) {
	switch m {
	case Left:
		return g.slideLeft()
	case Right:
		g.mirror()
		changed, gained = g.slideLeft()
		g.mirror()
	case Up:
		g.transpose()
		changed, gained = g.slideLeft()
		g.transpose()
	case Down:
		g.transpose()
		changed, gained = g.Slide(Right)
		g.transpose()
	}
	return changed, gained
}

// slideLeft runs compress, merge, compress toward column 0.
func (g Grid) slideLeft() (bool, int) {
	compressed := g.compress()
	gained := g.merge()
	g.compress()
	return compressed || gained > 0, gained
}

// compress slides tiles toward column 0 in every row.
func (g Grid) compress() bool {
	return parallel.Any(len(g), func(i int) bool {
		return compressRow(g[i])
	})
}

// merge combines the first adjacent equal pair in every row and returns the
// total value of the merged tiles.
func (g Grid) merge() int {
	return parallel.Sum(len(g), func(i int) int {
		return mergeRow(g[i])
	})
}

// mirror reverses every row.
func (g Grid) mirror() {
	parallel.Rows(len(g), func(i int) {
		slices.Reverse(g[i])
	})
}

// transpose swaps rows and columns. Row i only swaps cells (i, j) with j > i,
// so no two rows touch the same cell pair.
func (g Grid) transpose() {
	n := len(g)
	parallel.Rows(n, func(i int) {
		for j := i + 1; j < n; j++ {
			g[i][j], g[j][i] = g[j][i], g[i][j]
		}
	})
}

// compressRow slides non-zero values to the front, keeping their order.
func compressRow(row []int) bool {
	moved := false
	write := 0
	for read, v := range row {
		if v == 0 {
			continue
		}
		if read != write {
			row[write] = v
			row[read] = 0
			moved = true
		}
		write++
	}
	return moved
}

// mergeRow merges the first pair of adjacent equal tiles and stops.
// A row merges at most once per move.
func mergeRow(row []int) int {
	for j := 0; j+1 < len(row); j++ {
		if row[j] != 0 && row[j] == row[j+1] {
			row[j] += row[j+1]
			row[j+1] = 0
			return row[j]
		}
	}
	return 0
}
