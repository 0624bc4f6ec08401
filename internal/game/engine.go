// Package game implements the 2048 game-state engine: grid transforms,
// tile spawning, score accounting and terminal detection on an N x N grid.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Spawn4Probability is the chance that a spawned tile is a 4 instead of a 2.
const Spawn4Probability = 0.10

var (
	ErrGridTooSmall = errors.New("game: grid size must be at least 2")
	ErrInvalidGrid  = errors.New("game: invalid grid")
	ErrUnknownMove  = errors.New("game: unknown move")
)

// Source is the randomness an Engine draws from. *math/rand.Rand and
// *frand.RNG both satisfy it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Engine owns one grid and its score. It is not safe for concurrent use;
// parallel work should operate on clones that each own a Source.
type Engine struct {
	grid    Grid
	score   int
	rng     Source
	scratch Grid // reused by IsTerminal
}

// New creates an n x n game with two seed tiles on distinct random cells.
// A nil src is replaced by a time-seeded source.
func New(n int, src Source) (*Engine, error) {
	if n <= 1 {
		return nil, fmt.Errorf("%w: size %d", ErrGridTooSmall, n)
	}

	e := &Engine{
		grid: NewGrid(n),
		rng:  orDefault(src),
	}
	e.SpawnTile()
	e.SpawnTile()
	return e, nil
}

// FromGrid creates an engine positioned at g with the given score.
// The grid is copied.
func FromGrid(g Grid, score int, src Source) (*Engine, error) {
	if err := g.Valid(); err != nil {
		return nil, err
	}
	if score < 0 {
		return nil, fmt.Errorf("%w: negative score %d", ErrInvalidGrid, score)
	}
	return &Engine{
		grid:  g.Clone(),
		score: score,
		rng:   orDefault(src),
	}, nil
}

func orDefault(src Source) Source {
	if src == nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return src
}

// Clone returns an independent deep copy that draws from src.
// A nil src shares the receiver's source, which is only safe while both
// engines stay on one goroutine.
func (e *Engine) Clone(src Source) *Engine {
	if src == nil {
		src = e.rng
	}
	return &Engine{
		grid:  e.grid.Clone(),
		score: e.score,
		rng:   src,
	}
}

// ApplyMove slides the grid in direction m. If any cell changed, the merge
// score is added and one new tile is spawned. Returns whether the grid changed.
func (e *Engine) ApplyMove(m Move) bool {
	changed, gained := e.grid.Slide(m)
	if !changed {
		return false
	}
	e.score += gained
	e.SpawnTile()
	return true
}

// SpawnTile places a 2 (90%) or 4 (10%) on a uniformly chosen empty cell.
// Returns false without changes if the grid is full.
func (e *Engine) SpawnTile() bool {
	empty := e.grid.EmptyCells()
	if len(empty) == 0 {
		return false
	}

	cell := empty[e.rng.Intn(len(empty))]

	value := 2
	if e.rng.Float64() < Spawn4Probability {
		value = 4
	}

	e.grid[cell.Row][cell.Col] = value
	return true
}

// IsTerminal reports whether no move would change the grid. Moves are tried
// on a scratch copy; the live grid is never touched.
func (e *Engine) IsTerminal() bool {
	n := e.grid.Size()
	if e.scratch.Size() != n {
		e.scratch = NewGrid(n)
	}
	e.scratch.copyFrom(e.grid)

	// An ineffective slide leaves the scratch grid as it was, so one copy
	// serves all four probes.
	for _, m := range Moves {
		if changed, _ := e.scratch.Slide(m); changed {
			return false
		}
	}
	return true
}

// Score returns the accumulated merge score.
func (e *Engine) Score() int {
	return e.score
}

// Grid returns a copy of the current grid.
func (e *Engine) Grid() Grid {
	return e.grid.Clone()
}

// Size returns the grid dimension.
func (e *Engine) Size() int {
	return e.grid.Size()
}

// MaxTile returns the largest tile on the grid.
func (e *Engine) MaxTile() int {
	return e.grid.MaxTile()
}

// Equal reports whether both engines have the same size, score and cells.
func (e *Engine) Equal(other *Engine) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.score == other.score && e.grid.Equal(other.grid)
}
