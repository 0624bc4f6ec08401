package strategy

import (
	"context"
	"encoding/binary"

	"lukechampine.com/frand"

	"github.com/vovakirdan/mc2048/internal/game"
)

func init() {
	Register("random", "uniformly random effective move (baseline)", func(cfg Config) Strategy {
		return NewRandom(cfg.Seed)
	})
}

// Random picks uniformly among the moves that change the grid. It is not safe
// for concurrent use.
type Random struct {
	rng *frand.RNG
}

// NewRandom returns a Random strategy. Seed 0 uses OS entropy.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		return &Random{rng: frand.New()}
	}
	key := make([]byte, 32)
	binary.LittleEndian.PutUint64(key, seed)
	return &Random{rng: frand.NewCustom(key, 1024, 12)}
}

func (s *Random) Name() string { return "random" }

func (s *Random) Next(ctx context.Context, state *game.Engine) (game.Move, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	effective := Effective(state)

	if len(effective) == 0 {
		return 0, ErrNoMove
	}
	return effective[s.rng.Intn(len(effective))], nil
}

// Effective returns the moves that would change the grid of state, in
// enumeration order.
func Effective(state *game.Engine) []game.Move {
	grid := state.Grid()
	moves := make([]game.Move, 0, len(game.Moves))
	for _, m := range game.Moves {
		// an ineffective slide leaves grid as it was
		if changed, _ := grid.Slide(m); changed {
			moves = append(moves, m)
			grid = state.Grid()
		}
	}
	return moves
}
