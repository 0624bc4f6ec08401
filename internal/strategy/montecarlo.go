package strategy

import (
	"context"
	"slices"

	"github.com/vovakirdan/mc2048/internal/game"
	"github.com/vovakirdan/mc2048/internal/montecarlo"
)

func init() {
	Register("montecarlo", "pure Monte Carlo playouts per move", func(cfg Config) Strategy {
		ev := cfg.Evaluator
		if ev == nil {
			ev = montecarlo.New(montecarlo.WithSeed(cfg.Seed))
		}
		return &MonteCarlo{evaluator: ev, playouts: cfg.Playouts}
	})
}

// MonteCarlo plays the best move of a Monte Carlo ranking.
type MonteCarlo struct {
	evaluator *montecarlo.Evaluator
	playouts  int
}

func (s *MonteCarlo) Name() string { return "montecarlo" }

// Next returns the highest-ranked move that changes the grid. Without such a
// move it returns ErrNoMove. A duration cap still yields the best move of the
// partial ranking.
func (s *MonteCarlo) Next(ctx context.Context, state *game.Engine) (game.Move, error) {
	effective := Effective(state)
	switch len(effective) {
	case 0:
		return 0, ErrNoMove
	case 1:
		return effective[0], nil
	}

	ranking, err := s.evaluator.Evaluate(ctx, state, s.playouts)
	if err != nil {
		return 0, err
	}
	for _, m := range ranking.Moves() {
		if slices.Contains(effective, m) {
			return m, nil
		}
	}
	return ranking.Best(), nil
}
