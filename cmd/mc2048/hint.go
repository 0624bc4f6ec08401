package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mc2048/internal/config"
	"github.com/vovakirdan/mc2048/internal/game"
)

var (
	flagGrid     string
	flagScore    int
	flagPlayouts int
	flagPreset   string
)

var hintCmd = &cobra.Command{
	Use:   "hint",
	Short: "Rank the four moves for a position",
	Long: `Evaluate a position with the Monte Carlo solver and print the moves from
best to worst. Rows are separated by '/', cells by ',' or spaces, 0 is empty.
Without --grid a fresh random game is evaluated.

Presets:
  fast      - 25 playouts per move, 250ms cap
  balanced  - 100 playouts per move
  strong    - 500 playouts per move

Examples:
  mc2048 hint
  mc2048 hint --grid "2,2,0,0/0,4,0,0/0,0,0,0/0,0,0,2" --score 4
  mc2048 hint --grid "0,0/2,4" --playouts 1000
  mc2048 hint --preset strong --seed 7`,
	Args: cobra.NoArgs,
	Run:  runHint,
}

func init() {
	hintCmd.Flags().StringVar(&flagGrid, "grid", "", "Position to evaluate, e.g. \"2,2,0,0/0,0,0,0/...\"")
	hintCmd.Flags().IntVar(&flagScore, "score", 0, "Score of the position")
	hintCmd.Flags().IntVar(&flagPlayouts, "playouts", 0, "Playouts per move (default from config or preset)")
	hintCmd.Flags().StringVar(&flagPreset, "preset", "", "Solver preset: fast, balanced, strong")
}

func runHint(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			fail("%v", err)
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagPlayouts < 0 {
		fail("--playouts must not be negative")
	}
	if flagPlayouts > 0 {
		cfg.Solver.Playouts = flagPlayouts
	}
	logger := newLogger(cfg)

	var src game.Source
	if sources := gameSources(cfg.Solver.Seed); sources != nil {
		src = sources()
	}

	var (
		state *game.Engine
		err   error
	)
	if flagGrid != "" {
		g, perr := game.ParseGrid(flagGrid)
		if perr != nil {
			fail("%v", perr)
		}
		state, err = game.FromGrid(g, flagScore, src)
	} else {
		state, err = game.New(cfg.Board.Size, src)
	}
	if err != nil {
		fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ev := newEvaluator(cfg, logger)
	ranking, err := ev.Evaluate(ctx, state, cfg.Solver.Playouts)
	if err != nil {
		// Interrupted evaluations still have a partial ranking worth printing
		logger.Warn("evaluation interrupted", "err", err)
	}

	fmt.Println(state.Grid())
	fmt.Printf("Score: %d\n\n", state.Score())

	if state.IsTerminal() {
		fmt.Println("No move changes the grid, the game is over.")
		fmt.Println()
	}
	fmt.Println(ranking)

	m := ev.Metrics()
	fmt.Println()
	fmt.Printf("Best: %s\n", ranking.Best())
	fmt.Printf("%d playouts, %d simulated moves, %d workers, %s (%.0f playouts/s)\n",
		m.Playouts, m.SimulatedMoves, m.Workers, m.Duration.Round(time.Millisecond), m.PlayoutsPerSecond())
	if m.Capped {
		fmt.Printf("Stopped by the %s time limit.\n", cfg.Solver.TimeLimit)
	}
}
