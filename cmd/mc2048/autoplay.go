package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mc2048/internal/config"
	"github.com/vovakirdan/mc2048/internal/game"
	"github.com/vovakirdan/mc2048/internal/storage"
	"github.com/vovakirdan/mc2048/internal/strategy"
)

var (
	flagGames    int
	flagStrategy string
	flagNoSave   bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Play headless games with a strategy",
	Long: `Play complete games without a UI and record a summary of each one.

Strategies:
` + strategyHelp() + `
Examples:
  mc2048 autoplay --games 5
  mc2048 autoplay --games 100 --strategy random
  mc2048 autoplay --preset fast --size 3 --seed 1`,
	Args: cobra.NoArgs,
	Run:  runAutoplay,
}

func init() {
	autoplayCmd.Flags().IntVar(&flagGames, "games", 1, "Number of games to play")
	autoplayCmd.Flags().StringVar(&flagStrategy, "strategy", "montecarlo", "Strategy name")
	autoplayCmd.Flags().IntVar(&flagPlayouts, "playouts", 0, "Playouts per move (default from config or preset)")
	autoplayCmd.Flags().StringVar(&flagPreset, "preset", "", "Solver preset: fast, balanced, strong")
	autoplayCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record runs in the database")
}

func strategyHelp() string {
	var sb strings.Builder
	for _, info := range strategy.List() {
		fmt.Fprintf(&sb, "  %-11s - %s\n", info.Name, info.Description)
	}
	return sb.String()
}

// gameResult is the outcome of one headless game.
type gameResult struct {
	Score    int
	MaxTile  int
	Moves    int
	Duration time.Duration
}

func runAutoplay(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if flagPreset != "" {
		preset, err := config.ParsePreset(flagPreset)
		if err != nil {
			fail("%v", err)
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagPlayouts > 0 {
		cfg.Solver.Playouts = flagPlayouts
	}
	if flagGames < 1 {
		fail("--games must be at least 1")
	}
	if !strategy.Exists(flagStrategy) {
		fail("unknown strategy %q", flagStrategy)
	}
	logger := newLogger(cfg)

	ev := newEvaluator(cfg, logger)
	strat, err := strategy.Create(flagStrategy, strategy.Config{
		Evaluator: ev,
		Playouts:  cfg.Solver.Playouts,
		Seed:      cfg.Solver.Seed,
	})
	if err != nil {
		fail("%v", err)
	}

	var store *storage.Store
	if !flagNoSave {
		store = openStore(cfg, logger, false)
		if store != nil {
			defer store.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Solver parameters only describe solver runs
	playouts, workers := ev.Playouts(), ev.Workers()
	if _, ok := strat.(*strategy.Random); ok {
		playouts, workers = 0, 0
	}

	board := storage.BoardKey(cfg.Board.Size)
	sources := gameSources(cfg.Solver.Seed)
	results := make([]gameResult, 0, flagGames)

	for i := range flagGames {
		var src game.Source
		if sources != nil {
			src = sources()
		}

		res, err := playGame(ctx, strat, cfg.Board.Size, src, logger)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Warn("interrupted", "completed", len(results))
				break
			}
			fail("game %d: %v", i+1, err)
		}
		results = append(results, res)

		logger.Info("game finished",
			"game", i+1,
			"score", res.Score,
			"max_tile", res.MaxTile,
			"moves", res.Moves,
			"duration", res.Duration.Round(time.Millisecond),
		)

		if store == nil {
			continue
		}
		_, err = store.SaveRun(storage.Run{
			Board:    board,
			Strategy: strat.Name(),
			Playouts: playouts,
			Workers:  workers,
			Score:    res.Score,
			MaxTile:  res.MaxTile,
			Moves:    res.Moves,
			Duration: res.Duration,
		})
		if err != nil {
			logger.Warn("cannot save run", "err", err)
		}
	}

	printSummary(strat.Name(), board, results)
}

// playGame plays one game to the end.
func playGame(ctx context.Context, s strategy.Strategy, size int, src game.Source, logger *log.Logger) (gameResult, error) {
	state, err := game.New(size, src)
	if err != nil {
		return gameResult{}, err
	}

	start := time.Now()
	moves := 0
	top := state.MaxTile()
	for !state.IsTerminal() {
		m, err := s.Next(ctx, state)
		if err != nil {
			return gameResult{}, err
		}
		if !state.ApplyMove(m) {
			return gameResult{}, fmt.Errorf("strategy %s chose ineffective move %s", s.Name(), m)
		}
		moves++

		if mt := state.MaxTile(); mt > top {
			top = mt
			if ms := game.HighestMilestone(mt); ms != nil && ms.Tile == mt {
				logger.Debug("milestone reached", "tile", mt, "name", ms.Name, "move", moves)
			}
		}
	}

	return gameResult{
		Score:    state.Score(),
		MaxTile:  state.MaxTile(),
		Moves:    moves,
		Duration: time.Since(start),
	}, nil
}

// printSummary prints averages and how often each milestone was reached.
func printSummary(name, board string, results []gameResult) {
	if len(results) == 0 {
		fmt.Println("No games completed.")
		return
	}

	var totalScore, totalMoves, best int
	var totalTime time.Duration
	reached := make(map[int]int)
	for _, r := range results {
		totalScore += r.Score
		totalMoves += r.Moves
		totalTime += r.Duration
		best = max(best, r.Score)
		for _, ms := range game.Reached(r.MaxTile) {
			reached[ms.Tile]++
		}
	}

	n := len(results)
	fmt.Printf("\n%s on %s: %d games\n", name, board, n)
	fmt.Printf("  Avg score:  %.0f\n", float64(totalScore)/float64(n))
	fmt.Printf("  Best score: %d\n", best)
	fmt.Printf("  Avg moves:  %.0f\n", float64(totalMoves)/float64(n))
	fmt.Printf("  Avg time:   %s\n", (totalTime / time.Duration(n)).Round(time.Millisecond))

	fmt.Println("\n  Tile      Reached")
	for _, ms := range game.Milestones {
		if reached[ms.Tile] == 0 {
			continue
		}
		fmt.Printf("  %-8d  %5.1f%%  %s\n", ms.Tile, 100*float64(reached[ms.Tile])/float64(n), ms.Name)
	}
}
