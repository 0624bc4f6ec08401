// mc2048 plays 2048 in the terminal with a parallel Monte Carlo move solver.
//
// Usage:
//
//	mc2048 play              - Play interactively (space = solver move, h = hint)
//	mc2048 hint              - Rank the four moves for a position
//	mc2048 autoplay          - Let a strategy play headless games
//	mc2048 scores            - Show high scores and solver run statistics
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.mc2048, ./configs)
//	--seed <value>      - RNG seed for reproducible games and playouts
//	--db <path>         - Database path (default: ~/.mc2048/scores.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--size <n>          - Board size
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mc2048/internal/config"
	"github.com/vovakirdan/mc2048/internal/game"
	"github.com/vovakirdan/mc2048/internal/montecarlo"
	"github.com/vovakirdan/mc2048/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     uint64
	flagDBPath   string
	flagLogLevel string
	flagSize     int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mc2048",
	Short: "2048 with a parallel Monte Carlo solver",
	Long: `mc2048 plays 2048 on an N x N board. The solver ranks the four moves by
playing many random games to the end from each of them, in parallel.

Available commands:
  play      - Play interactively, ask the solver for moves
  hint      - Print the move ranking for a position
  autoplay  - Run headless games with a strategy and record them
  scores    - View high scores and solver statistics

Examples:
  mc2048 play
  mc2048 play --size 5
  mc2048 hint --grid "2,2,0,0/0,4,0,0/0,0,0,0/0,0,0,2" --preset strong
  mc2048 autoplay --games 10 --strategy random
  mc2048 scores`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagSize, "size", 0, "Board size (default from config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(autoplayCmd)
	rootCmd.AddCommand(scoresCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig reads the config file and applies global flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	if flagSeed != 0 {
		cfg.Solver.Seed = flagSeed
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagSize != 0 {
		cfg.Board.Size = flagSize
	}

	if err := cfg.Validate(); err != nil {
		fail("%v", err)
	}
	return cfg
}

// newLogger builds the process logger and makes it the default.
func newLogger(cfg config.Config) *log.Logger {
	level, err := cfg.LogLevel()
	if err != nil {
		fail("%v", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	log.SetDefault(logger)
	return logger
}

// newEvaluator builds an evaluator from the solver config.
func newEvaluator(cfg config.Config, logger *log.Logger) *montecarlo.Evaluator {
	return montecarlo.New(
		montecarlo.WithPlayouts(cfg.Solver.Playouts),
		montecarlo.WithWorkers(cfg.Solver.Workers),
		montecarlo.WithSeed(cfg.Solver.Seed),
		montecarlo.WithDuration(cfg.Solver.TimeLimit),
		montecarlo.WithMaxPlayoutMoves(cfg.Solver.MaxPlayoutMoves),
		montecarlo.WithLogger(logger.WithPrefix("montecarlo")),
		montecarlo.WithMetrics(),
	)
}

// gameSources returns a factory of spawn sources. A zero seed gives
// time-seeded games; otherwise game i uses seed+i.
func gameSources(seed uint64) func() game.Source {
	if seed == 0 {
		return nil
	}
	next := int64(seed)
	return func() game.Source {
		src := rand.New(rand.NewSource(next))
		next++
		return src
	}
}

// openStore opens the scores database. Failure is fatal when required,
// otherwise it is logged and nil is returned.
func openStore(cfg config.Config, logger *log.Logger, required bool) *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		if required {
			fail("opening scores database: %v", err)
		}
		logger.Warn("scores will not be saved", "err", err)
		return nil
	}
	return store
}
