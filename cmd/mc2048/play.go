package main

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mc2048/internal/platform/tui"
)

const debugLogFile = "mc2048-debug.log"

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048 interactively",
	Long: `Start an interactive game.

Controls:
  Arrows/WASD  - Move
  Space        - Let the solver make the next move
  H            - Show the solver's move ranking
  P            - Toggle continuous autoplay
  R            - Restart
  ?            - Full help
  Q/Ctrl+C     - Quit

Examples:
  mc2048 play
  mc2048 play --size 3
  mc2048 play --seed 42
  mc2048 play --log-level debug   # logs to mc2048-debug.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)

	// The alternate screen owns the terminal; logs go to a file or nowhere.
	if logger.GetLevel() <= log.DebugLevel {
		f, err := os.OpenFile(debugLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail("opening debug log: %v", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	} else {
		logger.SetOutput(io.Discard)
	}

	store := openStore(cfg, logger, false)
	if store != nil {
		defer store.Close()
	}

	err := tui.Run(tui.Options{
		Size:      cfg.Board.Size,
		Evaluator: newEvaluator(cfg, logger),
		Playouts:  cfg.Solver.Playouts,
		Store:     store,
		Logger:    logger,
		Source:    gameSources(cfg.Solver.Seed),
	})
	if err != nil {
		fail("%v", err)
	}
}
