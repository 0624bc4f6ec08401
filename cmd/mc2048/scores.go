package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mc2048/internal/platform/tui"
	"github.com/vovakirdan/mc2048/internal/storage"
)

var (
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and solver statistics",
	Long: `Display the top 10 scores of interactive games and per-strategy statistics
of autoplay runs for the configured board size.

Examples:
  mc2048 scores
  mc2048 scores --size 5
  mc2048 scores -i           # browse all boards
  mc2048 scores --clear      # forget interactive scores for this board`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the interactive scores of the board")
}

func runScores(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	board := storage.BoardKey(cfg.Board.Size)

	store := openStore(cfg, logger, true)
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(board); err != nil {
			store.Close()
			fail("%v", err)
		}
		fmt.Printf("Cleared scores for %s.\n", board)
		return
	}

	if flagInteractive {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunScoreboard(store, board, width, height); err != nil {
			store.Close()
			fail("%v", err)
		}
		return
	}

	scores, err := store.TopScores(board, 10)
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("High Scores - %s\n", board)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'mc2048 play --size %d' to set the first high score!\n", cfg.Board.Size)
	} else {
		fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "Rank", "Score", "Max tile", "Date")
		fmt.Printf("  %-4s  %-10s  %-8s  %s\n", "----", "-----", "--------", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %-8d  %s\n", i+1, entry.Score, entry.MaxTile, entry.CreatedAt.Format("2006-01-02 15:04"))
		}

		if stats, err := store.BoardStats(board); err == nil {
			fmt.Println()
			fmt.Printf("Games: %d  Best: %d  Avg: %.0f  Best tile: %d\n",
				stats.GamesCount, stats.HighScore, stats.AvgScore, stats.BestTile)
		}
	}

	runs, err := store.RunStats(board)
	if err != nil {
		store.Close()
		fail("retrieving run statistics: %v", err)
	}
	if len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Solver runs")
	fmt.Println()
	fmt.Printf("  %-12s  %6s  %10s  %10s  %9s  %9s\n", "Strategy", "Games", "Avg score", "Max score", "Best tile", "Avg moves")
	for _, st := range runs {
		fmt.Printf("  %-12s  %6d  %10.0f  %10d  %9d  %9.0f\n",
			st.Strategy, st.Games, st.AvgScore, st.MaxScore, st.BestTile, st.AvgMoves)
	}

	recent, err := store.RecentRuns(board, 5)
	if err != nil || len(recent) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Recent runs")
	fmt.Println()
	for _, r := range recent {
		fmt.Printf("  %s  %-12s  score %-7d  tile %-5d  %4d moves  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Strategy, r.Score, r.MaxTile, r.Moves, r.Duration.Round(time.Millisecond))
	}
}
