// Package tui provides the Bubble Tea front end of mc2048: one live game,
// a solver that runs off the UI goroutine and a scoreboard.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// autoplayDelay is the pause between autoplay moves so the board stays readable.
const autoplayDelay = 60 * time.Millisecond

// TickMsg asks the model to start the next autoplay evaluation.
type TickMsg struct {
	gen int
}

// tickCmd schedules the next autoplay step for generation gen.
func tickCmd(gen int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return TickMsg{gen: gen}
	})
}
