package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mc2048/internal/core"
	"github.com/vovakirdan/mc2048/internal/game"
	"github.com/vovakirdan/mc2048/internal/montecarlo"
	"github.com/vovakirdan/mc2048/internal/storage"
)

const defaultWidth = 80

// Options configures the game screen.
type Options struct {
	Size      int
	Evaluator *montecarlo.Evaluator
	Playouts  int            // playouts per move, <= 0 uses the evaluator default
	Store     *storage.Store // nil disables score saving
	Logger    *log.Logger
	Source    func() game.Source // random source for each new game, nil = time seeded
}

// evalMsg carries a finished evaluation back to the UI goroutine.
type evalMsg struct {
	gen     int
	ranking montecarlo.Ranking
	apply   bool
	err     error
}

// Model is the Bubble Tea model for one live 2048 game.
type Model struct {
	opts   Options
	ctx    context.Context
	cancel context.CancelFunc

	engine    *game.Engine
	board     string
	highScore int

	// gen changes whenever the position changes; evaluations started for an
	// older generation are dropped when they return.
	gen        int
	thinking   bool
	autoplay   bool
	ranking    montecarlo.Ranking
	status     string
	scoreSaved bool

	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	width    int
	quitting bool
}

// NewModel creates a game screen with a fresh game.
func NewModel(opts Options) (Model, error) {
	if opts.Evaluator == nil {
		opts.Evaluator = montecarlo.New()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		board:  storage.BoardKey(opts.Size),
		screen: core.NewScreen(defaultWidth, 0),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		width:  defaultWidth,
	}
	if err := m.newGame(); err != nil {
		cancel()
		return Model{}, err
	}
	return m, nil
}

// newGame replaces the engine and invalidates in-flight evaluations.
func (m *Model) newGame() error {
	var src game.Source
	if m.opts.Source != nil {
		src = m.opts.Source()
	}
	e, err := game.New(m.opts.Size, src)
	if err != nil {
		return err
	}

	m.engine = e
	m.gen++
	m.thinking = false
	m.ranking = nil
	m.status = ""
	m.scoreSaved = false
	m.loadHighScore()
	return nil
}

func (m *Model) loadHighScore() {
	if m.opts.Store == nil {
		return
	}
	high, err := m.opts.Store.HighScore(m.board)
	if err != nil {
		m.opts.Logger.Warn("cannot load high score", "board", m.board, "err", err)
		return
	}
	m.highScore = high
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case evalMsg:
		return m.handleEval(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Autoplay):
		m.autoplay = !m.autoplay
		switch {
		case !m.autoplay:
			return m, nil
		case m.engine.IsTerminal():
			return m.restart()
		}
		return m.startEval(true)
	}

	// Any other key starts over once the game has ended.
	if m.engine.IsTerminal() || key.Matches(msg, m.keys.Restart) {
		return m.restart()
	}

	if mv, ok := m.keys.MoveFor(msg); ok {
		if m.engine.ApplyMove(mv) {
			return m, m.afterMove()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Best):
		return m.startEval(true)
	case key.Matches(msg, m.keys.Hint):
		return m.startEval(false)
	}

	return m, nil
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	if err := m.newGame(); err != nil {
		m.status = err.Error()
		return m, nil
	}
	if m.autoplay {
		return m, tickCmd(m.gen, autoplayDelay)
	}
	return m, nil
}

// startEval runs an evaluation of the current position off the UI goroutine.
func (m Model) startEval(apply bool) (tea.Model, tea.Cmd) {
	if m.thinking || m.engine.IsTerminal() {
		return m, nil
	}
	m.thinking = true
	m.status = "thinking..."
	return m, m.evaluateCmd(apply)
}

func (m Model) evaluateCmd(apply bool) tea.Cmd {
	// The evaluator only reads its input, but the live engine keeps changing
	// on this goroutine, so it gets a private copy.
	state := m.engine.Clone(nil)
	gen := m.gen
	ctx := m.ctx
	ev := m.opts.Evaluator
	playouts := m.opts.Playouts

	return func() tea.Msg {
		ranking, err := ev.Evaluate(ctx, state, playouts)
		return evalMsg{gen: gen, ranking: ranking, apply: apply, err: err}
	}
}

// handleEval applies or shows a finished evaluation.
func (m Model) handleEval(msg evalMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		m.opts.Logger.Debug("dropping stale ranking", "gen", msg.gen, "current", m.gen)
		return m, nil
	}
	m.thinking = false
	m.status = ""

	if msg.err != nil {
		m.autoplay = false
		m.status = fmt.Sprintf("solver: %v", msg.err)
		return m, nil
	}
	m.ranking = msg.ranking

	if !msg.apply {
		return m, nil
	}
	for _, mv := range msg.ranking.Moves() {
		// ineffective moves leave the engine untouched
		if m.engine.ApplyMove(mv) {
			return m, m.afterMove()
		}
	}
	return m, nil
}

// handleTick continues autoplay.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.autoplay || msg.gen != m.gen || m.thinking {
		return m, nil
	}
	if m.engine.IsTerminal() {
		return m.restart()
	}
	return m.startEval(true)
}

// afterMove runs after every effective move.
func (m *Model) afterMove() tea.Cmd {
	m.gen++
	m.thinking = false
	m.ranking = nil
	m.status = ""

	if m.engine.IsTerminal() {
		m.saveScore()
	}
	if m.autoplay {
		return tickCmd(m.gen, autoplayDelay)
	}
	return nil
}

// saveScore records a finished game once.
func (m *Model) saveScore() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	score := m.engine.Score()
	m.highScore = max(m.highScore, score)

	if m.opts.Store == nil || score == 0 {
		return
	}
	// Best-effort save, the game continues regardless
	if _, err := m.opts.Store.SaveScore(m.board, score, m.engine.MaxTile()); err != nil {
		m.opts.Logger.Warn("cannot save score", "board", m.board, "err", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.engine.Snapshot()
	w, h := BoardSize(snap.Size, snap.MaxTile)
	m.screen.Resize(max(m.width, w), h)

	status := m.status
	if m.autoplay && status == "" {
		status = "autoplay"
	}
	DrawBoard(m.screen, Board{Snapshot: snap, HighScore: m.highScore, Status: status})

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	if m.ranking != nil {
		b.WriteString(lipgloss.PlaceHorizontal(max(m.width, w), lipgloss.Center, renderRanking(m.ranking)))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(lipgloss.PlaceHorizontal(max(m.width, w), lipgloss.Center, helpStyle.Render(m.help.View(m.keys))))

	return b.String()
}

// renderRanking draws the move ranking as a small bordered table.
func renderRanking(r montecarlo.Ranking) string {
	var sb strings.Builder
	for i, s := range r {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%-5s %9.1f  (%d)", s.Move, s.Mean(), s.Playouts)
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	return style.Render(sb.String())
}

// Run starts the Bubble Tea program for one interactive session.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}
	defer model.cancel()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
