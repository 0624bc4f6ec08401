// Package montecarlo ranks the four 2048 moves by pure Monte Carlo playouts.
// Every move is applied once to a private copy of the position and then played
// out to the end many times with uniformly random moves; the move whose
// playouts end with the highest total score ranks first.
package montecarlo

import (
	"context"
	"encoding/binary"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/vovakirdan/mc2048/internal/game"
)

// DefaultPlayouts is the number of playouts per move when none is configured.
const DefaultPlayouts = 100

var ErrNilState = errors.New("montecarlo: nil state")

type Option func(e *Evaluator)

// WithPlayouts sets the default playouts per move.
func WithPlayouts(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.playouts = n
		}
	}
}

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) Option {
	return func(e *Evaluator) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithSeed makes worker random streams reproducible. Zero keeps OS entropy.
// Results are repeatable only with a single worker, since tasks are claimed
// dynamically.
func WithSeed(seed uint64) Option {
	return func(e *Evaluator) {
		e.seed = seed
	}
}

// WithDuration caps the wall-clock time of one evaluation.
func WithDuration(d time.Duration) Option {
	return func(e *Evaluator) {
		if d > 0 {
			e.duration = d
		}
	}
}

// WithMaxPlayoutMoves caps the random move draws of a single playout.
// Draws that do not change the grid count too. Zero plays to the end.
func WithMaxPlayoutMoves(n int) Option {
	return func(e *Evaluator) {
		if n >= 0 {
			e.maxMoves = n
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics enables the atomic metrics collector.
func WithMetrics() Option {
	return func(e *Evaluator) {
		e.newCollector = NewCollector
	}
}

// Evaluator runs Monte Carlo evaluations. One Evaluator may serve
// concurrent Evaluate calls.
type Evaluator struct {
	playouts     int
	workers      int
	seed         uint64
	duration     time.Duration
	maxMoves     int
	logger       *log.Logger
	newCollector func() Collector

	calls atomic.Uint64

	mu   sync.Mutex
	last Metrics
}

func New(opts ...Option) *Evaluator {
	e := &Evaluator{ // Default values
		playouts:     DefaultPlayouts,
		workers:      runtime.NumCPU(),
		logger:       log.Default().WithPrefix("montecarlo"),
		newCollector: NewNoopCollector,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Playouts returns the configured default playouts per move.
func (e *Evaluator) Playouts() int {
	return e.playouts
}

// Workers returns the configured worker count.
func (e *Evaluator) Workers() int {
	return e.workers
}

// Metrics returns the metrics of the last finished evaluation. It is the zero
// value unless WithMetrics was given.
func (e *Evaluator) Metrics() Metrics {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Evaluate ranks the four moves from state. playoutsPerMove <= 0 uses the
// configured default. state is only read.
//
// Playout tasks alternate between moves, so a duration cap or cancellation
// leaves per-move playout counts that differ by at most one. Hitting the
// duration cap is not an error; cancellation of ctx returns the partial
// ranking together with ctx.Err().
func (e *Evaluator) Evaluate(ctx context.Context, state *game.Engine, playoutsPerMove int) (Ranking, error) {
	if state == nil {
		return nil, ErrNilState
	}
	if playoutsPerMove <= 0 {
		playoutsPerMove = e.playouts
	}

	runCtx := ctx
	if e.duration > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.duration)
		defer cancel()
	}

	// Workers clone from a private copy, never from the caller's engine.
	root := state.Clone(nil)

	total := int64(len(game.Moves) * playoutsPerMove)
	workers := int(min(int64(e.workers), total))

	var (
		sums   [len(game.Moves)]atomic.Int64
		counts [len(game.Moves)]atomic.Int64
		next   atomic.Int64
	)

	metrics := e.newCollector()
	metrics.Start(workers)

	call := e.calls.Add(1)
	var g errgroup.Group
	for w := range workers {
		rng := e.workerRNG(call, w)
		g.Go(func() error {
			for runCtx.Err() == nil {
				task := next.Add(1) - 1
				if task >= total {
					return nil
				}
				i := task % int64(len(game.Moves))

				score, draws := e.playout(root, game.Moves[i], rng)
				sums[i].Add(int64(score))
				counts[i].Add(1)
				metrics.AddPlayout(draws)
			}
			return nil
		})
	}
	//nolint:errcheck // workers never fail
	g.Wait()

	var sumVals, countVals [len(game.Moves)]int64
	for i := range game.Moves {
		sumVals[i] = sums[i].Load()
		countVals[i] = counts[i].Load()
	}
	ranking := newRanking(sumVals[:], countVals[:])

	err := ctx.Err()
	capped := err == nil && runCtx.Err() != nil
	m := metrics.Complete(capped)

	e.mu.Lock()
	e.last = m
	e.mu.Unlock()

	e.logger.Debug("evaluation finished",
		"best", ranking.Best(),
		"playouts", ranking.Playouts(),
		"workers", workers,
		"capped", capped,
	)

	return ranking, err
}

// playout applies first to a fresh copy of root, then draws uniformly random
// moves until the game ends or the draw cap is reached. It returns the final
// score and the number of draws.
func (e *Evaluator) playout(root *game.Engine, first game.Move, rng *frand.RNG) (int, int) {
	sim := root.Clone(rng)
	sim.ApplyMove(first)

	draws := 0
	for e.maxMoves == 0 || draws < e.maxMoves {
		if sim.IsTerminal() {
			break
		}
		sim.ApplyMove(game.Moves[rng.Intn(len(game.Moves))])
		draws++
	}
	return sim.Score(), draws
}

// workerRNG returns the private random stream of worker w for one evaluation.
func (e *Evaluator) workerRNG(call uint64, w int) *frand.RNG {
	if e.seed == 0 {
		return frand.New()
	}
	seed := make([]byte, 32)
	binary.LittleEndian.PutUint64(seed[0:], e.seed)
	binary.LittleEndian.PutUint64(seed[8:], call)
	binary.LittleEndian.PutUint64(seed[16:], uint64(w))
	return frand.NewCustom(seed, 1024, 12)
}
