package montecarlo

import (
	"sync/atomic"
	"time"
)

// Metrics describes the last evaluation.
type Metrics struct {
	Workers        int
	Playouts       int64
	SimulatedMoves int64 // random move draws across all playouts
	Duration       time.Duration
	Capped         bool // stopped by the duration cap before all playouts ran
}

// PlayoutsPerSecond returns the playout throughput, or 0 for an empty run.
func (m Metrics) PlayoutsPerSecond() float64 {
	if m.Duration <= 0 {
		return 0
	}
	return float64(m.Playouts) / m.Duration.Seconds()
}

// Collector gathers per-evaluation counters from concurrent workers.
type Collector interface {
	Start(workers int)
	AddPlayout(moves int)
	Complete(capped bool) Metrics
}

type collector struct {
	startTime time.Time
	workers   int
	playouts  atomic.Int64
	moves     atomic.Int64
}

// NewCollector returns a Collector backed by atomic counters.
func NewCollector() Collector {
	return &collector{}
}

func (c *collector) Start(workers int) {
	c.startTime = time.Now()
	c.workers = workers
	c.playouts.Store(0)
	c.moves.Store(0)
}

func (c *collector) AddPlayout(moves int) {
	c.playouts.Add(1)
	c.moves.Add(int64(moves))
}

func (c *collector) Complete(capped bool) Metrics {
	return Metrics{
		Workers:        c.workers,
		Playouts:       c.playouts.Load(),
		SimulatedMoves: c.moves.Load(),
		Duration:       time.Since(c.startTime),
		Capped:         capped,
	}
}

type noopCollector struct{}

// NewNoopCollector returns a Collector that records nothing.
func NewNoopCollector() Collector {
	return noopCollector{}
}

func (noopCollector) Start(int)             {}
func (noopCollector) AddPlayout(int)        {}
func (noopCollector) Complete(bool) Metrics { return Metrics{} }
