// Package config provides YAML-based configuration loading and solver
// presets for mc2048.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

var ErrInvalid = errors.New("config: invalid")

// Config is the full application configuration.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Solver  SolverConfig  `yaml:"solver"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
}

// BoardConfig defines the game grid.
type BoardConfig struct {
	Size int `yaml:"size"`
}

// SolverConfig defines the Monte Carlo evaluator parameters.
type SolverConfig struct {
	Playouts        int           `yaml:"playouts"`          // Playouts per move
	Workers         int           `yaml:"workers"`           // 0 = runtime.NumCPU()
	Seed            uint64        `yaml:"seed"`              // 0 = OS entropy
	TimeLimit       time.Duration `yaml:"time_limit"`        // 0 = no cap
	MaxPlayoutMoves int           `yaml:"max_playout_moves"` // 0 = play to the end
}

// LogConfig defines logging output.
type LogConfig struct {
	Level string `yaml:"level"`
}

// StorageConfig defines where scores are kept.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Board.Size < 2 {
		return fmt.Errorf("%w: board.size %d, must be at least 2", ErrInvalid, c.Board.Size)
	}
	if c.Solver.Playouts < 0 {
		return fmt.Errorf("%w: solver.playouts %d is negative", ErrInvalid, c.Solver.Playouts)
	}
	if c.Solver.Workers < 0 {
		return fmt.Errorf("%w: solver.workers %d is negative", ErrInvalid, c.Solver.Workers)
	}
	if c.Solver.TimeLimit < 0 {
		return fmt.Errorf("%w: solver.time_limit %s is negative", ErrInvalid, c.Solver.TimeLimit)
	}
	if c.Solver.MaxPlayoutMoves < 0 {
		return fmt.Errorf("%w: solver.max_playout_moves %d is negative", ErrInvalid, c.Solver.MaxPlayoutMoves)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}

// LogLevel parses Log.Level. An empty level means info.
func (c Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(c.Log.Level)
}
