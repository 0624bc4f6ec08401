// Package strategy provides a registry of move-selection strategies.
// Strategies register themselves in init() functions so that commands can
// pick one by name without hardcoded dependencies.
package strategy

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/mc2048/internal/game"
	"github.com/vovakirdan/mc2048/internal/montecarlo"
)

// ErrNoMove is returned when no move changes the grid.
var ErrNoMove = errors.New("strategy: no effective move")

// Strategy picks the next move for a position.
type Strategy interface {
	// Name returns the registry name (e.g. "montecarlo").
	Name() string

	// Next returns the move to play from state. state must not be mutated.
	Next(ctx context.Context, state *game.Engine) (game.Move, error)
}

// Config carries everything a factory may need.
type Config struct {
	Evaluator *montecarlo.Evaluator // nil means a default evaluator
	Playouts  int                   // playouts per move, <= 0 uses the evaluator default
	Seed      uint64                // 0 means OS entropy
}

// Info describes a registered strategy.
type Info struct {
	Name        string
	Description string
}

// Factory creates a strategy from cfg.
type Factory func(cfg Config) Strategy

var (
	factories    = make(map[string]Factory)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a strategy factory. Panics if the name is already taken.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("strategy: %q already registered", name))
	}
	factories[name] = f
	descriptions[name] = description
}

// List returns all registered strategies sorted by name.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for name := range factories {
		result = append(result, Info{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a strategy by name.
func Create(name string, cfg Config) (Strategy, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("strategy: unknown strategy %q", name)
	}
	return f(cfg), nil
}

// Exists reports whether a strategy with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
