package config

import (
	"fmt"
	"time"
)

// Preset is a named solver strength.
type Preset string

const (
	PresetFast     Preset = "fast"
	PresetBalanced Preset = "balanced"
	PresetStrong   Preset = "strong"
)

// Presets lists every preset from weakest to strongest.
var Presets = []Preset{PresetFast, PresetBalanced, PresetStrong}

// ParsePreset validates a preset name.
func ParsePreset(s string) (Preset, error) {
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown preset %q (want fast, balanced or strong)", ErrInvalid, s)
}

// ApplyPreset overrides playouts and time limit for a preset.
func ApplyPreset(cfg *Config, preset Preset) {
	switch preset {
	case PresetFast:
		cfg.Solver.Playouts = 25
		cfg.Solver.TimeLimit = 250 * time.Millisecond
	case PresetBalanced:
		cfg.Solver.Playouts = 100
		cfg.Solver.TimeLimit = 0
	case PresetStrong:
		cfg.Solver.Playouts = 500
		cfg.Solver.TimeLimit = 0
	}
}
