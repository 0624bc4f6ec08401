package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	cfg := Config{}
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &cfg))
	require.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, `
board:
  size: 5
solver:
  playouts: 250
  seed: 42
  time_limit: 1500ms
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Board.Size)
	require.Equal(t, 250, cfg.Solver.Playouts)
	require.Equal(t, uint64(42), cfg.Solver.Seed)
	require.Equal(t, 1500*time.Millisecond, cfg.Solver.TimeLimit)

	// unset keys keep defaults
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "~/.mc2048/scores.db", cfg.Storage.Path)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "board: [oops")
	_, err = Load(bad)
	require.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "board:\n  size: 1\n")
	_, err = Load(invalid)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg, "embedded default when no file exists")

	writeFile(t, filepath.Join(work, "configs", "mc2048.yaml"), "board:\n  size: 6\n")
	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, 6, cfg.Board.Size)

	writeFile(t, filepath.Join(home, ".mc2048", "config.yaml"), "board:\n  size: 3\n")
	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, 3, cfg.Board.Size, "user config wins over ./configs")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"board too small", func(c *Config) { c.Board.Size = 1 }},
		{"negative playouts", func(c *Config) { c.Solver.Playouts = -1 }},
		{"negative workers", func(c *Config) { c.Solver.Workers = -2 }},
		{"negative time limit", func(c *Config) { c.Solver.TimeLimit = -time.Second }},
		{"negative move cap", func(c *Config) { c.Solver.MaxPlayoutMoves = -5 }},
		{"unknown log level", func(c *Config) { c.Log.Level = "chatty" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"
	level, err := cfg.LogLevel()
	require.NoError(t, err)
	require.Equal(t, log.DebugLevel, level)

	cfg.Log.Level = ""
	level, err = cfg.LogLevel()
	require.NoError(t, err)
	require.Equal(t, log.InfoLevel, level)
}

func TestPresets(t *testing.T) {
	for _, p := range Presets {
		got, err := ParsePreset(string(p))
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
	_, err := ParsePreset("insane")
	require.ErrorIs(t, err, ErrInvalid)

	cfg := Default()
	ApplyPreset(&cfg, PresetFast)
	require.Equal(t, 25, cfg.Solver.Playouts)
	require.Equal(t, 250*time.Millisecond, cfg.Solver.TimeLimit)

	ApplyPreset(&cfg, PresetStrong)
	require.Equal(t, 500, cfg.Solver.Playouts)
	require.Zero(t, cfg.Solver.TimeLimit)
	require.NoError(t, cfg.Validate())
}
