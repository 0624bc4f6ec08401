package game

import (
	"fmt"
	"strings"
)

// Move represents a slide direction.
type Move int

const (
	Left Move = iota
	Right
	Up
	Down
)

// Moves lists every move in enumeration order.
var Moves = [...]Move{Left, Right, Up, Down}

// String returns the lowercase move name.
func (m Move) String() string {
	switch m {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("move(%d)", int(m))
	}
}

// Valid reports whether m is one of the four moves.
func (m Move) Valid() bool {
	return m >= Left && m <= Down
}

// ParseMove parses a move name ("left", "up", ...) or its first letter.
func ParseMove(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMove, s)
}
