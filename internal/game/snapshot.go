package game

// Snapshot is a read-only view of an engine, taken after each mutation by
// callers that redraw or log the game.
type Snapshot struct {
	Size     int
	Score    int
	Grid     Grid
	MaxTile  int
	Terminal bool
}

// Snapshot returns the current state. The grid is a copy.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Size:     e.Size(),
		Score:    e.score,
		Grid:     e.Grid(),
		MaxTile:  e.MaxTile(),
		Terminal: e.IsTerminal(),
	}
}
