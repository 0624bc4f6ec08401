package game

// Milestone is a tile value worth reporting when a game reaches it.
type Milestone struct {
	ID   int
	Name string
	Tile int
}

// Milestones are ordered by tile value. 8192 is very hard on a 4x4 grid but
// reachable.
var Milestones = []Milestone{
	{ID: 1, Name: "Warm-up", Tile: 128},
	{ID: 2, Name: "Getting Started", Tile: 256},
	{ID: 3, Name: "Building Momentum", Tile: 512},
	{ID: 4, Name: "The Climb", Tile: 1024},
	{ID: 5, Name: "Classic 2048", Tile: 2048},
	{ID: 6, Name: "Beyond Limits", Tile: 4096},
	{ID: 7, Name: "Master Class", Tile: 8192},
}

// Reached returns the milestones a game with the given max tile has reached.
func Reached(maxTile int) []Milestone {
	var out []Milestone
	for _, m := range Milestones {
		if maxTile >= m.Tile {
			out = append(out, m)
		}
	}
	return out
}

// HighestMilestone returns the best milestone reached, or nil if none.
func HighestMilestone(maxTile int) *Milestone {
	var best *Milestone
	for i := range Milestones {
		if maxTile >= Milestones[i].Tile {
			best = &Milestones[i]
		}
	}
	return best
}
