package t2048

import "github.com/vovakirdan/term2048/internal/games/t2048/engine"

// Snapshot captures the session for rendering, persistence and
// determinism tests.
type Snapshot struct {
	Tick      uint64
	Variant   string
	RunID     string
	Target    int // Win tile, 0 in endless play
	Score     int
	Best      int
	Moves     int
	Grid      engine.Grid
	MaxTile   int
	Status    Status
	Paused    bool
	LastSpawn *engine.Cell // Tile added by the last move, if any
}

// Snapshot returns a copy of the current session state.
func (g *Game) Snapshot() Snapshot {
	var spawn *engine.Cell
	if g.lastSpawn != nil {
		c := *g.lastSpawn
		spawn = &c
	}

	return Snapshot{
		Tick:      g.tick,
		Variant:   g.variant.ID,
		RunID:     g.runID,
		Target:    g.variant.Rules.WinTile,
		Score:     g.score,
		Best:      g.best,
		Moves:     g.moves,
		Grid:      g.grid.Clone(),
		MaxTile:   g.grid.MaxTile(),
		Status:    g.status,
		Paused:    g.paused,
		LastSpawn: spawn,
	}
}
