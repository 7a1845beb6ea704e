package engine

// DefaultWinTile is the tile value that wins the classic game.
const DefaultWinTile = 2048

// DefaultSpawn4Prob is the classic probability of spawning a 4 instead of a 2.
const DefaultSpawn4Prob = 0.10

// Rand is the randomness the engine needs. *math/rand.Rand satisfies it;
// tests can supply a scripted source.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Rules are the tunable parameters of a rule set.
type Rules struct {
	Size       int     // Grid dimension for new games
	WinTile    int     // Tile that wins; 0 disables winning
	Spawn4Prob float64 // Probability that a spawned tile is 4
}

// DefaultRules returns the classic 4x4, 2048, 10% rules.
func DefaultRules() Rules {
	return Rules{
		Size:       DefaultSize,
		WinTile:    DefaultWinTile,
		Spawn4Prob: DefaultSpawn4Prob,
	}
}

// Engine applies a rule set using an injected random source.
// It keeps no game state; the rng is its only side effect.
type Engine struct {
	rules Rules
	rng   Rand
}

// New creates an engine for the given rules.
func New(rules Rules, rng Rand) *Engine {
	return &Engine{rules: rules, rng: rng}
}

// Rules returns the engine's rule set.
func (e *Engine) Rules() Rules {
	return e.rules
}

// NewGrid returns an empty grid of the configured size.
func (e *Engine) NewGrid() Grid {
	return NewGrid(e.rules.Size)
}

// GenerateInitial returns a fresh grid with two random tiles.
func (e *Engine) GenerateInitial() Grid {
	g := e.NewGrid()
	g = e.AddRandomTile(g)
	g = e.AddRandomTile(g)
	return g
}

// AddRandomTile spawns a 2 or 4 in a uniformly chosen empty cell.
// A full grid is returned unchanged. The input is never modified.
func (e *Engine) AddRandomTile(g Grid) Grid {
	g, _, _ = e.spawn(g)
	return g
}

// spawn is AddRandomTile that also reports where the tile went.
func (e *Engine) spawn(g Grid) (Grid, Cell, bool) {
	empty := g.EmptyCells()
	if len(empty) == 0 {
		return g, Cell{}, false
	}

	cell := empty[e.rng.Intn(len(empty))]

	value := 2
	if e.rng.Float64() < e.rules.Spawn4Prob {
		value = 4
	}

	out := g.Clone()
	out[cell.Row][cell.Col] = value
	return out, cell, true
}

// Move slides the grid in dir and, if anything changed, spawns a tile.
// Returns the new grid and the score gained by merges.
// A move that changes nothing returns an equal grid and zero.
func (e *Engine) Move(g Grid, dir Direction) (Grid, int) {
	out := e.Apply(g, dir)
	return out.Grid, out.Score
}

// Outcome describes the result of a single move.
type Outcome struct {
	Grid    Grid
	Score   int
	Changed bool
	Spawned *Cell // nil when no tile was added
}

// Apply is Move with full detail about what happened.
func (e *Engine) Apply(g Grid, dir Direction) Outcome {
	slid, score, changed := Slide(g, dir)
	if !changed {
		return Outcome{Grid: g.Clone()}
	}

	out := Outcome{Grid: slid, Score: score, Changed: true}
	if spawned, cell, ok := e.spawn(slid); ok {
		out.Grid = spawned
		out.Spawned = &cell
	}
	return out
}

// CheckWin reports whether the grid holds the engine's win tile.
func (e *Engine) CheckWin(g Grid) bool {
	return CheckWin(g, e.rules.WinTile)
}

// CheckWin reports whether any cell equals target.
// A target of 0 never wins.
func CheckWin(g Grid, target int) bool {
	if target <= 0 {
		return false
	}
	for _, row := range g {
		for _, v := range row {
			if v == target {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any horizontally or vertically adjacent
// cells are equal. Columns are read the way vertical moves read them: a row
// too short for a column is skipped, so the cells above and below it are
// neighbours.
func HasPossibleMerge(g Grid) bool {
	return hasAdjacentPair(g) || hasAdjacentPair(transpose(g))
}

// hasAdjacentPair reports whether any row holds two equal neighbouring tiles.
func hasAdjacentPair(g Grid) bool {
	for _, row := range g {
		for j := 0; j+1 < len(row); j++ {
			if row[j] != 0 && row[j] == row[j+1] {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if the grid has an empty cell or a mergeable pair.
func CanMove(g Grid) bool {
	return g.HasEmptyCell() || HasPossibleMerge(g)
}

// CheckGameOver returns true if no move can change the grid.
// An empty grid has no moves and counts as over.
func CheckGameOver(g Grid) bool {
	return !CanMove(g)
}
