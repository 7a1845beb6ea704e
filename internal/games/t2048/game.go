package t2048

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/feedback"
	"github.com/vovakirdan/term2048/internal/games/t2048/engine"
)

// Status is the session state.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusPlaying    Status = "playing"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Terminal reports whether the run has ended.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// Game is one player's 2048 session. It owns the grid and score and uses
// the engine as its transition function. Not safe for concurrent use.
type Game struct {
	variant  Variant
	rng      *rand.Rand
	engine   *engine.Engine
	notifier feedback.Notifier
	tick     uint64

	status    Status
	grid      engine.Grid
	score     int
	best      int
	moves     int
	runID     string
	lastSpawn *engine.Cell
	paused    bool

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a session for the variant. It starts on the start screen;
// call Reset to seed it for the terminal.
func New(v Variant) *Game {
	g := &Game{
		variant:  v,
		notifier: feedback.Discard,
	}
	g.seed(1)
	g.Home()
	return g
}

// SetNotifier sets where session events go. nil discards them.
func (g *Game) SetNotifier(n feedback.Notifier) {
	if n == nil {
		n = feedback.Discard
	}
	g.notifier = n
}

// SetBest sets the best score shown in the HUD, usually loaded from storage.
func (g *Game) SetBest(best int) {
	g.best = max(best, g.score)
}

// ID returns the score key of the session's variant.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant.ID == Variants[0].ID {
		return "2048"
	}
	return "2048 " + g.variant.Name
}

// Variant returns the rule set in use.
func (g *Game) Variant() Variant {
	return g.variant
}

// Reset seeds the random source, adopts the screen size and returns to the
// start screen.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.seed(cfg.Seed)
	g.tick = 0
	g.Resize(cfg.ScreenW, cfg.ScreenH)
	g.Home()
}

func (g *Game) seed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
	g.engine = engine.New(g.variant.Rules, g.rng)
}

// Resize adopts a new screen size.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Start begins a new run with a fresh grid and run ID.
func (g *Game) Start() {
	g.grid = g.engine.GenerateInitial()
	g.score = 0
	g.moves = 0
	g.runID = uuid.NewString()
	g.lastSpawn = nil
	g.paused = false
	g.status = StatusPlaying
}

// Restart abandons the current run and starts a new one.
func (g *Game) Restart() {
	g.Start()
}

// Home returns to the start screen. The grid is cleared and the score reset.
func (g *Game) Home() {
	g.grid = g.engine.NewGrid()
	g.score = 0
	g.moves = 0
	g.runID = ""
	g.lastSpawn = nil
	g.paused = false
	g.status = StatusNotStarted
}

// Move applies one move. It returns true if the grid changed.
// Moves outside the Playing state are ignored.
func (g *Game) Move(dir engine.Direction) bool {
	if g.status != StatusPlaying {
		return false
	}

	out := g.engine.Apply(g.grid, dir)
	if !out.Changed {
		return false
	}

	g.grid = out.Grid
	g.score += out.Score
	g.moves++
	g.lastSpawn = out.Spawned
	if g.score > g.best {
		g.best = g.score
	}
	g.emit(feedback.GridChanged, out.Score)

	// A move that reaches the target on a locked board is a win
	switch {
	case g.engine.CheckWin(g.grid):
		g.status = StatusWon
		g.emit(feedback.WinReached, 0)
	case engine.CheckGameOver(g.grid):
		g.status = StatusLost
		g.emit(feedback.GameOverReached, 0)
	}
	return true
}

func (g *Game) emit(kind feedback.Kind, gained int) {
	g.notifier.Notify(feedback.Event{
		Kind:    kind,
		RunID:   g.runID,
		Variant: g.variant.ID,
		Score:   g.score,
		Gained:  gained,
		MaxTile: g.grid.MaxTile(),
		Moves:   g.moves,
	})
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	minW, minH := minScreenSize(g.variant.Rules.Size)
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step applies one tick of input. At most one move is made per tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	switch g.status {
	case StatusNotStarted:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
			g.Start()
		}
		return core.StepResult{State: g.State()}

	case StatusWon, StatusLost:
		switch {
		case in.Has(core.ActionRestart) || in.Has(core.ActionConfirm):
			g.Restart()
		case in.Has(core.ActionHome):
			g.Home()
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		if in.Has(core.ActionHome) {
			g.Home()
		}
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFrom(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	moved := g.Move(dir)
	return core.StepResult{State: g.State(), Moved: moved}
}

// directionFrom picks the single direction to apply from a frame.
func directionFrom(in core.InputFrame) (engine.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return engine.DirUp, true
	case in.Has(core.ActionDown):
		return engine.DirDown, true
	case in.Has(core.ActionLeft):
		return engine.DirLeft, true
	case in.Has(core.ActionRight):
		return engine.DirRight, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.status.Terminal(),
		Paused:   g.paused || g.tooSmall,
	}
}

// Status returns the session state.
func (g *Game) Status() Status {
	return g.status
}

// Grid returns a copy of the current grid.
func (g *Game) Grid() engine.Grid {
	return g.grid.Clone()
}

// Score returns the score of the current run.
func (g *Game) Score() int {
	return g.score
}

// Best returns the best known score for the variant.
func (g *Game) Best() int {
	return g.best
}

// Moves returns the number of effective moves in the current run.
func (g *Game) Moves() int {
	return g.moves
}

// RunID identifies the current run. Empty on the start screen.
func (g *Game) RunID() string {
	return g.runID
}

// MaxTile returns the highest tile on the grid.
func (g *Game) MaxTile() int {
	return g.grid.MaxTile()
}
