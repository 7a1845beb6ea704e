package t2048

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/term2048/internal/config"
	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/feedback"
	"github.com/vovakirdan/term2048/internal/games/t2048/engine"
)

type recorder struct {
	events []feedback.Event
}

func (r *recorder) Notify(e feedback.Event) {
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []feedback.Kind {
	out := make([]feedback.Kind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func newGame(t *testing.T, v Variant) (*Game, *recorder) {
	t.Helper()
	g := New(v)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 42})
	rec := &recorder{}
	g.SetNotifier(rec)
	return g, rec
}

// tiny is a 2x2 variant whose only spawn value is 2.
func tiny(winTile int) Variant {
	return Variant{ID: "tiny", Name: "Tiny", Rules: engine.Rules{Size: 2, WinTile: winTile}}
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestNewGameStartsOnStartScreen(t *testing.T) {
	g, rec := newGame(t, Variants[0])

	assert.Equal(t, StatusNotStarted, g.Status())
	assert.Equal(t, 0, g.Score())
	assert.Empty(t, g.RunID())
	assert.False(t, g.Move(engine.DirLeft), "moves before start are ignored")
	assert.Empty(t, rec.events)
}

func TestStart(t *testing.T) {
	g, _ := newGame(t, Variants[0])
	g.Start()

	assert.Equal(t, StatusPlaying, g.Status())
	assert.Equal(t, 2, g.Grid().TileCount())
	assert.Len(t, g.Grid(), 4)
	assert.NotEmpty(t, g.RunID())

	first := g.RunID()
	g.Restart()
	assert.NotEqual(t, first, g.RunID(), "each run gets its own ID")
}

func TestMoveAccumulatesScore(t *testing.T) {
	g, rec := newGame(t, Variants[0])
	g.Start()
	g.grid = engine.Grid{
		{2, 2, 4, 4},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	require.True(t, g.Move(engine.DirLeft))
	assert.Equal(t, 12, g.Score())
	assert.Equal(t, 1, g.Moves())
	assert.Equal(t, 12, g.Best())
	assert.Equal(t, []int{4, 8}, g.Grid()[0][:2])
	require.Len(t, rec.events, 1)
	assert.Equal(t, feedback.GridChanged, rec.events[0].Kind)
	assert.Equal(t, 12, rec.events[0].Gained)
	assert.Equal(t, g.RunID(), rec.events[0].RunID)
}

func TestBlockedMoveChangesNothing(t *testing.T) {
	g, rec := newGame(t, Variants[0])
	g.Start()
	g.grid = engine.Grid{
		{2, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	before := g.Grid()

	assert.False(t, g.Move(engine.DirLeft))
	assert.False(t, g.Move(engine.DirUp))
	assert.True(t, g.Grid().Equal(before))
	assert.Equal(t, 0, g.Moves())
	assert.Empty(t, rec.events)
}

func TestWinCheckedBeforeLoss(t *testing.T) {
	g, rec := newGame(t, tiny(8))
	g.Start()
	g.grid = engine.Grid{
		{4, 4},
		{2, 16},
	}

	// Left gives {8,_},{2,16}; the spawned 2 fills the board with no pairs.
	require.True(t, g.Move(engine.DirLeft))
	require.True(t, engine.CheckGameOver(g.Grid()), "board should also be locked")

	assert.Equal(t, StatusWon, g.Status())
	assert.Equal(t, []feedback.Kind{feedback.GridChanged, feedback.WinReached}, rec.kinds())
}

func TestLoss(t *testing.T) {
	g, rec := newGame(t, tiny(2048))
	g.Start()
	g.grid = engine.Grid{
		{4, 0},
		{8, 2},
	}

	require.True(t, g.Move(engine.DirRight))
	assert.True(t, g.Grid().Equal(engine.Grid{{2, 4}, {8, 2}}))
	assert.Equal(t, StatusLost, g.Status())
	assert.True(t, g.State().GameOver)
	assert.Equal(t, []feedback.Kind{feedback.GridChanged, feedback.GameOverReached}, rec.kinds())
	assert.Equal(t, 8, rec.events[1].MaxTile)
}

func TestTerminalStateIsSticky(t *testing.T) {
	g, rec := newGame(t, tiny(2048))
	g.Start()
	g.grid = engine.Grid{{2, 4}, {4, 2}}
	g.status = StatusLost
	score := g.Score()

	for _, dir := range engine.Directions {
		assert.False(t, g.Move(dir))
	}
	g.Step(frame(core.ActionUp))
	g.Step(frame(core.ActionPause))

	assert.Equal(t, StatusLost, g.Status())
	assert.Equal(t, score, g.Score())
	assert.Empty(t, rec.events)
}

func TestStepRestartAndHome(t *testing.T) {
	g, _ := newGame(t, Variants[0])

	g.Step(frame(core.ActionConfirm))
	require.Equal(t, StatusPlaying, g.Status())

	// Restart is only honoured on terminal screens
	run := g.RunID()
	g.Step(frame(core.ActionRestart))
	assert.Equal(t, run, g.RunID())

	g.status = StatusWon
	g.Step(frame(core.ActionRestart))
	assert.Equal(t, StatusPlaying, g.Status())
	assert.NotEqual(t, run, g.RunID())

	g.status = StatusLost
	g.score = 100
	g.Step(frame(core.ActionHome))
	assert.Equal(t, StatusNotStarted, g.Status())
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, 0, g.Grid().TileCount())
}

func TestStepOneMovePerTick(t *testing.T) {
	g, _ := newGame(t, Variants[0])
	g.Start()
	g.grid = engine.Grid{
		{0, 0, 0, 0},
		{0, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	res := g.Step(frame(core.ActionUp, core.ActionLeft))
	assert.True(t, res.Moved)
	assert.Equal(t, 1, g.Moves())
	assert.Equal(t, 2, g.Grid()[0][1], "up wins over left within one tick")
}

func TestStepPause(t *testing.T) {
	g, _ := newGame(t, Variants[0])
	g.Start()
	g.grid = engine.Grid{
		{0, 0, 0, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	res := g.Step(frame(core.ActionPause, core.ActionLeft))
	assert.False(t, res.Moved)
	assert.True(t, res.State.Paused)

	g.Step(frame(core.ActionPause))
	res = g.Step(frame(core.ActionLeft))
	assert.True(t, res.Moved)
}

func TestSetBestKeepsHigherScore(t *testing.T) {
	g, _ := newGame(t, Variants[0])
	g.Start()
	g.score = 500

	g.SetBest(100)
	assert.Equal(t, 500, g.Best())

	g.SetBest(900)
	assert.Equal(t, 900, g.Best())
}

func TestDeterministicRuns(t *testing.T) {
	play := func() Snapshot {
		g, _ := newGame(t, Variants[0])
		g.Start()
		for i := range 50 {
			g.Move(engine.Directions[i%4])
		}
		return g.Snapshot()
	}

	a, b := play(), play()
	assert.True(t, a.Grid.Equal(b.Grid), "same seed and moves should give the same grid")
	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Moves, b.Moves)
}

func TestSnapshotIsACopy(t *testing.T) {
	g, _ := newGame(t, Variants[0])
	g.Start()

	snap := g.Snapshot()
	snap.Grid[0][0] = 4096

	assert.NotEqual(t, 4096, g.Grid()[0][0])
	assert.Equal(t, 2048, snap.Target)
	assert.Equal(t, StatusPlaying, snap.Status)
}

func TestRender(t *testing.T) {
	g, _ := newGame(t, Variants[0])
	g.Start()
	g.grid[0][0] = 2048

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()

	assert.Contains(t, out, "Score: 0")
	assert.Contains(t, out, "Target: 2048")
	assert.Contains(t, out, "2048")
	assert.Contains(t, out, "┌")

	g.status = StatusLost
	g.Render(scr)
	assert.Contains(t, scr.String(), "GAME OVER")
}

func TestRenderMarksSpawnedTile(t *testing.T) {
	g, _ := newGame(t, tiny(0))
	g.Start()

	scr := core.NewScreen(80, 24)
	// Single digits are padded by two columns inside their tile.
	tileAt := func(row, col int) core.Cell {
		x, y := tileOrigin(boardRect(g.Grid(), 80), row, col)
		return scr.GetCell(x+2, y)
	}
	tileColor := func(row, col int) core.Color {
		return tileAt(row, col).Color
	}

	g.Render(scr)
	for row := range 2 {
		for col := range 2 {
			assert.NotEqual(t, spawnColor, tileColor(row, col), "nothing is marked before the first move")
		}
	}

	g.grid = engine.Grid{{2, 0}, {0, 0}}
	require.True(t, g.Move(engine.DirRight))
	spawn := g.Snapshot().LastSpawn
	require.NotNil(t, spawn)

	g.Render(scr)
	assert.Equal(t, '2', tileAt(spawn.Row, spawn.Col).Rune)
	assert.Equal(t, spawnColor, tileColor(spawn.Row, spawn.Col))
	assert.Equal(t, core.TileColor(2), tileColor(0, 1), "the moved tile keeps its color")
}

func TestRenderTooSmall(t *testing.T) {
	g, _ := newGame(t, Variants[0])
	g.Resize(20, 10)

	scr := core.NewScreen(20, 10)
	g.Render(scr)
	assert.True(t, strings.Contains(scr.String(), "Window too small"))

	res := g.Step(frame(core.ActionConfirm))
	assert.True(t, res.State.Paused)
	assert.Equal(t, StatusNotStarted, g.Status())
}

func TestVariantByID(t *testing.T) {
	v, err := VariantByID("MINI")
	require.NoError(t, err)
	assert.Equal(t, 3, v.Rules.Size)

	v, err = VariantByID("")
	require.NoError(t, err)
	assert.Equal(t, "classic", v.ID)

	_, err = VariantByID("huge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "classic")

	assert.Len(t, VariantIDs(), VariantCount())
	assert.Nil(t, GetVariant(VariantCount()))
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		wantID string
		check  func(t *testing.T, v Variant)
	}{
		{
			name:   "defaults",
			mutate: func(*config.Config) {},
			wantID: "classic",
		},
		{
			name:   "preset only",
			mutate: func(c *config.Config) { config.ApplyPreset(c, config.PresetHard) },
			wantID: "classic-hard",
			check: func(t *testing.T, v Variant) {
				assert.InDelta(t, 0.25, v.Rules.Spawn4Prob, 1e-9)
			},
		},
		{
			name:   "endless variant",
			mutate: func(c *config.Config) { c.Variant = "endless" },
			wantID: "endless",
			check: func(t *testing.T, v Variant) {
				assert.True(t, v.Endless())
			},
		},
		{
			name: "size override",
			mutate: func(c *config.Config) {
				c.Variant = "classic"
				c.Rules.Size = 6
			},
			wantID: "classic-custom",
			check: func(t *testing.T, v Variant) {
				assert.Equal(t, 6, v.Rules.Size)
				assert.Equal(t, "6x6 board, reach 2048", v.Description)
			},
		},
		{
			name:   "endless flag",
			mutate: func(c *config.Config) { c.Rules.Endless = true },
			wantID: "classic-custom",
			check: func(t *testing.T, v Variant) {
				assert.Equal(t, 0, v.Rules.WinTile)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			require.NoError(t, cfg.Normalize())

			v, err := Resolve(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, v.ID)
			if tt.check != nil {
				tt.check(t, v)
			}
		})
	}

	_, err := Resolve(config.Config{Variant: "nope"})
	require.Error(t, err)
}
