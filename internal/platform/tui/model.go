package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/games/t2048"
	"github.com/vovakirdan/term2048/internal/storage"
)

// ScoreStore is the part of the score database the UI needs.
type ScoreStore interface {
	SaveScore(variant, runID string, score, maxTile int) (int64, error)
	HighScore(variant string) (int, error)
	TopScores(variant string, limit int) ([]storage.ScoreEntry, error)
}

// Options configures a game session.
type Options struct {
	Runtime        core.RuntimeConfig
	Logger         *log.Logger
	SwipeThreshold int
	Mouse          bool
}

// Model is the Bubble Tea model for a 2048 session.
type Model struct {
	game       *t2048.Game
	screen     *core.Screen
	store      ScoreStore
	logger     *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	swipe      *SwipeTracker
	inputFrame core.InputFrame
	gameState  core.GameState
	savedRun   string // run ID whose final score is already stored
	quitting   bool
	home       bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *t2048.Game, store ScoreStore, opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		keys:       NewKeyMapper(),
		swipe:      NewSwipeTracker(opts.SwipeThreshold),
		inputFrame: core.NewInputFrame(),
	}
}

// Init resets the game, starts a run and kicks off the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.game.Start()
	m.loadBest()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if a := m.swipe.Handle(msg); a.IsDirection() {
			m.inputFrame.Set(a)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize keeps the board as it is and only re-lays it out.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	m.swipe.Cancel()
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	m.saveFinished()

	// The session only goes back to NotStarted through Home.
	if m.game.Status() == t2048.StatusNotStarted {
		m.home = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// saveFinished stores the final score of a run once it ends.
// Storage errors are logged and the game carries on.
func (m *Model) saveFinished() {
	if !m.game.Status().Terminal() || m.savedRun == m.game.RunID() {
		return
	}
	m.savedRun = m.game.RunID()

	if m.store == nil {
		return
	}

	_, err := m.store.SaveScore(m.game.ID(), m.game.RunID(), m.game.Score(), m.game.MaxTile())
	if err != nil {
		m.logger.Error("could not save score", "variant", m.game.ID(), "run", m.game.RunID(), "error", err)
		return
	}
	m.logger.Debug("score saved", "variant", m.game.ID(), "score", m.game.Score())
	m.loadBest()
}

// loadBest refreshes the best score shown in the HUD.
func (m *Model) loadBest() {
	if m.store == nil {
		return
	}
	best, err := m.store.HighScore(m.game.ID())
	if err != nil {
		m.logger.Warn("could not load best score", "variant", m.game.ID(), "error", err)
		return
	}
	m.game.SetBest(best)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".t2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.home {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// WentHome reports whether the player asked for the start screen.
func (m Model) WentHome() bool {
	return m.home
}

// Config returns the runtime config, including the latest window size.
func (m Model) Config() core.RuntimeConfig {
	return m.config
}

// Outcome describes how a session ended.
type Outcome struct {
	Home   bool
	Config core.RuntimeConfig
}

// Run plays one session of the given game until the player quits or goes
// back to the start screen.
func Run(game *t2048.Game, store ScoreStore, opts Options) (Outcome, error) {
	model := NewModel(game, store, opts)

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	finalModel, err := tea.NewProgram(model, progOpts...).Run()
	if err != nil {
		return Outcome{Config: model.config}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return Outcome{Config: model.config}, nil
	}
	return Outcome{Home: m.WentHome(), Config: m.Config()}, nil
}
