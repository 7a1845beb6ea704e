package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/term2048/internal/config"
	"github.com/vovakirdan/term2048/internal/core"
	"github.com/vovakirdan/term2048/internal/games/t2048"
	"github.com/vovakirdan/term2048/internal/storage"
)

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	menuPickStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
)

// MenuModel is the start screen: pick a variant and a preset, see the top
// scores for that pick.
type MenuModel struct {
	base      config.Config
	variants  []t2048.Variant
	cursor    int
	preset    int
	picked    bool // preset changed on this screen
	current   t2048.Variant
	top       []storage.ScoreEntry
	limit     int
	store     ScoreStore
	logger    *log.Logger
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	width     int
	height    int

	quitting       bool
	selected       bool
	openScoreboard bool
}

// NewMenuModel creates the start screen with the cursor on cfg's variant
// and preset.
func NewMenuModel(store ScoreStore, cfg config.Config, rt core.RuntimeConfig, logger *log.Logger) MenuModel {
	if logger == nil {
		logger = log.Default()
	}

	m := MenuModel{
		base:      cfg,
		variants:  t2048.Variants,
		limit:     cfg.Scores.Limit,
		store:     store,
		logger:    logger,
		config:    rt,
		keyMapper: NewKeyMapper(),
		width:     rt.ScreenW,
		height:    rt.ScreenH,
	}
	if m.limit <= 0 {
		m.limit = storage.DefaultLimit
	}

	for i, v := range m.variants {
		if strings.EqualFold(v.ID, cfg.Variant) {
			m.cursor = i
		}
	}
	for i, p := range config.Presets {
		if strings.EqualFold(string(p), cfg.Preset) {
			m.preset = i
		}
	}

	m.refresh()
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.moveCursor(-1)

	case MenuActionDown:
		m.moveCursor(1)

	case MenuActionLeft:
		m.preset = (m.preset + len(config.Presets) - 1) % len(config.Presets)
		m.picked = true
		m.refresh()

	case MenuActionRight:
		m.preset = (m.preset + 1) % len(config.Presets)
		m.picked = true
		m.refresh()

	case MenuActionSelect:
		m.selected = true
		return m, tea.Quit

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// moveCursor moves the variant cursor by delta, stopping at either end.
func (m *MenuModel) moveCursor(delta int) {
	next := core.Clamp(m.cursor+delta, 0, len(m.variants)-1)
	if next == m.cursor {
		return
	}
	m.cursor = next
	m.refresh()
}

// Selection returns the config for the highlighted variant. The preset
// only replaces the configured rules once the player changes it here.
func (m MenuModel) Selection() config.Config {
	cfg := m.base
	cfg.Variant = m.variants[m.cursor].ID
	if m.picked {
		config.ApplyPreset(&cfg, config.Presets[m.preset])
	}
	return cfg
}

// refresh resolves the current pick and reloads its top scores.
func (m *MenuModel) refresh() {
	v, err := t2048.Resolve(m.Selection())
	if err != nil {
		m.logger.Warn("cannot resolve variant", "error", err)
		v = m.variants[m.cursor]
	}
	m.current = v

	m.top = nil
	if m.store == nil {
		return
	}
	top, err := m.store.TopScores(v.ID, m.limit)
	if err != nil {
		m.logger.Warn("could not load top scores", "variant", v.ID, "error", err)
		return
	}
	m.top = top
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("2 0 4 8"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText("Join the numbers and get to the 2048 tile!", m.width))
	b.WriteString("\n\n")

	for i, v := range m.variants {
		line := fmt.Sprintf("  %-8s %s", v.Name, menuDimStyle.Render(v.Description))
		if i == m.cursor {
			line = menuPickStyle.Render("> "+fmt.Sprintf("%-8s", v.Name)) + " " + v.Description
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	sel := m.Selection()
	preset := fmt.Sprintf("< Preset: %s >  4-tiles: %.0f%%", config.Presets[m.preset], sel.Rules.Spawn4Prob*100)
	b.WriteString(centerText(preset, m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(menuTitleStyle.Render("Top scores · "+m.current.ID), m.width))
	b.WriteString("\n")
	for _, line := range topScoreLines(m.top) {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Variant  |  Left/Right: Preset  |  Enter: Play  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// topScoreLines formats a high-score list, one line per entry.
func topScoreLines(entries []storage.ScoreEntry) []string {
	if len(entries) == 0 {
		return []string{"No scores yet"}
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%d. %8s  %5d  %s", i+1, humanize.Comma(int64(e.Score)), e.MaxTile, whenPlayed(e))
	}
	return lines
}

// whenPlayed describes how long ago a score was set.
func whenPlayed(e storage.ScoreEntry) string {
	if e.CreatedAt.IsZero() {
		return "-"
	}
	return humanize.Time(e.CreatedAt)
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Styled text is measured
// without its escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       config.Config
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the start screen and returns the selection result.
func RunMenu(store ScoreStore, cfg config.Config, rt core.RuntimeConfig, logger *log.Logger) (MenuResult, error) {
	model := NewMenuModel(store, cfg, rt, logger)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: rt}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: rt, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config(), Selection: m.Selection()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting(), !m.selected:
		result.Quit = true
	}
	return result, nil
}
