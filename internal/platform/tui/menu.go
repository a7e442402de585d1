package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/descent/internal/config"
	"github.com/vovakirdan/descent/internal/core"
	"github.com/vovakirdan/descent/internal/registry"
	"github.com/vovakirdan/descent/internal/storage"
)

// difficulties is the cycle order of the menu's difficulty selector.
var difficulties = []config.DifficultyPreset{
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
	config.DifficultyEasy,
}

// MenuKeyMap defines the key bindings for the mode picker.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Play       key.Binding
	Difficulty key.Binding
	Scores     key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Difficulty, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("up", "move")),
		Down:       key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("down", "move")),
		Play:       key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Difficulty: key.NewBinding(key.WithKeys("left", "right", "h", "l", "a", "d"), key.WithHelp("</>", "difficulty")),
		Scores:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "best runs")),
		Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// MenuItem is one mode with the player's bests.
type MenuItem struct {
	GameID    string
	Title     string
	HighScore int
	BestLevel int
	Runs      int
}

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	difficulty int // Index into difficulties
	config     core.RuntimeConfig
	keys       MenuKeyMap
	help       help.Model

	quitting bool
	selected *MenuItem
	scores   bool
}

// NewMenuModel lists every registered mode with its bests from store,
// which may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	var stats map[string]*storage.GameStats
	if store != nil {
		stats, _ = store.GetAllGamesStats()
	}

	var items []MenuItem
	for _, g := range registry.List() {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if s, ok := stats[g.ID]; ok {
			item.HighScore, item.BestLevel, item.Runs = s.HighScore, s.BestLevel, s.RunsCount
		}
		items = append(items, item)
	}

	return MenuModel{
		items:  items,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
}

// SetDifficulty preselects a preset; unknown names leave the selector as is.
func (m *MenuModel) SetDifficulty(name string) {
	for i, d := range difficulties {
		if string(d) == name {
			m.difficulty = i
			return
		}
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(0, m.cursor-1)
		case key.Matches(msg, m.keys.Down):
			m.cursor = min(len(m.items)-1, m.cursor+1)
		case key.Matches(msg, m.keys.Difficulty):
			step := 1
			if s := msg.String(); s == "left" || s == "h" || s == "a" {
				step = len(difficulties) - 1
			}
			m.difficulty = (m.difficulty + step) % len(difficulties)
		case key.Matches(msg, m.keys.Scores):
			m.scores = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Play):
			if len(m.items) == 0 {
				break
			}
			item := m.items[m.cursor]
			m.selected = &item
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	w := m.config.ScreenW

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(title.Render("D  E  S  C  E  N  T"), w))
	b.WriteString("\n")
	b.WriteString(centerText(dim.Render("how far down can you go?"), w))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-18s", item.Title)
		if item.Runs > 0 {
			line += fmt.Sprintf(" best %5d  lvl %d", item.HighScore, item.BestLevel)
		} else {
			line += dim.Render(" no runs yet")
		}
		if i == m.cursor {
			line = active.Render("> " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(centerText(line, w))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("difficulty  < %s >", m.Difficulty()), w))
	b.WriteString("\n\n")
	b.WriteString(centerText(dim.Render(m.help.View(m.keys)), w))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Difficulty returns the chosen preset name.
func (m MenuModel) Difficulty() string {
	return string(difficulties[m.difficulty])
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scores
}

// Config returns the runtime config, resized if the window changed.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within the given width. Width is measured in
// cells so styled strings center correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what the player picked.
type MenuResult struct {
	GameID          string
	Difficulty      string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu shows the menu with difficulty preselected and blocks until the
// player picks something.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, difficulty string) (MenuResult, error) {
	model := NewMenuModel(store, cfg)
	model.SetDifficulty(difficulty)

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config(), Difficulty: m.Difficulty()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.Selected() != nil:
		res.GameID = m.Selected().GameID
	default:
		res.Quit = true
	}
	return res, nil
}
