package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/descent/internal/config"
	"github.com/vovakirdan/descent/internal/core"
	"github.com/vovakirdan/descent/internal/registry"
	"github.com/vovakirdan/descent/internal/storage"
)

// Reloader is implemented by games that can re-read their configuration
// and restart with it.
type Reloader interface {
	Reload() error
}

// ConfigChangedMsg is sent when the watched config file was saved.
type ConfigChangedMsg struct {
	Path string
}

// ConfigErrorMsg is sent when the config watcher fails.
type ConfigErrorMsg struct {
	Err error
}

// Options configure a game session.
type Options struct {
	Store     *storage.Store // May be nil: runs are not recorded
	Runtime   core.RuntimeConfig
	Logger    *log.Logger
	WatchPath string // Config file to hot-reload, empty to disable
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	log        *log.Logger
	config     core.RuntimeConfig
	keys       *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	runSaved   bool   // Whether the current run has been recorded
	notice     string // Transient status line, e.g. reload results
	noticeLeft int    // Ticks before the notice disappears
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		log:        logger,
		config:     cfg,
		keys:       NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ConfigChangedMsg:
		return m.handleConfigChanged(msg)

	case ConfigErrorMsg:
		m.log.Error("config watcher", "error", msg.Err)
		m.setNotice("config watcher error: " + msg.Err.Error())
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.recordRun("quit")
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack && m.gameState.GameOver:
		m.backToMenu = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.inputFrame.Set(core.ActionPause)
	case action == core.ActionRestart && !m.gameState.GameOver:
		// Restart only applies to a finished run.
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize restarts the run at the new size; a finished run keeps its
// result on screen.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.LevelUp {
		m.log.Info("level up", "game", m.game.ID(), "level", m.gameState.Level, "score", m.gameState.Score)
	}
	if m.gameState.GameOver {
		m.recordRun(m.gameState.Cause)
	}
	if m.noticeLeft > 0 {
		m.noticeLeft--
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

func (m Model) handleConfigChanged(msg ConfigChangedMsg) (tea.Model, tea.Cmd) {
	r, ok := m.game.(Reloader)
	if !ok {
		return m, nil
	}
	if err := r.Reload(); err != nil {
		m.log.Warn("config reload failed", "path", msg.Path, "error", err)
		m.setNotice("reload failed: " + err.Error())
		return m, nil
	}
	m.log.Info("config reloaded", "path", msg.Path)
	m.gameState = m.game.State()
	m.runSaved = false
	m.setNotice("config reloaded")
	return m, nil
}

func (m *Model) setNotice(s string) {
	m.notice = s
	m.noticeLeft = m.config.TickRate * 3
}

// recordRun saves the current run once. Empty runs are not recorded.
func (m *Model) recordRun(cause string) {
	if m.runSaved || m.gameState.Score <= 0 {
		return
	}
	m.runSaved = true
	if m.store == nil {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		GameID: m.game.ID(),
		Score:  m.gameState.Score,
		Level:  m.gameState.Level,
		Ticks:  m.gameState.Ticks,
		Cause:  cause,
	})
	if err != nil {
		m.log.Error("save run", "error", err)
		return
	}
	m.log.Info("run saved", "game", m.game.ID(), "score", m.gameState.Score, "level", m.gameState.Level, "cause", cause)
}

// saveScreenshot saves the current screen to ~/.descent/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.log.Warn("screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".descent", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("screenshot", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("screenshot", "error", err)
		return
	}
	m.setNotice("screenshot saved: " + path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	if m.noticeLeft > 0 && m.notice != "" {
		m.screen.DrawTextColored(1, m.screen.Height()-1, m.notice, core.ColorYellow)
	}
	return RenderScreen(m.screen)
}

// BackToMenu reports whether the user left a finished run for the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a game and blocks until it exits.
// It reports whether the user asked to return to the menu.
func Run(game registry.Game, opts Options) (backToMenu bool, err error) {
	model := NewModel(game, opts)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if opts.WatchPath != "" {
		w, err := config.NewWatcher(opts.WatchPath)
		if err != nil {
			return false, fmt.Errorf("tui: watch %s: %w", opts.WatchPath, err)
		}
		defer w.Close()
		go forwardConfigEvents(w, p)
	}

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}

// forwardConfigEvents relays watcher events into the program until the
// watcher is closed.
func forwardConfigEvents(w *config.Watcher, p *tea.Program) {
	events, errs := w.Events, w.Errors
	for events != nil || errs != nil {
		select {
		case path, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			p.Send(ConfigChangedMsg{Path: path})
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			p.Send(ConfigErrorMsg{Err: err})
		}
	}
}
