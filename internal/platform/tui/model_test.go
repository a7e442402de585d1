package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/descent/internal/core"
	"github.com/vovakirdan/descent/internal/registry"
	"github.com/vovakirdan/descent/internal/storage"
)

// fakeGame scores one point per tick and ends after overAt ticks.
type fakeGame struct {
	state     core.GameState
	overAt    int
	resets    int
	reloads   int
	reloadErr error
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{HP: 3, Level: 0}
}

func (g *fakeGame) Step(core.InputFrame) core.StepResult {
	if !g.state.GameOver {
		g.state.Ticks++
		g.state.Score++
		if g.overAt > 0 && g.state.Ticks >= g.overAt {
			g.state.GameOver = true
			g.state.Cause = "fell"
		}
	}
	return core.StepResult{State: g.state, Finished: g.state.GameOver}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "FAKE") }
func (g *fakeGame) State() core.GameState   { return g.state }

func (g *fakeGame) Reload() error {
	g.reloads++
	return g.reloadErr
}

func init() {
	registry.Register("fake", "Fake", func(registry.Options) registry.Game {
		return &fakeGame{overAt: 3}
	})
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 1}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func TestModelRecordsFinishedRunOnce(t *testing.T) {
	store := openTestStore(t)
	game := &fakeGame{overAt: 3}
	m := NewModel(game, Options{Store: store, Runtime: testRuntime()})
	m.Init()

	for range 6 {
		m = update(t, m, TickMsg(time.Now()))
	}

	runs, err := store.TopRuns("fake", 10)
	if err != nil {
		t.Fatalf("TopRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].Score != 3 || runs[0].Cause != "fell" || runs[0].Ticks != 3 {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestModelQuitRecordsRun(t *testing.T) {
	store := openTestStore(t)
	m := NewModel(&fakeGame{}, Options{Store: store, Runtime: testRuntime()})
	m.Init()
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, TickMsg(time.Now()))

	next, cmd := m.Update(runeKey("q"))
	m = next.(Model)
	if !m.quitting || cmd == nil {
		t.Fatal("q should quit the program")
	}

	runs, _ := store.TopRuns("fake", 10)
	if len(runs) != 1 || runs[0].Cause != "quit" || runs[0].Score != 2 {
		t.Errorf("runs = %+v", runs)
	}
}

func TestModelSkipsEmptyRun(t *testing.T) {
	store := openTestStore(t)
	m := NewModel(&fakeGame{}, Options{Store: store, Runtime: testRuntime()})
	m.Init()
	m.Update(runeKey("q"))

	runs, _ := store.TopRuns("fake", 10)
	if len(runs) != 0 {
		t.Errorf("empty run recorded: %+v", runs)
	}
}

func TestModelBackOnlyAfterGameOver(t *testing.T) {
	game := &fakeGame{overAt: 2}
	m := NewModel(game, Options{Runtime: testRuntime()})
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("esc during a run should pause, not leave")
	}

	for range 3 {
		m = update(t, m, TickMsg(time.Now()))
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc after game over should return to the menu")
	}
	if m.View() != "" {
		t.Error("view should be empty once leaving")
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	game := &fakeGame{overAt: 1}
	m := NewModel(game, Options{Runtime: testRuntime()})
	m.Init()

	m = update(t, m, runeKey("r"))
	m = update(t, m, TickMsg(time.Now()))
	if game.resets != 1 {
		t.Fatalf("restart before game over: resets = %d, want 1", game.resets)
	}
	if !m.gameState.GameOver {
		t.Fatal("run should be over")
	}

	m = update(t, m, runeKey("r"))
	m = update(t, m, TickMsg(time.Now()))
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if m.gameState.GameOver {
		t.Error("restart should begin a new run")
	}
}

func TestModelConfigReload(t *testing.T) {
	game := &fakeGame{}
	m := NewModel(game, Options{Runtime: testRuntime()})
	m.Init()

	m = update(t, m, ConfigChangedMsg{Path: "descent.yaml"})
	if game.reloads != 1 {
		t.Fatalf("reloads = %d, want 1", game.reloads)
	}
	if !strings.Contains(m.View(), "config reloaded") {
		t.Error("view should show the reload notice")
	}

	game.reloadErr = errors.New("bad yaml")
	m = update(t, m, ConfigChangedMsg{Path: "descent.yaml"})
	if !strings.Contains(m.View(), "reload failed") {
		t.Error("view should show the reload failure")
	}
}

func TestModelViewRendersGame(t *testing.T) {
	m := NewModel(&fakeGame{}, Options{Runtime: testRuntime()})
	m.Init()
	if !strings.Contains(m.View(), "FAKE") {
		t.Error("view should contain the game's render")
	}
}

func TestSessionFlow(t *testing.T) {
	store := openTestStore(t)
	s := NewSessionModel(store, testRuntime(), "", nil)

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScores {
		t.Fatalf("tab should open scores, screen = %v", s.screen)
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatalf("esc should return to the menu, screen = %v", s.screen)
	}

	for i, item := range s.menu.items {
		if item.GameID == "fake" {
			s.menu.cursor = i
		}
	}
	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenGame {
		t.Fatalf("enter should start a game, screen = %v", s.screen)
	}

	for range 4 {
		step(TickMsg(time.Now()))
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatalf("esc after game over should return to the menu, screen = %v", s.screen)
	}
	if s.quitting {
		t.Fatal("session should still be running")
	}

	var fake MenuItem
	for _, item := range s.menu.items {
		if item.GameID == "fake" {
			fake = item
		}
	}
	if fake.HighScore != 3 {
		t.Errorf("menu high score = %d, want 3", fake.HighScore)
	}

	step(runeKey("q"))
	if !s.quitting {
		t.Error("q in the menu should end the session")
	}
}

func TestMenuDifficultyCycle(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())
	if got := m.Difficulty(); got != "normal" {
		t.Fatalf("default difficulty = %q, want normal", got)
	}

	press := func(msg tea.KeyMsg) {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	press(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.Difficulty(); got != "hard" {
		t.Errorf("after right = %q, want hard", got)
	}
	press(tea.KeyMsg{Type: tea.KeyLeft})
	press(tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.Difficulty(); got != "easy" {
		t.Errorf("after two lefts = %q, want easy", got)
	}

	m.SetDifficulty("fixed")
	if got := m.Difficulty(); got != "fixed" {
		t.Errorf("SetDifficulty(fixed) = %q", got)
	}
	m.SetDifficulty("bogus")
	if got := m.Difficulty(); got != "fixed" {
		t.Errorf("unknown preset changed the selector to %q", got)
	}
	if !strings.Contains(m.View(), "< fixed >") {
		t.Error("view should show the difficulty selector")
	}
}
