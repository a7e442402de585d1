package descent

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/descent/internal/config"
	"github.com/vovakirdan/descent/internal/core"
	"github.com/vovakirdan/descent/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 60, ScreenH: 25, TickRate: 60, Seed: seed}
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{config.ModeDescent, config.ModeSwarm} {
		g, err := registry.Create(id, registry.Options{})
		if err != nil {
			t.Fatalf("Create(%q) error = %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() core.GameState {
		g := New(config.ModeDescent, "Descent", registry.Options{})
		g.Reset(testRuntime(777))
		var st core.GameState
		for i := 0; i < 900; i++ {
			in := core.NewInputFrame()
			switch (i / 30) % 4 {
			case 0:
				in.Set(core.ActionLeft)
			case 2:
				in.Set(core.ActionRight)
			}
			if i%120 == 0 {
				in.Set(core.ActionDash)
			}
			st = g.Step(in).State
			if st.GameOver {
				break
			}
		}
		return st
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("runs differ: %+v vs %+v", a, b)
	}
}

func TestHeldDirectionReleases(t *testing.T) {
	g := New(config.ModeSwarm, "Swarm", registry.Options{})
	g.Reset(testRuntime(1))

	press := core.NewInputFrame()
	press.Set(core.ActionLeft)
	if d := g.direction(press); d.X != -1 {
		t.Fatalf("direction after press = %+v, expected left", d)
	}

	hold := int(holdSeconds*float64(g.runtime.TickRate) + 0.5)
	for i := 1; i < hold; i++ {
		if d := g.direction(core.NewInputFrame()); d.X != -1 {
			t.Fatalf("tick %d: direction released early", i)
		}
	}
	if d := g.direction(core.NewInputFrame()); d.X != 0 {
		t.Errorf("direction still held after %d ticks: %+v", hold, d)
	}

	press = core.NewInputFrame()
	press.Set(core.ActionLeft)
	g.direction(press)
	press = core.NewInputFrame()
	press.Set(core.ActionRight)
	if d := g.direction(press); d.X != 1 {
		t.Errorf("opposite press = %+v, expected right only", d)
	}
}

func TestPauseFreezesRun(t *testing.T) {
	g := New(config.ModeDescent, "Descent", registry.Options{})
	g.Reset(testRuntime(5))

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	before := g.World().Ticks()

	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.World().Ticks() != before {
		t.Errorf("world advanced while paused")
	}
	if !g.State().Paused {
		t.Errorf("State().Paused = false")
	}
}

func TestRenderShowsHUDAndPlayer(t *testing.T) {
	g := New(config.ModeDescent, "Descent", registry.Options{})
	rc := testRuntime(3)
	g.Reset(rc)
	g.Step(core.NewInputFrame())

	scr := core.NewScreen(rc.ScreenW, rc.ScreenH)
	g.Render(scr)

	if hud := scr.Row(0); !strings.Contains(hud, "DESCENT") || !strings.Contains(hud, "Score: 0") {
		t.Errorf("HUD row = %q", hud)
	}
	if !strings.ContainsRune(scr.String(), PlayerChar) {
		t.Errorf("player not drawn")
	}
}

func TestDifficultyAndCustomConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "descent.yaml")
	if err := os.WriteFile(path, config.GetDefaultYAML(config.ModeDescent), 0o600); err != nil {
		t.Fatal(err)
	}

	g := New(config.ModeDescent, "Descent", registry.Options{ConfigPath: path, Difficulty: "hard"})
	if hp := g.Config().Player.HP; hp != 5 {
		t.Errorf("hard preset HP = %d, expected 5", hp)
	}

	g.Reset(testRuntime(1))
	if err := g.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if g.State().Ticks != 0 {
		t.Errorf("Reload did not restart the run")
	}
}

func TestBadConfigFallsBackToDefaults(t *testing.T) {
	g := New(config.ModeSwarm, "Swarm", registry.Options{ConfigPath: filepath.Join(t.TempDir(), "missing.yaml")})
	if len(g.Config().Pools) == 0 {
		t.Errorf("fallback config has no pools")
	}
}
