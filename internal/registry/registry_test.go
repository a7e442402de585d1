package registry

import (
	"testing"

	"github.com/vovakirdan/descent/internal/core"
)

type stubGame struct {
	id   string
	opts Options
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-create", "Stub", func(opts Options) Game {
		return &stubGame{id: "stub-create", opts: opts}
	})

	if !Exists("stub-create") {
		t.Fatalf("registered game does not exist")
	}

	g, err := Create("stub-create", Options{ConfigPath: "x.yaml", Difficulty: "hard"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	sg := g.(*stubGame)
	if sg.opts.ConfigPath != "x.yaml" || sg.opts.Difficulty != "hard" {
		t.Errorf("options not passed through: %+v", sg.opts)
	}
	if sg.opts.Logger == nil {
		t.Errorf("factory received a nil logger")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does-not-exist", Options{}); err == nil {
		t.Errorf("expected an error for an unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(Options) Game { return &stubGame{id: "stub-dup"} }
	Register("stub-dup", "Stub", f)

	defer func() {
		if recover() == nil {
			t.Errorf("duplicate Register did not panic")
		}
	}()
	Register("stub-dup", "Stub", f)
}

func TestListSorted(t *testing.T) {
	Register("stub-b", "B", func(Options) Game { return &stubGame{id: "stub-b"} })
	Register("stub-a", "A", func(Options) Game { return &stubGame{id: "stub-a"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("List() not sorted: %v", list)
		}
	}
}
