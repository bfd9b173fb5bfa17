package registry

import (
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
)

type stubGame struct {
	id    string
	title string
}

func (g *stubGame) ID() string {
	return g.id
}

func (g *stubGame) Title() string {
	return g.title
}

func (g *stubGame) Reset(core.RuntimeConfig) {}

func (g *stubGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{}
}

func (g *stubGame) Render(*core.Screen) {}

func (g *stubGame) State() core.GameState {
	return core.GameState{}
}

func TestRegisterCreateList(t *testing.T) {
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b", title: "Stub B"} })
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a", title: "Stub A"} })

	if !Exists("zz_stub_a") {
		t.Fatal("Exists() should report registered game")
	}
	if Exists("zz_missing") {
		t.Error("Exists() should not report unknown game")
	}

	g, err := Create("zz_stub_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub_a" {
		t.Errorf("Create() returned game %q", g.ID())
	}

	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create() should fail for unknown game")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	ia, ib := -1, -1
	for i, id := range ids {
		switch id {
		case "zz_stub_a":
			ia = i
		case "zz_stub_b":
			ib = i
		}
	}
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("List() not sorted or missing entries: %v", ids)
	}

	if Title("zz_stub_b") != "Stub B" {
		t.Errorf("Title() = %q, want Stub B", Title("zz_stub_b"))
	}
	if Title("zz_missing") != "zz_missing" {
		t.Errorf("Title() for unknown id = %q", Title("zz_missing"))
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}
