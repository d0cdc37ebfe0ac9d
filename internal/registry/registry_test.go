package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-gems/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return strings.ToUpper(g.id) }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }

func register(t *testing.T, id string) {
	t.Helper()
	Register(id, func() Game { return stubGame{id: id} })
	t.Cleanup(func() {
		mu.Lock()
		delete(entries, id)
		mu.Unlock()
	})
}

func TestRegisterAndCreate(t *testing.T) {
	register(t, "zz_test_b")
	register(t, "zz_test_a")

	if !Exists("zz_test_a") || Exists("zz_test_missing") {
		t.Fatal("Exists does not follow registrations")
	}

	g, err := Create("zz_test_b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "zz_test_b" {
		t.Errorf("created %q", g.ID())
	}
	if _, err := Create("zz_test_missing"); err == nil {
		t.Error("Create of an unknown id should fail")
	}

	var got []GameInfo
	for _, info := range List() {
		if strings.HasPrefix(info.ID, "zz_test_") {
			got = append(got, info)
		}
	}
	if len(got) != 2 || got[0].ID != "zz_test_a" || got[1].Title != "ZZ_TEST_B" {
		t.Errorf("List() = %+v", got)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	register(t, "zz_test_dup")
	defer func() {
		if recover() == nil {
			t.Error("second Register should panic")
		}
	}()
	Register("zz_test_dup", func() Game { return stubGame{id: "zz_test_dup"} })
}
