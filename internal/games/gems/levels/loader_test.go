package levels_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/tui-gems/internal/games/gems/core"
	"github.com/vovakirdan/tui-gems/internal/games/gems/levels"
)

func testdataPath() string {
	return filepath.Join("testdata", "levels")
}

func TestLoaderLoadAll(t *testing.T) {
	loader := levels.NewLoader(testdataPath())

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) != 2 {
		t.Fatalf("expected 2 valid levels, got %d", len(lvls))
	}
	if lvls[0].ID != "lvl01" || lvls[1].ID != "lvl02" {
		t.Errorf("unexpected order: %s, %s", lvls[0].ID, lvls[1].ID)
	}

	skipped := loader.Skipped()
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped files, got %d: %v", len(skipped), skipped)
	}
	var sawMatch bool
	for _, s := range skipped {
		var ve core.ValidationError
		if errors.As(s, &ve) && ve.Code == "PRESET_MATCH" {
			sawMatch = true
		}
	}
	if !sawMatch {
		t.Error("expected broken_match.yaml to fail with PRESET_MATCH")
	}
}

func TestLoaderLoadLevel01(t *testing.T) {
	loader := levels.NewLoader(testdataPath())

	lvl, err := loader.LoadByID("lvl01")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	if lvl.Name != "Intro" {
		t.Errorf("expected Name 'Intro', got %q", lvl.Name)
	}
	if lvl.W != 4 || lvl.H != 4 {
		t.Errorf("expected 4x4, got %dx%d", lvl.W, lvl.H)
	}
	if lvl.ValidCells() != 14 {
		t.Errorf("expected 14 valid cells, got %d", lvl.ValidCells())
	}
	if lvl.IsValidCell(1, 1) || !lvl.IsValidCell(0, 1) {
		t.Error("hole mask parsed incorrectly")
	}
	if typ, ok := lvl.InitialPieceAt(3, 2); !ok || typ != 1 {
		t.Errorf("expected preset 1 at (3,2), got %d %v", typ, ok)
	}
	if lvl.NumTypes() != 4 || lvl.PointsFor(3) != core.DefaultPoints {
		t.Errorf("expected 4 default-scored types, got %d", lvl.NumTypes())
	}
	if lvl.MaxMoves != 10 || lvl.Stars != [3]int{50, 100, 150} {
		t.Errorf("unexpected session settings: moves=%d stars=%v", lvl.MaxMoves, lvl.Stars)
	}
	if !strings.HasSuffix(lvl.FilePath, "lvl01.yaml") {
		t.Errorf("unexpected file path %q", lvl.FilePath)
	}
}

func TestLoaderDefaults(t *testing.T) {
	lvl, err := levels.NewLoader(testdataPath()).LoadByID("lvl02")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.W != 5 || lvl.H != 3 || lvl.ValidCells() != 15 {
		t.Errorf("expected a full 5x3 board, got %dx%d with %d cells", lvl.W, lvl.H, lvl.ValidCells())
	}
	if lvl.MaxMoves != core.DefaultMaxMoves || lvl.Stars != core.DefaultStars {
		t.Errorf("expected default moves and stars, got %d %v", lvl.MaxMoves, lvl.Stars)
	}
	if lvl.PointsFor(2) != 3 {
		t.Errorf("expected 3 points for type 2, got %d", lvl.PointsFor(2))
	}
}

func TestLoaderNotFound(t *testing.T) {
	_, err := levels.NewLoader(testdataPath()).LoadByID("nope")
	if !errors.Is(err, levels.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFSLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"b.yaml":      {Data: []byte("id: b\nsize: {width: 3, height: 3}\n")},
		"a.yml":       {Data: []byte("id: a\nsize: {width: 4, height: 2}\n")},
		"skip/c.json": {Data: []byte("{}")},
	}
	ids, err := levels.NewFSLoader(fsys).ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("expected [a b], got %v", ids)
	}
}

func TestBuiltinCampaign(t *testing.T) {
	loader := levels.Builtin()
	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(loader.Skipped()) != 0 {
		t.Fatalf("builtin levels failed to load: %v", loader.Skipped())
	}
	if len(lvls) < 5 {
		t.Fatalf("expected at least 5 builtin levels, got %d", len(lvls))
	}

	for _, lvl := range lvls {
		for seed := int64(0); seed < 5; seed++ {
			b := core.NewBoard(core.WithSeed(seed))
			if err := b.Create(lvl); err != nil {
				t.Errorf("level %s seed %d: %v", lvl.ID, seed, err)
			}
		}
	}

	next, ok := levels.Next(lvls, lvls[0].ID)
	if !ok || next.ID != lvls[1].ID {
		t.Errorf("expected %s after %s", lvls[1].ID, lvls[0].ID)
	}
	if _, ok := levels.Next(lvls, lvls[len(lvls)-1].ID); ok {
		t.Error("last level should have no successor")
	}
}
