package storage

import (
	"testing"

	"github.com/google/uuid"
)

func TestSaveRunGeneratesID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunEntry{LevelID: "01", Strategy: "greedy", Seed: 42, Score: 480, Stars: 3, Moves: 20, Cascades: 27, Won: true})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("run id %q is not a UUID: %v", id, err)
	}

	runs, err := store.RecentRuns("01", 5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	r := runs[0]
	if r.ID != id || r.Strategy != "greedy" || r.Seed != 42 || r.Score != 480 || !r.Won || r.Cascades != 27 {
		t.Errorf("run = %+v", r)
	}
}

func TestSaveRunRejectsBadID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(RunEntry{ID: "not-a-uuid", LevelID: "01", Strategy: "first"}); err == nil {
		t.Error("expected error for malformed id")
	}
}

func TestRecentRunsFilterAndOrder(t *testing.T) {
	store := openTestStore(t)

	for i, level := range []string{"01", "02", "01"} {
		if _, err := store.SaveRun(RunEntry{LevelID: level, Strategy: "first", Score: i}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	all, err := store.RecentRuns("", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all runs = %d, want 3", len(all))
	}
	if all[0].Score != 2 {
		t.Errorf("latest run score = %d, want 2", all[0].Score)
	}

	level, err := store.RecentRuns("01", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(level) != 2 {
		t.Errorf("level 01 runs = %d, want 2", len(level))
	}
}
