package storage

import (
	"testing"
)

func TestProgressUnknownLevel(t *testing.T) {
	store := openTestStore(t)

	p, err := store.Progress("01")
	if err != nil {
		t.Fatalf("Progress() failed: %v", err)
	}
	if p.LevelID != "01" || p.Unlocked || p.Plays != 0 {
		t.Errorf("unknown level progress = %+v", p)
	}
}

func TestRecordResultKeepsBest(t *testing.T) {
	store := openTestStore(t)

	results := []struct {
		score, stars int
		won          bool
	}{
		{150, 1, true},
		{90, 0, false},
		{400, 3, true},
		{250, 2, true},
	}
	for _, r := range results {
		if err := store.RecordResult("01", r.score, r.stars, r.won, "02"); err != nil {
			t.Fatalf("RecordResult() failed: %v", err)
		}
	}

	p, err := store.Progress("01")
	if err != nil {
		t.Fatalf("Progress() failed: %v", err)
	}
	if p.BestScore != 400 || p.BestStars != 3 {
		t.Errorf("best = %d/%d stars, want 400/3", p.BestScore, p.BestStars)
	}
	if p.Plays != 4 || p.Wins != 3 {
		t.Errorf("plays = %d wins = %d, want 4/3", p.Plays, p.Wins)
	}
	if !p.Unlocked {
		t.Error("played level should be unlocked")
	}
	if p.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not parsed")
	}

	next, err := store.Progress("02")
	if err != nil {
		t.Fatalf("Progress() failed: %v", err)
	}
	if !next.Unlocked || next.Plays != 0 {
		t.Errorf("next level progress = %+v, want unlocked and unplayed", next)
	}
}

func TestRecordResultLossDoesNotUnlock(t *testing.T) {
	store := openTestStore(t)

	if err := store.RecordResult("01", 10, 0, false, "02"); err != nil {
		t.Fatalf("RecordResult() failed: %v", err)
	}
	order := []string{"01", "02", "03"}

	tests := []struct {
		id   string
		want bool
	}{
		{"01", true},
		{"02", false},
		{"03", false},
	}
	for _, tt := range tests {
		got, err := store.IsUnlocked(order, tt.id)
		if err != nil {
			t.Fatalf("IsUnlocked(%s) failed: %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("IsUnlocked(%s) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestFirstLevelAlwaysUnlocked(t *testing.T) {
	store := openTestStore(t)

	ok, err := store.IsUnlocked([]string{"a", "b"}, "a")
	if err != nil || !ok {
		t.Errorf("first level unlocked = %v, %v", ok, err)
	}
	if err := store.Unlock("b"); err != nil {
		t.Fatalf("Unlock() failed: %v", err)
	}
	if ok, _ := store.IsUnlocked([]string{"a", "b"}, "b"); !ok {
		t.Error("explicitly unlocked level reported locked")
	}

	all, err := store.AllProgress()
	if err != nil {
		t.Fatalf("AllProgress() failed: %v", err)
	}
	if len(all) != 1 || !all["b"].Unlocked {
		t.Errorf("AllProgress() = %+v", all)
	}

	if err := store.ResetProgress(); err != nil {
		t.Fatalf("ResetProgress() failed: %v", err)
	}
	if ok, _ := store.IsUnlocked([]string{"a", "b"}, "b"); ok {
		t.Error("level still unlocked after reset")
	}
}
