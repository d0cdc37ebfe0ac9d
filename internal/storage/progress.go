package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LevelProgress is the saved state of one campaign level.
type LevelProgress struct {
	LevelID   string
	Unlocked  bool
	BestScore int
	BestStars int
	Plays     int
	Wins      int
	UpdatedAt time.Time
}

// Progress returns the saved progress for levelID. A level never played
// reports zero values.
func (s *Store) Progress(levelID string) (LevelProgress, error) {
	p := LevelProgress{LevelID: levelID}
	var unlocked int
	var updatedAt any
	err := s.db.QueryRow(
		`SELECT unlocked, best_score, best_stars, plays, wins, updated_at
		 FROM level_progress WHERE level_id = ?`,
		levelID,
	).Scan(&unlocked, &p.BestScore, &p.BestStars, &p.Plays, &p.Wins, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	p.Unlocked = unlocked != 0
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}

// AllProgress returns saved progress keyed by level ID.
func (s *Store) AllProgress() (map[string]LevelProgress, error) {
	rows, err := s.db.Query(
		`SELECT level_id, unlocked, best_score, best_stars, plays, wins, updated_at
		 FROM level_progress`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	out := make(map[string]LevelProgress)
	for rows.Next() {
		var p LevelProgress
		var unlocked int
		var updatedAt any
		if err := rows.Scan(&p.LevelID, &unlocked, &p.BestScore, &p.BestStars, &p.Plays, &p.Wins, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan progress row: %w", err)
		}
		p.Unlocked = unlocked != 0
		p.UpdatedAt = parseTime(updatedAt)
		out[p.LevelID] = p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// RecordResult stores the outcome of one play of levelID. Best score and
// stars only ever grow. A win unlocks nextLevelID when it is not empty.
func (s *Store) RecordResult(levelID string, score, stars int, won bool, nextLevelID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	wins := 0
	if won {
		wins = 1
	}
	_, err = tx.Exec(
		`INSERT INTO level_progress (level_id, unlocked, best_score, best_stars, plays, wins, updated_at)
		 VALUES (?, 1, ?, ?, 1, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(level_id) DO UPDATE SET
			unlocked = 1,
			best_score = MAX(best_score, excluded.best_score),
			best_stars = MAX(best_stars, excluded.best_stars),
			plays = plays + 1,
			wins = wins + excluded.wins,
			updated_at = CURRENT_TIMESTAMP`,
		levelID, score, stars, wins,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record result: %w", err)
	}

	if won && nextLevelID != "" {
		if err := unlock(tx, nextLevelID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit result: %w", err)
	}
	return nil
}

// Unlock marks levelID as playable.
func (s *Store) Unlock(levelID string) error {
	return unlock(s.db, levelID)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func unlock(db execer, levelID string) error {
	_, err := db.Exec(
		`INSERT INTO level_progress (level_id, unlocked, updated_at)
		 VALUES (?, 1, CURRENT_TIMESTAMP)
		 ON CONFLICT(level_id) DO UPDATE SET unlocked = 1, updated_at = CURRENT_TIMESTAMP`,
		levelID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot unlock level %s: %w", levelID, err)
	}
	return nil
}

// IsUnlocked reports whether id may be played. order is the campaign in
// play order; its first level is always unlocked.
func (s *Store) IsUnlocked(order []string, id string) (bool, error) {
	if len(order) > 0 && order[0] == id {
		return true, nil
	}
	p, err := s.Progress(id)
	if err != nil {
		return false, err
	}
	return p.Unlocked, nil
}

// ResetProgress forgets all level progress.
func (s *Store) ResetProgress() error {
	if _, err := s.db.Exec("DELETE FROM level_progress"); err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}
