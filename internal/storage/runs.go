package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunEntry is one saved auto-player simulation.
type RunEntry struct {
	ID         string
	LevelID    string
	Strategy   string
	Seed       int64
	Score      int
	Stars      int
	Moves      int
	Cascades   int
	Reshuffles int
	Won        bool
	CreatedAt  time.Time
}

// SaveRun stores r and returns its ID, generating one when r.ID is empty.
func (s *Store) SaveRun(r RunEntry) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if _, err := uuid.Parse(r.ID); err != nil {
		return "", fmt.Errorf("storage: bad run id %q: %w", r.ID, err)
	}

	won := 0
	if r.Won {
		won = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, level_id, strategy, seed, score, stars, moves, cascades, reshuffles, won)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.LevelID, r.Strategy, r.Seed, r.Score, r.Stars, r.Moves, r.Cascades, r.Reshuffles, won,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.ID, nil
}

// RecentRuns returns the latest runs, optionally filtered by level.
func (s *Store) RecentRuns(levelID string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, level_id, strategy, seed, score, stars, moves, cascades, reshuffles, won, created_at
		 FROM runs`
	args := []any{}
	if levelID != "" {
		query += " WHERE level_id = ?"
		args = append(args, levelID)
	}
	query += " ORDER BY created_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunEntry
	for rows.Next() {
		var r RunEntry
		var won int
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.Strategy, &r.Seed, &r.Score, &r.Stars,
			&r.Moves, &r.Cascades, &r.Reshuffles, &won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		r.Won = won != 0
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}
