package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubeplay/internal/leaderboard"
)

// LeaderboardRepository stores the leaderboard entries.
type LeaderboardRepository struct {
	db *DB
}

// NewLeaderboardRepository creates a new leaderboard repository.
func NewLeaderboardRepository(db *DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

// List retrieves all stored entries, quickest first.
func (r *LeaderboardRepository) List() ([]leaderboard.Entry, error) {
	rows, err := r.db.Query(`
		SELECT entry_id, username, time_ms, move_count, recorded_at
		FROM leaderboard
		ORDER BY time_ms, recorded_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []leaderboard.Entry
	for rows.Next() {
		var e leaderboard.Entry
		var timeMs int64
		var recordedAtStr string
		if err := rows.Scan(&e.ID, &e.Name, &timeMs, &e.Moves, &recordedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		e.Time = time.Duration(timeMs) * time.Millisecond
		e.RecordedAt, _ = time.Parse(timeFormat, recordedAtStr)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Load reads the stored entries into a board.
func (r *LeaderboardRepository) Load() (*leaderboard.Board, error) {
	entries, err := r.List()
	if err != nil {
		return nil, err
	}
	return leaderboard.New(entries), nil
}

// Replace overwrites the stored board. Entries without an ID are given one.
func (r *LeaderboardRepository) Replace(b *leaderboard.Board) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM leaderboard"); err != nil {
			return fmt.Errorf("failed to clear leaderboard: %w", err)
		}

		for _, e := range b.Entries() {
			if e.ID == "" {
				e.ID = uuid.New().String()
			}
			if e.RecordedAt.IsZero() {
				e.RecordedAt = time.Now()
			}
			_, err := tx.Exec(`
				INSERT INTO leaderboard (entry_id, username, time_ms, move_count, recorded_at)
				VALUES (?, ?, ?, ?, ?)
			`, e.ID, e.Name, e.Time.Milliseconds(), e.Moves, e.RecordedAt.UTC().Format(timeFormat))
			if err != nil {
				return fmt.Errorf("failed to store leaderboard entry: %w", err)
			}
		}
		return nil
	})
}

// Submit offers a solve to the stored board and saves the board if it
// changed. It returns the 1-based rank the solve took, or 0 if it did not
// make the board.
func (r *LeaderboardRepository) Submit(name string, t time.Duration, moves int) (int, error) {
	b, err := r.Load()
	if err != nil {
		return 0, err
	}

	e := leaderboard.Entry{
		ID:         uuid.New().String(),
		Name:       name,
		Time:       t,
		Moves:      moves,
		RecordedAt: time.Now(),
	}
	if !b.Submit(e) {
		return 0, nil
	}
	if err := r.Replace(b); err != nil {
		return 0, err
	}

	log.WithField("user", name).WithField("time_ms", t.Milliseconds()).Debug("leaderboard updated")
	return b.Rank(e.ID), nil
}
