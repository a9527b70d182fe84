package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubeplay"
)

// AttemptRecord is one finished or abandoned attempt in a user's history.
type AttemptRecord struct {
	AttemptID      string
	Username       string
	StartedAt      time.Time
	Duration       time.Duration
	Moves          int
	ScramblerMoves int
	Solved         bool
	HintsUsed      bool
	SolverUsed     bool
}

// AttemptRepository provides CRUD operations for attempts.
type AttemptRepository struct {
	db *DB
}

// NewAttemptRepository creates a new attempt repository.
func NewAttemptRepository(db *DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Create records an attempt for a user and returns its ID.
func (r *AttemptRepository) Create(username string, a cubeplay.Attempt) (string, error) {
	id := uuid.New().String()

	startedAt := a.StartedAt
	if startedAt.IsZero() {
		startedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO attempts (attempt_id, username, started_at, duration_ms, move_count,
			scrambler_count, solved, hints_used, solver_used)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, username, startedAt.UTC().Format(timeFormat), a.Duration.Milliseconds(),
		a.Moves, a.ScramblerMoves, a.Solved, a.HintsUsed, a.SolverUsed)

	if err != nil {
		return "", fmt.Errorf("failed to create attempt: %w", err)
	}

	return id, nil
}

// Get retrieves an attempt by ID.
func (r *AttemptRepository) Get(attemptID string) (*AttemptRecord, error) {
	row := r.db.QueryRow(`
		SELECT attempt_id, username, started_at, duration_ms, move_count,
			scrambler_count, solved, hints_used, solver_used
		FROM attempts
		WHERE attempt_id = ?
	`, attemptID)

	a, err := scanAttempt(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return a, nil
}

// ListByUser retrieves a user's most recent attempts, newest first. A limit
// of zero or less returns them all.
func (r *AttemptRepository) ListByUser(username string, limit int) ([]AttemptRecord, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.Query(`
		SELECT attempt_id, username, started_at, duration_ms, move_count,
			scrambler_count, solved, hints_used, solver_used
		FROM attempts
		WHERE username = ?
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, username, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}
	defer rows.Close()

	var attempts []AttemptRecord
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, *a)
	}

	return attempts, rows.Err()
}

// Count returns the number of attempts a user has made.
func (r *AttemptRepository) Count(username string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM attempts WHERE username = ?", username).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return count, nil
}

// DeleteByUser clears a user's attempt history.
func (r *AttemptRepository) DeleteByUser(username string) error {
	_, err := r.db.Exec("DELETE FROM attempts WHERE username = ?", username)
	if err != nil {
		return fmt.Errorf("failed to delete attempts: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(s rowScanner) (*AttemptRecord, error) {
	var a AttemptRecord
	var startedAtStr string
	var durationMs int64

	err := s.Scan(
		&a.AttemptID, &a.Username, &startedAtStr, &durationMs, &a.Moves,
		&a.ScramblerMoves, &a.Solved, &a.HintsUsed, &a.SolverUsed,
	)
	if err != nil {
		return nil, err
	}

	a.StartedAt, _ = time.Parse(timeFormat, startedAtStr)
	a.Duration = time.Duration(durationMs) * time.Millisecond
	return &a, nil
}
