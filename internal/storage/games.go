package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubeplay"
	"github.com/SeamusWaldron/cubeplay/pkg/types"
)

// SavedGame is a user's stored game: the cube, its move stack, the counters,
// the timer and the attempt flags.
type SavedGame struct {
	GameID         string
	Username       string
	CubeState      string
	Moves          []types.Move
	MoveCount      int
	ScramblerCount int
	StartedAt      *time.Time
	Elapsed        time.Duration
	Timing         bool
	HintsUsed      bool
	SolverUsed     bool
	Solved         bool
	Solving        bool
	SavedAt        time.Time
}

// NewSavedGame converts a game snapshot into its stored form.
func NewSavedGame(username string, s cubeplay.Snapshot) (*SavedGame, error) {
	state, err := s.Cube.MarshalText()
	if err != nil {
		return nil, err
	}

	g := &SavedGame{
		Username:       username,
		CubeState:      string(state),
		Moves:          make([]types.Move, len(s.Moves)),
		MoveCount:      s.MoveCount,
		ScramblerCount: s.ScramblerCount,
		Elapsed:        s.Elapsed,
		Timing:         s.Timing,
		HintsUsed:      s.HintsUsed,
		SolverUsed:     s.SolverUsed,
		Solved:         s.Solved,
		Solving:        s.Solving,
	}
	for i, m := range s.Moves {
		g.Moves[i] = m.Record()
	}
	if !s.StartedAt.IsZero() {
		t := s.StartedAt.UTC()
		g.StartedAt = &t
	}
	return g, nil
}

// Snapshot converts the stored game back into a snapshot that a
// cubeplay.Game can restore.
func (g *SavedGame) Snapshot() (cubeplay.Snapshot, error) {
	var c cubeplay.Cube
	if err := c.UnmarshalText([]byte(g.CubeState)); err != nil {
		return cubeplay.Snapshot{}, fmt.Errorf("game %s: %w", g.GameID, err)
	}

	moves, err := cubeplay.MovesFromRecords(g.Moves)
	if err != nil {
		return cubeplay.Snapshot{}, fmt.Errorf("game %s: %w", g.GameID, err)
	}

	s := cubeplay.Snapshot{
		Cube:           c,
		Moves:          moves,
		MoveCount:      g.MoveCount,
		ScramblerCount: g.ScramblerCount,
		Elapsed:        g.Elapsed,
		Timing:         g.Timing,
		HintsUsed:      g.HintsUsed,
		SolverUsed:     g.SolverUsed,
		Solved:         g.Solved,
		Solving:        g.Solving,
	}
	if g.StartedAt != nil {
		s.StartedAt = *g.StartedAt
	}
	return s, nil
}

// GameRepository provides access to saved games.
type GameRepository struct {
	db *DB
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *DB) *GameRepository {
	return &GameRepository{db: db}
}

// Save stores the user's game, replacing any previous save, and returns the
// game ID. The row and its move stack are written in one transaction.
func (r *GameRepository) Save(g *SavedGame) (string, error) {
	savedAt := time.Now().UTC()

	var startedAt *string
	if g.StartedAt != nil {
		s := g.StartedAt.UTC().Format(timeFormat)
		startedAt = &s
	}

	var gameID string
	err := r.db.Transaction(func(tx *sql.Tx) error {
		err := tx.QueryRow("SELECT game_id FROM games WHERE username = ?", g.Username).Scan(&gameID)
		if err == sql.ErrNoRows {
			gameID = uuid.New().String()
		} else if err != nil {
			return fmt.Errorf("failed to look up game: %w", err)
		}

		_, err = tx.Exec(`
			INSERT INTO games (game_id, username, cube_state, move_count, scrambler_count,
				started_at, elapsed_ms, timing, hints_used, solver_used, solved, solving, saved_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(game_id) DO UPDATE SET
				cube_state = excluded.cube_state,
				move_count = excluded.move_count,
				scrambler_count = excluded.scrambler_count,
				started_at = excluded.started_at,
				elapsed_ms = excluded.elapsed_ms,
				timing = excluded.timing,
				hints_used = excluded.hints_used,
				solver_used = excluded.solver_used,
				solved = excluded.solved,
				solving = excluded.solving,
				saved_at = excluded.saved_at
		`, gameID, g.Username, g.CubeState, g.MoveCount, g.ScramblerCount,
			startedAt, g.Elapsed.Milliseconds(), g.Timing, g.HintsUsed, g.SolverUsed, g.Solved, g.Solving,
			savedAt.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to save game: %w", err)
		}

		return replaceMovesTx(tx, gameID, g.Moves)
	})
	if err != nil {
		return "", err
	}

	g.GameID = gameID
	g.SavedAt = savedAt
	log.WithFields(logrus.Fields{
		"user":    g.Username,
		"game_id": gameID,
		"moves":   len(g.Moves),
	}).Debug("game saved")
	return gameID, nil
}

// GetByUser retrieves the user's saved game. It returns nil if the user has
// never saved one.
func (r *GameRepository) GetByUser(username string) (*SavedGame, error) {
	var g SavedGame
	var startedAtStr sql.NullString
	var savedAtStr string
	var elapsedMs int64

	err := r.db.QueryRow(`
		SELECT game_id, username, cube_state, move_count, scrambler_count,
			started_at, elapsed_ms, timing, hints_used, solver_used, solved, solving, saved_at
		FROM games
		WHERE username = ?
	`, username).Scan(
		&g.GameID, &g.Username, &g.CubeState, &g.MoveCount, &g.ScramblerCount,
		&startedAtStr, &elapsedMs, &g.Timing, &g.HintsUsed, &g.SolverUsed, &g.Solved, &g.Solving, &savedAtStr,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	g.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	g.SavedAt, _ = time.Parse(time.RFC3339, savedAtStr)
	if startedAtStr.Valid {
		t, _ := time.Parse(timeFormat, startedAtStr.String)
		g.StartedAt = &t
	}

	g.Moves, err = NewMoveRepository(r.db).GetByGame(g.GameID)
	if err != nil {
		return nil, err
	}

	return &g, nil
}

// Delete deletes the user's saved game and its moves (cascading).
func (r *GameRepository) Delete(username string) error {
	_, err := r.db.Exec("DELETE FROM games WHERE username = ?", username)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return nil
}
