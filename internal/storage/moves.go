package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/cubeplay/pkg/types"
)

// MoveRepository provides access to the recorded move stack of saved games.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// Replace swaps the stored move stack of a game for the given moves.
func (r *MoveRepository) Replace(gameID string, moves []types.Move) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		return replaceMovesTx(tx, gameID, moves)
	})
}

// replaceMovesTx rewrites the move stack inside an open transaction.
func replaceMovesTx(tx *sql.Tx, gameID string, moves []types.Move) error {
	if _, err := tx.Exec("DELETE FROM game_moves WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("failed to clear moves: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO game_moves (game_id, move_index, rotation, direction, number, backwards)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare move insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range moves {
		if _, err := stmt.Exec(gameID, i, m.Rotation, m.Direction, m.Number, m.Backwards); err != nil {
			return fmt.Errorf("failed to create move %d: %w", i, err)
		}
	}
	return nil
}

// GetByGame retrieves the move stack of a game, bottom first.
func (r *MoveRepository) GetByGame(gameID string) ([]types.Move, error) {
	rows, err := r.db.Query(`
		SELECT rotation, direction, number, backwards
		FROM game_moves
		WHERE game_id = ?
		ORDER BY move_index
	`, gameID)

	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []types.Move
	for rows.Next() {
		var m types.Move
		if err := rows.Scan(&m.Rotation, &m.Direction, &m.Number, &m.Backwards); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// Count returns the number of moves stored for a game.
func (r *MoveRepository) Count(gameID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM game_moves WHERE game_id = ?", gameID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}
