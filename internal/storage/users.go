package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// User is an account row. Hashes are opaque to storage.
type User struct {
	Username     string
	PasswordHash string
	Question     string
	AnswerHash   string
	CreatedAt    time.Time
}

// UserRepository provides CRUD operations for users.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user.
func (r *UserRepository) Create(u User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(`
		INSERT INTO users (username, password_hash, question, answer_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, u.Username, u.PasswordHash, u.Question, u.AnswerHash, u.CreatedAt.UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Get retrieves a user by name. It returns nil if there is no such user.
func (r *UserRepository) Get(username string) (*User, error) {
	var u User
	var createdAtStr string

	err := r.db.QueryRow(`
		SELECT username, password_hash, question, answer_hash, created_at
		FROM users
		WHERE username = ?
	`, username).Scan(&u.Username, &u.PasswordHash, &u.Question, &u.AnswerHash, &createdAtStr)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
	return &u, nil
}

// Exists reports whether a user with the given name exists.
func (r *UserRepository) Exists(username string) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return count > 0, nil
}

// List retrieves all users ordered by name.
func (r *UserRepository) List() ([]User, error) {
	rows, err := r.db.Query(`
		SELECT username, password_hash, question, answer_hash, created_at
		FROM users
		ORDER BY username
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		var createdAtStr string
		if err := rows.Scan(&u.Username, &u.PasswordHash, &u.Question, &u.AnswerHash, &createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)
		users = append(users, u)
	}

	return users, rows.Err()
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(username, passwordHash string) error {
	res, err := r.db.Exec("UPDATE users SET password_hash = ? WHERE username = ?", passwordHash, username)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("failed to update password: no user %q", username)
	}
	return nil
}

// Delete deletes a user along with their saved game and attempts (cascading).
func (r *UserRepository) Delete(username string) error {
	_, err := r.db.Exec("DELETE FROM users WHERE username = ?", username)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
