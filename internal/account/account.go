// Package account manages player logins.
package account

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

var (
	ErrUserExists     = errors.New("account: username is taken")
	ErrUserNotFound   = errors.New("account: no such user")
	ErrBadCredentials = errors.New("account: wrong password or answer")
	ErrInvalidInput   = errors.New("account: invalid input")
)

// Service registers and authenticates users.
type Service struct {
	users *storage.UserRepository
	cost  int
}

// Option configures a Service.
type Option func(*Service)

// WithCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

// NewService creates an account service backed by the given database.
func NewService(db *storage.DB, opts ...Option) *Service {
	s := &Service{
		users: storage.NewUserRepository(db),
		cost:  bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user. Every field is required and the username may not
// contain spaces.
func (s *Service) Register(username, password, question, answer string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: no username given", ErrInvalidInput)
	case strings.IndexFunc(username, unicode.IsSpace) >= 0:
		return fmt.Errorf("%w: username contains spaces", ErrInvalidInput)
	case password == "":
		return fmt.Errorf("%w: no password given", ErrInvalidInput)
	case strings.TrimSpace(question) == "":
		return fmt.Errorf("%w: no security question given", ErrInvalidInput)
	case normalizeAnswer(answer) == "":
		return fmt.Errorf("%w: no answer given", ErrInvalidInput)
	}

	exists, err := s.users.Exists(username)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}

	pwHash, err := s.hash(password)
	if err != nil {
		return err
	}
	ansHash, err := s.hash(normalizeAnswer(answer))
	if err != nil {
		return err
	}

	return s.users.Create(storage.User{
		Username:     username,
		PasswordHash: pwHash,
		Question:     strings.TrimSpace(question),
		AnswerHash:   ansHash,
	})
}

// Authenticate checks a username and password.
func (s *Service) Authenticate(username, password string) error {
	u, err := s.get(username)
	if err != nil {
		return err
	}
	return check(u.PasswordHash, password)
}

// Question returns the user's security question.
func (s *Service) Question(username string) (string, error) {
	u, err := s.get(username)
	if err != nil {
		return "", err
	}
	return u.Question, nil
}

// CheckAnswer checks an answer to the user's security question. Case and
// surrounding space are ignored.
func (s *Service) CheckAnswer(username, answer string) error {
	u, err := s.get(username)
	if err != nil {
		return err
	}
	return check(u.AnswerHash, normalizeAnswer(answer))
}

// ResetPassword sets a new password for a user who answered their security
// question correctly.
func (s *Service) ResetPassword(username, answer, newPassword string) error {
	if err := s.CheckAnswer(username, answer); err != nil {
		return err
	}
	return s.setPassword(username, newPassword)
}

// ChangePassword sets a new password for a user who knows the current one.
func (s *Service) ChangePassword(username, oldPassword, newPassword string) error {
	if err := s.Authenticate(username, oldPassword); err != nil {
		return err
	}
	return s.setPassword(username, newPassword)
}

// Remove deletes a user after checking their password. Their saved game and
// attempt history go with them; leaderboard entries stay.
func (s *Service) Remove(username, password string) error {
	if err := s.Authenticate(username, password); err != nil {
		return err
	}
	return s.users.Delete(username)
}

// List returns all usernames in order.
func (s *Service) List() ([]string, error) {
	users, err := s.users.List()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Username
	}
	return names, nil
}

func (s *Service) setPassword(username, password string) error {
	if password == "" {
		return fmt.Errorf("%w: no password given", ErrInvalidInput)
	}
	h, err := s.hash(password)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(username, h)
}

func (s *Service) get(username string) (*storage.User, error) {
	u, err := s.users.Get(username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *Service) hash(secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(h), nil
}

func check(hash, secret string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrBadCredentials
	}
	if err != nil {
		return fmt.Errorf("failed to check secret: %w", err)
	}
	return nil
}

func normalizeAnswer(a string) string {
	return strings.ToLower(strings.TrimSpace(a))
}
