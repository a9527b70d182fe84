// Package session ties a logged-in player to their game: loading and saving
// it, recording finished attempts and submitting solves to the leaderboard.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubeplay"
	"github.com/SeamusWaldron/cubeplay/internal/leaderboard"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

var log = logrus.New()

// SetLogger replaces the package logger.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		log = l
	}
}

// Result describes an attempt that just ended.
type Result struct {
	Attempt cubeplay.Attempt
	// Rank is the leaderboard position the solve took, or 0.
	Rank int
}

// Option configures a Session.
type Option func(*Session)

// WithStateFile makes the session remember its user in the state file.
func WithStateFile(sf *StateFile) Option {
	return func(s *Session) {
		s.stateFile = sf
	}
}

// WithEventLog sends game events to the given log.
func WithEventLog(l *EventLog) Option {
	return func(s *Session) {
		s.events = l
	}
}

// WithGameOptions passes options through to the game.
func WithGameOptions(opts ...cubeplay.Option) Option {
	return func(s *Session) {
		s.gameOpts = append(s.gameOpts, opts...)
	}
}

// Session is one player's open game. Methods that take the session lock are
// safe to call from more than one goroutine. The *cubeplay.Game returned by
// Game is not guarded and belongs to a single caller.
type Session struct {
	db        *storage.DB
	stateFile *StateFile
	events    *EventLog
	gameOpts  []cubeplay.Option

	mu       sync.Mutex
	user     string
	game     *cubeplay.Game
	lastRank int

	games       *storage.GameRepository
	attempts    *storage.AttemptRepository
	leaderboard *storage.LeaderboardRepository
}

// Open starts a session for the user, resuming their saved game if they
// have one. Otherwise they get a solved cube.
func Open(db *storage.DB, username string, opts ...Option) (*Session, error) {
	s := &Session{
		db:          db,
		user:        username,
		games:       storage.NewGameRepository(db),
		attempts:    storage.NewAttemptRepository(db),
		leaderboard: storage.NewLeaderboardRepository(db),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.game = cubeplay.NewGame(s.gameOpts...)

	saved, err := s.games.GetByUser(username)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if saved != nil {
		snap, err := saved.Snapshot()
		if err != nil {
			return nil, fmt.Errorf("failed to load game: %w", err)
		}
		if err := s.game.Restore(snap); err != nil {
			return nil, fmt.Errorf("failed to restore game: %w", err)
		}
		log.WithFields(logrus.Fields{
			"user":    username,
			"game_id": saved.GameID,
			"moves":   len(snap.Moves),
		}).Debug("game resumed")
	}

	if s.stateFile != nil {
		if err := s.stateFile.SetLastUser(username); err != nil {
			log.WithError(err).Warn("failed to update state file")
		}
	}

	return s, nil
}

// User returns the player's name.
func (s *Session) User() string {
	return s.user
}

// Game returns the underlying game. Callers must not use it while another
// goroutine drives the session.
func (s *Session) Game() *cubeplay.Game {
	return s.game
}

// Cube returns a copy of the cube for display.
func (s *Session) Cube() cubeplay.Cube {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Cube()
}

// Apply makes a player move.
func (s *Session) Apply(m cubeplay.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.game.Apply(m); err != nil {
		return err
	}
	s.events.Log(Event{Type: EventMove, Move: m.Notation()})
	return nil
}

// Scramble starts a new attempt. An attempt that was still running is
// recorded as abandoned.
func (s *Session) Scramble() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	abandoned := s.game.Scramble()
	s.events.Log(Event{Type: EventScramble, Moves: s.game.ScramblerCount()})
	if abandoned != nil {
		if _, err := s.record(*abandoned); err != nil {
			return err
		}
	}
	return nil
}

// StartSolve hands the cube to the solver. An attempt that was still
// running is recorded as abandoned.
func (s *Session) StartSolve() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	abandoned := s.game.StartSolve()
	s.events.Log(Event{Type: EventSolver, Moves: s.game.HistoryLen()})
	if abandoned != nil {
		if _, err := s.record(*abandoned); err != nil {
			return err
		}
	}
	return nil
}

// Step performs one solver step. It returns true while more remain.
func (s *Session) Step() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Step()
}

// StopSolving leaves solving mode.
func (s *Session) StopSolving() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game.StopSolving()
}

// Remaining returns how many recorded moves the solver has left to undo.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.HistoryLen()
}

// Hint undoes the last move. It returns false if there was nothing to undo.
func (s *Session) Hint() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.game.Hint()
	s.events.Log(Event{Type: EventHint})
	return !errors.Is(err, cubeplay.ErrEmptyHistory)
}

// Tick refreshes the timer. When the running attempt has just been solved
// it is recorded, offered to the leaderboard and returned.
func (s *Session) Tick() (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.game.Tick()
	if a == nil {
		return nil, nil
	}
	return s.record(*a)
}

// LastRank returns the leaderboard position of the most recent solve, or 0.
func (s *Session) LastRank() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRank
}

// Eligible reports whether an attempt may go on the leaderboard: solved by
// the player with no hints and no solver. A single hint keeps a solve off
// the board even when the timer ran throughout.
func Eligible(a cubeplay.Attempt) bool {
	return a.Solved && !a.HintsUsed && !a.SolverUsed
}

// record stores a finished or abandoned attempt. Caller holds s.mu.
func (s *Session) record(a cubeplay.Attempt) (*Result, error) {
	id, err := s.attempts.Create(s.user, a)
	if err != nil {
		return nil, err
	}

	res := &Result{Attempt: a}
	s.lastRank = 0
	if Eligible(a) {
		rank, err := s.leaderboard.Submit(s.user, a.Duration, a.Moves)
		if err != nil {
			return nil, err
		}
		res.Rank = rank
		s.lastRank = rank
	}

	s.events.Log(Event{
		Type:       EventAttempt,
		Moves:      a.Moves,
		DurationMs: a.Duration.Milliseconds(),
		Solved:     a.Solved,
	})
	log.WithFields(logrus.Fields{
		"user":       s.user,
		"attempt_id": id,
		"moves":      a.Moves,
		"solved":     a.Solved,
		"rank":       res.Rank,
	}).Debug("attempt recorded")
	return res, nil
}

// Save stores the game so it can be resumed later.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved, err := storage.NewSavedGame(s.user, s.game.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	if _, err := s.games.Save(saved); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

// History returns the player's most recent attempts, newest first.
func (s *Session) History(limit int) ([]storage.AttemptRecord, error) {
	return s.attempts.ListByUser(s.user, limit)
}

// Leaderboard returns the current board, quickest first.
func (s *Session) Leaderboard() ([]leaderboard.Entry, error) {
	return s.leaderboard.List()
}

// Close saves the game and closes the event log.
func (s *Session) Close() error {
	err := s.Save()
	if cerr := s.events.Close(); err == nil {
		err = cerr
	}
	return err
}
