package cubeplay

import (
	"fmt"
	"time"
)

// Attempt summarizes one timed go at the cube, from scramble to either a
// solve or being abandoned.
type Attempt struct {
	StartedAt      time.Time
	Duration       time.Duration
	Moves          int // Player moves, excluding the scramble
	ScramblerMoves int
	Solved         bool
	HintsUsed      bool
	SolverUsed     bool
}

// Snapshot is everything needed to save a game and carry on later.
type Snapshot struct {
	Cube           Cube
	Moves          []Move // Oldest first
	MoveCount      int
	ScramblerCount int
	StartedAt      time.Time
	Elapsed        time.Duration
	Timing         bool
	HintsUsed      bool
	SolverUsed     bool
	Solved         bool
	Solving        bool // A solver run was still undoing moves
}

// Game owns one cube and its move history along with the counters, timer
// and flags of the current attempt. A Game is not safe for concurrent use;
// callers drive it from one event loop.
type Game struct {
	cube      Cube
	history   History
	scrambler *Scrambler
	now       func() time.Time

	moveCount      int // Scrambler and player moves
	scramblerCount int

	startedAt time.Time
	elapsed   time.Duration
	timing    bool

	hintsUsed  bool
	solverUsed bool
	solved     bool
	solving    bool
}

// NewGame creates a game holding a solved cube.
func NewGame(opts ...Option) *Game {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	g := &Game{
		scrambler: cfg.scrambler,
		now:       cfg.clock,
	}
	g.cube.Reset()
	return g
}

// Apply validates, performs and records a player move.
func (g *Game) Apply(m Move) error {
	if err := m.Validate(); err != nil {
		return err
	}
	g.cube.Apply(m)
	g.history.Push(m)
	g.moveCount++
	return nil
}

// Turn is shorthand for Apply(TurnMove(axis, index, reversed)).
func (g *Game) Turn(axis Axis, index int, reversed bool) error {
	return g.Apply(TurnMove(axis, index, reversed))
}

// Rotate is shorthand for Apply(RotationMove(axis)).
func (g *Game) Rotate(axis RotationAxis) error {
	return g.Apply(RotationMove(axis))
}

// Scramble starts a new timed attempt from a fresh scramble. If an attempt
// was still being timed it is returned as abandoned.
func (g *Game) Scramble() *Attempt {
	abandoned := g.abandon()

	g.hintsUsed = false
	g.solverUsed = false
	g.solved = false
	g.solving = false
	g.elapsed = 0

	n := g.scrambler.Scramble(&g.cube, &g.history)
	g.scramblerCount = n
	g.moveCount = n

	g.startedAt = g.now()
	g.timing = true
	return abandoned
}

// StartSolve hands the cube to the solver. A timed attempt in progress is
// returned as abandoned and its timer discarded. Call Step until it returns
// false.
func (g *Game) StartSolve() *Attempt {
	g.solverUsed = true

	var abandoned *Attempt
	if g.timing {
		abandoned = g.abandon()
		g.elapsed = 0
		g.startedAt = time.Time{}
	}

	g.solving = true
	return abandoned
}

// Step performs one solver step. It returns true while more steps remain.
func (g *Game) Step() bool {
	if !g.solving {
		return false
	}
	more := Solve(&g.cube, &g.history)
	if !more {
		g.solving = false
	}
	return more
}

// StopSolving leaves solving mode without further steps.
func (g *Game) StopSolving() {
	g.solving = false
}

// Hint undoes the most recent move. It returns ErrEmptyHistory when there is
// nothing to undo.
func (g *Game) Hint() error {
	g.hintsUsed = true
	if _, err := Undo(&g.cube, &g.history); err != nil {
		return err
	}
	return nil
}

// Tick refreshes the timer. When a timed attempt has just reached a solved
// cube the timer stops and the finished attempt is returned.
func (g *Game) Tick() *Attempt {
	if !g.timing {
		return nil
	}
	g.elapsed = g.now().Sub(g.startedAt)

	if !g.cube.IsSolved() {
		return nil
	}

	g.timing = false
	g.solved = true
	a := g.attempt()
	return &a
}

// abandon stops the timer and returns the unfinished attempt, or nil if
// nothing was being timed.
func (g *Game) abandon() *Attempt {
	if !g.timing {
		return nil
	}
	g.elapsed = g.now().Sub(g.startedAt)
	g.timing = false
	a := g.attempt()
	return &a
}

func (g *Game) attempt() Attempt {
	return Attempt{
		StartedAt:      g.startedAt,
		Duration:       g.elapsed,
		Moves:          g.UserMoves(),
		ScramblerMoves: g.scramblerCount,
		Solved:         g.solved,
		HintsUsed:      g.hintsUsed,
		SolverUsed:     g.solverUsed,
	}
}

// Cube returns a copy of the current cube for display.
func (g *Game) Cube() Cube {
	return g.cube
}

// Moves returns the recorded moves, oldest first.
func (g *Game) Moves() []Move {
	return g.history.Moves()
}

// HistoryLen returns the number of recorded moves.
func (g *Game) HistoryLen() int {
	return g.history.Len()
}

// MoveCount returns scrambler and player moves since the last scramble.
func (g *Game) MoveCount() int {
	return g.moveCount
}

// ScramblerCount returns the number of moves the last scramble made.
func (g *Game) ScramblerCount() int {
	return g.scramblerCount
}

// UserMoves returns the moves the player made since the last scramble.
func (g *Game) UserMoves() int {
	return g.moveCount - g.scramblerCount
}

// Elapsed returns the time on the attempt timer.
func (g *Game) Elapsed() time.Duration {
	return g.elapsed
}

// StartedAt returns when the current attempt's timer started.
func (g *Game) StartedAt() time.Time {
	return g.startedAt
}

// Timing reports whether an attempt is being timed.
func (g *Game) Timing() bool {
	return g.timing
}

// Solving reports whether the solver still has steps to take.
func (g *Game) Solving() bool {
	return g.solving
}

// HintsUsed reports whether a hint was taken this attempt.
func (g *Game) HintsUsed() bool {
	return g.hintsUsed
}

// SolverUsed reports whether the solver was used this attempt.
func (g *Game) SolverUsed() bool {
	return g.solverUsed
}

// Solved reports whether the current attempt was completed.
func (g *Game) Solved() bool {
	return g.solved
}

// IsSolved reports whether the cube currently looks solved.
func (g *Game) IsSolved() bool {
	return g.cube.IsSolved()
}

// Snapshot captures the game for saving.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Cube:           g.cube,
		Moves:          g.history.Moves(),
		MoveCount:      g.moveCount,
		ScramblerCount: g.scramblerCount,
		StartedAt:      g.startedAt,
		Elapsed:        g.elapsed,
		Timing:         g.timing,
		HintsUsed:      g.hintsUsed,
		SolverUsed:     g.solverUsed,
		Solved:         g.solved,
		Solving:        g.solving,
	}
}

// Restore replaces the game with a saved snapshot. A timer that was running
// carries on from the saved elapsed time, and a solver run that was still
// going when the game was saved resumes.
func (g *Game) Restore(s Snapshot) error {
	for i, m := range s.Moves {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("move %d: %w", i, err)
		}
	}
	for _, n := range s.Cube.ColorCounts() {
		if n != 9 {
			return ErrInvalidCubeState
		}
	}

	g.cube = s.Cube
	g.history.Replace(s.Moves)
	g.moveCount = s.MoveCount
	g.scramblerCount = s.ScramblerCount
	g.elapsed = s.Elapsed
	g.timing = s.Timing
	g.hintsUsed = s.HintsUsed
	g.solverUsed = s.SolverUsed
	g.solved = s.Solved

	g.startedAt = s.StartedAt
	if g.timing {
		// Act as if the timer had just been started with the saved time on it.
		g.startedAt = g.now().Add(-s.Elapsed)
	}

	g.solving = s.Solving && g.history.Len() > 0 && !g.cube.IsSolved()
	return nil
}
