package cubeplay

import "time"

// Undo pops the most recent move and performs its inverse on the cube. The
// inverse is not recorded. It returns the move that was undone.
func Undo(c *Cube, h *History) (Move, error) {
	m, err := h.Pop()
	if err != nil {
		return Move{}, err
	}

	switch m.Kind() {
	case KindRotation:
		// Rotations have no reverse form; three forward quarter turns undo one.
		for i := 0; i < 3; i++ {
			c.Rotate(m.RotationAxis())
		}
	case KindTurn:
		c.Turn(m.Axis(), m.Index(), !m.Reversed())
	}
	return m, nil
}

// Solve undoes one recorded move. It returns true while more steps remain.
//
// Nothing happens when the history is empty or the cube already looks
// solved. A caller may stop calling Solve between any two steps; the cube and
// history stay consistent.
func Solve(c *Cube, h *History) bool {
	if h.Len() == 0 || c.IsSolved() {
		return false
	}

	if _, err := Undo(c, h); err != nil {
		return false
	}
	return h.Len() > 0
}

// DefaultSolveDuration is how long a paced solve takes overall.
const DefaultSolveDuration = 5 * time.Second

// SolvePace returns how long a caller should wait between Solve steps so the
// whole solve takes roughly total. With nothing left to undo it returns one
// second so the request is still visibly acknowledged.
func SolvePace(total time.Duration, remaining int) time.Duration {
	if remaining <= 0 {
		return time.Second
	}
	return total / time.Duration(remaining)
}
