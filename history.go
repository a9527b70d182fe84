package cubeplay

// History is the stack of recorded moves, oldest first. The zero value is an
// empty history ready to use.
//
// Moves made on behalf of the solver are never pushed; recording them would
// give the solver its own undo work and it would never finish.
type History struct {
	moves []Move
}

// Push appends a move to the top of the stack.
func (h *History) Push(m Move) {
	h.moves = append(h.moves, m)
}

// Pop removes and returns the most recent move.
func (h *History) Pop() (Move, error) {
	if len(h.moves) == 0 {
		return Move{}, ErrEmptyHistory
	}
	last := len(h.moves) - 1
	m := h.moves[last]
	h.moves = h.moves[:last]
	return m, nil
}

// Peek returns the most recent move without removing it.
func (h *History) Peek() (Move, error) {
	if len(h.moves) == 0 {
		return Move{}, ErrEmptyHistory
	}
	return h.moves[len(h.moves)-1], nil
}

// Len returns the number of recorded moves.
func (h *History) Len() int {
	return len(h.moves)
}

// Clear empties the stack.
func (h *History) Clear() {
	h.moves = nil
}

// Moves returns a copy of the recorded moves, oldest first.
func (h *History) Moves() []Move {
	out := make([]Move, len(h.moves))
	copy(out, h.moves)
	return out
}

// Replace swaps the whole stack for the given moves, oldest first.
func (h *History) Replace(moves []Move) {
	h.moves = make([]Move, len(moves))
	copy(h.moves, moves)
}
