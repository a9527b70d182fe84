package cubeplay

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubeplay/pkg/types"
)

// Axis selects what a slice turn moves.
type Axis int

const (
	Row    Axis = iota // Horizontal slice, moves sideways
	Column             // Vertical slice, moves up and down
)

func (a Axis) String() string {
	switch a {
	case Row:
		return "row"
	case Column:
		return "column"
	default:
		return "?"
	}
}

// RotationAxis selects a whole-cube view rotation.
type RotationAxis int

const (
	X RotationAxis = iota
	Y
	Z
)

func (a RotationAxis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return "?"
	}
}

// Kind discriminates the two variants of Move.
type Kind int

const (
	KindTurn Kind = iota
	KindRotation
)

// Move is either a slice turn or a view rotation. Moves are values and
// cannot be changed once built; use TurnMove or RotationMove.
type Move struct {
	kind     Kind
	axis     Axis
	index    int
	reversed bool
	rotation RotationAxis
}

// TurnMove builds a slice turn. A reversed turn goes left (rows) or down
// (columns).
func TurnMove(axis Axis, index int, reversed bool) Move {
	return Move{kind: KindTurn, axis: axis, index: index, reversed: reversed}
}

// RotationMove builds a view rotation.
func RotationMove(axis RotationAxis) Move {
	return Move{kind: KindRotation, rotation: axis}
}

// Kind returns which variant the move is.
func (m Move) Kind() Kind { return m.kind }

// Axis returns the slice axis of a turn.
func (m Move) Axis() Axis { return m.axis }

// Index returns the row or column of a turn.
func (m Move) Index() int { return m.index }

// Reversed reports whether a turn goes backwards.
func (m Move) Reversed() bool { return m.reversed }

// RotationAxis returns the axis of a view rotation.
func (m Move) RotationAxis() RotationAxis { return m.rotation }

// Validate checks the move against the ranges the engine assumes.
func (m Move) Validate() error {
	switch m.kind {
	case KindTurn:
		if m.axis != Row && m.axis != Column {
			return fmt.Errorf("%w: turn axis %d", ErrInvalidAxis, int(m.axis))
		}
		if m.index < 0 || m.index > 2 {
			return fmt.Errorf("%w: %d", ErrInvalidMoveIndex, m.index)
		}
	case KindRotation:
		if m.rotation < X || m.rotation > Z {
			return fmt.Errorf("%w: rotation axis %d", ErrInvalidAxis, int(m.rotation))
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidAxis, int(m.kind))
	}
	return nil
}

// Notation returns a short display form.
// Examples: R0, R2', C1, C0', x, y, z
func (m Move) Notation() string {
	if m.kind == KindRotation {
		return m.rotation.String()
	}

	prefix := "R"
	if m.axis == Column {
		prefix = "C"
	}
	suffix := ""
	if m.reversed {
		suffix = "'"
	}
	return fmt.Sprintf("%s%d%s", prefix, m.index, suffix)
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Record converts the move into its persisted form.
func (m Move) Record() types.Move {
	if m.kind == KindRotation {
		return types.Move{Rotation: true, Direction: m.rotation.String()}
	}
	return types.Move{
		Direction: m.axis.String(),
		Number:    m.index,
		Backwards: m.reversed,
	}
}

// MoveFromRecord converts a persisted record back into a Move.
func MoveFromRecord(r types.Move) (Move, error) {
	var m Move
	if r.Rotation {
		switch r.Direction {
		case "x":
			m = RotationMove(X)
		case "y":
			m = RotationMove(Y)
		case "z":
			m = RotationMove(Z)
		default:
			return Move{}, fmt.Errorf("%w: rotation %q", ErrInvalidAxis, r.Direction)
		}
		return m, nil
	}

	switch r.Direction {
	case "row":
		m = TurnMove(Row, r.Number, r.Backwards)
	case "column":
		m = TurnMove(Column, r.Number, r.Backwards)
	default:
		return Move{}, fmt.Errorf("%w: direction %q", ErrInvalidAxis, r.Direction)
	}
	if err := m.Validate(); err != nil {
		return Move{}, err
	}
	return m, nil
}

// MovesFromRecords converts a list of persisted records, stopping at the
// first invalid one.
func MovesFromRecords(records []types.Move) ([]Move, error) {
	moves := make([]Move, len(records))
	for i, r := range records {
		m, err := MoveFromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i, err)
		}
		moves[i] = m
	}
	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}
