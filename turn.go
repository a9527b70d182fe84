package cubeplay

// Turn moves one row or column of stickers around the four side faces that
// share it. A reversed turn is the same slice permutation applied three times.
//
// Row turns carry row index from Left to Front to Right to Back and spin Up
// (index 0) or Down (index 2). Column turns carry column index from Front to
// Up to Back to Down and spin Left (index 0) or Right (index 2).
//
// index must be 0, 1 or 2; use Move.Validate at input boundaries.
func (c *Cube) Turn(axis Axis, index int, reversed bool) {
	times := 1
	if reversed {
		times = 3
	}
	for i := 0; i < times; i++ {
		switch axis {
		case Row:
			c.turnRow(index)
		case Column:
			c.turnColumn(index)
		}
	}
}

func (c *Cube) turnRow(n int) {
	// All six faces are read from src so the assignment is simultaneous.
	src := c.Faces

	c.Faces[Right][n] = src[Front][n]
	c.Faces[Back][n] = src[Right][n]
	c.Faces[Left][n] = src[Back][n]
	c.Faces[Front][n] = src[Left][n]

	switch n {
	case 0:
		c.Faces[Up] = src[Up].counterClockwise()
	case 2:
		c.Faces[Down] = src[Down].clockwise()
	}
}

func (c *Cube) turnColumn(n int) {
	src := c.Faces

	for i := 0; i < 3; i++ {
		c.Faces[Front][i][n] = src[Down][i][n]
		// Back and Down are stored upside down relative to Front and Up.
		c.Faces[Down][2-i][n] = src[Back][i][2-n]
		c.Faces[Back][2-i][2-n] = src[Up][i][n]
		c.Faces[Up][i][n] = src[Front][i][n]
	}

	switch n {
	case 0:
		c.Faces[Left] = src[Left].counterClockwise()
	case 2:
		c.Faces[Right] = src[Right].clockwise()
	}
}

// Rotate turns the whole cube about an axis without changing which stickers
// are adjacent. X is all three rows, Y is all three columns. Z spins Front
// and Back and cycles Down to Left to Up to Right, each face landing rotated
// a quarter turn clockwise.
func (c *Cube) Rotate(axis RotationAxis) {
	switch axis {
	case X:
		for i := 0; i < 3; i++ {
			c.turnRow(i)
		}
	case Y:
		for i := 0; i < 3; i++ {
			c.turnColumn(i)
		}
	case Z:
		src := c.Faces

		c.Faces[Front] = src[Front].clockwise()
		c.Faces[Back] = src[Back].counterClockwise()

		// [j][2-i] <- [i][j] around the ring.
		c.Faces[Left] = src[Down].clockwise()
		c.Faces[Up] = src[Left].clockwise()
		c.Faces[Right] = src[Up].clockwise()
		c.Faces[Down] = src[Right].clockwise()
	}
}

// Apply performs a move on the cube without recording it anywhere.
func (c *Cube) Apply(m Move) {
	switch m.Kind() {
	case KindTurn:
		c.Turn(m.Axis(), m.Index(), m.Reversed())
	case KindRotation:
		c.Rotate(m.RotationAxis())
	}
}

// ApplyMoves applies a sequence of moves in order.
func (c *Cube) ApplyMoves(moves []Move) {
	for _, m := range moves {
		c.Apply(m)
	}
}
