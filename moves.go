package cubeplay

// Predefined moves for convenience.
// Use these instead of building moves by hand.
//
// Example:
//
//	game.Apply(cubeplay.TopRowRight)
var (
	// Row moves (right is forward)
	TopRowRight    = TurnMove(Row, 0, false)
	TopRowLeft     = TurnMove(Row, 0, true)
	MiddleRowRight = TurnMove(Row, 1, false)
	MiddleRowLeft  = TurnMove(Row, 1, true)
	BottomRowRight = TurnMove(Row, 2, false)
	BottomRowLeft  = TurnMove(Row, 2, true)

	// Column moves (up is forward)
	LeftColumnUp     = TurnMove(Column, 0, false)
	LeftColumnDown   = TurnMove(Column, 0, true)
	MiddleColumnUp   = TurnMove(Column, 1, false)
	MiddleColumnDown = TurnMove(Column, 1, true)
	RightColumnUp    = TurnMove(Column, 2, false)
	RightColumnDown  = TurnMove(Column, 2, true)

	// View rotations
	RotateX = RotationMove(X)
	RotateY = RotationMove(Y)
	RotateZ = RotationMove(Z)
)

// AllTurns lists every slice turn.
var AllTurns = []Move{
	TopRowRight, TopRowLeft,
	MiddleRowRight, MiddleRowLeft,
	BottomRowRight, BottomRowLeft,
	LeftColumnUp, LeftColumnDown,
	MiddleColumnUp, MiddleColumnDown,
	RightColumnUp, RightColumnDown,
}

// AllRotations lists every view rotation.
var AllRotations = []Move{RotateX, RotateY, RotateZ}
