package cubeplay

import "errors"

// Sentinel errors for the cubeplay package.
var (
	// History errors
	ErrEmptyHistory = errors.New("cubeplay: move history is empty")

	// Input errors
	ErrInvalidMoveIndex = errors.New("cubeplay: move index out of range")
	ErrInvalidAxis      = errors.New("cubeplay: unrecognized move axis")

	// State errors
	ErrInvalidCubeState = errors.New("cubeplay: invalid cube state")
)
