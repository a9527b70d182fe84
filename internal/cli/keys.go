package cli

import (
	"strings"

	"github.com/SeamusWaldron/cubeplay"
)

// action is what a key press asks the game to do.
type action int

const (
	actNone action = iota
	actMove
	actScramble
	actSolve
	actHint
	actLeaderboard
	actHistory
	actGuide
	actQuit
)

type binding struct {
	act  action
	move cubeplay.Move
}

// keyMap binds keys to actions. Letters are matched case-insensitively.
var keyMap = map[string]binding{
	// Rows right
	"t": {actMove, cubeplay.TopRowRight},
	"g": {actMove, cubeplay.MiddleRowRight},
	"b": {actMove, cubeplay.BottomRowRight},
	// Rows left
	"r": {actMove, cubeplay.TopRowLeft},
	"f": {actMove, cubeplay.MiddleRowLeft},
	"v": {actMove, cubeplay.BottomRowLeft},
	// Columns up
	"q": {actMove, cubeplay.LeftColumnUp},
	"w": {actMove, cubeplay.MiddleColumnUp},
	"e": {actMove, cubeplay.RightColumnUp},
	// Columns down
	"a": {actMove, cubeplay.LeftColumnDown},
	"s": {actMove, cubeplay.MiddleColumnDown},
	"d": {actMove, cubeplay.RightColumnDown},
	// Rotations
	"x": {actMove, cubeplay.RotateX},
	"y": {actMove, cubeplay.RotateY},
	"z": {actMove, cubeplay.RotateZ},

	"m":      {act: actScramble},
	"k":      {act: actSolve},
	"h":      {act: actHint},
	"l":      {act: actLeaderboard},
	"p":      {act: actHistory},
	"?":      {act: actGuide},
	"esc":    {act: actQuit},
	"ctrl+c": {act: actQuit},
}

// lookupKey returns the binding for a key as bubbletea names it.
func lookupKey(key string) binding {
	if b, ok := keyMap[key]; ok {
		return b
	}
	if len(key) == 1 {
		if b, ok := keyMap[strings.ToLower(key)]; ok {
			return b
		}
	}
	return binding{}
}
