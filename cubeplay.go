// Package cubeplay provides a 3x3 cube puzzle model with slice turns, view
// rotations, a move history and an undo-based solver.
//
// # Features
//
//   - Sticker-level cube state with text encoding
//   - Row and column slice turns, x/y/z view rotations
//   - Move history with stack discipline
//   - Random scrambles of 15 to 25 turns
//   - Step-wise solving by replaying the history backwards
//   - A Game type with attempt timing, hints and persistence snapshots
//
// # Quick Start
//
//	cube := cubeplay.New()
//	var history cubeplay.History
//
//	scrambler := cubeplay.NewScrambler()
//	n := scrambler.Scramble(cube, &history)
//	fmt.Println("Scrambled with", n, "turns")
//
//	for cubeplay.Solve(cube, &history) {
//	    time.Sleep(cubeplay.SolvePace(cubeplay.DefaultSolveDuration, n))
//	}
//	fmt.Println("Solved:", cube.IsSolved())
//
// # Games
//
// Game wraps a cube and history with the timer and counters of an attempt:
//
//	game := cubeplay.NewGame()
//	game.Scramble()
//	game.Apply(cubeplay.TopRowRight)
//	if a := game.Tick(); a != nil {
//	    fmt.Println("Solved in", a.Duration)
//	}
//
// # Solving
//
// The solver is not a search. It pops the most recent move and performs the
// inverse, one move per call, until the history is empty or the cube looks
// solved. A cube looks solved when every face is one color; which color sits
// on which face does not matter.
package cubeplay
