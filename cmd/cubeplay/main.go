// cubeplay - a 3x3 Rubik's Cube played in the terminal.
package main

import (
	"github.com/SeamusWaldron/cubeplay/internal/cli"
)

func main() {
	cli.Execute()
}
