package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubeplay"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46"))
)

// stickerColors maps sticker colors to terminal colors.
var stickerColors = map[cubeplay.Color]lipgloss.Color{
	cubeplay.Orange: lipgloss.Color("208"),
	cubeplay.Green:  lipgloss.Color("34"),
	cubeplay.Red:    lipgloss.Color("160"),
	cubeplay.Blue:   lipgloss.Color("27"),
	cubeplay.White:  lipgloss.Color("255"),
	cubeplay.Yellow: lipgloss.Color("226"),
}

func sticker(c cubeplay.Color) string {
	return lipgloss.NewStyle().
		Background(stickerColors[c]).
		Foreground(lipgloss.Color("0")).
		Render(" " + c.String() + " ")
}

// renderNet draws the cube as a net: Up above Front, then Left, Front,
// Right and Back in a row, then Down below Front.
func renderNet(c *cubeplay.Cube) string {
	var b strings.Builder
	gap := strings.Repeat(" ", 10)

	faceRow := func(f cubeplay.Face, row int) string {
		var s strings.Builder
		for col := 0; col < 3; col++ {
			s.WriteString(sticker(c.Faces[f][row][col]))
		}
		return s.String()
	}

	for row := 0; row < 3; row++ {
		b.WriteString(gap + faceRow(cubeplay.Up, row) + "\n")
	}
	for row := 0; row < 3; row++ {
		for i, f := range []cubeplay.Face{cubeplay.Left, cubeplay.Front, cubeplay.Right, cubeplay.Back} {
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(faceRow(f, row))
		}
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		b.WriteString(gap + faceRow(cubeplay.Down, row) + "\n")
	}

	return b.String()
}

// recentMoves formats the last n moves, with a leading ellipsis if some
// were cut.
func recentMoves(moves []cubeplay.Move, n int) string {
	if len(moves) <= n {
		return cubeplay.FormatMoves(moves)
	}
	return "... " + cubeplay.FormatMoves(moves[len(moves)-n:])
}

const guideText = `Rows             Columns           View
  T  top right     Q  left up        X  rotate x
  G  middle right  W  middle up      Y  rotate y
  B  bottom right  E  right up       Z  rotate z
  R  top left      A  left down
  F  middle left   S  middle down
  V  bottom left   D  right down

Game
  M  scramble and start the timer
  K  let the solver undo every move
  H  hint: undo your last move
  L  leaderboard   P  history   ?  this guide
  Esc / Ctrl+C  save and quit

Moves are ignored while this guide is open.
Hints and the solver keep a solve off the leaderboard.`
