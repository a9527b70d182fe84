package cubeplay

import (
	"strings"
)

// Color represents a sticker color.
type Color byte

const (
	Orange Color = 0 // Left face when solved
	Green  Color = 1 // Front face when solved
	Red    Color = 2 // Right face when solved
	Blue   Color = 3 // Back face when solved
	White  Color = 4 // Up face when solved
	Yellow Color = 5 // Down face when solved
)

func (c Color) String() string {
	switch c {
	case Orange:
		return "O"
	case Green:
		return "G"
	case Red:
		return "R"
	case Blue:
		return "B"
	case White:
		return "W"
	case Yellow:
		return "Y"
	default:
		return "?"
	}
}

// colorFromLetter is the inverse of Color.String.
func colorFromLetter(b byte) (Color, bool) {
	switch b {
	case 'O':
		return Orange, true
	case 'G':
		return Green, true
	case 'R':
		return Red, true
	case 'B':
		return Blue, true
	case 'W':
		return White, true
	case 'Y':
		return Yellow, true
	default:
		return 0, false
	}
}

// Face identifies one side of the cube. The order is fixed and is also the
// storage order of Cube.Faces.
type Face int

const (
	Left  Face = 0
	Front Face = 1
	Right Face = 2
	Back  Face = 3
	Up    Face = 4
	Down  Face = 5
)

func (f Face) String() string {
	switch f {
	case Left:
		return "left"
	case Front:
		return "front"
	case Right:
		return "right"
	case Back:
		return "back"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "?"
	}
}

// Grid is the 3x3 sticker layout of one face, indexed [row][col].
type Grid [3][3]Color

// uniform returns a grid filled with a single color.
func uniform(c Color) Grid {
	var g Grid
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			g[row][col] = c
		}
	}
	return g
}

// clockwise returns the grid rotated 90 degrees clockwise.
func (g Grid) clockwise() Grid {
	var out Grid
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[j][2-i] = g[i][j]
		}
	}
	return out
}

// counterClockwise returns the grid rotated 90 degrees counter-clockwise.
func (g Grid) counterClockwise() Grid {
	var out Grid
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = g[j][2-i]
		}
	}
	return out
}

// Cube is the sticker state of a 3x3 cube. Faces are stored in the order
// Left, Front, Right, Back, Up, Down.
//
// Back and Down are stored rotated 180 degrees relative to Front and Up,
// which is why column turns flip both indices when crossing them.
type Cube struct {
	Faces [6]Grid
}

// New creates a solved cube.
func New() *Cube {
	c := &Cube{}
	c.Reset()
	return c
}

// solvedColor returns the color of a face when solved.
func solvedColor(f Face) Color {
	return Color(f)
}

// Reset puts the cube back into the solved layout.
func (c *Cube) Reset() {
	for face := Left; face <= Down; face++ {
		c.Faces[face] = uniform(solvedColor(face))
	}
}

// Clone creates a copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := *c
	return &clone
}

// Equal reports whether both cubes have identical stickers.
func (c *Cube) Equal(other *Cube) bool {
	return c.Faces == other.Faces
}

// IsSolved reports whether every face is a single color.
//
// Each sticker is compared against its own face's center, not against the
// starting layout, so a whole-cube rotation still counts as solved.
func (c *Cube) IsSolved() bool {
	return c.SolvedFaces() == 6
}

// SolvedFaces returns how many faces are a single color.
func (c *Cube) SolvedFaces() int {
	n := 0
	for face := range c.Faces {
		if c.faceUniform(Face(face)) {
			n++
		}
	}
	return n
}

func (c *Cube) faceUniform(face Face) bool {
	g := &c.Faces[face]
	center := g[1][1]
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if g[row][col] != center {
				return false
			}
		}
	}
	return true
}

// ColorCounts returns the number of stickers of each color.
func (c *Cube) ColorCounts() [6]int {
	var counts [6]int
	for _, g := range c.Faces {
		for _, row := range g {
			for _, color := range row {
				if int(color) < len(counts) {
					counts[color]++
				}
			}
		}
	}
	return counts
}

// MarshalText encodes the cube as 54 color letters: faces in storage order,
// each face row by row.
func (c *Cube) MarshalText() ([]byte, error) {
	buf := make([]byte, 0, 54)
	for _, g := range c.Faces {
		for _, row := range g {
			for _, color := range row {
				buf = append(buf, color.String()[0])
			}
		}
	}
	return buf, nil
}

// UnmarshalText decodes the format produced by MarshalText. Every color must
// appear exactly nine times.
func (c *Cube) UnmarshalText(text []byte) error {
	if len(text) != 54 {
		return ErrInvalidCubeState
	}

	var faces [6]Grid
	for i, b := range text {
		color, ok := colorFromLetter(b)
		if !ok {
			return ErrInvalidCubeState
		}
		faces[i/9][(i%9)/3][i%3] = color
	}

	decoded := Cube{Faces: faces}
	for _, n := range decoded.ColorCounts() {
		if n != 9 {
			return ErrInvalidCubeState
		}
	}

	c.Faces = faces
	return nil
}

// String returns the cube as a text net: Up above Front, the four side faces
// in a row, Down below Front.
func (c *Cube) String() string {
	var sb strings.Builder

	writeCapRow := func(face Face, row int) {
		sb.WriteString("      ")
		for col := 0; col < 3; col++ {
			sb.WriteString(c.Faces[face][row][col].String() + " ")
		}
		sb.WriteString("\n")
	}

	for row := 0; row < 3; row++ {
		writeCapRow(Up, row)
	}

	for row := 0; row < 3; row++ {
		for _, face := range []Face{Left, Front, Right, Back} {
			for col := 0; col < 3; col++ {
				sb.WriteString(c.Faces[face][row][col].String() + " ")
			}
		}
		sb.WriteString("\n")
	}

	for row := 0; row < 3; row++ {
		writeCapRow(Down, row)
	}

	return sb.String()
}
