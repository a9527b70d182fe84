package cubeplay

import (
	"math/rand/v2"
	"testing"
)

// labelled returns a cube whose 54 stickers all differ, so tests can follow
// exactly where each one goes. Labels are face*9 + row*3 + col.
func labelled() *Cube {
	c := &Cube{}
	for f := 0; f < 6; f++ {
		for r := 0; r < 3; r++ {
			for col := 0; col < 3; col++ {
				c.Faces[f][r][col] = label(Face(f), r, col)
			}
		}
	}
	return c
}

func label(f Face, row, col int) Color {
	return Color(int(f)*9 + row*3 + col)
}

// assertUntouchedExcept checks that every sticker not in moved still holds its
// original label.
func assertUntouchedExcept(t *testing.T, c *Cube, moved map[[3]int]bool) {
	t.Helper()
	for f := 0; f < 6; f++ {
		for r := 0; r < 3; r++ {
			for col := 0; col < 3; col++ {
				if moved[[3]int{f, r, col}] {
					continue
				}
				if got := c.Faces[f][r][col]; got != label(Face(f), r, col) {
					t.Errorf("%v[%d][%d] = %d, want untouched %d", Face(f), r, col, got, label(Face(f), r, col))
				}
			}
		}
	}
}

func wholeFace(f Face, moved map[[3]int]bool) {
	for r := 0; r < 3; r++ {
		for col := 0; col < 3; col++ {
			moved[[3]int{int(f), r, col}] = true
		}
	}
}

func TestNewCubeIsSolved(t *testing.T) {
	c := New()
	if !c.IsSolved() {
		t.Error("New cube should be solved")
		t.Log(c.String())
	}
	if c.SolvedFaces() != 6 {
		t.Errorf("SolvedFaces = %d, want 6", c.SolvedFaces())
	}
}

func TestSolvedLayout(t *testing.T) {
	c := New()
	want := map[Face]Color{
		Left: Orange, Front: Green, Right: Red,
		Back: Blue, Up: White, Down: Yellow,
	}
	for face, color := range want {
		if got := c.Faces[face][1][1]; got != color {
			t.Errorf("%v center = %v, want %v", face, got, color)
		}
	}
}

func TestSingleTurnBreaksSolved(t *testing.T) {
	for _, m := range AllTurns {
		c := New()
		c.Apply(m)
		if c.IsSolved() {
			t.Errorf("cube should not be solved after %v", m)
			t.Log(c.String())
		}
	}
}

func TestTurnThenReverseRestores(t *testing.T) {
	for _, axis := range []Axis{Row, Column} {
		for index := 0; index < 3; index++ {
			c := labelled()
			c.Turn(axis, index, false)
			c.Turn(axis, index, true)
			if !c.Equal(labelled()) {
				t.Errorf("%v %d then reversed should restore the cube", axis, index)
			}

			c = labelled()
			c.Turn(axis, index, true)
			c.Turn(axis, index, false)
			if !c.Equal(labelled()) {
				t.Errorf("%v %d reversed then forward should restore the cube", axis, index)
			}
		}
	}
}

func TestTopRowRightThenLeft_ReturnsToSolved(t *testing.T) {
	c := New()
	c.Turn(Row, 0, false)
	c.Turn(Row, 0, true)
	if !c.Equal(New()) {
		t.Error("row 0 right then left should return to the solved layout")
		t.Log(c.String())
	}
}

func TestTurnFourTimesIsIdentity(t *testing.T) {
	for _, m := range AllTurns {
		c := labelled()
		for i := 0; i < 4; i++ {
			c.Apply(m)
		}
		if !c.Equal(labelled()) {
			t.Errorf("%v x 4 should be the identity", m)
		}
	}
}

func TestReversedTurnIsThreeForward(t *testing.T) {
	for _, axis := range []Axis{Row, Column} {
		for index := 0; index < 3; index++ {
			a := labelled()
			a.Turn(axis, index, true)

			b := labelled()
			for i := 0; i < 3; i++ {
				b.Turn(axis, index, false)
			}
			if !a.Equal(b) {
				t.Errorf("%v %d reversed differs from three forward turns", axis, index)
			}
		}
	}
}

func TestRowTurnMapping(t *testing.T) {
	for n := 0; n < 3; n++ {
		c := labelled()
		c.Turn(Row, n, false)

		moved := map[[3]int]bool{}
		for col := 0; col < 3; col++ {
			if got, want := c.Faces[Right][n][col], label(Front, n, col); got != want {
				t.Errorf("row %d: right[%d][%d] = %d, want %d", n, n, col, got, want)
			}
			if got, want := c.Faces[Back][n][col], label(Right, n, col); got != want {
				t.Errorf("row %d: back[%d][%d] = %d, want %d", n, n, col, got, want)
			}
			if got, want := c.Faces[Left][n][col], label(Back, n, col); got != want {
				t.Errorf("row %d: left[%d][%d] = %d, want %d", n, n, col, got, want)
			}
			if got, want := c.Faces[Front][n][col], label(Left, n, col); got != want {
				t.Errorf("row %d: front[%d][%d] = %d, want %d", n, n, col, got, want)
			}
			for _, f := range []Face{Left, Front, Right, Back} {
				moved[[3]int{int(f), n, col}] = true
			}
		}

		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				switch n {
				case 0:
					// Up turns counter-clockwise.
					if got, want := c.Faces[Up][i][j], label(Up, j, 2-i); got != want {
						t.Errorf("row 0: up[%d][%d] = %d, want %d", i, j, got, want)
					}
				case 2:
					// Down turns clockwise.
					if got, want := c.Faces[Down][i][j], label(Down, 2-j, i); got != want {
						t.Errorf("row 2: down[%d][%d] = %d, want %d", i, j, got, want)
					}
				}
			}
		}
		switch n {
		case 0:
			wholeFace(Up, moved)
		case 2:
			wholeFace(Down, moved)
		}

		assertUntouchedExcept(t, c, moved)
	}
}

func TestColumnTurnMapping(t *testing.T) {
	for n := 0; n < 3; n++ {
		c := labelled()
		c.Turn(Column, n, false)

		moved := map[[3]int]bool{}
		for i := 0; i < 3; i++ {
			if got, want := c.Faces[Front][i][n], label(Down, i, n); got != want {
				t.Errorf("column %d: front[%d][%d] = %d, want %d", n, i, n, got, want)
			}
			if got, want := c.Faces[Down][2-i][n], label(Back, i, 2-n); got != want {
				t.Errorf("column %d: down[%d][%d] = %d, want %d", n, 2-i, n, got, want)
			}
			if got, want := c.Faces[Back][2-i][2-n], label(Up, i, n); got != want {
				t.Errorf("column %d: back[%d][%d] = %d, want %d", n, 2-i, 2-n, got, want)
			}
			if got, want := c.Faces[Up][i][n], label(Front, i, n); got != want {
				t.Errorf("column %d: up[%d][%d] = %d, want %d", n, i, n, got, want)
			}
			moved[[3]int{int(Front), i, n}] = true
			moved[[3]int{int(Down), i, n}] = true
			moved[[3]int{int(Back), i, 2 - n}] = true
			moved[[3]int{int(Up), i, n}] = true
		}

		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				switch n {
				case 0:
					if got, want := c.Faces[Left][i][j], label(Left, j, 2-i); got != want {
						t.Errorf("column 0: left[%d][%d] = %d, want %d", i, j, got, want)
					}
				case 2:
					if got, want := c.Faces[Right][i][j], label(Right, 2-j, i); got != want {
						t.Errorf("column 2: right[%d][%d] = %d, want %d", i, j, got, want)
					}
				}
			}
		}
		switch n {
		case 0:
			wholeFace(Left, moved)
		case 2:
			wholeFace(Right, moved)
		}

		assertUntouchedExcept(t, c, moved)
	}
}

func TestRotateZMapping(t *testing.T) {
	c := labelled()
	c.Rotate(Z)

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if got, want := c.Faces[Front][i][j], label(Front, 2-j, i); got != want {
				t.Errorf("front[%d][%d] = %d, want %d", i, j, got, want)
			}
			if got, want := c.Faces[Back][i][j], label(Back, j, 2-i); got != want {
				t.Errorf("back[%d][%d] = %d, want %d", i, j, got, want)
			}
			if got, want := c.Faces[Left][j][2-i], label(Down, i, j); got != want {
				t.Errorf("left[%d][%d] = %d, want %d", j, 2-i, got, want)
			}
			if got, want := c.Faces[Up][j][2-i], label(Left, i, j); got != want {
				t.Errorf("up[%d][%d] = %d, want %d", j, 2-i, got, want)
			}
			if got, want := c.Faces[Right][j][2-i], label(Up, i, j); got != want {
				t.Errorf("right[%d][%d] = %d, want %d", j, 2-i, got, want)
			}
			if got, want := c.Faces[Down][j][2-i], label(Right, i, j); got != want {
				t.Errorf("down[%d][%d] = %d, want %d", j, 2-i, got, want)
			}
		}
	}
}

func TestRotateXIsAllRows(t *testing.T) {
	a := labelled()
	a.Rotate(X)

	b := labelled()
	for i := 0; i < 3; i++ {
		b.Turn(Row, i, false)
	}
	if !a.Equal(b) {
		t.Error("x rotation should equal turning all three rows")
	}
}

func TestRotateYIsAllColumns(t *testing.T) {
	a := labelled()
	a.Rotate(Y)

	b := labelled()
	for i := 0; i < 3; i++ {
		b.Turn(Column, i, false)
	}
	if !a.Equal(b) {
		t.Error("y rotation should equal turning all three columns")
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, axis := range []RotationAxis{X, Y, Z} {
		c := labelled()
		for i := 0; i < 4; i++ {
			c.Rotate(axis)
		}
		if !c.Equal(labelled()) {
			t.Errorf("%v x 4 should be the identity", axis)
		}
	}
}

func TestRotateX4_ReturnsToSolved(t *testing.T) {
	c := New()
	for i := 0; i < 4; i++ {
		c.Rotate(X)
	}
	if !c.Equal(New()) {
		t.Error("x x x x should return to the solved layout")
		t.Log(c.String())
	}
}

func TestRotationKeepsSolved(t *testing.T) {
	for _, axis := range []RotationAxis{X, Y, Z} {
		c := New()
		c.Rotate(axis)
		if !c.IsSolved() {
			t.Errorf("%v rotation should keep a solved cube solved", axis)
			t.Log(c.String())
		}
		if c.Equal(New()) {
			t.Errorf("%v rotation should move the faces around", axis)
		}
	}
}

func TestStickerConservation(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	all := append(append([]Move{}, AllTurns...), AllRotations...)

	c := New()
	for i := 0; i < 500; i++ {
		c.Apply(all[rng.IntN(len(all))])
		for color, n := range c.ColorCounts() {
			if n != 9 {
				t.Fatalf("after %d moves color %v appears %d times", i+1, Color(color), n)
			}
		}
	}
}

func TestRandomWalkThenUndo(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	all := append(append([]Move{}, AllTurns...), AllRotations...)

	c := labelled()
	var h History
	for i := 0; i < 200; i++ {
		m := all[rng.IntN(len(all))]
		c.Apply(m)
		h.Push(m)
	}
	for h.Len() > 0 {
		if _, err := Undo(c, &h); err != nil {
			t.Fatal(err)
		}
	}
	if !c.Equal(labelled()) {
		t.Error("undoing every move should restore every sticker")
	}
}

func TestMarshalTextRoundTrip(t *testing.T) {
	c := New()
	c.Apply(TopRowRight)
	c.Apply(RightColumnDown)
	c.Apply(RotateZ)

	text, err := c.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if len(text) != 54 {
		t.Fatalf("encoded length = %d, want 54", len(text))
	}

	var decoded Cube
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if !decoded.Equal(c) {
		t.Error("decoded cube differs from the original")
	}
}

func TestSolvedEncoding(t *testing.T) {
	text, _ := New().MarshalText()
	want := "OOOOOOOOOGGGGGGGGGRRRRRRRRRBBBBBBBBBWWWWWWWWWYYYYYYYYY"
	if string(text) != want {
		t.Errorf("solved encoding = %s, want %s", text, want)
	}
}

func TestUnmarshalTextRejects(t *testing.T) {
	valid, _ := New().MarshalText()

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"short", string(valid[:53])},
		{"unknown letter", "X" + string(valid[1:])},
		{"ten whites", "W" + string(valid[1:])},
	}

	for _, tt := range tests {
		var c Cube
		if err := c.UnmarshalText([]byte(tt.text)); err != ErrInvalidCubeState {
			t.Errorf("%s: got %v, want ErrInvalidCubeState", tt.name, err)
		}
	}
}

func TestStringLayout(t *testing.T) {
	s := New().String()
	want := "" +
		"      W W W \n" +
		"      W W W \n" +
		"      W W W \n" +
		"O O O G G G R R R B B B \n" +
		"O O O G G G R R R B B B \n" +
		"O O O G G G R R R B B B \n" +
		"      Y Y Y \n" +
		"      Y Y Y \n" +
		"      Y Y Y \n"
	if s != want {
		t.Errorf("unexpected net:\n%s", s)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := New()
	clone := c.Clone()
	clone.Apply(TopRowRight)
	if !c.IsSolved() {
		t.Error("changing a clone should not change the original")
	}
}
