package cubeplay

import (
	"math/rand/v2"
)

// Default scramble length bounds, inclusive.
const (
	DefaultScrambleMin = 15
	DefaultScrambleMax = 25
)

// Source supplies random integers in [0, n). *rand.Rand from math/rand/v2
// satisfies it.
type Source interface {
	IntN(n int) int
}

// globalSource draws from the math/rand/v2 top-level generator.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// ScrambleOption configures a Scrambler.
type ScrambleOption func(*Scrambler)

// WithSource sets the random source. Use a seeded *rand.Rand for
// reproducible scrambles.
func WithSource(src Source) ScrambleOption {
	return func(s *Scrambler) {
		s.src = src
	}
}

// WithLength sets the inclusive bounds on the number of turns drawn.
func WithLength(min, max int) ScrambleOption {
	return func(s *Scrambler) {
		if min < 0 {
			min = 0
		}
		if max < min {
			max = min
		}
		s.min = min
		s.max = max
	}
}

// Scrambler issues a random run of slice turns from the solved state.
//
// Turns are drawn independently, so a scramble may contain turns that cancel
// each other out.
type Scrambler struct {
	src Source
	min int
	max int
}

// NewScrambler creates a scrambler with 15-25 turns drawn from the global
// random generator unless options say otherwise.
func NewScrambler(opts ...ScrambleOption) *Scrambler {
	s := &Scrambler{
		src: globalSource{},
		min: DefaultScrambleMin,
		max: DefaultScrambleMax,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scramble resets the cube to solved, clears the history and then applies
// and records a random number of random turns. It returns the number of
// turns made.
func (s *Scrambler) Scramble(c *Cube, h *History) int {
	c.Reset()
	h.Clear()

	count := s.min + s.src.IntN(s.max-s.min+1)
	for i := 0; i < count; i++ {
		axis := Axis(s.src.IntN(2))
		index := s.src.IntN(3)
		reversed := s.src.IntN(2) == 1

		m := TurnMove(axis, index, reversed)
		c.Apply(m)
		h.Push(m)
	}
	return count
}
