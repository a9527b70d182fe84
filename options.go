package cubeplay

import "time"

// Option configures a Game.
type Option func(*config)

type config struct {
	scrambler *Scrambler
	clock     func() time.Time
}

func defaultConfig() *config {
	return &config{
		scrambler: NewScrambler(),
		clock:     time.Now,
	}
}

// WithScrambler sets the scrambler used by Game.Scramble.
// Pass a scrambler with a seeded source for reproducible games.
func WithScrambler(s *Scrambler) Option {
	return func(c *config) {
		if s != nil {
			c.scrambler = s
		}
	}
}

// WithClock sets the time source for the attempt timer.
// Tests use this to control elapsed time.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.clock = now
		}
	}
}
