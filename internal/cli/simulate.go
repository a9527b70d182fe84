package cli

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeplay"
)

var (
	simSeed    uint64
	simMin     int
	simMax     int
	simShow    bool
	simPaced   bool
	simPlainUI bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Scramble and solve a cube without logging in",
	Long: `Scramble a cube and let the solver undo it, printing the cube as it goes.
Nothing is saved.

Examples:
  cubeplay simulate
  cubeplay simulate --seed 7 --show
  cubeplay simulate --min 3 --max 3 --paced`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().Uint64Var(&simSeed, "seed", 0, "Random seed (default: random)")
	simulateCmd.Flags().IntVar(&simMin, "min", cubeplay.DefaultScrambleMin, "Fewest scramble turns")
	simulateCmd.Flags().IntVar(&simMax, "max", cubeplay.DefaultScrambleMax, "Most scramble turns")
	simulateCmd.Flags().BoolVar(&simShow, "show", false, "Print the cube after every solver step")
	simulateCmd.Flags().BoolVar(&simPaced, "paced", false, "Pace the solver over the configured solve duration")
	simulateCmd.Flags().BoolVar(&simPlainUI, "plain", false, "Print letters without colors")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	opts := []cubeplay.ScrambleOption{cubeplay.WithLength(simMin, simMax)}
	if simSeed != 0 {
		opts = append(opts, cubeplay.WithSource(rand.New(rand.NewPCG(simSeed, simSeed))))
	}

	draw := func(c *cubeplay.Cube) string {
		if simPlainUI {
			return c.String()
		}
		return renderNet(c)
	}

	game := cubeplay.NewGame(cubeplay.WithScrambler(cubeplay.NewScrambler(opts...)))
	game.Scramble()
	c := game.Cube()

	fmt.Fprintf(out, "Scramble (%d turns): %s\n\n", game.ScramblerCount(), cubeplay.FormatMoves(game.Moves()))
	fmt.Fprint(out, draw(&c))
	fmt.Fprintln(out)

	if game.IsSolved() {
		fmt.Fprintln(out, "The scramble cancelled itself out; nothing to solve.")
		return nil
	}

	game.StartSolve()
	pace := cubeplay.SolvePace(cfg.SolveDuration, game.HistoryLen())
	steps := 0
	for {
		if simPaced {
			time.Sleep(pace)
		}
		more := game.Step()
		steps++
		if simShow {
			c = game.Cube()
			fmt.Fprintf(out, "Step %d, %d left:\n", steps, game.HistoryLen())
			fmt.Fprint(out, draw(&c))
			fmt.Fprintln(out)
		}
		if !more {
			break
		}
	}

	c = game.Cube()
	fmt.Fprintf(out, "Solver took %d steps. Solved: %v\n", steps, c.IsSolved())
	if !simShow {
		fmt.Fprint(out, draw(&c))
	}
	return nil
}
