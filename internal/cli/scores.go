package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeplay/internal/leaderboard"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

var (
	historyUser  string
	historyLimit int
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the ten quickest solves",
	Long: `Show the ten quickest solves. Only solves made without hints or the
solver count.`,
	RunE: runLeaderboard,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show a player's attempts",
	Long:  `Show a player's recent attempts, newest first, including abandoned ones.`,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)

	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVarP(&historyUser, "username", "u", "", "Player (default: last player to log in)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of attempts to display")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := storage.NewLeaderboardRepository(db).List()
	if err != nil {
		return err
	}

	writeLeaderboard(cmd.OutOrStdout(), entries)
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	name := historyUser
	if name == "" {
		name = lastUser()
	}
	if name == "" {
		return fmt.Errorf("specify --username")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	attempts, err := storage.NewAttemptRepository(db).ListByUser(name, historyLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Attempts for %s\n\n", name)
	writeHistory(cmd.OutOrStdout(), attempts)
	return nil
}

func writeLeaderboard(w io.Writer, entries []leaderboard.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No solves on the leaderboard yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POS\tNAME\tTIME\tMOVES")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", i+1, e.Name, formatDuration(e.Time), e.Moves)
	}
	tw.Flush()
}

func writeHistory(w io.Writer, attempts []storage.AttemptRecord) {
	if len(attempts) == 0 {
		fmt.Fprintln(w, "No attempts yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tTIME\tMOVES\tSCRAMBLE\tRESULT\tHELP")
	for _, a := range attempts {
		result := "abandoned"
		if a.Solved {
			result = "solved"
		}
		var help []string
		if a.HintsUsed {
			help = append(help, "hints")
		}
		if a.SolverUsed {
			help = append(help, "solver")
		}
		helpStr := "-"
		if len(help) > 0 {
			helpStr = strings.Join(help, ",")
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			a.StartedAt.Local().Format("2006-01-02 15:04"),
			formatDuration(a.Duration), a.Moves, a.ScramblerMoves, result, helpStr)
	}
	tw.Flush()
}
