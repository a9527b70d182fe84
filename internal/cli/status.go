package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeplay/internal/session"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and player information",
	Long:  `Display the database in use, the last player, their saved game and the leaderboard leader.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// lastUser returns the last player to log in, or "".
func lastUser() string {
	sf, err := session.NewDefaultStateFile()
	if err != nil {
		return ""
	}
	return sf.LastUser()
}

func runStatus(cmd *cobra.Command, args []string) error {
	stateFile, err := session.NewDefaultStateFile()
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	state := stateFile.State()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "cubeplay Status")
	fmt.Fprintln(out, "===============")
	fmt.Fprintln(out)

	path := getDBPath()
	if path == "" {
		path, _ = storage.DefaultDBPath()
	}
	fmt.Fprintf(out, "Database: %s\n", path)

	db, err := openDB()
	if err != nil {
		fmt.Fprintf(out, "Database error: %v\n", err)
		return nil
	}
	defer db.Close()

	v, _ := db.CurrentVersion()
	fmt.Fprintf(out, "Schema version: %d\n", v)

	users, err := storage.NewUserRepository(db).List()
	if err == nil {
		fmt.Fprintf(out, "Players: %d\n", len(users))
	}
	fmt.Fprintln(out)

	if state.LastUser == "" {
		fmt.Fprintln(out, "No player has logged in yet")
	} else {
		fmt.Fprintf(out, "Last player: %s\n", state.LastUser)

		saved, err := storage.NewGameRepository(db).GetByUser(state.LastUser)
		switch {
		case err != nil:
			fmt.Fprintf(out, "  Saved game: error: %v\n", err)
		case saved == nil:
			fmt.Fprintln(out, "  No saved game")
		default:
			fmt.Fprintf(out, "  Saved game: %d moves (%d scramble), %s on the clock\n",
				saved.MoveCount-saved.ScramblerCount, saved.ScramblerCount, formatDuration(saved.Elapsed))
			if saved.Timing {
				fmt.Fprintln(out, "  Attempt in progress")
			}
			fmt.Fprintf(out, "  Saved at: %s\n", saved.SavedAt.Local().Format("2006-01-02 15:04"))
		}

		n, err := storage.NewAttemptRepository(db).Count(state.LastUser)
		if err == nil {
			fmt.Fprintf(out, "  Attempts: %d\n", n)
		}
	}
	fmt.Fprintln(out)

	entries, err := storage.NewLeaderboardRepository(db).List()
	if err == nil && len(entries) > 0 {
		fmt.Fprintf(out, "Leader: %s in %s (%d moves)\n", entries[0].Name, formatDuration(entries[0].Time), entries[0].Moves)
	} else {
		fmt.Fprintln(out, "Leaderboard is empty")
	}

	return nil
}
