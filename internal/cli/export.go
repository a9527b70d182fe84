package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeplay"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
	"github.com/SeamusWaldron/cubeplay/pkg/types"
)

var (
	exportUser   string
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export game data",
	Long:  `Export game data in various formats.`,
}

var exportMovesCmd = &cobra.Command{
	Use:   "moves",
	Short: "Export the moves of a saved game",
	Long: `Export the recorded move stack of a player's saved game, oldest first,
in text or JSON format. Scramble moves are included.

Examples:
  cubeplay export moves
  cubeplay export moves -u bob --format json
  cubeplay export moves -u bob --format txt -o moves.txt`,
	RunE: runExportMoves,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.AddCommand(exportMovesCmd)
	exportMovesCmd.Flags().StringVarP(&exportUser, "username", "u", "", "Player (default: last player to log in)")
	exportMovesCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportMovesCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

// movesExport is the JSON export document.
type movesExport struct {
	Username       string       `json:"username"`
	GameID         string       `json:"game_id"`
	CubeState      string       `json:"cube_state"`
	MoveCount      int          `json:"move_count"`
	ScramblerCount int          `json:"scrambler_count"`
	Notation       string       `json:"notation"`
	Moves          []types.Move `json:"moves"`
}

func runExportMoves(cmd *cobra.Command, args []string) error {
	name := exportUser
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

	saved, err := storage.NewGameRepository(db).GetByUser(name)
	if err != nil {
		return fmt.Errorf("failed to get game: %w", err)
	}
	if saved == nil {
		return fmt.Errorf("no saved game for %s", name)
	}

	moves, err := cubeplay.MovesFromRecords(saved.Moves)
	if err != nil {
		return err
	}

	var output []byte
	switch exportFormat {
	case "txt":
		output = []byte(cubeplay.FormatMoves(moves) + "\n")
	case "json":
		doc := movesExport{
			Username:       saved.Username,
			GameID:         saved.GameID,
			CubeState:      saved.CubeState,
			MoveCount:      saved.MoveCount,
			ScramblerCount: saved.ScramblerCount,
			Notation:       cubeplay.FormatMoves(moves),
			Moves:          saved.Moves,
		}
		output, err = json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		output = append(output, '\n')
	default:
		return fmt.Errorf("unknown format: %s (use txt or json)", exportFormat)
	}

	if exportOutput == "" {
		_, err := cmd.OutOrStdout().Write(output)
		return err
	}

	if dir := filepath.Dir(exportOutput); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, output, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d moves to %s\n", len(moves), exportOutput)
	return nil
}
