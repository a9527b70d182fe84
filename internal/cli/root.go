// Package cli implements the command-line interface for cubeplay.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeplay/internal/config"
	"github.com/SeamusWaldron/cubeplay/internal/session"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath     string
	configPath string
	verbose    bool

	cfg config.Config
	log = logrus.New()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubeplay",
	Short: "Terminal Rubik's Cube",
	Long: `cubeplay - A 3x3 Rubik's Cube you play in the terminal.

Log in, scramble the cube and race the clock. Your game is saved between
runs, every attempt goes into your history, and the quickest clean solves
make the leaderboard.`,
	Version:           version,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubeplay/cubeplay.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.cubeplay/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// setup loads the config and configures logging for every command.
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	c, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = c

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	storage.SetLogger(log)
	session.SetLogger(log)
	return nil
}

// redirectLog sends log output to a file under the event log directory so
// it does not draw over the TUI. The returned func restores stderr.
func redirectLog() (func(), error) {
	dir, err := cfg.EventLogPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "cubeplay.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}

// getDBPath returns the database path from flag, config or state file.
func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if cfg.DBPath != "" {
		return cfg.DBPath
	}
	if sf, err := session.NewDefaultStateFile(); err == nil {
		return sf.DBPath()
	}
	return "" // Will use default
}
