// t2048 is the 2048 sliding-tile game for the terminal.
//
// Usage:
//
//	t2048                    - Start screen, then play
//	t2048 play               - Same as above; --variant skips the start screen
//	t2048 list               - List the built-in variants
//	t2048 scores [variant]   - Show high scores
//	t2048 config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 30)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set database path (default: ~/.t2048/scores.db)
//	--config <path>  - Use this config file instead of the search order
//	--verbose        - Log at debug level
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/term2048/internal/config"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagVerbose bool

	// Effective configuration, loaded before any command runs
	appCfg    config.Config
	cfgSource config.Source
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.
Slide the board, merge equal tiles and reach the target tile.

Examples:
  t2048
  t2048 play --variant mini --preset easy
  t2048 scores classic
  t2048 config`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (input samples per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default ~/.t2048/scores.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config YAML file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log at debug level")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads .env, the config file and the environment, then applies
// flags that were set explicitly.
func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, src, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Input.TickRate = flagFPS
	}
	if flags.Changed("db") {
		cfg.Scores.DBPath = flagDBPath
	}
	if flagVerbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	appCfg, cfgSource = cfg, src
	return nil
}

// newLogger builds the application logger. While the alt-screen TUI owns
// the terminal the log goes to a file; otherwise it goes to stderr.
// The returned func closes the log file, if any.
func newLogger(cfg config.Config, tui bool) (*log.Logger, func()) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}

	var w io.Writer = os.Stderr
	closer := func() {}

	if tui {
		path := cfg.Log.File
		if path == "" {
			path = filepath.Join(config.Dir(), "t2048.log")
		}
		f, err := openLogFile(path)
		if err != nil {
			w = io.Discard
		} else {
			w = f
			closer = func() { f.Close() }
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "t2048",
	})
	return logger, closer
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
