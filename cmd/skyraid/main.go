// skyraid is a vertical arcade shooter for the terminal.
//
// Usage:
//
//	skyraid list              - List game modes
//	skyraid play [mode]       - Play a mode (default: skyraid)
//	skyraid menu              - Pick modes and difficulty interactively
//	skyraid serve             - Start SSH server for remote play
//	skyraid scores [mode]     - Show the best runs for a mode
//	skyraid sim               - Run a headless autopilot session
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.skyraid/scores.db)
//	--config <path>       - Load a custom shooter config
//	--difficulty <name>   - easy, normal, hard or classic
//	--log-file <path>     - Write logs to a file
//	--mute                - Disable sound
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyraid/internal/audio"
	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/games/skyraid"
	"github.com/vovakirdan/skyraid/internal/storage"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
	flagMute       bool
	flagVolume     float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyraid",
	Short: "Sky Raid - a vertical arcade shooter in your terminal",
	Long: `Sky Raid is a fixed-viewpoint arcade shooter for the terminal.
Destroy enemy craft, survive their fire and clear tier after tier of
ever faster, tougher waves.

Available commands:
  list     - Show the game modes
  play     - Play a mode directly
  menu     - Interactive mode and difficulty picker
  serve    - Start SSH server for remote play
  scores   - View the best runs
  sim      - Run a headless autopilot session

Examples:
  skyraid play
  skyraid play skyraid_endless --difficulty hard
  skyraid menu
  skyraid serve --ssh :2222
  skyraid sim --seed 42 --frames 5000`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
			return fmt.Errorf("unknown difficulty %q (easy, normal, hard, classic)", flagDifficulty)
		}
		skyraid.SetConfigPath(flagConfig)
		skyraid.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.skyraid/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom shooter config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, classic")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard, stderr for sim)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound")
	pf.Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 to 1")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger builds the logger for a command. Logs go to --log-file when it
// is set and to fallback otherwise. The returned closer releases the file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out, closer := fallback, io.Closer(io.NopCloser(nil))
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, f
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// openStore opens the score database. A failure only warns; the game still
// runs without a scoreboard.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "err", err)
		return nil
	}
	return store
}

// startAudio opens the speaker and hands it to the games. It returns a
// function that releases the speaker. Without --mute a missing audio device
// is an error.
func startAudio(logger *log.Logger) (func(), error) {
	if flagMute {
		skyraid.SetSounds(nil)
		return func() {}, nil
	}

	mgr := audio.NewManager(flagVolume)
	if err := mgr.Initialize(); err != nil {
		return nil, fmt.Errorf("%w (run with --mute to play without sound)", err)
	}
	logger.Debug("audio initialized", "volume", flagVolume)
	skyraid.SetSounds(mgr)
	return func() {
		skyraid.SetSounds(nil)
		mgr.Close()
	}, nil
}

// runtimeConfig builds the platform config for a screen size.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
