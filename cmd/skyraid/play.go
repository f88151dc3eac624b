package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyraid/internal/platform/tui"
	"github.com/vovakirdan/skyraid/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the specified mode, "skyraid" when omitted.

Controls:
  Arrows/WASD  - Move
  Space        - Fire
  P            - Pause
  Enter        - Start, or restart after the run
  Esc          - Leave (paused or after the run)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy     - More health, slower enemy fire, more repair kits
  normal   - The standard campaign
  hard     - Less health, bigger waves, enemies survive several hits
  classic  - Original rules: unbounded scaling and no repair kits

Examples:
  skyraid play
  skyraid play skyraid_endless
  skyraid play --difficulty hard
  skyraid play --config ./my-skyraid.yaml --mute`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "skyraid"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'skyraid list' to see the modes", gameID)
	}

	// The terminal belongs to the game.
	logger, closer, err := newLogger(io.Discard, "skyraid")
	if err != nil {
		return err
	}
	defer closer.Close()

	stopAudio, err := startAudio(logger)
	if err != nil {
		return err
	}
	defer stopAudio()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig(width, height), logger); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
