package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyraid/internal/platform/tui"
	"github.com/vovakirdan/skyraid/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and difficulty from a menu",
	Long: `Start Sky Raid in interactive menu mode.

Use arrow keys or j/k to pick a mode, left/right to change the
difficulty and Enter to play. Tab opens the scoreboard.
After a game ends, Esc returns to the menu.

Examples:
  skyraid menu
  skyraid menu --fps 30
  skyraid menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	cfg := runtimeConfig(width, height)

	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}
		cfg = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return fmt.Errorf("scoreboard: %w", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			logger.Error("cannot create game", "err", err)
			continue
		}
		if ds, ok := game.(interface{ SetDifficulty(string) }); ok {
			ds.SetDifficulty(string(result.Difficulty))
		}

		// A fixed --seed replays the same raid every time.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, store, cfg, logger); err != nil {
			return fmt.Errorf("error running game: %w", err)
		}
	}
}
