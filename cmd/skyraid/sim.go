package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/games/skyraid"
	"github.com/vovakirdan/skyraid/internal/shooter"
)

var (
	flagSimFrames   int
	flagSimWidth    int
	flagSimHeight   int
	flagSimEndless  bool
	flagSimRealtime bool
	flagSimShow     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless autopilot session",
	Long: `Fly a session with the built-in autopilot and no terminal UI.

Frames run back to back on a simulated clock unless --realtime is
given, so a full campaign takes a moment. Progress is logged to stderr
(or --log-file). The same --seed always produces the same run.

Examples:
  skyraid sim --seed 42
  skyraid sim --endless --frames 20000 --difficulty hard
  skyraid sim --show --width 60 --height 20`,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimFrames, "frames", 60*60*10, "Stop after this many frames (0 = until the session ends)")
	simCmd.Flags().IntVar(&flagSimWidth, "width", 80, "Playfield width in cells")
	simCmd.Flags().IntVar(&flagSimHeight, "height", 24, "Playfield height in cells")
	simCmd.Flags().BoolVar(&flagSimEndless, "endless", false, "Use the endless ruleset")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Cap the loop at --fps instead of running flat out")
	simCmd.Flags().BoolVar(&flagSimShow, "show", false, "Print the final playfield")
}

func runSim(_ *cobra.Command, _ []string) error {
	logger, closer, err := newLogger(os.Stderr, "skyraid-sim")
	if err != nil {
		return err
	}
	defer closer.Close()

	mode := skyraid.ModeCampaign
	if flagSimEndless {
		mode = skyraid.ModeEndless
	}
	cfg, err := skyraid.LoadConfig(mode)
	if err != nil {
		logger.Warn("config error, using defaults", "err", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	clock := shooter.NewFrameClock(flagFPS)

	world, err := shooter.NewWorld(cfg, flagSimWidth, flagSimHeight,
		shooter.WithClock(clock),
		shooter.WithSeed(seed),
	)
	if err != nil {
		return fmt.Errorf("sim: %w", err)
	}

	loop := &shooter.Loop{
		World:     world,
		Input:     &shooter.Autopilot{World: world},
		MaxFrames: flagSimFrames,
		OnFrame: func(rep shooter.StepReport) {
			if rep.Advanced {
				logger.Info("tier advanced", "frame", rep.Frame, "tier", rep.Tier, "score", world.Score())
			}
		},
	}
	if flagSimRealtime {
		loop.FPS = flagFPS
	}

	var screen *core.Screen
	if flagSimShow {
		screen = core.NewScreen(flagSimWidth, flagSimHeight+1)
		loop.Canvas = shooter.NewScreenCanvas(screen, 1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("session started", "seed", seed, "width", flagSimWidth, "height", flagSimHeight, "max_tier", cfg.Tiers.MaxTier)
	start := time.Now()
	rep, err := loop.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("sim: %w", err)
	}

	outcome := rep.Outcome
	if outcome == shooter.OutcomeRunning {
		// The frame budget ran out first.
		world.RequestStop()
		outcome = world.Step(core.NewInputFrame()).Outcome
	}

	logger.Info("session ended",
		"outcome", outcome,
		"frames", world.Frame(),
		"tier", world.Tier().Index,
		"kills", world.Kills(),
		"score", world.Score(),
		"simulated", world.Duration().Round(time.Second),
		"wall", time.Since(start).Round(time.Millisecond),
	)

	if screen != nil {
		world.HUD().Draw(screen, 0)
		fmt.Println(screen.String())
	}
	fmt.Printf("%s after %d frames: tier %d, %d kills, score %d\n",
		outcome, world.Frame(), world.Tier().Index, world.Kills(), world.Score())
	return nil
}
