// Package skyraid adapts the shooter simulation to the arcade registry so
// the terminal front-end and the SSH server can host it like any other game.
package skyraid

import (
	"fmt"
	"time"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/registry"
	"github.com/vovakirdan/skyraid/internal/shooter"
)

// Mode selects the campaign or the endless ruleset.
type Mode int

const (
	ModeCampaign Mode = iota // Win after the final tier
	ModeEndless              // Tiers keep coming until the player is destroyed
)

const (
	hudRows = 1
	minW    = 40
	minH    = 12
)

type state int

const (
	stateTitle state = iota
	statePlaying
	stateOver
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// sounds is shared by every game created in this process.
var sounds shooter.SoundPlayer = shooter.NopSounds{}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetSounds sets the sound player used by games created afterwards.
// A nil player silences them.
func SetSounds(s shooter.SoundPlayer) {
	if s == nil {
		s = shooter.NopSounds{}
	}
	sounds = s
}

// LoadConfig resolves the shooter config the same way Reset does for a
// game without its own difficulty.
func LoadConfig(mode Mode) (config.ShooterConfig, error) {
	return loadConfig(mode, difficultyPreset)
}

func loadConfig(mode Mode, preset config.DifficultyPreset) (config.ShooterConfig, error) {
	cfg, err := config.LoadShooter(configPath)
	if err != nil {
		// Keep the mode and preset on top of the defaults.
		cfg = config.DefaultShooterConfig()
	}
	if preset != "" {
		config.ApplyShooterPreset(&cfg, preset)
	}
	if mode == ModeEndless {
		cfg.Tiers.MaxTier = 0
	}
	return cfg, err
}

// Game hosts a shooter.World behind the registry interface and adds the
// title and end screens around it.
type Game struct {
	mode    Mode
	runtime core.RuntimeConfig
	cfg     config.ShooterConfig
	world   *shooter.World
	clock   *shooter.FrameClock
	state   state
	preset  config.DifficultyPreset // Overrides the process-wide preset when set

	tooSmall bool
	loadErr  error
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates an endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

func init() {
	registry.Register("skyraid", func() registry.Game {
		return New()
	})
	registry.Register("skyraid_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "skyraid_endless"
	}
	return "skyraid"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Sky Raid (Endless)"
	}
	return "Sky Raid"
}

// SetDifficulty picks a preset for this game only, so SSH sessions can
// differ. It takes effect on the next Reset; unknown names clear it.
func (g *Game) SetDifficulty(preset string) {
	g.preset = config.ParsePreset(preset)
}

// Reset loads the config and builds a world sized to the screen below the
// HUD. The game opens on the title screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.state = stateTitle

	// A broken config file falls back to the defaults; the error is kept
	// for the title screen.
	preset := g.preset
	if preset == "" {
		preset = difficultyPreset
	}
	g.cfg, g.loadErr = loadConfig(g.mode, preset)

	g.tooSmall = runtime.ScreenW < minW || runtime.ScreenH < minH
	if g.tooSmall {
		g.world = nil
		return
	}

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.clock = shooter.NewFrameClock(runtime.TickRate)

	w, err := shooter.NewWorld(g.cfg, runtime.ScreenW, runtime.ScreenH-hudRows,
		shooter.WithClock(g.clock),
		shooter.WithSounds(sounds),
		shooter.WithSeed(seed),
	)
	if err != nil {
		g.tooSmall = true
		return
	}
	g.world = w
}

// Step advances one tick. On the title screen Enter or fire starts the run;
// after the run Enter or R starts a new one.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		return core.StepResult{State: g.State()}
	}

	switch g.state {
	case stateTitle:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
			g.state = statePlaying
		}
		return core.StepResult{State: g.State()}

	case stateOver:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
			g.world.NewSession()
			g.state = statePlaying
		}
		return core.StepResult{State: g.State()}
	}

	rep := g.world.Step(in)
	if rep.Outcome != shooter.OutcomeRunning {
		g.state = stateOver
	}
	return core.StepResult{State: g.State(), TierAdvanced: rep.Advanced}
}

// Render draws the current screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.world == nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small", core.ColorBrightYellow)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minW, minH), core.ColorWhite)
		return
	}

	if g.state == stateTitle {
		g.renderTitle(dst)
		return
	}

	g.world.HUD().Draw(dst, 0)
	g.world.Render(shooter.NewScreenCanvas(dst, hudRows))

	if g.state == stateOver {
		subtitle := fmt.Sprintf("Score: %d  |  Enter to restart", g.world.Score())
		if g.world.Won() {
			g.drawCenteredBox(dst, "YOU WIN!", subtitle, core.ColorBrightGreen)
		} else {
			g.drawCenteredBox(dst, "GAME OVER", subtitle, core.ColorBrightRed)
		}
	} else if g.world.Paused() {
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume", core.ColorBrightWhite)
	}
}

func (g *Game) renderTitle(dst *core.Screen) {
	h := dst.Height()
	dst.DrawTextCentered(h/2-4, g.Title(), core.ColorBrightCyan)
	dst.DrawTextCentered(h/2-2, "Arrows/WASD move, Space fires, P pauses", core.ColorWhite)

	goal := "Survive as long as you can"
	if g.cfg.Tiers.MaxTier > 0 {
		goal = fmt.Sprintf("Clear %d tiers of %d kills each", g.cfg.Tiers.MaxTier, g.cfg.Tiers.KillsPerTier)
	}
	dst.DrawTextCentered(h/2, goal, core.ColorGray)
	dst.DrawTextCentered(h/2+2, "Press Enter to start", core.ColorBrightYellow)

	if g.loadErr != nil {
		dst.DrawTextCentered(h-1, "config error, using defaults", core.ColorRed)
	}
}

func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)

	dst.DrawTextColor(boxX+(boxW-len(title))/2, boxY+1, title, c)
	dst.DrawTextColor(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, core.ColorWhite)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.world.Score(),
		Kills:    g.world.Kills(),
		Tier:     g.world.Tier().Index,
		GameOver: g.state == stateOver,
		Won:      g.world.Won(),
		Paused:   g.world.Paused(),
	}
}

// Outcome returns how the current run stands.
func (g *Game) Outcome() shooter.Outcome {
	if g.world == nil {
		return shooter.OutcomeRunning
	}
	return g.world.Outcome()
}

// Elapsed returns the simulated length of the current run.
func (g *Game) Elapsed() time.Duration {
	if g.world == nil {
		return 0
	}
	return g.world.Duration()
}
