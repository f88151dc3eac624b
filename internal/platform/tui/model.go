package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/registry"
	"github.com/vovakirdan/skyraid/internal/shooter"
	"github.com/vovakirdan/skyraid/internal/storage"
)

// runReporter is implemented by games that can describe a finished run in
// more detail than core.GameState.
type runReporter interface {
	Outcome() shooter.Outcome
	Elapsed() time.Duration
}

// Model is the Bubble Tea model that hosts one game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	keys      KeyMap
	held      *HeldKeys
	logger    *log.Logger
	gameState core.GameState

	quitOnBack bool // Standalone play has no menu to return to
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current finished run has been stored
}

// NewModel creates a model for the given game. A nil logger discards.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		keys:   DefaultKeyMap(),
		held:   NewHeldKeys(holdTicks(cfg.TickRate)),
		logger: logger.With("game", game.ID()),
	}
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("session started", "width", m.config.ScreenW, "height", m.config.ScreenH, "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.MapKey(msg)
	switch action {
	case core.ActionQuit:
		m.finishRun(shooter.OutcomeStopped)
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		// Leaving is only allowed when nothing is in flight.
		if m.gameState.GameOver || m.gameState.Paused {
			m.finishRun(shooter.OutcomeStopped)
			if m.quitOnBack {
				m.quitting = true
				return m, tea.Quit
			}
			m.backToMenu = true
		}
		return m, nil
	}

	m.held.Press(action)
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.config.ScreenW && msg.Height == m.config.ScreenH {
		return m, nil
	}
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// The playfield is sized once per world, so a resize starts over.
	if !m.gameState.GameOver {
		m.finishRun(shooter.OutcomeStopped)
		m.logger.Debug("window resized, restarting", "width", msg.Width, "height", msg.Height)
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.held.Release()
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	prev := m.gameState
	result := m.game.Step(m.held.Frame())
	m.gameState = result.State

	if result.TierAdvanced {
		m.logger.Info("tier advanced", "tier", m.gameState.Tier, "kills", m.gameState.Kills, "score", m.gameState.Score)
	}

	switch {
	case m.gameState.GameOver && !prev.GameOver:
		m.finishRun(shooter.OutcomeLost)
		m.held.Release()
	case prev.GameOver && !m.gameState.GameOver:
		m.runSaved = false
		m.logger.Info("session restarted")
	}

	return m, tickCmd(m.config.TickRate)
}

// finishRun logs the current run and stores it once. fallback is used when
// the game cannot report its own outcome. Runs that never scored are only
// logged.
func (m *Model) finishRun(fallback shooter.Outcome) {
	if m.runSaved {
		return
	}
	m.runSaved = true

	outcome := fallback
	var elapsed time.Duration
	if rr, ok := m.game.(runReporter); ok {
		if o := rr.Outcome(); o != shooter.OutcomeRunning {
			outcome = o
		}
		elapsed = rr.Elapsed()
	}
	if m.gameState.Won {
		outcome = shooter.OutcomeWon
	}

	m.logger.Info("session ended",
		"outcome", outcome,
		"score", m.gameState.Score,
		"kills", m.gameState.Kills,
		"tier", m.gameState.Tier,
		"duration", elapsed.Round(time.Second),
	)

	if m.gameState.Score <= 0 || m.store == nil {
		return
	}
	_, err := m.store.SaveRun(storage.Run{
		GameID:   m.game.ID(),
		Score:    m.gameState.Score,
		Kills:    m.gameState.Kills,
		Tier:     m.gameState.Tier,
		Outcome:  outcome.String(),
		Duration: elapsed,
	})
	if err != nil {
		m.logger.Error("cannot save run", "err", err)
	}
}

// saveScreenshot writes the current screen as plain text under
// ~/.skyraid/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".skyraid", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run plays one game in a standalone Bubble Tea program. Esc after the run
// exits instead of returning to a menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, store, cfg, logger)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
