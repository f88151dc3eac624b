package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/shooter"
	"github.com/vovakirdan/skyraid/internal/storage"
)

// scriptedGame records its inputs and reports whatever state the test sets.
type scriptedGame struct {
	resets  int
	inputs  []core.InputFrame
	state   core.GameState
	outcome shooter.Outcome
	elapsed time.Duration
	advance bool
}

func (g *scriptedGame) ID() string    { return "skyraid" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{Tier: 1}
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	adv := g.advance
	g.advance = false
	return core.StepResult{State: g.state, TierAdvanced: adv}
}

func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) State() core.GameState   { return g.state }

func (g *scriptedGame) Outcome() shooter.Outcome { return g.outcome }
func (g *scriptedGame) Elapsed() time.Duration   { return g.elapsed }

func newTestModel(t *testing.T, g *scriptedGame, withStore bool) (Model, *storage.Store) {
	t.Helper()
	var store *storage.Store
	if withStore {
		var err error
		store, err = storage.Open(filepath.Join(t.TempDir(), "scores.db"))
		if err != nil {
			t.Fatalf("storage.Open() failed: %v", err)
		}
		t.Cleanup(func() { store.Close() })
	}

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	m := NewModel(g, store, cfg, nil)
	m.Init()
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return nm, cmd
}

func TestModelForwardsHeldKeys(t *testing.T) {
	g := &scriptedGame{}
	m, _ := newTestModel(t, g, false)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, runeKey("p"))
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, TickMsg(time.Now()))

	if len(g.inputs) != 2 {
		t.Fatalf("Step called %d times, expected 2", len(g.inputs))
	}
	first, second := g.inputs[0], g.inputs[1]
	if !first.Has(core.ActionFire) || !first.Has(core.ActionMoveLeft) || !first.Has(core.ActionPause) {
		t.Errorf("first frame = %v, expected fire, left and pause", first.Actions)
	}
	if !second.Has(core.ActionFire) || second.Has(core.ActionPause) {
		t.Errorf("second frame = %v, expected fire held and no pause", second.Actions)
	}
}

func TestModelSavesRunOnce(t *testing.T) {
	g := &scriptedGame{}
	m, store := newTestModel(t, g, true)

	m, _ = update(t, m, TickMsg(time.Now()))

	g.state = core.GameState{Score: 150, Kills: 15, Tier: 2, GameOver: true}
	g.outcome = shooter.OutcomeLost
	g.elapsed = 42 * time.Second
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, TickMsg(time.Now()))

	runs, err := store.TopRuns("skyraid", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("TopRuns() returned %d runs, expected 1", len(runs))
	}
	r := runs[0]
	if r.Score != 150 || r.Kills != 15 || r.Tier != 2 || r.Outcome != "lost" || r.Duration != 42*time.Second {
		t.Errorf("run = %+v", r)
	}

	// Quitting after the run must not store it again.
	m, _ = update(t, m, runeKey("q"))
	if !m.IsQuitting() {
		t.Error("IsQuitting() = false after q")
	}
	runs, _ = store.TopRuns("skyraid", 10)
	if len(runs) != 1 {
		t.Errorf("TopRuns() returned %d runs after quit, expected 1", len(runs))
	}
}

func TestModelSavesAgainAfterRestart(t *testing.T) {
	g := &scriptedGame{}
	m, store := newTestModel(t, g, true)

	g.state = core.GameState{Score: 100, Tier: 1, GameOver: true}
	g.outcome = shooter.OutcomeLost
	m, _ = update(t, m, TickMsg(time.Now()))

	g.state = core.GameState{Tier: 1}
	g.outcome = shooter.OutcomeRunning
	m, _ = update(t, m, TickMsg(time.Now()))

	g.state = core.GameState{Score: 1900, Tier: 10, GameOver: true, Won: true}
	g.outcome = shooter.OutcomeWon
	update(t, m, TickMsg(time.Now()))

	runs, _ := store.TopRuns("skyraid", 10)
	if len(runs) != 2 {
		t.Fatalf("TopRuns() returned %d runs, expected 2", len(runs))
	}
	if runs[0].Outcome != "won" {
		t.Errorf("runs[0].Outcome = %q, expected %q", runs[0].Outcome, "won")
	}
}

func TestModelQuitMidRunStoresStopped(t *testing.T) {
	g := &scriptedGame{}
	m, store := newTestModel(t, g, true)

	g.state = core.GameState{Score: 30, Kills: 3, Tier: 1}
	g.outcome = shooter.OutcomeRunning
	m, _ = update(t, m, TickMsg(time.Now()))
	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	runs, _ := store.TopRuns("skyraid", 10)
	if len(runs) != 1 || runs[0].Outcome != "stopped" {
		t.Errorf("runs = %+v, expected one stopped run", runs)
	}
}

func TestModelBackOnlyWhenIdle(t *testing.T) {
	g := &scriptedGame{}
	m, _ := newTestModel(t, g, false)

	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("BackToMenu() = true during play")
	}

	g.state.Paused = true
	m, _ = update(t, m, TickMsg(time.Now()))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("BackToMenu() = false while paused")
	}
}

func TestModelResizeResets(t *testing.T) {
	g := &scriptedGame{}
	m, _ := newTestModel(t, g, false)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if g.resets != 1 {
		t.Fatalf("resets = %d after a same-size message, expected 1", g.resets)
	}

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resets != 2 {
		t.Errorf("resets = %d after a resize, expected 2", g.resets)
	}
}

func TestModelView(t *testing.T) {
	g := &scriptedGame{}
	m, _ := newTestModel(t, g, false)

	if v := m.View(); len(v) == 0 {
		t.Error("View() is empty")
	}
}

func TestMenuDifficultyCycle(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	if m.Difficulty() != "normal" {
		t.Fatalf("Difficulty() = %q, expected normal", m.Difficulty())
	}

	for i := 0; i < 5; i++ {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
		m = next.(MenuModel)
	}
	if m.Difficulty() != "classic" {
		t.Errorf("Difficulty() = %q, expected classic after moving past the end", m.Difficulty())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(MenuModel)
	if !m.WantsScoreboard() {
		t.Error("WantsScoreboard() = false after tab")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{95 * time.Second, "1:35"},
		{12 * time.Minute, "12:00"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, expected %q", tt.d, got, tt.want)
		}
	}
}
