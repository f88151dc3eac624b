package shooter

import (
	"strings"
	"testing"

	"github.com/vovakirdan/skyraid/internal/core"
)

func TestScreenCanvasDraw(t *testing.T) {
	screen := core.NewScreen(40, 21)
	c := NewScreenCanvas(screen, 1)

	c.Draw(VisualPlayer, core.NewRect(18, 17, 3, 2))

	tests := []struct {
		x, y int
		want rune
	}{
		{19, 18, 'A'},
		{18, 18, ' '}, // Sprite spaces are transparent
		{18, 19, '/'},
		{20, 19, '\\'},
	}
	for _, tt := range tests {
		if got := screen.Get(tt.x, tt.y); got != tt.want {
			t.Errorf("Get(%d, %d) = %q, expected %q", tt.x, tt.y, got, tt.want)
		}
	}
	if got := screen.GetCell(19, 18).Color; got != core.ColorBrightCyan {
		t.Errorf("player color = %v, expected %v", got, core.ColorBrightCyan)
	}
}

func TestScreenCanvasClipsAboveField(t *testing.T) {
	screen := core.NewScreen(10, 6)
	c := NewScreenCanvas(screen, 1)

	c.Draw(VisualEnemy, core.NewRect(2, -1, 3, 2))

	if got := screen.Row(0); strings.TrimSpace(got) != "" {
		t.Errorf("HUD row = %q, expected untouched", got)
	}
	if got := screen.Get(3, 1); got != 'v' {
		t.Errorf("Get(3, 1) = %q, expected 'v'", got)
	}
}

func TestWorldRenderDrawsEveryEntity(t *testing.T) {
	w, _ := newTestWorld(t, quietConfig())
	stationaryEnemy(w, 5, 5)

	rec := &recordingCanvas{}
	w.Render(rec)

	if len(rec.visuals) != len(w.all) {
		t.Errorf("drew %d entities, expected %d", len(rec.visuals), len(w.all))
	}
}

func TestWorldRenderEffectsLast(t *testing.T) {
	w, _ := newTestWorld(t, quietConfig())
	w.add(NewEffect(VisualEnemyBlast, core.Point{X: 5, Y: 5}, w.cfg.Effects))
	stationaryEnemy(w, 5, 5)

	rec := &recordingCanvas{}
	w.Render(rec)

	if last := rec.visuals[len(rec.visuals)-1]; last != VisualEnemyBlast {
		t.Errorf("last drawn = %v, expected %v", last, VisualEnemyBlast)
	}
}

func TestHUDDraw(t *testing.T) {
	screen := core.NewScreen(60, 2)
	hud := HUD{Tier: 3, MaxTier: 10, Health: 50, MaxHealth: 100, Kills: 7, Score: 270}
	hud.Draw(screen, 0)

	row := screen.Row(0)
	for _, want := range []string{"TIER 3/10", "[#####.....]", "KILLS 7", "SCORE 270"} {
		if !strings.Contains(row, want) {
			t.Errorf("HUD %q missing %q", row, want)
		}
	}
	if strings.Contains(row, "PAUSED") {
		t.Errorf("HUD %q shows PAUSED", row)
	}
}

func TestHUDEndless(t *testing.T) {
	screen := core.NewScreen(60, 1)
	HUD{Tier: 12, Health: 100, MaxHealth: 100, Paused: true}.Draw(screen, 0)

	row := screen.Row(0)
	if !strings.Contains(row, "TIER 12 ") || !strings.Contains(row, "PAUSED") {
		t.Errorf("HUD = %q", row)
	}
}

type recordingCanvas struct {
	visuals  []Visual
	presents int
}

func (r *recordingCanvas) Draw(v Visual, _ core.Rect) {
	r.visuals = append(r.visuals, v)
}

func (r *recordingCanvas) Present() {
	r.presents++
}
