package shooter

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/skyraid/internal/core"
)

// Canvas receives draw calls for one frame. Present is called once after
// all draws of the frame.
type Canvas interface {
	Draw(v Visual, at core.Rect)
	Present()
}

type sprite struct {
	rows  []string
	color core.Color
}

var sprites = map[Visual]sprite{
	VisualPlayer:       {rows: []string{" A ", "/#\\"}, color: core.ColorBrightCyan},
	VisualEnemy:        {rows: []string{"\\V/", " v "}, color: core.ColorBrightRed},
	VisualPlayerBullet: {rows: []string{"|"}, color: core.ColorBrightYellow},
	VisualEnemyBullet:  {rows: []string{"o"}, color: core.ColorMagenta},
	VisualPlayerHit:    {rows: []string{"-+-"}, color: core.ColorOrange},
	VisualEnemyBlast:   {rows: []string{"*#*"}, color: core.ColorYellow},
	VisualPowerUp:      {rows: []string{"+"}, color: core.ColorBrightGreen},
}

// ScreenCanvas draws sprites into a core.Screen. The playfield starts at
// row OffsetY so that rows above it stay free for the HUD.
type ScreenCanvas struct {
	Screen  *core.Screen
	OffsetY int
	Frames  int // Number of presented frames
}

// NewScreenCanvas creates a canvas drawing below offsetY.
func NewScreenCanvas(s *core.Screen, offsetY int) *ScreenCanvas {
	return &ScreenCanvas{Screen: s, OffsetY: offsetY}
}

// Draw fills the cells of at with the sprite for v. Cells outside the
// playfield are clipped and sprite spaces are transparent.
func (c *ScreenCanvas) Draw(v Visual, at core.Rect) {
	sp, ok := sprites[v]
	if !ok {
		return
	}
	for dy := 0; dy < at.H; dy++ {
		y := at.Y + dy
		if y < 0 {
			continue
		}
		row := []rune(sp.rows[core.Min(dy, len(sp.rows)-1)])
		for dx := 0; dx < at.W; dx++ {
			r := row[core.Min(dx, len(row)-1)]
			if r == ' ' {
				continue
			}
			c.Screen.SetColor(at.X+dx, y+c.OffsetY, r, sp.color)
		}
	}
}

// Clear wipes the screen before a new frame.
func (c *ScreenCanvas) Clear() {
	c.Screen.Clear()
}

// Present counts the frame. The terminal front-end reads the screen itself.
func (c *ScreenCanvas) Present() {
	c.Frames++
}

// Render draws every entity. Effects are drawn last so they cover the
// craft they belong to.
func (w *World) Render(c Canvas) {
	for _, e := range w.all {
		if _, ok := e.(*Effect); !ok {
			c.Draw(e.Visual(), e.Bounds())
		}
	}
	for _, e := range w.all {
		if _, ok := e.(*Effect); ok {
			c.Draw(e.Visual(), e.Bounds())
		}
	}
}

// HUD is the status line shown above the playfield.
type HUD struct {
	Tier      int
	MaxTier   int // 0 for endless
	Health    int
	MaxHealth int
	Kills     int
	Score     int
	Paused    bool
}

// HUD returns the current status line values.
func (w *World) HUD() HUD {
	return HUD{
		Tier:      w.difficulty.Tier().Index,
		MaxTier:   w.cfg.Tiers.MaxTier,
		Health:    core.Max(w.player.Health, 0),
		MaxHealth: w.player.MaxHealth,
		Kills:     w.totalKills,
		Score:     w.Score(),
		Paused:    w.paused,
	}
}

const healthBarWidth = 10

// Draw writes the HUD into row y of s.
func (h HUD) Draw(s *core.Screen, y int) {
	tier := fmt.Sprintf("TIER %d", h.Tier)
	if h.MaxTier > 0 {
		tier = fmt.Sprintf("TIER %d/%d", core.Min(h.Tier, h.MaxTier), h.MaxTier)
	}

	filled := 0
	if h.MaxHealth > 0 {
		filled = (h.Health*healthBarWidth + h.MaxHealth - 1) / h.MaxHealth
	}
	filled = core.Clamp(filled, 0, healthBarWidth)
	bar := "[" + strings.Repeat("#", filled) + strings.Repeat(".", healthBarWidth-filled) + "]"

	barColor := core.ColorBrightGreen
	switch {
	case h.Health*4 <= h.MaxHealth:
		barColor = core.ColorBrightRed
	case h.Health*2 <= h.MaxHealth:
		barColor = core.ColorBrightYellow
	}

	x := 1
	s.DrawTextColor(x, y, tier, core.ColorBrightWhite)
	x += len(tier) + 2
	s.DrawTextColor(x, y, "HP", core.ColorWhite)
	x += 3
	s.DrawTextColor(x, y, bar, barColor)
	x += len(bar) + 2

	rest := fmt.Sprintf("KILLS %d  SCORE %d", h.Kills, h.Score)
	if h.Paused {
		rest += "  PAUSED"
	}
	s.DrawTextColor(x, y, rest, core.ColorBrightWhite)
}
