// Package shooter implements the per-frame simulation of a vertical arcade
// shooter: entity lifecycle, collision and damage resolution, and the tier
// progression that drives enemy spawning.
//
// The package has no terminal, audio or storage dependencies. Collaborators
// are reached through the Canvas, SoundPlayer and InputSource interfaces.
package shooter

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/core"
)

// Visual identifies how an entity is drawn.
type Visual int

const (
	VisualPlayer Visual = iota
	VisualEnemy
	VisualPlayerBullet
	VisualEnemyBullet
	VisualPlayerHit
	VisualEnemyBlast
	VisualPowerUp
)

// Side tags which craft fired a projectile.
type Side int

const (
	SidePlayer Side = iota
	SideEnemy
)

// String returns the side name.
func (s Side) String() string {
	if s == SidePlayer {
		return "player"
	}
	return "enemy"
}

// Entity is the capability set shared by everything that lives on the
// playfield. Update advances one frame and may kill the entity; it never
// touches world collections directly.
type Entity interface {
	Update(ctx *FrameContext)
	Bounds() core.Rect
	Visual() Visual
	Alive() bool
	Kill()
}

// Spawner receives entities created during an update, such as fired shots.
type Spawner interface {
	Spawn(e Entity)
}

// FrameContext is the read-only view of the frame handed to Entity.Update.
type FrameContext struct {
	Now     time.Duration // Clock sample taken once at the start of the frame
	Input   core.InputFrame
	Width   int // Playfield width in cells
	Height  int // Playfield height in cells
	Tier    Tier
	Rand    *rand.Rand
	Spawner Spawner

	// Projectiles shapes the shots fired during this frame.
	Projectiles config.ProjectileConfig
}

// Playfield returns the visible area as a rectangle.
func (c *FrameContext) Playfield() core.Rect {
	return core.NewRect(0, 0, c.Width, c.Height)
}

// body is the positional state embedded by every entity.
type body struct {
	x, y float64
	w, h int
	dead bool
}

// Bounds returns the cell-aligned bounding box.
func (b *body) Bounds() core.Rect {
	return core.NewRect(int(math.Floor(b.x)), int(math.Floor(b.y)), b.w, b.h)
}

// Alive reports whether the entity is still in play.
func (b *body) Alive() bool {
	return !b.dead
}

// Kill marks the entity for removal at the end of the current phase.
func (b *body) Kill() {
	b.dead = true
}

// Position returns the continuous top-left position.
func (b *body) Position() (x, y float64) {
	return b.x, b.y
}

// centerOn places the body so that its box is centered on p.
func (b *body) centerOn(p core.Point) {
	b.x = float64(p.X - b.w/2)
	b.y = float64(p.Y - b.h/2)
}
