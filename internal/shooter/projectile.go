package shooter

import (
	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/core"
)

// Projectile is a single-use bullet moving straight up (player) or down
// (enemy). The sign of VY always matches Side.
type Projectile struct {
	body
	VY     float64
	Damage int
	Side   Side
	margin int
}

// NewProjectile creates a bullet whose top edge is at y and which is
// horizontally centered on cx.
func NewProjectile(side Side, cx int, y float64, damage int, cfg config.ProjectileConfig) *Projectile {
	vy := cfg.EnemySpeed
	if side == SidePlayer {
		vy = -cfg.PlayerSpeed
	}
	return &Projectile{
		body: body{
			x: float64(cx - cfg.Width/2),
			y: y,
			w: cfg.Width,
			h: cfg.Height,
		},
		VY:     vy,
		Damage: damage,
		Side:   side,
		margin: cfg.DespawnMargin,
	}
}

// Update moves the projectile and kills it once it has fully left the
// playfield by more than the despawn margin.
func (p *Projectile) Update(ctx *FrameContext) {
	p.y += p.VY
	r := p.Bounds()
	if r.Y > ctx.Height+p.margin || r.Bottom() < -p.margin {
		p.Kill()
	}
}

// Visual returns the projectile's sprite.
func (p *Projectile) Visual() Visual {
	if p.Side == SidePlayer {
		return VisualPlayerBullet
	}
	return VisualEnemyBullet
}

// Center returns the projectile's impact point.
func (p *Projectile) Center() core.Point {
	return p.Bounds().Center()
}
