package shooter

import (
	"time"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/core"
)

// DamageResult reports the outcome of Craft.TakeDamage to the caller, which
// decides what sounds and effects follow.
type DamageResult struct {
	Hit       bool       // Damage was applied to a live craft
	Destroyed bool       // This hit brought health to zero or below
	Impact    core.Point // Craft center at the time of the hit
}

// Craft is a ship with health and a rate-limited gun.
type Craft struct {
	body
	Health    int
	MaxHealth int
	Speed     float64
	Cooldown  time.Duration
	lastShot  time.Duration
}

// TakeDamage subtracts amount from health. The craft dies when health
// reaches zero; hits on a dead craft are ignored.
func (c *Craft) TakeDamage(amount int) DamageResult {
	if c.dead {
		return DamageResult{}
	}

	c.Health -= amount
	if c.Health > c.MaxHealth {
		c.Health = c.MaxHealth
	}

	res := DamageResult{Hit: true, Impact: c.Bounds().Center()}
	if c.Health <= 0 {
		c.dead = true
		res.Destroyed = true
	}
	return res
}

// Repair restores health up to MaxHealth. Dead craft stay dead.
func (c *Craft) Repair(amount int) {
	if c.dead {
		return
	}
	c.Health = core.Min(c.Health+amount, c.MaxHealth)
}

// readyToFire reports whether the cooldown has elapsed since the last shot.
func (c *Craft) readyToFire(now time.Duration) bool {
	return !c.dead && now-c.lastShot > c.Cooldown
}

// Player is the user-controlled craft.
type Player struct {
	Craft
}

// NewPlayer places the player horizontally centered near the bottom of a
// width x height playfield. The gun starts cooling down at now.
func NewPlayer(cfg config.PlayerConfig, width, height int, now time.Duration) *Player {
	y := core.Max(height-cfg.Height-cfg.BottomOffset, 0)
	return &Player{
		Craft: Craft{
			body: body{
				x: float64((width - cfg.Width) / 2),
				y: float64(y),
				w: cfg.Width,
				h: cfg.Height,
			},
			Health:    cfg.Health,
			MaxHealth: cfg.Health,
			Speed:     cfg.Speed,
			Cooldown:  cfg.FireCooldown,
			lastShot:  now,
		},
	}
}

// Update applies held movement keys, keeps the craft inside the playfield
// and fires when the trigger is held and the gun is ready.
func (p *Player) Update(ctx *FrameContext) {
	if p.dead {
		return
	}

	in := ctx.Input
	if in.Has(core.ActionMoveLeft) {
		p.x -= p.Speed
	}
	if in.Has(core.ActionMoveRight) {
		p.x += p.Speed
	}
	if in.Has(core.ActionMoveUp) {
		p.y -= p.Speed
	}
	if in.Has(core.ActionMoveDown) {
		p.y += p.Speed
	}
	p.x = core.ClampF(p.x, 0, float64(ctx.Width-p.w))
	p.y = core.ClampF(p.y, 0, float64(ctx.Height-p.h))

	if in.Has(core.ActionFire) && p.readyToFire(ctx.Now) {
		p.fire(ctx)
		p.lastShot = ctx.Now
	}
}

func (p *Player) fire(ctx *FrameContext) {
	r := p.Bounds()
	cfg := ctx.Projectiles
	shot := NewProjectile(SidePlayer, r.Center().X, float64(r.Y-cfg.Height), ctx.Tier.PlayerBulletDamage, cfg)
	ctx.Spawner.Spawn(shot)
}

// Visual returns the player sprite.
func (p *Player) Visual() Visual {
	return VisualPlayer
}

// Enemy is a descending hostile craft.
type Enemy struct {
	Craft
}

// NewEnemy creates an enemy at (x, y) falling at speed cells per frame and
// firing every fireDelay.
func NewEnemy(cfg config.EnemyConfig, x, y int, health int, speed float64, fireDelay, now time.Duration) *Enemy {
	return &Enemy{
		Craft: Craft{
			body: body{
				x: float64(x),
				y: float64(y),
				w: cfg.Width,
				h: cfg.Height,
			},
			Health:    health,
			MaxHealth: health,
			Speed:     speed,
			Cooldown:  fireDelay,
			lastShot:  now,
		},
	}
}

// Update moves the enemy down, removes it once it has fully passed the
// bottom edge and fires on its own timer.
func (e *Enemy) Update(ctx *FrameContext) {
	if e.dead {
		return
	}

	e.y += e.Speed
	r := e.Bounds()
	if r.Y >= ctx.Height {
		e.Kill()
		return
	}

	if e.readyToFire(ctx.Now) {
		cfg := ctx.Projectiles
		shot := NewProjectile(SideEnemy, r.Center().X, float64(r.Bottom()), ctx.Tier.EnemyBulletDamage, cfg)
		ctx.Spawner.Spawn(shot)
		e.lastShot = ctx.Now
	}
}

// Visual returns the enemy sprite.
func (e *Enemy) Visual() Visual {
	return VisualEnemy
}
