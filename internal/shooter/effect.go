package shooter

import (
	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/core"
)

// Effect is a collision-inert visual that expires after a fixed number of
// frames, such as an explosion.
type Effect struct {
	body
	Lifetime int
	visual   Visual
}

// NewEffect creates an effect centered on at.
func NewEffect(v Visual, at core.Point, cfg config.EffectConfig) *Effect {
	e := &Effect{
		body:     body{w: cfg.Width, h: cfg.Height},
		Lifetime: cfg.Lifetime,
		visual:   v,
	}
	e.centerOn(at)
	return e
}

// Update counts down the remaining lifetime.
func (e *Effect) Update(_ *FrameContext) {
	e.Lifetime--
	if e.Lifetime <= 0 {
		e.Kill()
	}
}

// Visual returns the effect sprite.
func (e *Effect) Visual() Visual {
	return e.visual
}

// PowerUp is a falling repair pickup dropped by destroyed enemies.
type PowerUp struct {
	body
	Speed  float64
	Repair int
}

// NewPowerUp creates a pickup centered on at.
func NewPowerUp(at core.Point, cfg config.PowerUpConfig) *PowerUp {
	p := &PowerUp{
		body:   body{w: cfg.Width, h: cfg.Height},
		Speed:  cfg.Speed,
		Repair: cfg.Repair,
	}
	p.centerOn(at)
	return p
}

// Update drifts the pickup down and removes it below the playfield.
func (p *PowerUp) Update(ctx *FrameContext) {
	p.y += p.Speed
	if p.Bounds().Y > ctx.Height {
		p.Kill()
	}
}

// Visual returns the pickup sprite.
func (p *PowerUp) Visual() Visual {
	return VisualPowerUp
}
