package shooter

import "github.com/vovakirdan/skyraid/internal/core"

// dodgeRows is how far above the player the autopilot looks for incoming
// enemy fire.
const dodgeRows = 6

// Autopilot is an InputSource that flies the player of a World: it sidesteps
// enemy bullets about to land, otherwise lines up under the lowest enemy,
// and keeps the trigger held.
type Autopilot struct {
	World *World
}

// Poll chooses this frame's actions from the current world state.
func (a *Autopilot) Poll() core.InputFrame {
	in := core.NewInputFrame(core.ActionFire)
	p := a.World.player
	if p == nil || !p.Alive() {
		return in
	}
	box := p.Bounds()
	cx := box.Center().X

	if b := a.threat(box); b != nil {
		width, _ := a.World.Size()
		if b.Center().X >= cx && box.X > 0 || box.Right() >= width {
			in.Set(core.ActionMoveLeft)
		} else {
			in.Set(core.ActionMoveRight)
		}
		return in
	}

	target := a.target()
	if target == nil {
		return in
	}
	tx := target.Bounds().Center().X
	switch {
	case tx < cx:
		in.Set(core.ActionMoveLeft)
	case tx > cx:
		in.Set(core.ActionMoveRight)
	}
	return in
}

// threat returns the nearest enemy bullet falling into the player's columns.
func (a *Autopilot) threat(box core.Rect) *Projectile {
	var nearest *Projectile
	for _, b := range a.World.enemyBullets {
		r := b.Bounds()
		if r.Right() <= box.X-1 || r.X >= box.Right()+1 {
			continue
		}
		if r.Bottom() > box.Y+box.H || box.Y-r.Bottom() > dodgeRows {
			continue
		}
		if nearest == nil || r.Y > nearest.Bounds().Y {
			nearest = b
		}
	}
	return nearest
}

// target returns the visible enemy closest to the bottom.
func (a *Autopilot) target() *Enemy {
	var low *Enemy
	for _, e := range a.World.enemies {
		if e.Bounds().Bottom() <= 0 {
			continue
		}
		if low == nil || e.y > low.y {
			low = e
		}
	}
	return low
}
