package shooter

import "github.com/vovakirdan/skyraid/internal/core"

// resolveCollisions runs the player-hit pass, then the pickup pass, then the
// enemy-hit pass. It returns the number of enemies destroyed.
func (w *World) resolveCollisions() int {
	w.resolvePlayerHits()
	w.resolvePickups()
	return w.resolveEnemyHits()
}

// resolvePlayerHits consumes every enemy bullet touching the player. Bullets
// that arrive after the player died are still removed but do nothing.
func (w *World) resolvePlayerHits() {
	p := w.player
	box := p.Bounds()
	damage := w.difficulty.Tier().EnemyBulletDamage

	for _, b := range w.enemyBullets {
		if !b.Alive() || !b.Bounds().Intersects(box) {
			continue
		}
		b.Kill()
		if !p.Alive() {
			continue
		}

		res := p.TakeDamage(damage)
		w.sounds.Play(SoundPlayerHit)
		w.add(NewEffect(VisualPlayerHit, b.Center(), w.cfg.Effects))
		if res.Destroyed {
			w.sounds.Play(SoundBlast)
			w.finish(OutcomeLost)
		}
	}
}

func (w *World) resolvePickups() {
	p := w.player
	if !p.Alive() {
		return
	}
	box := p.Bounds()
	for _, pu := range w.powerups {
		if !pu.Alive() || !pu.Bounds().Intersects(box) {
			continue
		}
		pu.Kill()
		p.Repair(pu.Repair)
		w.sounds.Play(SoundPickup)
	}
}

// resolveEnemyHits matches player bullets against enemies. A bullet is
// consumed by the first enemy it touches. Every bullet overlapping an enemy
// is consumed, including those that arrive after it is destroyed, but the
// enemy is credited as a kill at most once.
func (w *World) resolveEnemyHits() int {
	kills := 0
	oneHit := w.cfg.Enemies.OneHitKill

	for _, e := range w.enemies {
		if !e.Alive() {
			continue
		}
		box := e.Bounds()
		for _, b := range w.playerBullets {
			if !b.Alive() || !b.Bounds().Intersects(box) {
				continue
			}
			b.Kill()
			if !e.Alive() {
				continue
			}

			damage := b.Damage
			if oneHit {
				damage = core.Max(e.Health, 1)
			}
			res := e.TakeDamage(damage)
			if !res.Destroyed {
				continue
			}

			kills++
			w.difficulty.RecordKill()
			w.sounds.Play(SoundBlast)
			w.add(NewEffect(VisualEnemyBlast, res.Impact, w.cfg.Effects))
			w.maybeDropPowerUp(res.Impact)
		}
	}
	return kills
}

func (w *World) maybeDropPowerUp(at core.Point) {
	chance := w.cfg.PowerUps.DropChance
	if chance <= 0 {
		return
	}
	if w.rng.Float64() < chance {
		w.add(NewPowerUp(at, w.cfg.PowerUps))
	}
}
