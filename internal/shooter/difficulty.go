package shooter

import (
	"time"

	"github.com/vovakirdan/skyraid/internal/config"
)

// Tier holds the combat parameters of one difficulty level.
type Tier struct {
	Index              int
	MaxEnemies         int
	EnemyHealth        int
	EnemyBulletDamage  int
	EnemyFireDelay     time.Duration
	PlayerBulletDamage int
}

// Transition is the outcome of a tier check.
type Transition int

const (
	TransitionNone     Transition = iota
	TransitionAdvanced            // A new tier started; a wave should spawn
	TransitionWon                 // The final tier was cleared
)

// Difficulty tracks the current tier and the kills counted toward the next
// one. It is owned by a World and reset with each session.
type Difficulty struct {
	rules config.TierConfig
	tier  Tier
	kills int
	won   bool
}

// NewDifficulty creates a controller positioned at tier 1.
func NewDifficulty(rules config.TierConfig) *Difficulty {
	d := &Difficulty{rules: rules}
	d.Reset()
	return d
}

// Reset returns to tier 1 with the base parameters.
func (d *Difficulty) Reset() {
	base := d.rules.Base
	d.tier = Tier{
		Index:              1,
		MaxEnemies:         base.MaxEnemies,
		EnemyHealth:        base.EnemyHealth,
		EnemyBulletDamage:  base.EnemyBulletDamage,
		EnemyFireDelay:     base.EnemyFireDelay,
		PlayerBulletDamage: base.PlayerBulletDamage,
	}
	d.kills = 0
	d.won = false
}

// Tier returns the current tier parameters.
func (d *Difficulty) Tier() Tier {
	return d.tier
}

// Kills returns the kills counted since the last tier change.
func (d *Difficulty) Kills() int {
	return d.kills
}

// Won reports whether the final tier has been cleared. The tier index
// stays at the final tier.
func (d *Difficulty) Won() bool {
	return d.won
}

// Endless reports whether the tier count is unbounded.
func (d *Difficulty) Endless() bool {
	return d.rules.MaxTier <= 0
}

// RecordKill counts one destroyed enemy.
func (d *Difficulty) RecordKill() {
	d.kills++
}

// Check advances at most one tier when the kill threshold is met. Kills
// beyond the threshold are discarded.
func (d *Difficulty) Check() Transition {
	if d.won || d.kills < d.rules.KillsPerTier {
		return TransitionNone
	}

	d.kills = 0
	if !d.Endless() && d.tier.Index+1 > d.rules.MaxTier {
		d.won = true
		return TransitionWon
	}

	d.tier = d.tier.next(d.rules)
	return TransitionAdvanced
}

// next derives the following tier from t.
func (t Tier) next(rules config.TierConfig) Tier {
	step := rules.Step
	n := Tier{
		Index:              t.Index + 1,
		MaxEnemies:         t.MaxEnemies + step.MaxEnemies,
		EnemyHealth:        t.EnemyHealth + step.EnemyHealth,
		EnemyBulletDamage:  t.EnemyBulletDamage + step.EnemyBulletDamage,
		EnemyFireDelay:     time.Duration(float64(t.EnemyFireDelay) * step.EnemyFireDelayFactor),
		PlayerBulletDamage: t.PlayerBulletDamage + step.PlayerBulletDamage,
	}

	if rules.Floors.Enabled {
		if n.PlayerBulletDamage < rules.Floors.PlayerBulletDamage {
			n.PlayerBulletDamage = rules.Floors.PlayerBulletDamage
		}
		if n.EnemyFireDelay < rules.Floors.EnemyFireDelay {
			n.EnemyFireDelay = rules.Floors.EnemyFireDelay
		}
	}
	if n.EnemyHealth < 1 {
		n.EnemyHealth = 1
	}
	return n
}
