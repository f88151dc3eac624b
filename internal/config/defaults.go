package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/skyraid.yaml
var defaultShooterYAML []byte

// DefaultShooterConfig returns the hard-coded default configuration.
// It mirrors defaults/skyraid.yaml and is used when the embedded file
// cannot be parsed.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		Player: PlayerConfig{
			Width:        3,
			Height:       2,
			Health:       100,
			Speed:        0.6,
			FireCooldown: 300 * time.Millisecond,
			BottomOffset: 1,
		},
		Enemies: EnemyConfig{
			Width:           3,
			Height:          2,
			SpeedMin:        1,
			SpeedMax:        5,
			SpeedUnit:       0.02,
			SpawnBand:       6,
			ContinuousSpawn: true,
			OneHitKill:      true,
		},
		Projectiles: ProjectileConfig{
			Width:         1,
			Height:        1,
			PlayerSpeed:   0.8,
			EnemySpeed:    0.35,
			DespawnMargin: 8,
		},
		Effects: EffectConfig{
			Width:    3,
			Height:   1,
			Lifetime: 30,
		},
		PowerUps: PowerUpConfig{
			DropChance: 0.05,
			Speed:      0.1,
			Repair:     15,
			Width:      1,
			Height:     1,
		},
		Tiers: TierConfig{
			KillsPerTier: 10,
			MaxTier:      10,
			Base: TierValues{
				MaxEnemies:         10,
				EnemyHealth:        50,
				EnemyBulletDamage:  1,
				EnemyFireDelay:     1500 * time.Millisecond,
				PlayerBulletDamage: 20,
			},
			Step: TierStep{
				MaxEnemies:           5,
				EnemyHealth:          0,
				EnemyBulletDamage:    5,
				EnemyFireDelayFactor: 0.8,
				PlayerBulletDamage:   -2,
			},
			Floors: TierFloors{
				Enabled:            true,
				PlayerBulletDamage: 1,
				EnemyFireDelay:     100 * time.Millisecond,
			},
		},
		Scoring: ScoringConfig{
			PerKill: 10,
			PerTier: 100,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultShooterYAML
}
