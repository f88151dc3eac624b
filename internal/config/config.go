// Package config provides YAML-based game configuration loading and
// difficulty presets for the shooter.
package config

import "time"

// ShooterConfig contains all tunable parameters of the simulation.
// Sizes and positions are in terminal cells, speeds in cells per frame.
type ShooterConfig struct {
	Player      PlayerConfig     `yaml:"player"`
	Enemies     EnemyConfig      `yaml:"enemies"`
	Projectiles ProjectileConfig `yaml:"projectiles"`
	Effects     EffectConfig     `yaml:"effects"`
	PowerUps    PowerUpConfig    `yaml:"powerups"`
	Tiers       TierConfig       `yaml:"tiers"`
	Scoring     ScoringConfig    `yaml:"scoring"`
}

// PlayerConfig defines the player craft.
type PlayerConfig struct {
	Width        int           `yaml:"width"`
	Height       int           `yaml:"height"`
	Health       int           `yaml:"health"`
	Speed        float64       `yaml:"speed"`
	FireCooldown time.Duration `yaml:"fire_cooldown"`
	BottomOffset int           `yaml:"bottom_offset"` // Rows between the craft and the bottom edge at spawn
}

// EnemyConfig defines enemy craft spawning and movement.
type EnemyConfig struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	SpeedMin        int     `yaml:"speed_min"`  // Inclusive lower bound of the integer speed roll
	SpeedMax        int     `yaml:"speed_max"`  // Inclusive upper bound of the integer speed roll
	SpeedUnit       float64 `yaml:"speed_unit"` // Cells per frame for one speed point
	SpawnBand       int     `yaml:"spawn_band"` // Extra rows above the playfield enemies may spawn in
	ContinuousSpawn bool    `yaml:"continuous_spawn"`
	OneHitKill      bool    `yaml:"one_hit_kill"`
}

// ProjectileConfig defines bullets for both sides.
type ProjectileConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	PlayerSpeed   float64 `yaml:"player_speed"` // Upward, applied as negative velocity
	EnemySpeed    float64 `yaml:"enemy_speed"`
	DespawnMargin int     `yaml:"despawn_margin"`
}

// EffectConfig defines explosion and hit effects.
type EffectConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	Lifetime int `yaml:"lifetime"` // Frames
}

// PowerUpConfig defines the repair pickups dropped by destroyed enemies.
type PowerUpConfig struct {
	DropChance float64 `yaml:"drop_chance"` // 0 disables drops
	Speed      float64 `yaml:"speed"`
	Repair     int     `yaml:"repair"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
}

// TierConfig defines the difficulty progression.
type TierConfig struct {
	KillsPerTier int        `yaml:"kills_per_tier"`
	MaxTier      int        `yaml:"max_tier"` // 0 = endless
	Base         TierValues `yaml:"base"`
	Step         TierStep   `yaml:"step"`
	Floors       TierFloors `yaml:"floors"`
}

// TierValues holds the tier-1 combat parameters.
type TierValues struct {
	MaxEnemies         int           `yaml:"max_enemies"`
	EnemyHealth        int           `yaml:"enemy_health"`
	EnemyBulletDamage  int           `yaml:"enemy_bullet_damage"`
	EnemyFireDelay     time.Duration `yaml:"enemy_fire_delay"`
	PlayerBulletDamage int           `yaml:"player_bullet_damage"`
}

// TierStep holds the per-advance increments.
type TierStep struct {
	MaxEnemies           int     `yaml:"max_enemies"`
	EnemyHealth          int     `yaml:"enemy_health"`
	EnemyBulletDamage    int     `yaml:"enemy_bullet_damage"`
	EnemyFireDelayFactor float64 `yaml:"enemy_fire_delay_factor"`
	PlayerBulletDamage   int     `yaml:"player_bullet_damage"`
}

// TierFloors bounds the shrinking parameters. Disabled floors let player
// bullet damage go negative and the fire delay approach zero.
type TierFloors struct {
	Enabled            bool          `yaml:"enabled"`
	PlayerBulletDamage int           `yaml:"player_bullet_damage"`
	EnemyFireDelay     time.Duration `yaml:"enemy_fire_delay"`
}

// ScoringConfig defines how the session score is computed.
type ScoringConfig struct {
	PerKill int `yaml:"per_kill"`
	PerTier int `yaml:"per_tier"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy    DifficultyPreset = "easy"
	DifficultyNormal  DifficultyPreset = "normal"
	DifficultyHard    DifficultyPreset = "hard"
	DifficultyClassic DifficultyPreset = "classic"
)

// ParsePreset converts a CLI string into a preset. Unknown names yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyClassic:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyShooterPreset modifies the config based on a difficulty preset.
func ApplyShooterPreset(cfg *ShooterConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.Health += cfg.Player.Health / 2
		cfg.Tiers.Base.EnemyFireDelay += cfg.Tiers.Base.EnemyFireDelay / 2
		cfg.PowerUps.DropChance *= 2
	case DifficultyHard:
		cfg.Player.Health -= cfg.Player.Health / 4
		cfg.Tiers.Base.MaxEnemies += cfg.Tiers.Step.MaxEnemies
		cfg.Enemies.OneHitKill = false
	case DifficultyClassic:
		// Unbounded scaling and no pickups.
		cfg.Tiers.Floors.Enabled = false
		cfg.PowerUps.DropChance = 0
		cfg.Enemies.OneHitKill = true
	}
}
