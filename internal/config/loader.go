package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFileName = "skyraid.yaml"

// LoadShooter loads the shooter configuration.
// Search order: customPath -> ~/.skyraid/configs/skyraid.yaml -> ./configs/skyraid.yaml -> embedded default
func LoadShooter(customPath string) (ShooterConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return ShooterConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseShooter(data)
		if err != nil {
			return ShooterConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseShooter(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFileName)); err == nil {
		if cfg, err := parseShooter(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseShooter(defaultShooterYAML)
	if err != nil {
		return DefaultShooterConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseShooter decodes YAML on top of the hard-coded defaults, so partial
// files only override the keys they mention.
func parseShooter(data []byte) (ShooterConfig, error) {
	cfg := DefaultShooterConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ShooterConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return ShooterConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skyraid", "configs", filename)
}

// Validate rejects configurations the simulation cannot run with.
func (c ShooterConfig) Validate() error {
	var errs []error

	positive := func(name string, v int) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	positive("player.health", c.Player.Health)
	positive("enemies.width", c.Enemies.Width)
	positive("enemies.height", c.Enemies.Height)
	positive("projectiles.width", c.Projectiles.Width)
	positive("projectiles.height", c.Projectiles.Height)
	positive("effects.width", c.Effects.Width)
	positive("effects.height", c.Effects.Height)
	positive("effects.lifetime", c.Effects.Lifetime)
	positive("tiers.kills_per_tier", c.Tiers.KillsPerTier)
	positive("tiers.base.max_enemies", c.Tiers.Base.MaxEnemies)
	positive("tiers.base.enemy_health", c.Tiers.Base.EnemyHealth)

	if c.Player.Speed <= 0 {
		errs = append(errs, fmt.Errorf("player.speed must be positive, got %g", c.Player.Speed))
	}
	if c.Enemies.SpeedMin < 1 || c.Enemies.SpeedMax < c.Enemies.SpeedMin {
		errs = append(errs, fmt.Errorf("enemies speed range [%d, %d] is invalid", c.Enemies.SpeedMin, c.Enemies.SpeedMax))
	}
	if c.Enemies.SpawnBand < 0 {
		errs = append(errs, fmt.Errorf("enemies.spawn_band must not be negative, got %d", c.Enemies.SpawnBand))
	}
	if c.Projectiles.PlayerSpeed <= 0 || c.Projectiles.EnemySpeed <= 0 {
		errs = append(errs, errors.New("projectile speeds must be positive"))
	}
	// Enemy bullets are fired from above the playfield; a smaller margin
	// would despawn them before they enter.
	if c.Projectiles.DespawnMargin < c.Enemies.SpawnBand {
		errs = append(errs, fmt.Errorf("projectiles.despawn_margin (%d) must be at least enemies.spawn_band (%d)",
			c.Projectiles.DespawnMargin, c.Enemies.SpawnBand))
	}
	if c.PowerUps.DropChance < 0 || c.PowerUps.DropChance > 1 {
		errs = append(errs, fmt.Errorf("powerups.drop_chance must be within [0, 1], got %g", c.PowerUps.DropChance))
	}
	if c.PowerUps.DropChance > 0 {
		positive("powerups.width", c.PowerUps.Width)
		positive("powerups.height", c.PowerUps.Height)
		if c.PowerUps.Speed <= 0 {
			errs = append(errs, fmt.Errorf("powerups.speed must be positive, got %g", c.PowerUps.Speed))
		}
	}
	if c.Tiers.MaxTier < 0 {
		errs = append(errs, fmt.Errorf("tiers.max_tier must not be negative, got %d", c.Tiers.MaxTier))
	}
	if f := c.Tiers.Step.EnemyFireDelayFactor; f <= 0 || f > 1 {
		errs = append(errs, fmt.Errorf("tiers.step.enemy_fire_delay_factor must be within (0, 1], got %g", f))
	}
	if c.Tiers.Base.EnemyFireDelay <= 0 || c.Player.FireCooldown < 0 {
		errs = append(errs, errors.New("fire delays must be positive"))
	}

	return errors.Join(errs...)
}
