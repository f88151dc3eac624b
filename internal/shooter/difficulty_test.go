package shooter

import (
	"testing"
	"time"

	"github.com/vovakirdan/skyraid/internal/config"
)

func killN(d *Difficulty, n int) {
	for i := 0; i < n; i++ {
		d.RecordKill()
	}
}

func TestDifficultyStartsAtBase(t *testing.T) {
	rules := config.DefaultShooterConfig().Tiers
	d := NewDifficulty(rules)

	tier := d.Tier()
	if tier.Index != 1 {
		t.Errorf("Index = %d, expected 1", tier.Index)
	}
	if tier.MaxEnemies != rules.Base.MaxEnemies {
		t.Errorf("MaxEnemies = %d, expected %d", tier.MaxEnemies, rules.Base.MaxEnemies)
	}
	if tier.PlayerBulletDamage != rules.Base.PlayerBulletDamage {
		t.Errorf("PlayerBulletDamage = %d, expected %d", tier.PlayerBulletDamage, rules.Base.PlayerBulletDamage)
	}
	if tier.EnemyBulletDamage != 1 {
		t.Errorf("EnemyBulletDamage = %d, expected 1", tier.EnemyBulletDamage)
	}
}

func TestDifficultyAdvance(t *testing.T) {
	rules := config.DefaultShooterConfig().Tiers

	tests := []struct {
		tier         int
		maxEnemies   int
		playerDamage int
		enemyDamage  int
		fireDelay    time.Duration
	}{
		{2, 15, 18, 6, 1200 * time.Millisecond},
		{3, 20, 16, 11, 960 * time.Millisecond},
		{4, 25, 14, 16, 768 * time.Millisecond},
	}

	d := NewDifficulty(rules)
	for _, tt := range tests {
		killN(d, rules.KillsPerTier)
		if got := d.Check(); got != TransitionAdvanced {
			t.Fatalf("Check() = %v, expected %v", got, TransitionAdvanced)
		}

		tier := d.Tier()
		if tier.Index != tt.tier {
			t.Errorf("Index = %d, expected %d", tier.Index, tt.tier)
		}
		if tier.MaxEnemies != tt.maxEnemies {
			t.Errorf("tier %d MaxEnemies = %d, expected %d", tt.tier, tier.MaxEnemies, tt.maxEnemies)
		}
		if tier.PlayerBulletDamage != tt.playerDamage {
			t.Errorf("tier %d PlayerBulletDamage = %d, expected %d", tt.tier, tier.PlayerBulletDamage, tt.playerDamage)
		}
		if tier.EnemyBulletDamage != tt.enemyDamage {
			t.Errorf("tier %d EnemyBulletDamage = %d, expected %d", tt.tier, tier.EnemyBulletDamage, tt.enemyDamage)
		}
		if tier.EnemyFireDelay != tt.fireDelay {
			t.Errorf("tier %d EnemyFireDelay = %v, expected %v", tt.tier, tier.EnemyFireDelay, tt.fireDelay)
		}
	}
}

func TestDifficultyBelowThreshold(t *testing.T) {
	d := NewDifficulty(config.DefaultShooterConfig().Tiers)
	killN(d, 9)

	if got := d.Check(); got != TransitionNone {
		t.Errorf("Check() = %v, expected %v", got, TransitionNone)
	}
	if d.Kills() != 9 {
		t.Errorf("Kills() = %d, expected 9", d.Kills())
	}
}

func TestDifficultyDiscardsExcessKills(t *testing.T) {
	d := NewDifficulty(config.DefaultShooterConfig().Tiers)
	killN(d, 9)
	killN(d, 3)

	if got := d.Check(); got != TransitionAdvanced {
		t.Fatalf("Check() = %v, expected %v", got, TransitionAdvanced)
	}
	if d.Kills() != 0 {
		t.Errorf("Kills() = %d, expected 0", d.Kills())
	}
	if got := d.Check(); got != TransitionNone {
		t.Errorf("second Check() = %v, expected %v", got, TransitionNone)
	}
	if d.Tier().Index != 2 {
		t.Errorf("Index = %d, expected 2", d.Tier().Index)
	}
}

func TestDifficultyWinsAfterMaxTier(t *testing.T) {
	rules := config.DefaultShooterConfig().Tiers
	d := NewDifficulty(rules)

	for i := 1; i < rules.MaxTier; i++ {
		killN(d, rules.KillsPerTier)
		if got := d.Check(); got != TransitionAdvanced {
			t.Fatalf("advance %d: Check() = %v, expected %v", i, got, TransitionAdvanced)
		}
	}
	if d.Tier().Index != rules.MaxTier {
		t.Fatalf("Index = %d, expected %d", d.Tier().Index, rules.MaxTier)
	}

	killN(d, rules.KillsPerTier)
	if got := d.Check(); got != TransitionWon {
		t.Fatalf("Check() = %v, expected %v", got, TransitionWon)
	}
	if !d.Won() {
		t.Error("Won() = false, expected true")
	}
	if d.Tier().Index != rules.MaxTier {
		t.Errorf("Index = %d after win, expected %d", d.Tier().Index, rules.MaxTier)
	}

	killN(d, rules.KillsPerTier)
	if got := d.Check(); got != TransitionNone {
		t.Errorf("Check() after win = %v, expected %v", got, TransitionNone)
	}
}

func TestDifficultyEndless(t *testing.T) {
	rules := config.DefaultShooterConfig().Tiers
	rules.MaxTier = 0
	d := NewDifficulty(rules)

	prev := d.Tier().Index
	for i := 0; i < 30; i++ {
		killN(d, rules.KillsPerTier)
		if got := d.Check(); got != TransitionAdvanced {
			t.Fatalf("advance %d: Check() = %v, expected %v", i, got, TransitionAdvanced)
		}
		if d.Tier().Index != prev+1 {
			t.Fatalf("Index = %d, expected %d", d.Tier().Index, prev+1)
		}
		prev = d.Tier().Index
	}
	if d.Won() {
		t.Error("endless run reported a win")
	}
}

func TestDifficultyFloors(t *testing.T) {
	tests := []struct {
		name         string
		enabled      bool
		playerDamage int
		minDelay     time.Duration
	}{
		{"floors enabled", true, 1, 100 * time.Millisecond},
		{"floors disabled", false, 20 - 2*29, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := config.DefaultShooterConfig().Tiers
			rules.MaxTier = 0
			rules.Floors.Enabled = tt.enabled
			d := NewDifficulty(rules)

			for i := 0; i < 29; i++ {
				killN(d, rules.KillsPerTier)
				d.Check()
			}

			tier := d.Tier()
			if tier.PlayerBulletDamage != tt.playerDamage {
				t.Errorf("PlayerBulletDamage = %d, expected %d", tier.PlayerBulletDamage, tt.playerDamage)
			}
			if tt.enabled && tier.EnemyFireDelay != tt.minDelay {
				t.Errorf("EnemyFireDelay = %v, expected %v", tier.EnemyFireDelay, tt.minDelay)
			}
			if !tt.enabled && tier.EnemyFireDelay >= 100*time.Millisecond {
				t.Errorf("EnemyFireDelay = %v, expected below the floor", tier.EnemyFireDelay)
			}
		})
	}
}

func TestDifficultyReset(t *testing.T) {
	rules := config.DefaultShooterConfig().Tiers
	d := NewDifficulty(rules)
	killN(d, rules.KillsPerTier)
	d.Check()
	killN(d, 4)

	d.Reset()
	if d.Tier().Index != 1 || d.Kills() != 0 || d.Won() {
		t.Errorf("after Reset: tier %d, kills %d, won %v", d.Tier().Index, d.Kills(), d.Won())
	}
}
