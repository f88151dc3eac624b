package shooter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/core"
)

// recordingSounds counts every sound the world asks for.
type recordingSounds struct {
	played []SoundID
}

func (r *recordingSounds) Play(id SoundID) {
	r.played = append(r.played, id)
}

func (r *recordingSounds) count(id SoundID) int {
	n := 0
	for _, p := range r.played {
		if p == id {
			n++
		}
	}
	return n
}

// quietConfig returns a config with no enemies, no continuous spawning and
// no drops so that tests can place entities by hand.
func quietConfig() config.ShooterConfig {
	cfg := config.DefaultShooterConfig()
	cfg.Tiers.Base.MaxEnemies = 0
	cfg.Enemies.ContinuousSpawn = false
	cfg.PowerUps.DropChance = 0
	return cfg
}

func newTestWorld(t *testing.T, cfg config.ShooterConfig) (*World, *recordingSounds) {
	t.Helper()
	sounds := &recordingSounds{}
	w, err := NewWorld(cfg, 40, 20,
		WithClock(NewFrameClock(60)),
		WithSounds(sounds),
		WithSeed(1),
	)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	return w, sounds
}

// enemyBulletOnPlayer places an enemy bullet that overlaps the player after
// one update.
func enemyBulletOnPlayer(w *World) *Projectile {
	box := w.player.Bounds()
	b := NewProjectile(SideEnemy, box.Center().X, float64(box.Y), 1, w.cfg.Projectiles)
	w.add(b)
	return b
}

// stationaryEnemy places an enemy that neither moves nor fires.
func stationaryEnemy(w *World, x, y int) *Enemy {
	e := NewEnemy(w.cfg.Enemies, x, y, w.Tier().EnemyHealth, 0, time.Hour, 0)
	w.add(e)
	return e
}

// shotAt places a player bullet that overlaps e after one update.
func shotAt(w *World, e *Enemy, damage int) *Projectile {
	box := e.Bounds()
	b := NewProjectile(SidePlayer, box.Center().X, float64(box.Bottom())+0.5, damage, w.cfg.Projectiles)
	w.add(b)
	return b
}

func checkInvariants(t *testing.T, w *World) {
	t.Helper()
	field := core.NewRect(0, 0, w.width, w.height)

	for _, e := range w.all {
		if !e.Alive() {
			t.Fatalf("frame %d: dead %T still tracked", w.frame, e)
		}
	}
	if w.player.Alive() && !w.player.Bounds().Within(field) {
		t.Fatalf("frame %d: player %+v outside %+v", w.frame, w.player.Bounds(), field)
	}

	typed := len(w.enemies) + len(w.playerBullets) + len(w.enemyBullets) + len(w.powerups)
	effects := 0
	players := 0
	for _, e := range w.all {
		switch e.(type) {
		case *Effect:
			effects++
		case *Player:
			players++
		}
	}
	if players > 1 {
		t.Fatalf("frame %d: %d players tracked", w.frame, players)
	}
	if typed+effects+players != len(w.all) {
		t.Fatalf("frame %d: collections hold %d entities, master list %d", w.frame, typed+effects+players, len(w.all))
	}
}

func TestNewWorldTooSmall(t *testing.T) {
	_, err := NewWorld(config.DefaultShooterConfig(), 2, 2)
	if err == nil {
		t.Error("NewWorld() error = nil, expected an error for a 2x2 playfield")
	}
}

func TestNewSessionSpawnsInitialWave(t *testing.T) {
	cfg := config.DefaultShooterConfig()
	w, _ := newTestWorld(t, cfg)

	if w.Enemies() != cfg.Tiers.Base.MaxEnemies {
		t.Errorf("Enemies() = %d, expected %d", w.Enemies(), cfg.Tiers.Base.MaxEnemies)
	}
	for _, e := range w.enemies {
		r := e.Bounds()
		if r.Bottom() > 0 {
			t.Errorf("enemy spawned at %+v, expected above the playfield", r)
		}
		if r.X < 0 || r.Right() > w.width {
			t.Errorf("enemy spawned at %+v, expected inside the columns", r)
		}
		if e.Health != cfg.Tiers.Base.EnemyHealth {
			t.Errorf("enemy Health = %d, expected %d", e.Health, cfg.Tiers.Base.EnemyHealth)
		}
	}
	if !w.Running() || w.Tier().Index != 1 {
		t.Errorf("Running() = %v, Tier = %d, expected running at tier 1", w.Running(), w.Tier().Index)
	}
}

func TestPlayerHitByEnemyBullet(t *testing.T) {
	w, sounds := newTestWorld(t, quietConfig())
	b := enemyBulletOnPlayer(w)

	w.Step(core.NewInputFrame())

	if w.player.Health != 99 {
		t.Errorf("Health = %d, expected 99", w.player.Health)
	}
	if b.Alive() || len(w.enemyBullets) != 0 {
		t.Error("enemy bullet survived the hit")
	}
	if sounds.count(SoundPlayerHit) != 1 {
		t.Errorf("player-hit sounds = %d, expected 1", sounds.count(SoundPlayerHit))
	}

	found := false
	for _, e := range w.all {
		if fx, ok := e.(*Effect); ok && fx.Visual() == VisualPlayerHit {
			found = true
		}
	}
	if !found {
		t.Error("no player-hit effect spawned")
	}
	if !w.Running() {
		t.Error("Running() = false after a single hit")
	}
}

func TestPlayerDestroyedAfterHealthHits(t *testing.T) {
	w, sounds := newTestWorld(t, quietConfig())

	for i := 0; i < 99; i++ {
		enemyBulletOnPlayer(w)
		w.Step(core.NewInputFrame())
	}
	if !w.Running() || w.player.Health != 1 {
		t.Fatalf("after 99 hits: Running() = %v, Health = %d", w.Running(), w.player.Health)
	}

	enemyBulletOnPlayer(w)
	rep := w.Step(core.NewInputFrame())

	if rep.Outcome != OutcomeLost {
		t.Errorf("Outcome = %v, expected %v", rep.Outcome, OutcomeLost)
	}
	if w.Running() || !w.Lost() {
		t.Errorf("Running() = %v, Lost() = %v", w.Running(), w.Lost())
	}
	if sounds.count(SoundBlast) != 1 {
		t.Errorf("blast sounds = %d, expected 1", sounds.count(SoundBlast))
	}

	frame := w.Frame()
	w.Step(core.NewInputFrame())
	if w.Frame() != frame {
		t.Error("a lost world kept simulating")
	}
}

func TestHitsAfterDeathAreConsumed(t *testing.T) {
	cfg := quietConfig()
	cfg.Player.Health = 1
	w, sounds := newTestWorld(t, cfg)

	enemyBulletOnPlayer(w)
	enemyBulletOnPlayer(w)
	w.Step(core.NewInputFrame())

	if len(w.enemyBullets) != 0 {
		t.Errorf("enemy bullets = %d, expected 0", len(w.enemyBullets))
	}
	if sounds.count(SoundPlayerHit) != 1 || sounds.count(SoundBlast) != 1 {
		t.Errorf("sounds = %v, expected one hit and one blast", sounds.played)
	}
	if w.player.Health != 0 {
		t.Errorf("Health = %d, expected 0", w.player.Health)
	}
}

func TestEnemyDestroyedByPlayerBullet(t *testing.T) {
	w, sounds := newTestWorld(t, quietConfig())
	e := stationaryEnemy(w, 10, 5)
	b := shotAt(w, e, w.Tier().PlayerBulletDamage)

	rep := w.Step(core.NewInputFrame())

	if e.Alive() || b.Alive() {
		t.Errorf("enemy alive = %v, bullet alive = %v, expected both removed", e.Alive(), b.Alive())
	}
	if rep.Kills != 1 || w.Kills() != 1 || w.TierKills() != 1 {
		t.Errorf("kills: report %d, total %d, tier %d, expected 1", rep.Kills, w.Kills(), w.TierKills())
	}
	if sounds.count(SoundBlast) != 1 {
		t.Errorf("blast sounds = %d, expected 1", sounds.count(SoundBlast))
	}
	if w.Score() != w.cfg.Scoring.PerKill {
		t.Errorf("Score() = %d, expected %d", w.Score(), w.cfg.Scoring.PerKill)
	}
}

func TestEnemySurvivesPartialDamage(t *testing.T) {
	cfg := quietConfig()
	cfg.Enemies.OneHitKill = false
	w, _ := newTestWorld(t, cfg)
	e := stationaryEnemy(w, 10, 5)
	shotAt(w, e, 20)

	w.Step(core.NewInputFrame())

	if !e.Alive() || e.Health != 30 {
		t.Errorf("Alive() = %v, Health = %d, expected alive with 30", e.Alive(), e.Health)
	}
	if len(w.playerBullets) != 0 {
		t.Errorf("player bullets = %d, expected the hit bullet removed", len(w.playerBullets))
	}
	if w.Kills() != 0 {
		t.Errorf("Kills() = %d, expected 0", w.Kills())
	}
}

func TestEnemyCreditedOnce(t *testing.T) {
	w, sounds := newTestWorld(t, quietConfig())
	e := stationaryEnemy(w, 10, 5)
	first := shotAt(w, e, 20)
	second := shotAt(w, e, 20)

	w.Step(core.NewInputFrame())

	if w.Kills() != 1 {
		t.Errorf("Kills() = %d, expected 1", w.Kills())
	}
	if first.Alive() || second.Alive() {
		t.Errorf("first alive = %v, second alive = %v, expected both consumed", first.Alive(), second.Alive())
	}
	if len(w.playerBullets) != 0 {
		t.Errorf("player bullets = %d, expected 0", len(w.playerBullets))
	}
	if got := sounds.count(SoundBlast); got != 1 {
		t.Errorf("blast sounds = %d, expected 1", got)
	}
	if w.Score() != w.cfg.Scoring.PerKill {
		t.Errorf("Score() = %d, expected %d", w.Score(), w.cfg.Scoring.PerKill)
	}
}

func TestTouchingEdgesDoNotCollide(t *testing.T) {
	w, _ := newTestWorld(t, quietConfig())
	e := stationaryEnemy(w, 10, 5)
	// Directly right of the enemy box.
	b := NewProjectile(SidePlayer, 13, 6.5, 20, w.cfg.Projectiles)
	w.add(b)

	w.Step(core.NewInputFrame())

	if !e.Alive() || !b.Alive() {
		t.Errorf("enemy alive = %v, bullet alive = %v, expected both alive", e.Alive(), b.Alive())
	}
}

func TestTierAdvanceDiscardsExcessKills(t *testing.T) {
	w, _ := newTestWorld(t, quietConfig())
	killN(w.difficulty, 9)

	for _, x := range []int{2, 12, 22} {
		e := stationaryEnemy(w, x, 5)
		shotAt(w, e, 20)
	}
	rep := w.Step(core.NewInputFrame())

	if !rep.Advanced || rep.Tier != 2 {
		t.Fatalf("report = %+v, expected an advance to tier 2", rep)
	}
	if w.TierKills() != 0 {
		t.Errorf("TierKills() = %d, expected 0", w.TierKills())
	}
	if w.Enemies() != w.Tier().MaxEnemies {
		t.Errorf("Enemies() = %d, expected a wave of %d", w.Enemies(), w.Tier().MaxEnemies)
	}
	if w.Score() != 3*w.cfg.Scoring.PerKill+w.cfg.Scoring.PerTier {
		t.Errorf("Score() = %d, expected %d", w.Score(), 3*w.cfg.Scoring.PerKill+w.cfg.Scoring.PerTier)
	}
}

func TestWinAfterFinalTier(t *testing.T) {
	cfg := quietConfig()
	cfg.Tiers.MaxTier = 2
	w, _ := newTestWorld(t, cfg)

	killN(w.difficulty, cfg.Tiers.KillsPerTier)
	if rep := w.Step(core.NewInputFrame()); !rep.Advanced {
		t.Fatalf("report = %+v, expected an advance", rep)
	}

	enemies := w.Enemies()
	killN(w.difficulty, cfg.Tiers.KillsPerTier)
	rep := w.Step(core.NewInputFrame())

	if rep.Outcome != OutcomeWon || !w.Won() || w.Running() {
		t.Errorf("Outcome = %v, Won() = %v, Running() = %v", rep.Outcome, w.Won(), w.Running())
	}
	if rep.Advanced {
		t.Error("winning frame reported an advance")
	}
	if w.Enemies() != enemies {
		t.Errorf("Enemies() = %d, expected no new wave (%d)", w.Enemies(), enemies)
	}
}

func TestNoTierCheckOnLosingFrame(t *testing.T) {
	cfg := quietConfig()
	cfg.Player.Health = 1
	w, _ := newTestWorld(t, cfg)
	killN(w.difficulty, cfg.Tiers.KillsPerTier)
	enemyBulletOnPlayer(w)

	rep := w.Step(core.NewInputFrame())

	if rep.Outcome != OutcomeLost || rep.Advanced {
		t.Errorf("report = %+v, expected a loss without advance", rep)
	}
}

func TestContinuousSpawn(t *testing.T) {
	cfg := quietConfig()
	cfg.Tiers.Base.MaxEnemies = 3
	cfg.Enemies.ContinuousSpawn = true
	w, _ := newTestWorld(t, cfg)

	w.enemies[0].Kill()
	w.sweep()
	w.Step(core.NewInputFrame())

	if w.Enemies() != 3 {
		t.Errorf("Enemies() = %d, expected a refill to 3", w.Enemies())
	}
}

func TestPowerUpPickup(t *testing.T) {
	w, sounds := newTestWorld(t, quietConfig())
	w.player.Health = 90

	p := NewPowerUp(w.player.Bounds().Center(), w.cfg.PowerUps)
	w.add(p)
	w.Step(core.NewInputFrame())

	if w.player.Health != 100 {
		t.Errorf("Health = %d, expected capped at 100", w.player.Health)
	}
	if p.Alive() {
		t.Error("power-up not consumed")
	}
	if sounds.count(SoundPickup) != 1 {
		t.Errorf("pickup sounds = %d, expected 1", sounds.count(SoundPickup))
	}
}

func TestPowerUpDrop(t *testing.T) {
	cfg := quietConfig()
	cfg.PowerUps.DropChance = 1
	w, _ := newTestWorld(t, cfg)
	e := stationaryEnemy(w, 10, 5)
	shotAt(w, e, 20)

	w.Step(core.NewInputFrame())

	if len(w.powerups) != 1 {
		t.Errorf("power-ups = %d, expected 1", len(w.powerups))
	}
}

func TestPlayerShotPlaysLaser(t *testing.T) {
	w, sounds := newTestWorld(t, quietConfig())
	w.clock.(*FrameClock).Advance(time.Second)

	w.Step(core.NewInputFrame(core.ActionFire))

	if len(w.playerBullets) != 1 {
		t.Errorf("player bullets = %d, expected 1", len(w.playerBullets))
	}
	if sounds.count(SoundLaser) != 1 {
		t.Errorf("laser sounds = %d, expected 1", sounds.count(SoundLaser))
	}
}

func TestPauseSkipsFrames(t *testing.T) {
	w, _ := newTestWorld(t, quietConfig())
	pause := core.NewInputFrame(core.ActionPause)

	w.Step(pause)
	if !w.Paused() {
		t.Fatal("Paused() = false after pause")
	}
	w.Step(core.NewInputFrame(core.ActionMoveLeft))
	if w.Frame() != 0 {
		t.Errorf("Frame() = %d while paused, expected 0", w.Frame())
	}

	w.Step(pause)
	if w.Paused() || w.Frame() != 1 {
		t.Errorf("Paused() = %v, Frame() = %d, expected resumed at frame 1", w.Paused(), w.Frame())
	}
}

func TestRequestStop(t *testing.T) {
	w, _ := newTestWorld(t, quietConfig())
	w.RequestStop()

	rep := w.Step(core.NewInputFrame())
	if rep.Outcome != OutcomeStopped || w.Running() {
		t.Errorf("Outcome = %v, Running() = %v", rep.Outcome, w.Running())
	}
	if rep.Frame != 0 {
		t.Errorf("Frame = %d, expected the stop before any frame ran", rep.Frame)
	}
}

func TestNewSessionDiscardsEverything(t *testing.T) {
	w, _ := newTestWorld(t, config.DefaultShooterConfig())
	killN(w.difficulty, 10)
	for i := 0; i < 50; i++ {
		w.Step(core.NewInputFrame(core.ActionFire))
	}

	w.NewSession()

	if w.Tier().Index != 1 || w.Kills() != 0 || w.Frame() != 0 {
		t.Errorf("tier %d, kills %d, frame %d, expected a fresh session", w.Tier().Index, w.Kills(), w.Frame())
	}
	if len(w.playerBullets) != 0 || len(w.enemyBullets) != 0 {
		t.Error("bullets survived NewSession")
	}
	if w.Enemies() != w.cfg.Tiers.Base.MaxEnemies {
		t.Errorf("Enemies() = %d, expected %d", w.Enemies(), w.cfg.Tiers.Base.MaxEnemies)
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() (int, int, int) {
		w, _ := newTestWorld(t, config.DefaultShooterConfig())
		pilot := &Autopilot{World: w}
		for i := 0; i < 600 && w.Running(); i++ {
			w.Step(pilot.Poll())
		}
		return w.Kills(), w.player.Health, len(w.all)
	}

	k1, h1, n1 := run()
	k2, h2, n2 := run()
	if k1 != k2 || h1 != h2 || n1 != n2 {
		t.Errorf("runs differ: (%d, %d, %d) vs (%d, %d, %d)", k1, h1, n1, k2, h2, n2)
	}
}

func TestInvariantsUnderAutopilot(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 42} {
		cfg := config.DefaultShooterConfig()
		cfg.PowerUps.DropChance = 0.3
		w, err := NewWorld(cfg, 60, 24, WithClock(NewFrameClock(60)), WithSeed(seed))
		if err != nil {
			t.Fatalf("NewWorld() error = %v", err)
		}

		tier := w.Tier().Index
		loop := &Loop{
			World:     w,
			Input:     &Autopilot{World: w},
			MaxFrames: 3000,
			OnFrame: func(rep StepReport) {
				checkInvariants(t, w)
				if rep.Tier < tier {
					t.Fatalf("seed %d: tier went from %d to %d", seed, tier, rep.Tier)
				}
				tier = rep.Tier
			},
		}
		if _, err := loop.Run(context.Background()); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}
}

func TestLoopStopsAtMaxFrames(t *testing.T) {
	w, _ := newTestWorld(t, quietConfig())
	canvas := NewScreenCanvas(core.NewScreen(40, 20), 0)

	rep, err := (&Loop{World: w, Canvas: canvas, MaxFrames: 10}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rep.Frame != 10 {
		t.Errorf("Frame = %d, expected 10", rep.Frame)
	}
	if canvas.Frames != 10 {
		t.Errorf("presented %d frames, expected 10", canvas.Frames)
	}
}

func TestLoopEndsWithSession(t *testing.T) {
	w, _ := newTestWorld(t, quietConfig())
	w.RequestStop()

	rep, err := (&Loop{World: w, FPS: 1000}).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rep.Outcome != OutcomeStopped {
		t.Errorf("Outcome = %v, expected %v", rep.Outcome, OutcomeStopped)
	}
}

func TestLoopCancelled(t *testing.T) {
	w, _ := newTestWorld(t, quietConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := (&Loop{World: w}).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected %v", err, context.Canceled)
	}
	if rep.Frame != 0 {
		t.Errorf("Frame = %d, expected 0", rep.Frame)
	}
}
