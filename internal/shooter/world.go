package shooter

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/skyraid/internal/config"
	"github.com/vovakirdan/skyraid/internal/core"
)

// Outcome describes how a session stands after a frame.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeWon
	OutcomeLost
	OutcomeStopped
)

// String returns the outcome name as stored with finished runs.
func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	case OutcomeStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// StepReport summarizes one call to World.Step.
type StepReport struct {
	Frame    int  // Frames simulated so far, excluding paused ones
	Kills    int  // Enemies destroyed during this frame
	Advanced bool // A new tier started during this frame
	Tier     int
	Outcome  Outcome
}

// Option configures a World.
type Option func(*World)

// WithClock replaces the default wall clock.
func WithClock(c Clock) Option {
	return func(w *World) { w.clock = c }
}

// WithSounds sets the sound collaborator. The default is NopSounds.
func WithSounds(s SoundPlayer) Option {
	return func(w *World) { w.sounds = s }
}

// WithSeed fixes the RNG seed used for spawning and drops.
func WithSeed(seed int64) Option {
	return func(w *World) { w.seed = seed }
}

// World owns every entity of a session and runs the frame phases in order:
// update, collision resolution, tier check, continuous spawn.
// A World is not safe for concurrent use.
type World struct {
	cfg    config.ShooterConfig
	width  int
	height int
	seed   int64
	rng    *rand.Rand
	clock  Clock
	sounds SoundPlayer

	difficulty *Difficulty

	all           []Entity
	player        *Player
	enemies       []*Enemy
	playerBullets []*Projectile
	enemyBullets  []*Projectile
	powerups      []*PowerUp
	pending       []Entity

	frame      int
	totalKills int
	started    time.Duration
	ended      time.Duration

	running       bool
	paused        bool
	stopRequested bool
	outcome       Outcome
}

// NewWorld creates a world for a width x height playfield and starts the
// first session.
func NewWorld(cfg config.ShooterConfig, width, height int, opts ...Option) (*World, error) {
	minW := core.Max(cfg.Player.Width, cfg.Enemies.Width)
	minH := cfg.Player.Height + cfg.Player.BottomOffset + 1
	if width < minW || height < minH {
		return nil, fmt.Errorf("shooter: playfield %dx%d is smaller than %dx%d", width, height, minW, minH)
	}

	w := &World{
		cfg:    cfg,
		width:  width,
		height: height,
		seed:   time.Now().UnixNano(),
		sounds: NopSounds{},
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.clock == nil {
		w.clock = NewWallClock()
	}
	w.difficulty = NewDifficulty(cfg.Tiers)
	w.NewSession()
	return w, nil
}

// NewSession discards all entities and starts over at tier 1 with a fresh
// player and an initial wave.
func (w *World) NewSession() {
	w.rng = rand.New(rand.NewSource(w.seed))
	w.difficulty.Reset()

	w.all = nil
	w.enemies = nil
	w.playerBullets = nil
	w.enemyBullets = nil
	w.powerups = nil
	w.pending = nil

	w.frame = 0
	w.totalKills = 0
	w.running = true
	w.paused = false
	w.stopRequested = false
	w.outcome = OutcomeRunning

	now := w.clock.Now()
	w.started = now
	w.ended = now

	w.player = NewPlayer(w.cfg.Player, w.width, w.height, now)
	w.add(w.player)
	w.spawnWave(w.difficulty.Tier().MaxEnemies, now)
}

// Step advances the simulation by one frame.
func (w *World) Step(in core.InputFrame) StepReport {
	if w.stopRequested && w.running {
		w.finish(OutcomeStopped)
	}
	if !w.running {
		return w.report(0, false)
	}

	if in.Has(core.ActionPause) {
		w.paused = !w.paused
	}
	if w.paused {
		return w.report(0, false)
	}

	if t, ok := w.clock.(ticker); ok {
		t.Tick()
	}
	now := w.clock.Now()
	w.frame++

	ctx := &FrameContext{
		Now:         now,
		Input:       in,
		Width:       w.width,
		Height:      w.height,
		Tier:        w.difficulty.Tier(),
		Rand:        w.rng,
		Spawner:     w,
		Projectiles: w.cfg.Projectiles,
	}
	for _, e := range w.all {
		e.Update(ctx)
	}
	w.flushPending()
	w.sweep()

	kills := w.resolveCollisions()
	w.sweep()
	w.totalKills += kills

	advanced := false
	if w.running {
		switch w.difficulty.Check() {
		case TransitionAdvanced:
			advanced = true
			w.spawnWave(w.difficulty.Tier().MaxEnemies, now)
		case TransitionWon:
			w.finish(OutcomeWon)
		}
	}

	if w.running && w.cfg.Enemies.ContinuousSpawn && len(w.enemies) < w.difficulty.Tier().MaxEnemies {
		w.spawnEnemy(now)
	}

	if w.running {
		w.ended = now
	}
	return w.report(kills, advanced)
}

// RequestStop asks the world to stop before the next frame runs.
func (w *World) RequestStop() {
	w.stopRequested = true
}

// Spawn queues an entity created during the update phase. Queued entities
// join the world after every existing entity has been updated.
func (w *World) Spawn(e Entity) {
	w.pending = append(w.pending, e)
}

func (w *World) report(kills int, advanced bool) StepReport {
	return StepReport{
		Frame:    w.frame,
		Kills:    kills,
		Advanced: advanced,
		Tier:     w.difficulty.Tier().Index,
		Outcome:  w.outcome,
	}
}

func (w *World) finish(o Outcome) {
	w.running = false
	w.outcome = o
	w.ended = w.clock.Now()
}

func (w *World) flushPending() {
	for _, e := range w.pending {
		if p, ok := e.(*Projectile); ok && p.Side == SidePlayer {
			w.sounds.Play(SoundLaser)
		}
		w.add(e)
	}
	w.pending = w.pending[:0]
}

// add registers e in the master list and its typed collection.
func (w *World) add(e Entity) {
	w.all = append(w.all, e)
	switch v := e.(type) {
	case *Enemy:
		w.enemies = append(w.enemies, v)
	case *Projectile:
		if v.Side == SidePlayer {
			w.playerBullets = append(w.playerBullets, v)
		} else {
			w.enemyBullets = append(w.enemyBullets, v)
		}
	case *PowerUp:
		w.powerups = append(w.powerups, v)
	}
}

// sweep drops dead entities from every collection.
func (w *World) sweep() {
	w.all = filterAlive(w.all)
	w.enemies = filterAlive(w.enemies)
	w.playerBullets = filterAlive(w.playerBullets)
	w.enemyBullets = filterAlive(w.enemyBullets)
	w.powerups = filterAlive(w.powerups)
}

func filterAlive[T Entity](items []T) []T {
	kept := items[:0]
	for _, e := range items {
		if e.Alive() {
			kept = append(kept, e)
		}
	}
	clear(items[len(kept):])
	return kept
}

// spawnEnemy places one enemy at a random column inside the spawn band
// above the playfield, using the current tier's health and fire delay.
func (w *World) spawnEnemy(now time.Duration) {
	ec := w.cfg.Enemies
	tier := w.difficulty.Tier()

	x := w.rng.Intn(w.width - ec.Width + 1)
	y := -(ec.Height + w.rng.Intn(ec.SpawnBand+1))
	points := ec.SpeedMin + w.rng.Intn(ec.SpeedMax-ec.SpeedMin+1)
	speed := float64(points) * ec.SpeedUnit

	w.add(NewEnemy(ec, x, y, tier.EnemyHealth, speed, tier.EnemyFireDelay, now))
}

func (w *World) spawnWave(n int, now time.Duration) {
	for i := 0; i < n; i++ {
		w.spawnEnemy(now)
	}
}

// Running reports whether the session is still in play.
func (w *World) Running() bool { return w.running }

// Won reports whether the final tier was cleared.
func (w *World) Won() bool { return w.outcome == OutcomeWon }

// Lost reports whether the player was destroyed.
func (w *World) Lost() bool { return w.outcome == OutcomeLost }

// Paused reports whether the simulation is paused.
func (w *World) Paused() bool { return w.paused }

// Outcome returns the session outcome so far.
func (w *World) Outcome() Outcome { return w.outcome }

// Kills returns the enemies destroyed during the session.
func (w *World) Kills() int { return w.totalKills }

// TierKills returns the kills counted toward the next tier.
func (w *World) TierKills() int { return w.difficulty.Kills() }

// Tier returns the current tier parameters.
func (w *World) Tier() Tier { return w.difficulty.Tier() }

// Frame returns the number of simulated frames.
func (w *World) Frame() int { return w.frame }

// Player returns the session's player craft.
func (w *World) Player() *Player { return w.player }

// Enemies returns the number of live enemies.
func (w *World) Enemies() int { return len(w.enemies) }

// Size returns the playfield dimensions.
func (w *World) Size() (width, height int) { return w.width, w.height }

// Duration returns the simulated time from session start to now, or to the
// end of the session once it has finished.
func (w *World) Duration() time.Duration { return w.ended - w.started }

// Entities returns a snapshot of every tracked entity.
func (w *World) Entities() []Entity {
	out := make([]Entity, len(w.all))
	copy(out, w.all)
	return out
}

// Score combines kills and cleared tiers.
func (w *World) Score() int {
	sc := w.cfg.Scoring
	cleared := w.difficulty.Tier().Index - 1
	if w.difficulty.Won() {
		cleared++
	}
	return w.totalKills*sc.PerKill + cleared*sc.PerTier
}
