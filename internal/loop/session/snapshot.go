package session

import (
	"time"

	"github.com/tomz197/spacedodge/internal/object"
)

// Snapshot is a read-only copy of the game state for rendering. A snapshot
// stays valid until two more ticks have run.
type Snapshot struct {
	Tick  uint64
	Now   time.Time
	Ready bool // All resources loaded and the game set up
	Phase Phase

	ControlActive bool
	Animating     bool

	Field           object.Field
	Ship            object.Ship
	Weapon          object.WeaponMod
	WeaponRemaining time.Duration

	Asteroids []object.Asteroid
	Bullets   []object.Bullet
	Powerups  []object.Powerup
	Scores    []object.FloatingScore
	Particles []object.Particle
	Stars     []object.Star

	Score          int
	DisplayedScore int
	HighScore      int

	GameOverElapsed time.Duration

	ShipFallback     bool // Ship sprite failed to load; draw primitives
	AsteroidFallback bool // Asteroid sprite failed to load; draw primitives
}

// Snapshot returns the most recently published snapshot.
func (s *Session) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

// publish fills the next snapshot buffer and makes it current.
func (s *Session) publish() *Snapshot {
	idx := s.snapshotIdx
	s.snapshotIdx = 1 - s.snapshotIdx // Toggle for next frame
	snap := &s.snapshotBufs[idx]

	snap.Tick = s.tick
	snap.Now = s.now
	snap.Ready = s.started
	snap.Phase = s.phase
	snap.ControlActive = s.controlActive
	snap.Animating = s.animating
	snap.Field = s.field
	snap.Ship = s.ship
	snap.Weapon = s.ship.Weapon.Mod(s.now)
	snap.WeaponRemaining = s.ship.Weapon.Remaining(s.now)

	snap.Asteroids = s.store.Asteroids.AppendTo(snap.Asteroids[:0])
	snap.Bullets = s.store.Bullets.AppendTo(snap.Bullets[:0])
	snap.Powerups = s.store.Powerups.AppendTo(snap.Powerups[:0])
	snap.Scores = s.store.Scores.AppendTo(snap.Scores[:0])
	snap.Particles = s.store.Particles.AppendTo(snap.Particles[:0])
	snap.Stars = append(snap.Stars[:0], s.stars...)

	snap.Score = s.score.Score()
	snap.DisplayedScore = s.score.Displayed()
	snap.HighScore = s.score.High()

	snap.GameOverElapsed = 0
	if s.phase == PhaseGameOver {
		snap.GameOverElapsed = s.now.Sub(s.gameOverAt)
	}

	snap.ShipFallback = s.ready.Fallback(SignalShipSprite)
	snap.AsteroidFallback = s.ready.Fallback(SignalAsteroidSprite)

	s.snapshot.Store(snap)
	return snap
}
