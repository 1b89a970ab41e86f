package session

import (
	"time"

	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/object"
)

// Tick advances the game one step. now is read once per frame by the caller
// and used for every timer comparison in the step.
func (s *Session) Tick(now time.Time) *Snapshot {
	s.now = now
	s.tick++

	if !s.started && s.ready.Ready() && s.field.Valid() {
		s.start()
	}

	switch {
	case !s.started:
		// Nothing to simulate yet.
	case s.phase == PhaseIdle:
		s.ship.Center(s.field)
		s.updateEffects()
	case s.phase == PhaseActive:
		s.updateActive(now)
	case s.phase == PhaseGameOver:
		s.updateEffects()
	}

	s.store.Flush()
	s.score.Ease()
	return s.publish()
}

// updateActive runs one gameplay step: spawn, move, collide, expire timers.
func (s *Session) updateActive(now time.Time) {
	s.steer()

	if s.pointerDown || s.autoFire {
		s.ship.Shoot(now, &s.store.Bullets)
	}
	s.spawner.Update(s.field, &s.store.Asteroids)

	s.move()
	s.collide(now)

	if s.phase != PhaseActive {
		return
	}
	s.expire(now)
}

// steer moves the ship: the start animation first, then pointer following.
func (s *Session) steer() {
	if s.animating {
		if s.ship.AnimateTo(s.targetX, s.targetY) {
			s.animating = false
		}
	} else if s.controlActive {
		s.ship.Follow(s.pointerX, s.pointerY, s.field)
	}
	s.ship.Flame.Update()
}

// move advances every entity and drops the ones that left the field.
func (s *Session) move() {
	s.store.Asteroids.Update(func(a *object.Asteroid) bool {
		return a.Update(s.field)
	})
	s.store.Bullets.Update(func(b *object.Bullet) bool {
		return b.Update(s.field)
	})
	s.store.Powerups.Update(func(p *object.Powerup) bool {
		return p.Update(s.field)
	})
	s.store.Scores.Update(func(f *object.FloatingScore) bool {
		return f.Update()
	})
	s.updateEffects()
}

// updateEffects animates particles and stars, which keep running after game over.
func (s *Session) updateEffects() {
	s.store.Particles.Update(func(p *object.Particle) bool {
		return p.Update()
	})
	for i := range s.stars {
		s.stars[i].Update(s.field, s.rng)
	}
}

// expire clears finished weapon timers and throws malfunction sparks.
func (s *Session) expire(now time.Time) {
	s.ship.Weapon.Expire(now)
	if s.ship.Weapon.Malfunctioning(now) && s.rng.Float64() < config.MalfunctionSparkChance {
		object.SpawnSparks(&s.ship, s.rng, &s.store.Particles)
	}
}
