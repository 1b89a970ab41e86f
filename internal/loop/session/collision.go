package session

import (
	"time"

	"github.com/tomz197/spacedodge/internal/object"
)

// collide resolves ship-asteroid, bullet-asteroid and ship-powerup contacts.
// An unshielded ship hit ends the game and stops the pass.
func (s *Session) collide(now time.Time) {
	if s.collideShip(now) {
		return
	}
	s.collideBullets()
	s.collectPowerups(now)
}

// collideShip checks the ship hitbox against every asteroid. The shield
// absorbs one asteroid; the next one ends the game.
// Returns true if the game ended.
func (s *Session) collideShip(now time.Time) bool {
	hitbox := s.ship.Hitbox()
	over := false

	s.store.Asteroids.Each(func(i int, a *object.Asteroid) bool {
		if !hitbox.Overlaps(a.Bounds()) {
			return true
		}
		if s.ship.Shield {
			s.ship.Shield = false
			object.SpawnDebris(a, s.rng, &s.store.Particles)
			s.store.Asteroids.Kill(i)
			s.logger.Debug("Shield absorbed asteroid", "category", a.Category)
			return true
		}
		s.endGame(now)
		over = true
		return false
	})

	return over
}

// endGame switches to game over and blows up the ship.
func (s *Session) endGame(now time.Time) {
	s.phase = PhaseGameOver
	s.gameOverAt = now
	s.animating = false
	object.SpawnExplosion(s.ship.X, s.ship.Y, s.rng, &s.store.Particles)
	s.logger.Debug("Game over", "score", s.score.Score())
}

// collideBullets resolves bullet hits. Each asteroid takes at most one bullet
// per tick, the lowest-indexed overlapping one.
func (s *Session) collideBullets() {
	if s.store.Bullets.Live() == 0 || s.store.Asteroids.Live() == 0 {
		return
	}

	s.grid.Clear()
	s.store.Bullets.Each(func(i int, b *object.Bullet) bool {
		s.grid.Insert(b.Bounds(), i)
		return true
	})

	s.store.Asteroids.Each(func(i int, a *object.Asteroid) bool {
		bounds := a.Bounds()
		hit := -1
		s.grid.QueryRect(bounds, func(j int) bool {
			b := s.store.Bullets.At(j)
			if b == nil || !bounds.Overlaps(b.Bounds()) {
				return false
			}
			if hit < 0 || j < hit {
				hit = j
			}
			return false
		})
		if hit >= 0 {
			s.resolveHit(i, a, hit)
		}
		return true
	})
}

// resolveHit applies bullet j to asteroid i.
func (s *Session) resolveHit(i int, a *object.Asteroid, j int) {
	b := s.store.Bullets.At(j)
	if b == nil {
		return
	}
	bx, by := b.X, b.Y
	s.store.Bullets.Kill(j)
	object.SpawnImpact(bx, by, s.rng, &s.store.Particles)

	if !a.Hit() {
		return
	}

	s.score.Add(a.ScoreValue)
	s.store.Scores.Spawn(object.NewFloatingScore(a.X, a.Y, a.ScoreValue))
	object.SpawnDebris(a, s.rng, &s.store.Particles)
	s.spawner.DropPowerup(a.X, a.Y, &s.store.Powerups)
	s.store.Asteroids.Kill(i)
}

// collectPowerups picks up every powerup touching the ship.
func (s *Session) collectPowerups(now time.Time) {
	s.store.Powerups.Each(func(i int, p *object.Powerup) bool {
		if p.Touches(&s.ship) {
			s.ship.PickUp(p.Kind, now)
			s.store.Powerups.Kill(i)
			s.logger.Debug("Powerup collected", "kind", p.Kind)
		}
		return true
	})
}
