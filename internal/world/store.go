package world

import "github.com/tomz197/spacedodge/internal/object"

// Store owns every entity collection of a session. No entity lives in two
// collections.
type Store struct {
	Asteroids Arena[object.Asteroid]
	Bullets   Arena[object.Bullet]
	Powerups  Arena[object.Powerup]
	Scores    Arena[object.FloatingScore]
	Particles Arena[object.Particle]
}

// Flush applies the tick's removals and insertions to every collection.
func (s *Store) Flush() {
	s.Asteroids.Flush()
	s.Bullets.Flush()
	s.Powerups.Flush()
	s.Scores.Flush()
	s.Particles.Flush()
}

// Clear empties every collection.
func (s *Store) Clear() {
	s.Asteroids.Clear()
	s.Bullets.Clear()
	s.Powerups.Clear()
	s.Scores.Clear()
	s.Particles.Clear()
}

// Empty reports whether all collections are empty, counting queued spawns.
func (s *Store) Empty() bool {
	return s.Asteroids.Live()+s.Asteroids.Pending() == 0 &&
		s.Bullets.Live()+s.Bullets.Pending() == 0 &&
		s.Powerups.Live()+s.Powerups.Pending() == 0 &&
		s.Scores.Live()+s.Scores.Pending() == 0 &&
		s.Particles.Live()+s.Particles.Pending() == 0
}
