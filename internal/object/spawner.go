package object

import "github.com/tomz197/spacedodge/internal/loop/config"

// AsteroidSpawner rolls new asteroids and powerups for a difficulty profile.
type AsteroidSpawner struct {
	profile config.Profile
	rng     Rand
}

// NewAsteroidSpawner creates a spawner drawing from rng.
func NewAsteroidSpawner(profile config.Profile, rng Rand) *AsteroidSpawner {
	return &AsteroidSpawner{
		profile: profile,
		rng:     rng,
	}
}

// Profile returns the difficulty profile in use.
func (s *AsteroidSpawner) Profile() config.Profile {
	return s.profile
}

// Update rolls the per-tick spawn chance and queues an asteroid on success.
func (s *AsteroidSpawner) Update(field Field, out Spawner[Asteroid]) bool {
	if s.rng.Float64() >= s.profile.SpawnChance {
		return false
	}
	out.Spawn(s.NewAsteroid(field))
	return true
}

// NewAsteroid rolls a fresh asteroid above the top edge. The horizontal
// range leaves room for the largest size the profile can produce.
func (s *AsteroidSpawner) NewAsteroid(field Field) Asteroid {
	margin := config.BaseAsteroidSize * s.profile.MaxMultiplier()
	left := s.rng.Float64() * max(field.Width-margin, 0)

	category := CategoryForRoll(s.rng.Float64())
	mult := category.Multiplier(s.profile)

	a := NewAsteroid(0, 0, category, s.profile)
	a.X = left + a.Size/2
	a.Y = -margin + a.Size/2
	a.Speed = s.profile.BaseSpeed * between(s.rng, config.AsteroidSpeedMin, config.AsteroidSpeedMax) / mult
	a.RotationSpeed = spread(s.rng, config.AsteroidSpinRange) / mult
	a.DriftX = spread(s.rng, config.AsteroidDriftRange)
	return a
}

// DropPowerup rolls the drop chance for a destroyed asteroid and queues a
// powerup at its center on success.
func (s *AsteroidSpawner) DropPowerup(x, y float64, out Spawner[Powerup]) bool {
	if s.rng.Float64() >= config.PowerupDropChance {
		return false
	}
	out.Spawn(NewPowerup(x, y, PowerupForRoll(s.rng.Float64())))
	return true
}
