package object

import (
	"github.com/tomz197/spacedodge/internal/loop/config"
)

// ParticleColor tags how a particle is tinted when drawn.
type ParticleColor int

const (
	ColorFiery ParticleColor = iota // Default red/orange/yellow fire
	ColorGrey                       // Rock chips from a bullet impact
	ColorSpark                      // Malfunction sparks
)

// Particle is a short-lived visual effect.
type Particle struct {
	X, Y    float64 // Position
	VX, VY  float64 // Velocity (px/tick)
	Size    float64
	Life    float64 // Ticks remaining
	MaxLife float64 // Initial life for fading; 0 means the default
	Color   ParticleColor
}

// Update moves the particle and applies friction.
// Returns true once its life has run out.
func (p *Particle) Update() (remove bool) {
	p.X += p.VX
	p.Y += p.VY
	p.Life--
	p.VX *= config.ParticleFriction
	p.VY *= config.ParticleFriction
	return p.Life <= 0
}

// Opacity returns the remaining life fraction in [0,1].
func (p *Particle) Opacity() float64 {
	maxLife := p.MaxLife
	if maxLife <= 0 {
		maxLife = config.DefaultMaxLife
	}
	return clamp(p.Life/maxLife, 0, 1)
}

// SpawnExplosion bursts the ship apart: 30 large fiery particles.
func SpawnExplosion(x, y float64, rng Rand, out Spawner[Particle]) {
	const (
		count = 30
		speed = 8.0
	)
	life := 50 + rng.Float64()*30
	size := rng.Float64()*4 + 2

	for i := 0; i < count; i++ {
		out.Spawn(Particle{
			X:    x,
			Y:    y,
			VX:   spread(rng, speed),
			VY:   spread(rng, speed),
			Size: size,
			Life: life,
		})
	}
}

// SpawnDebris breaks up a destroyed asteroid. Count, speed, size and life all
// grow with the asteroid's size.
func SpawnDebris(a *Asteroid, rng Rand, out Spawner[Particle]) {
	const (
		baseCount = 8
		baseSpeed = 3.0
		baseSize  = 1.5
		baseLife  = 25.0
	)
	scale := a.Size / config.BaseAsteroidSize
	count := int(baseCount * scale)
	speed := baseSpeed * (1 + (scale-1)*0.5)
	life := baseLife * scale
	sizeMin := baseSize * scale * 0.8
	sizeMax := baseSize * scale * 1.2

	for i := 0; i < count; i++ {
		out.Spawn(Particle{
			X:       a.X,
			Y:       a.Y,
			VX:      spread(rng, speed),
			VY:      spread(rng, speed),
			Size:    between(rng, sizeMin, sizeMax),
			Life:    life * between(rng, 0.8, 1.2),
			MaxLife: life,
		})
	}
}

// SpawnImpact throws a few grey chips where a bullet hit.
func SpawnImpact(x, y float64, rng Rand, out Spawner[Particle]) {
	count := 4 + rng.Intn(4)
	speed := 4 + rng.Float64()*2
	life := 20 + rng.Float64()*15

	for i := 0; i < count; i++ {
		out.Spawn(Particle{
			X:       x,
			Y:       y,
			VX:      spread(rng, speed),
			VY:      spread(rng, speed),
			Size:    rng.Float64()*3 + 2.5,
			Life:    life,
			MaxLife: life,
			Color:   ColorGrey,
		})
	}
}

// SpawnSparks emits one or two sparks near the ship's nose.
func SpawnSparks(ship *Ship, rng Rand, out Spawner[Particle]) {
	count := 1 + rng.Intn(2)
	speed := 2 + rng.Float64()*2
	life := 8 + rng.Float64()*8

	x := ship.X + spread(rng, ship.Width*0.4)
	y := ship.Y - ship.Height*0.3 + spread(rng, ship.Height*0.2)

	for i := 0; i < count; i++ {
		out.Spawn(Particle{
			X:       x,
			Y:       y,
			VX:      spread(rng, speed),
			VY:      spread(rng, speed),
			Size:    rng.Float64()*3 + 2,
			Life:    life,
			MaxLife: life,
			Color:   ColorSpark,
		})
	}
}
