package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spacedodge/internal/loop/config"
)

func TestPowerupForRoll(t *testing.T) {
	assert.Equal(t, PowerupShield, PowerupForRoll(0.1))
	assert.Equal(t, PowerupRapidFire, PowerupForRoll(0.2))
	assert.Equal(t, PowerupSpreadShot, PowerupForRoll(0.5))
	assert.Equal(t, PowerupWideShot, PowerupForRoll(0.79))
	assert.Equal(t, PowerupMalfunction, PowerupForRoll(0.8))
}

func TestDropPowerup(t *testing.T) {
	out := &collect[Powerup]{}

	s := NewAsteroidSpawner(config.Classic, &scriptRand{floats: []float64{0.2}})
	assert.False(t, s.DropPowerup(10, 10, out), "drop chance is strictly below 20%")

	s = NewAsteroidSpawner(config.Classic, &scriptRand{floats: []float64{0.1, 0.7}})
	require.True(t, s.DropPowerup(10, 20, out))
	require.Len(t, out.items, 1)
	assert.Equal(t, PowerupWideShot, out.items[0].Kind)
	assert.InDelta(t, 10.0, out.items[0].X, 1e-9)
	assert.InDelta(t, 20.0, out.items[0].Y, 1e-9)
}

func TestPowerupMotionAndPickup(t *testing.T) {
	p := NewPowerup(100, testField.Height+config.PowerupSize-3, PowerupShield)
	assert.False(t, p.Update(testField))
	assert.True(t, p.Update(testField))

	ship := NewShip(1)
	ship.X, ship.Y = 100, 100
	p = NewPowerup(100+22.4, 100, PowerupShield)
	assert.True(t, p.Touches(&ship))
	p.X = 100 + 22.5
	assert.False(t, p.Touches(&ship), "exact half-sum distance is not a pickup")
}

func TestBulletOffscreen(t *testing.T) {
	b := NewBullet(100, 5, 0, false)
	assert.False(t, b.Update(testField))
	b.Y = -config.BulletHeight + 1
	assert.True(t, b.Update(testField))

	b = NewBullet(1, 100, -config.BulletSpreadSpeed, false)
	for !b.Update(testField) {
		assert.GreaterOrEqual(t, b.X, -b.Width)
	}

	b = NewBullet(testField.Width, 100, config.BulletSpreadSpeed, true)
	for !b.Update(testField) {
		assert.LessOrEqual(t, b.X, testField.Width+b.Width)
	}
}

func TestStarRecycles(t *testing.T) {
	rng := &scriptRand{floats: []float64{0.5}}
	s := NewStar(testField, rng)
	assert.InDelta(t, 2.0, s.Size, 1e-9)
	assert.InDelta(t, 1.0, s.Speed, 1e-9)
	assert.Equal(t, TintWhite, s.Tint)

	s.Y = testField.Height - 0.5
	s.Update(testField, rng)
	assert.Zero(t, s.Y)
	assert.InDelta(t, testField.Width/2, s.X, 1e-9)

	stars := NewStarfield(testField, rng)
	assert.Len(t, stars, config.NumStars)
}
