package object

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/spacedodge/internal/loop/config"
)

func TestShipSize(t *testing.T) {
	s := NewShip(1.5)
	assert.InDelta(t, config.ShipWidth, s.Width, 1e-9)
	assert.InDelta(t, 45.0, s.Height, 1e-9)

	s.X, s.Y = 100, 100
	hb := s.Hitbox()
	assert.InDelta(t, 21.0, hb.Width, 1e-9)
	assert.InDelta(t, 31.5, hb.Height, 1e-9)
	cx, cy := hb.Center()
	assert.InDelta(t, 100.0, cx, 1e-9)
	assert.InDelta(t, 100.0, cy, 1e-9)

	s.SetAspect(0)
	assert.InDelta(t, s.Width, s.Height, 1e-9)
}

func TestShipFollowClamps(t *testing.T) {
	s := NewShip(1)
	s.Follow(-50, 1000, testField)
	assert.InDelta(t, 15.0, s.X, 1e-9)
	assert.InDelta(t, testField.Height-15, s.Y, 1e-9)

	s.Follow(200, 100, testField)
	assert.InDelta(t, 200.0, s.X, 1e-9)
	assert.InDelta(t, 100.0, s.Y, 1e-9)
}

func TestShipAnimateTo(t *testing.T) {
	s := NewShip(1)
	s.Center(testField)

	ticks := 0
	for !s.AnimateTo(400, 300) {
		ticks++
		assert.Less(t, ticks, 200)
	}
	assert.Equal(t, 400.0, s.X)
	assert.Equal(t, 300.0, s.Y)
	assert.Greater(t, ticks, 10, "start animation eases over several ticks")
}

func TestShipDock(t *testing.T) {
	s := NewShip(2)
	s.Dock(testField)
	assert.InDelta(t, testField.Width/2, s.X, 1e-9)
	assert.InDelta(t, testField.Height-30, s.Y, 1e-9)

	x, y := s.Nose()
	assert.InDelta(t, s.X, x, 1e-9)
	assert.InDelta(t, testField.Height-60, y, 1e-9)
}

func TestFlameFlicker(t *testing.T) {
	var f Flame
	f.Reset()

	for i := 0; i < 500; i++ {
		f.Update()
		assert.LessOrEqual(t, f.Size, config.FlameMaxSize)
		if i > 100 {
			assert.GreaterOrEqual(t, f.Size, config.FlameMinSize-config.FlameFlickerRate)
		}
	}
}

func TestShipReset(t *testing.T) {
	s := NewShip(1)
	s.Shield = true
	s.PickUp(PowerupWideShot, t0)
	s.Weapon.LastShot = t0
	s.Flame.Size = 9

	s.Reset()
	assert.False(t, s.Shield)
	assert.Empty(t, activeTimers(&s.Weapon))
	assert.True(t, s.Weapon.LastShot.IsZero())
	assert.Zero(t, s.Flame.Size)
	assert.InDelta(t, config.FlameFlickerRate, s.Flame.Rate, 1e-9)
}
