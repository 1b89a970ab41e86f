package object

import (
	"time"

	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/physics"
)

// Flame is the engine flame flicker state.
type Flame struct {
	Size float64
	Rate float64
}

// Reset restarts the flicker from zero.
func (f *Flame) Reset() {
	f.Size = 0
	f.Rate = config.FlameFlickerRate
}

// Update advances the flicker one tick, bouncing between min and max size.
func (f *Flame) Update() {
	f.Size += f.Rate
	if f.Size > config.FlameMaxSize || (f.Size < config.FlameMinSize && f.Rate < 0) {
		f.Rate = -f.Rate
		lower := 0.0
		if f.Rate < 0 {
			lower = config.FlameMinSize
		}
		f.Size = clamp(f.Size, lower, config.FlameMaxSize)
	}
}

// Ship is the player-controlled spaceship.
type Ship struct {
	X, Y          float64 // Position (center)
	Width, Height float64 // Visual size
	Shield        bool
	Weapon        Weapon
	Flame         Flame
}

// NewShip creates a ship whose height follows the sprite aspect ratio
// (height / width).
func NewShip(aspect float64) Ship {
	s := Ship{}
	s.SetAspect(aspect)
	s.Flame.Reset()
	return s
}

// SetAspect resizes the ship for a sprite with the given height/width ratio.
// Non-positive ratios fall back to a square ship.
func (s *Ship) SetAspect(aspect float64) {
	if aspect <= 0 {
		aspect = 1
	}
	s.Width = config.ShipWidth
	s.Height = config.ShipWidth * aspect
}

// Hitbox returns the collision box, smaller than the visual size and
// centered on the ship.
func (s *Ship) Hitbox() physics.Rect {
	return physics.CenteredRect(s.X, s.Y, s.Width*config.ShipHitboxRatio, s.Height*config.ShipHitboxRatio)
}

// Nose returns where bullets leave the ship.
func (s *Ship) Nose() (x, y float64) {
	return s.X, s.Y - s.Height/2
}

// Center places the ship in the middle of the field.
func (s *Ship) Center(field Field) {
	s.X = field.CenterX()
	s.Y = field.CenterY()
}

// Dock places the ship at the bottom center of the field.
func (s *Ship) Dock(field Field) {
	s.X = field.CenterX()
	s.Y = field.Height - s.Height/2
}

// Follow moves the ship to the pointer, kept fully inside the field.
func (s *Ship) Follow(x, y float64, field Field) {
	s.X, s.Y = field.Clamp(x, y, s.Width, s.Height)
}

// AnimateTo eases the ship toward (tx,ty). Returns true once it has arrived.
func (s *Ship) AnimateTo(tx, ty float64) (arrived bool) {
	dx := tx - s.X
	dy := ty - s.Y
	if physics.Distance(s.X, s.Y, tx, ty) > config.ShipSnapDistance {
		s.X += dx * config.ShipAnimationSpeed
		s.Y += dy * config.ShipAnimationSpeed
		return false
	}
	s.X = tx
	s.Y = ty
	return true
}

// PickUp applies a powerup. Shield is independent of the weapon timers;
// every other kind replaces the current weapon modifier.
func (s *Ship) PickUp(kind PowerupKind, now time.Time) {
	if kind == PowerupShield {
		s.Shield = true
		return
	}
	if mod, ok := WeaponModFor(kind); ok {
		s.Weapon.Activate(mod, now)
	}
}

// Shoot fires from the ship's nose. See Weapon.Shoot.
func (s *Ship) Shoot(now time.Time, out Spawner[Bullet]) int {
	x, y := s.Nose()
	return s.Weapon.Shoot(now, x, y, out)
}

// Reset clears the shield, weapon timers and flame.
func (s *Ship) Reset() {
	s.Shield = false
	s.Weapon.Reset()
	s.Flame.Reset()
}
