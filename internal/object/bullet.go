package object

import (
	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/physics"
)

// Bullet is a shot travelling up the field.
type Bullet struct {
	X, Y          float64 // Position (center)
	Width, Height float64
	DX            float64 // Horizontal px/tick
	Speed         float64 // Upward px/tick
	Wide          bool
}

// NewBullet creates a bullet at (x,y) with horizontal drift dx.
func NewBullet(x, y, dx float64, wide bool) Bullet {
	b := Bullet{
		X:      x,
		Y:      y,
		Width:  config.BulletWidth,
		Height: config.BulletHeight,
		DX:     dx,
		Speed:  config.BulletSpeed,
		Wide:   wide,
	}
	if wide {
		b.Width = config.WideBulletWidth
		b.Height = config.WideBulletHeight
	}
	return b
}

// Bounds returns the bullet's box, centered on its position.
func (b *Bullet) Bounds() physics.Rect {
	return physics.CenteredRect(b.X, b.Y, b.Width, b.Height)
}

// Update moves the bullet. Returns true once it is off the top, left or
// right edge.
func (b *Bullet) Update(field Field) (remove bool) {
	b.Y -= b.Speed
	b.X += b.DX
	return b.Y < -b.Height || b.X < -b.Width || b.X > field.Width+b.Width
}
