// Package scene paints session snapshots onto any drawing surface.
package scene

import (
	"image/color"
	"math"

	"github.com/tomz197/spacedodge/internal/assets"
	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/loop/session"
	"github.com/tomz197/spacedodge/internal/object"
)

// Surface is what a frontend provides to draw on. Coordinates are field
// pixels.
type Surface interface {
	FillRect(x, y, w, h float64, c color.RGBA)
	FillCircle(cx, cy, r float64, c color.RGBA)
	FillPolygon(points []draw.Point, c color.RGBA)
	StrokeLine(a, b draw.Point, c color.RGBA)
	// Sprite draws a named sprite centered at (cx, cy). It reports false if
	// the sprite is not available.
	Sprite(name assets.Name, cx, cy, w, h, angle float64) bool
	// Text draws s centered at (x, y).
	Text(x, y float64, s string, c color.RGBA)
}

// Jitter returns a value in [0,1) used for flickering colors.
type Jitter func() float64

const (
	shieldScale  = 0.75 // Shield radius relative to the larger ship side
	flameWidth   = 0.4  // Flame base relative to ship width
	flameBulge   = 0.25 // Control point offset relative to flame width
	curveSamples = 4
)

// Draw paints one frame back to front.
func Draw(s Surface, snap *session.Snapshot, jitter Jitter) {
	for i := range snap.Stars {
		st := &snap.Stars[i]
		s.FillRect(math.Floor(st.X), math.Floor(st.Y), 1, 1, draw.StarColor(st.Tint))
	}

	bullet := draw.RGBA(draw.Bullet)
	for i := range snap.Bullets {
		b := &snap.Bullets[i]
		s.FillRect(b.X-b.Width/2, b.Y-b.Height/2, b.Width, b.Height, bullet)
	}

	if snap.ControlActive {
		for i := range snap.Asteroids {
			drawAsteroid(s, &snap.Asteroids[i], snap.AsteroidFallback)
		}
		for i := range snap.Powerups {
			drawPowerup(s, &snap.Powerups[i])
		}
		for i := range snap.Scores {
			fs := &snap.Scores[i]
			s.Text(fs.X, fs.Y, fs.Text, draw.Fade(draw.White, fs.Opacity()))
		}
	}

	if snap.Phase != session.PhaseGameOver {
		drawShip(s, &snap.Ship, snap.ShipFallback, jitter)
	}

	for i := range snap.Particles {
		p := &snap.Particles[i]
		s.FillRect(p.X-p.Size/2, p.Y-p.Size/2, p.Size, p.Size, draw.ParticleColor(p.Color, p.Opacity(), jitter()))
	}
}

func drawAsteroid(s Surface, a *object.Asteroid, fallback bool) {
	if !fallback && s.Sprite(assets.Asteroid, a.X, a.Y, a.Size, a.Size, a.Angle) {
		return
	}
	s.FillRect(a.X-a.Size/2, a.Y-a.Size/2, a.Size, a.Size, draw.RGBA(draw.AsteroidFallback))
}

func drawPowerup(s Surface, p *object.Powerup) {
	c := draw.PowerupColor(p.Kind)
	half := p.Size / 2

	switch p.Kind {
	case object.PowerupShield:
		s.FillCircle(p.X, p.Y, half, c)
	case object.PowerupRapidFire:
		s.FillRect(p.X-half, p.Y-half, p.Size, p.Size, c)
	case object.PowerupSpreadShot:
		third := p.Size / 3
		s.FillRect(p.X-third*1.5, p.Y-third/2, third, third, c)
		s.FillRect(p.X-third/2, p.Y-third*1.5, third, third, c)
		s.FillRect(p.X+third/2, p.Y-third/2, third, third, c)
	case object.PowerupWideShot:
		s.FillRect(p.X-half, p.Y-p.Size/4, p.Size, half, c)
	case object.PowerupMalfunction:
		s.StrokeLine(draw.Point{X: p.X - half, Y: p.Y - half}, draw.Point{X: p.X + half, Y: p.Y + half}, c)
		s.StrokeLine(draw.Point{X: p.X + half, Y: p.Y - half}, draw.Point{X: p.X - half, Y: p.Y + half}, c)
	}
}

func drawShip(s Surface, ship *object.Ship, fallback bool, jitter Jitter) {
	if ship.Shield {
		r := max(ship.Width, ship.Height) * shieldScale
		s.FillCircle(ship.X, ship.Y, r, draw.Fade(draw.Shield, draw.ShieldOpacity))
	}

	if fallback || !s.Sprite(assets.Ship, ship.X, ship.Y, ship.Width, ship.Height, 0) {
		s.FillRect(ship.X-ship.Width/2, ship.Y-ship.Height/2, ship.Width, ship.Height, draw.RGBA(draw.ShipFallback))
	}

	if ship.Flame.Size > 0 {
		s.FillPolygon(FlameOutline(ship), draw.Flame(jitter()))
	}
}

// FlameOutline approximates the exhaust flame below the ship as a polygon:
// two quadratic curves from the base corners meeting at the tip.
func FlameOutline(ship *object.Ship) []draw.Point {
	baseY := ship.Y + ship.Height/2
	tip := draw.Point{X: ship.X, Y: baseY + ship.Flame.Size}
	w := ship.Width * flameWidth
	left := draw.Point{X: ship.X - w/2, Y: baseY}
	right := draw.Point{X: ship.X + w/2, Y: baseY}
	cpY := baseY + ship.Flame.Size*0.5
	cpLeft := draw.Point{X: left.X - w*flameBulge, Y: cpY}
	cpRight := draw.Point{X: right.X + w*flameBulge, Y: cpY}

	points := make([]draw.Point, 0, 2*curveSamples+1)
	points = append(points, left)
	for i := 1; i <= curveSamples; i++ {
		points = append(points, quadratic(left, cpLeft, tip, float64(i)/curveSamples))
	}
	for i := 1; i <= curveSamples; i++ {
		points = append(points, quadratic(tip, cpRight, right, float64(i)/curveSamples))
	}
	return points
}

func quadratic(p0, p1, p2 draw.Point, t float64) draw.Point {
	u := 1 - t
	return draw.Point{
		X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}
