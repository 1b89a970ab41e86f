// Package object defines the game entities and how each one advances per tick.
package object

// Rand is the random source entities roll against. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Spawner allows code to queue new entities of one kind during a tick.
type Spawner[T any] interface {
	Spawn(obj T)
}

// Field represents the playfield dimensions in logical pixels.
type Field struct {
	Width  float64
	Height float64
}

// CenterX returns the horizontal center of the field.
func (f Field) CenterX() float64 {
	return f.Width / 2
}

// CenterY returns the vertical center of the field.
func (f Field) CenterY() float64 {
	return f.Height / 2
}

// Valid reports whether the field has a usable size.
func (f Field) Valid() bool {
	return f.Width > 0 && f.Height > 0
}

// Clamp keeps a box of size w x h centered on (x,y) inside the field.
func (f Field) Clamp(x, y, w, h float64) (float64, float64) {
	x = clamp(x, w/2, f.Width-w/2)
	y = clamp(y, h/2, f.Height-h/2)
	return x, y
}

// spread returns a roll in [-width/2, width/2).
func spread(rng Rand, width float64) float64 {
	return (rng.Float64() - 0.5) * width
}

// between returns a roll in [lo, hi).
func between(rng Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
