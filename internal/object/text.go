package object

import (
	"strconv"

	"github.com/tomz197/spacedodge/internal/loop/config"
)

// FloatingScore is the "+N" label that rises from a destroyed asteroid.
type FloatingScore struct {
	X, Y    float64
	Text    string
	Life    float64 // Ticks remaining
	MaxLife float64
}

// NewFloatingScore creates a label for value points at (x,y).
func NewFloatingScore(x, y float64, value int) FloatingScore {
	return FloatingScore{
		X:       x,
		Y:       y,
		Text:    "+" + strconv.Itoa(value),
		Life:    config.FloatLife,
		MaxLife: config.FloatLife,
	}
}

// Update moves the label up. Returns true once its life has run out.
func (f *FloatingScore) Update() (remove bool) {
	f.Y -= config.FloatSpeed
	f.Life--
	return f.Life <= 0
}

// Opacity returns the remaining life fraction in [0,1].
func (f *FloatingScore) Opacity() float64 {
	if f.MaxLife <= 0 {
		return 0
	}
	return clamp(f.Life/f.MaxLife, 0, 1)
}
