package object

import "github.com/tomz197/spacedodge/internal/loop/config"

// StarTint is the color of a background star.
type StarTint int

const (
	TintWhite StarTint = iota
	TintRed
	TintBlue
)

// Star is a background star. Smaller stars fall faster.
type Star struct {
	X, Y  float64
	Size  float64
	Speed float64
	Tint  StarTint
}

// NewStar rolls a star at a random position in the field.
func NewStar(field Field, rng Rand) Star {
	size := rng.Float64()*2 + 1

	tint := TintWhite
	switch roll := rng.Float64(); {
	case roll < 0.15:
		tint = TintRed
	case roll < 0.30:
		tint = TintBlue
	}

	return Star{
		X:     rng.Float64() * field.Width,
		Y:     rng.Float64() * field.Height,
		Size:  size,
		Speed: (1 - (size-1)/2) + 0.5,
		Tint:  tint,
	}
}

// NewStarfield fills the field with the configured number of stars.
func NewStarfield(field Field, rng Rand) []Star {
	stars := make([]Star, config.NumStars)
	for i := range stars {
		stars[i] = NewStar(field, rng)
	}
	return stars
}

// Update moves the star down, recycling it to the top at a random x once it
// passes the bottom.
func (s *Star) Update(field Field, rng Rand) {
	s.Y += s.Speed
	if s.Y > field.Height {
		s.Y = 0
		s.X = rng.Float64() * field.Width
	}
}
