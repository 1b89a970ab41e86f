package object

import (
	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/physics"
)

// AsteroidCategory represents the size category of an asteroid.
type AsteroidCategory int

const (
	AsteroidSmall AsteroidCategory = iota
	AsteroidMedium
	AsteroidLarge
)

// String returns the lower-case category name.
func (c AsteroidCategory) String() string {
	switch c {
	case AsteroidSmall:
		return "small"
	case AsteroidMedium:
		return "medium"
	case AsteroidLarge:
		return "large"
	}
	return "unknown"
}

// Health returns the number of hits an asteroid of this category absorbs.
func (c AsteroidCategory) Health() int {
	switch c {
	case AsteroidMedium:
		return 3
	case AsteroidLarge:
		return 5
	}
	return 1
}

// ScoreValue returns the points awarded for destroying the asteroid.
func (c AsteroidCategory) ScoreValue() int {
	switch c {
	case AsteroidMedium:
		return 25
	case AsteroidLarge:
		return 50
	}
	return 10
}

// Multiplier returns the size multiplier the profile assigns to the category.
func (c AsteroidCategory) Multiplier(p config.Profile) float64 {
	switch c {
	case AsteroidMedium:
		return p.MediumMultiplier
	case AsteroidLarge:
		return p.LargeMultiplier
	}
	return p.SmallMultiplier
}

// CategoryForRoll maps a uniform [0,1) roll to a category using the
// cumulative 60/30/10 thresholds.
func CategoryForRoll(roll float64) AsteroidCategory {
	switch {
	case roll < 0.6:
		return AsteroidSmall
	case roll < 0.9:
		return AsteroidMedium
	default:
		return AsteroidLarge
	}
}

// Asteroid is a destructible rock falling down the field.
type Asteroid struct {
	X, Y          float64 // Position (center)
	Size          float64 // Width and height
	Category      AsteroidCategory
	Health        int
	MaxHealth     int
	Speed         float64 // Downward px/tick
	DriftX        float64 // Horizontal px/tick
	Angle         float64 // Current rotation angle
	RotationSpeed float64 // Radians per tick
	ScoreValue    int
}

// NewAsteroid creates an asteroid of the given category with its fixed
// health and score.
func NewAsteroid(x, y float64, category AsteroidCategory, p config.Profile) Asteroid {
	health := category.Health()
	return Asteroid{
		X:          x,
		Y:          y,
		Size:       config.BaseAsteroidSize * category.Multiplier(p),
		Category:   category,
		Health:     health,
		MaxHealth:  health,
		ScoreValue: category.ScoreValue(),
	}
}

// Bounds returns the asteroid's bounding box.
func (a *Asteroid) Bounds() physics.Rect {
	return physics.CenteredRect(a.X, a.Y, a.Size, a.Size)
}

// Update moves and rotates the asteroid. Asteroids wrap horizontally and are
// removed once their top edge passes the bottom of the field.
func (a *Asteroid) Update(field Field) (remove bool) {
	a.Y += a.Speed
	a.X += a.DriftX
	a.Angle += a.RotationSpeed

	half := a.Size / 2
	if a.X+half < 0 {
		a.X = field.Width + half
	} else if a.X-half > field.Width {
		a.X = -half
	}

	return a.Y-half > field.Height
}

// Hit applies one bullet hit. Each hit slows the asteroid down.
// Returns true when the asteroid is destroyed.
func (a *Asteroid) Hit() (destroyed bool) {
	if a.Health > 0 {
		a.Health--
	}
	a.Speed *= config.AsteroidHitSlowdown
	return a.Health <= 0
}

// Damage returns how much of the asteroid's health is gone, in [0,1].
func (a *Asteroid) Damage() float64 {
	if a.MaxHealth <= 0 {
		return 0
	}
	return 1 - float64(a.Health)/float64(a.MaxHealth)
}
