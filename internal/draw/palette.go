package draw

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/spacedodge/internal/object"
)

// Base colors shared by every renderer.
var (
	Background = colorful.Color{R: 0, G: 0, B: 0}
	White      = colorful.Color{R: 1, G: 1, B: 1}
	Bullet     = mustParseHex("#F85013")
	Shield     = mustParseHex("#0096FF")
	Title      = mustParseHex("#F85013")

	ShipFallback     = mustParseHex("#00FF00")
	AsteroidFallback = mustParseHex("#FF0000")

	starTints = map[object.StarTint]colorful.Color{
		object.TintWhite: White,
		object.TintRed:   mustParseHex("#FFDCDC"),
		object.TintBlue:  mustParseHex("#DCDCFF"),
	}

	powerupColors = map[object.PowerupKind]colorful.Color{
		object.PowerupShield:      mustParseHex("#0096FF"),
		object.PowerupRapidFire:   mustParseHex("#FF6400"),
		object.PowerupSpreadShot:  mustParseHex("#00C864"),
		object.PowerupWideShot:    mustParseHex("#C8C8C8"),
		object.PowerupMalfunction: mustParseHex("#FF0000"),
	}
)

// Opacities the shapes are composited with.
const (
	ShieldOpacity  = 0.4
	FlameOpacity   = 0.8
	PowerupOpacity = 0.9
)

// RGBA converts to an opaque 8-bit color.
func RGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Fade composites c over the background at the given opacity.
func Fade(c colorful.Color, opacity float64) color.RGBA {
	return RGBA(Background.BlendRgb(c, clamp01(opacity)))
}

// Flame returns a flickering exhaust color; jitter in [0,1) picks the shade.
func Flame(jitter float64) color.RGBA {
	c := colorful.Color{R: 1, G: (100 + jitter*155) / 255, B: 0}
	return Fade(c, FlameOpacity)
}

// ParticleColor returns a particle's color at the given fade.
// jitter in [0,1) varies fiery and spark shades between frames.
func ParticleColor(kind object.ParticleColor, opacity, jitter float64) color.RGBA {
	switch kind {
	case object.ColorGrey:
		return Fade(colorful.Color{R: 180.0 / 255, G: 180.0 / 255, B: 180.0 / 255}, opacity*0.8)
	case object.ColorSpark:
		return Fade(colorful.Color{R: 1, G: 1, B: (100 + jitter*155) / 255}, opacity*0.95)
	default:
		return Fade(colorful.Color{R: 200.0 / 255, G: (50 + jitter*100) / 255, B: 0}, opacity*0.9)
	}
}

// StarColor returns a background star's tint.
func StarColor(tint object.StarTint) color.RGBA {
	c, ok := starTints[tint]
	if !ok {
		c = White
	}
	return RGBA(c)
}

// PowerupColor returns the fill color of a powerup's icon.
func PowerupColor(kind object.PowerupKind) color.RGBA {
	return Fade(PowerupBase(kind), PowerupOpacity)
}

// PowerupBase returns the unfaded color for a powerup kind.
func PowerupBase(kind object.PowerupKind) colorful.Color {
	c, ok := powerupColors[kind]
	if !ok {
		return White
	}
	return c
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// mustParseHex parses a "#rrggbb" literal via colorful.Hex, panicking on error.
func mustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}
