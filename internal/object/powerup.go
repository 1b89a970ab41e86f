package object

import (
	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/physics"
)

// PowerupKind identifies what a powerup does when picked up.
type PowerupKind int

const (
	PowerupShield PowerupKind = iota
	PowerupRapidFire
	PowerupSpreadShot
	PowerupWideShot
	PowerupMalfunction
)

// String returns the powerup name.
func (k PowerupKind) String() string {
	switch k {
	case PowerupShield:
		return "shield"
	case PowerupRapidFire:
		return "rapidFire"
	case PowerupSpreadShot:
		return "spreadShot"
	case PowerupWideShot:
		return "wideShot"
	case PowerupMalfunction:
		return "weaponMalfunction"
	}
	return "unknown"
}

// PowerupForRoll maps a uniform [0,1) roll to one of five equal bands.
func PowerupForRoll(roll float64) PowerupKind {
	switch {
	case roll < 0.2:
		return PowerupShield
	case roll < 0.4:
		return PowerupRapidFire
	case roll < 0.6:
		return PowerupSpreadShot
	case roll < 0.8:
		return PowerupWideShot
	default:
		return PowerupMalfunction
	}
}

// Powerup is a pickup drifting down from a destroyed asteroid.
type Powerup struct {
	X, Y  float64 // Position (center)
	Size  float64
	Kind  PowerupKind
	Speed float64
}

// NewPowerup creates a powerup centered on (x,y).
func NewPowerup(x, y float64, kind PowerupKind) Powerup {
	return Powerup{
		X:     x,
		Y:     y,
		Size:  config.PowerupSize,
		Kind:  kind,
		Speed: config.PowerupSpeed,
	}
}

// Update moves the powerup down. Returns true once it has left the bottom.
func (p *Powerup) Update(field Field) (remove bool) {
	p.Y += p.Speed
	return p.Y > field.Height+p.Size
}

// Touches reports whether the powerup is close enough to the ship to be
// collected: center distance below the half-sum of their widths.
func (p *Powerup) Touches(ship *Ship) bool {
	return physics.CirclesOverlap(p.X, p.Y, p.Size/2, ship.X, ship.Y, ship.Width/2)
}
