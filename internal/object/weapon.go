package object

import (
	"time"

	"github.com/tomz197/spacedodge/internal/loop/config"
)

// WeaponMod is the timed modifier currently applied to the ship's gun.
// At most one is active at a time.
type WeaponMod int

const (
	ModNone WeaponMod = iota
	ModRapidFire
	ModSpreadShot
	ModWideShot
	ModMalfunction
)

// String returns the modifier name.
func (m WeaponMod) String() string {
	switch m {
	case ModNone:
		return "none"
	case ModRapidFire:
		return "rapidFire"
	case ModSpreadShot:
		return "spreadShot"
	case ModWideShot:
		return "wideShot"
	case ModMalfunction:
		return "weaponMalfunction"
	}
	return "unknown"
}

// Duration returns how long a pickup keeps the modifier active.
func (m WeaponMod) Duration() time.Duration {
	switch m {
	case ModRapidFire:
		return config.RapidFireDuration
	case ModSpreadShot:
		return config.SpreadShotDuration
	case ModWideShot:
		return config.WideShotDuration
	case ModMalfunction:
		return config.MalfunctionDuration
	}
	return 0
}

// WeaponModFor returns the modifier a powerup grants.
// ok is false for powerups that do not touch the weapon (shield).
func WeaponModFor(kind PowerupKind) (mod WeaponMod, ok bool) {
	switch kind {
	case PowerupRapidFire:
		return ModRapidFire, true
	case PowerupSpreadShot:
		return ModSpreadShot, true
	case PowerupWideShot:
		return ModWideShot, true
	case PowerupMalfunction:
		return ModMalfunction, true
	}
	return ModNone, false
}

// Weapon holds the ship's mutually exclusive weapon timers and shot cooldown.
type Weapon struct {
	RapidFire   Expiry
	SpreadShot  Expiry
	WideShot    Expiry
	Malfunction Expiry

	LastShot time.Time // Zero until the first shot
}

// timer returns the expiry that backs a modifier.
func (w *Weapon) timer(mod WeaponMod) *Expiry {
	switch mod {
	case ModRapidFire:
		return &w.RapidFire
	case ModSpreadShot:
		return &w.SpreadShot
	case ModWideShot:
		return &w.WideShot
	case ModMalfunction:
		return &w.Malfunction
	}
	return nil
}

func (w *Weapon) timers() [4]*Expiry {
	return [4]*Expiry{&w.RapidFire, &w.SpreadShot, &w.WideShot, &w.Malfunction}
}

// Activate switches to mod until now+duration, clearing the other three.
func (w *Weapon) Activate(mod WeaponMod, now time.Time) {
	for _, t := range w.timers() {
		t.Clear()
	}
	if t := w.timer(mod); t != nil {
		t.Arm(now, mod.Duration())
	}
}

// Mod returns the modifier active at now.
func (w *Weapon) Mod(now time.Time) WeaponMod {
	for _, mod := range []WeaponMod{ModMalfunction, ModRapidFire, ModSpreadShot, ModWideShot} {
		if w.timer(mod).Active(now) {
			return mod
		}
	}
	return ModNone
}

// Remaining returns the time left on the active modifier.
func (w *Weapon) Remaining(now time.Time) time.Duration {
	if t := w.timer(w.Mod(now)); t != nil {
		return t.Remaining(now)
	}
	return 0
}

// Malfunctioning reports whether firing is disabled at now.
func (w *Weapon) Malfunctioning(now time.Time) bool {
	return w.Malfunction.Active(now)
}

// Expire clears every timer whose deadline has passed.
func (w *Weapon) Expire(now time.Time) {
	for _, t := range w.timers() {
		t.Expire(now)
	}
}

// Reset clears all timers and the shot cooldown.
func (w *Weapon) Reset() {
	*w = Weapon{}
}

// FireRate returns the minimum interval between shots; the fastest
// applicable rate wins.
func (w *Weapon) FireRate(now time.Time) time.Duration {
	rate := config.BaseFireRate
	if w.WideShot.Active(now) {
		rate = min(rate, config.WideShotFireRate)
	}
	if w.RapidFire.Active(now) {
		rate = min(rate, config.RapidFireRate)
	}
	return rate
}

// CanShoot reports whether a shot would fire at now.
func (w *Weapon) CanShoot(now time.Time) bool {
	if w.Malfunctioning(now) {
		return false
	}
	if w.LastShot.IsZero() {
		return true
	}
	return now.Sub(w.LastShot) >= w.FireRate(now)
}

// Shoot fires from (x,y) if the weapon is ready and returns the number of
// bullets queued on out.
func (w *Weapon) Shoot(now time.Time, x, y float64, out Spawner[Bullet]) int {
	if !w.CanShoot(now) {
		return 0
	}

	wide := w.WideShot.Active(now)
	out.Spawn(NewBullet(x, y, 0, wide))
	fired := 1
	if w.SpreadShot.Active(now) {
		out.Spawn(NewBullet(x, y, -config.BulletSpreadSpeed, wide))
		out.Spawn(NewBullet(x, y, config.BulletSpreadSpeed, wide))
		fired += 2
	}

	w.LastShot = now
	return fired
}
