package object

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spacedodge/internal/loop/config"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func activeTimers(w *Weapon) []string {
	var names []string
	for _, mod := range []WeaponMod{ModRapidFire, ModSpreadShot, ModWideShot, ModMalfunction} {
		if w.timer(mod).IsSet() {
			names = append(names, mod.String())
		}
	}
	return names
}

func TestExpiry(t *testing.T) {
	var e Expiry
	assert.False(t, e.IsSet())
	assert.False(t, e.Active(t0))
	assert.False(t, e.Expire(t0))

	e.Arm(t0, time.Second)
	end, ok := e.EndTime()
	require.True(t, ok)
	assert.Equal(t, t0.Add(time.Second), end)
	assert.True(t, e.Active(t0.Add(999*time.Millisecond)))
	assert.Equal(t, 500*time.Millisecond, e.Remaining(t0.Add(500*time.Millisecond)))

	assert.False(t, e.Expire(t0.Add(999*time.Millisecond)))
	assert.True(t, e.Expire(t0.Add(time.Second)), "deadline equal to now expires")
	assert.False(t, e.IsSet())
}

func TestPickupSetsExactlyOneTimer(t *testing.T) {
	kinds := []PowerupKind{PowerupRapidFire, PowerupSpreadShot, PowerupWideShot, PowerupMalfunction}
	for _, first := range kinds {
		for _, second := range kinds {
			t.Run(first.String()+"_then_"+second.String(), func(t *testing.T) {
				ship := NewShip(1)
				ship.PickUp(PowerupShield, t0)
				ship.PickUp(first, t0)
				ship.PickUp(second, t0.Add(10*time.Millisecond))

				mod, _ := WeaponModFor(second)
				assert.Equal(t, []string{mod.String()}, activeTimers(&ship.Weapon))
				assert.Equal(t, mod, ship.Weapon.Mod(t0.Add(20*time.Millisecond)))
				assert.True(t, ship.Shield, "weapon pickups leave the shield alone")
			})
		}
	}
}

func TestRapidFireThenSpreadShot(t *testing.T) {
	ship := NewShip(1)
	ship.PickUp(PowerupRapidFire, t0)
	ship.PickUp(PowerupSpreadShot, t0)

	_, rapidSet := ship.Weapon.RapidFire.EndTime()
	spreadEnd, spreadSet := ship.Weapon.SpreadShot.EndTime()
	assert.False(t, rapidSet)
	require.True(t, spreadSet)
	assert.Equal(t, t0.Add(config.SpreadShotDuration), spreadEnd)
}

func TestShieldPickupKeepsWeapon(t *testing.T) {
	ship := NewShip(1)
	ship.PickUp(PowerupWideShot, t0)
	ship.PickUp(PowerupShield, t0)
	assert.True(t, ship.Shield)
	assert.Equal(t, ModWideShot, ship.Weapon.Mod(t0))
}

func TestMalfunctionNeverShoots(t *testing.T) {
	ship := NewShip(1)
	ship.PickUp(PowerupMalfunction, t0)
	out := &collect[Bullet]{}

	for dt := time.Duration(0); dt < config.MalfunctionDuration; dt += 16 * time.Millisecond {
		assert.Zero(t, ship.Shoot(t0.Add(dt), out))
	}
	assert.Empty(t, out.items)

	end := t0.Add(config.MalfunctionDuration)
	ship.Weapon.Expire(end)
	assert.Equal(t, 1, ship.Shoot(end, out))
}

func TestFireRate(t *testing.T) {
	var w Weapon
	assert.Equal(t, config.BaseFireRate, w.FireRate(t0))

	w.Activate(ModWideShot, t0)
	assert.Equal(t, config.WideShotFireRate, w.FireRate(t0))

	w.Activate(ModRapidFire, t0)
	assert.Equal(t, config.RapidFireRate, w.FireRate(t0))

	w.Activate(ModSpreadShot, t0)
	assert.Equal(t, config.BaseFireRate, w.FireRate(t0))
}

func TestShootCooldown(t *testing.T) {
	var w Weapon
	out := &collect[Bullet]{}

	assert.Equal(t, 1, w.Shoot(t0, 10, 20, out), "first shot is never throttled")
	assert.Zero(t, w.Shoot(t0.Add(config.BaseFireRate-time.Millisecond), 10, 20, out))
	assert.Equal(t, 1, w.Shoot(t0.Add(config.BaseFireRate), 10, 20, out))
	assert.Len(t, out.items, 2)
	assert.Equal(t, t0.Add(config.BaseFireRate), w.LastShot)

	b := out.items[0]
	assert.InDelta(t, 10.0, b.X, 1e-9)
	assert.InDelta(t, 20.0, b.Y, 1e-9)
	assert.InDelta(t, config.BulletWidth, b.Width, 1e-9)
	assert.InDelta(t, config.BulletHeight, b.Height, 1e-9)
}

func TestShootSpreadAndWide(t *testing.T) {
	var w Weapon
	out := &collect[Bullet]{}

	w.Activate(ModSpreadShot, t0)
	require.Equal(t, 3, w.Shoot(t0, 0, 0, out))
	var dxs []float64
	for _, b := range out.items {
		dxs = append(dxs, b.DX)
		assert.False(t, b.Wide)
	}
	assert.ElementsMatch(t, []float64{0, -config.BulletSpreadSpeed, config.BulletSpreadSpeed}, dxs)

	out.items = nil
	w.Activate(ModWideShot, t0)
	require.Equal(t, 1, w.Shoot(t0.Add(time.Second), 0, 0, out))
	assert.True(t, out.items[0].Wide)
	assert.InDelta(t, config.WideBulletWidth, out.items[0].Width, 1e-9)
	assert.InDelta(t, config.WideBulletHeight, out.items[0].Height, 1e-9)
}

func TestWeaponExpire(t *testing.T) {
	var w Weapon
	w.Activate(ModRapidFire, t0)
	w.Expire(t0.Add(config.RapidFireDuration - time.Millisecond))
	assert.Equal(t, ModRapidFire, w.Mod(t0))

	w.Expire(t0.Add(config.RapidFireDuration))
	assert.Empty(t, activeTimers(&w))
	assert.Equal(t, ModNone, w.Mod(t0))
}
