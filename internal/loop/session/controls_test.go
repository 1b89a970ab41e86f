package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spacedodge/internal/assets"
)

func TestControlsPressOnEdge(t *testing.T) {
	s := newStarted(t, nil)
	var c Controls

	c.Apply(s, Frame{X: s.ship.X, Y: s.ship.Y, Fire: true})
	assert.Equal(t, PhaseActive, s.Phase())
	assert.True(t, s.pointerDown)

	c.Apply(s, Frame{X: 10, Y: 20, Fire: true})
	assert.True(t, s.pointerDown, "held fire does not press again")
	assert.Equal(t, 10.0, s.pointerX)
	assert.Equal(t, 20.0, s.pointerY)

	c.Apply(s, Frame{X: 10, Y: 20})
	assert.False(t, s.pointerDown)
}

func TestControlsTouchEnablesAutoFire(t *testing.T) {
	s := newStarted(t, nil)
	var c Controls

	c.Apply(s, Frame{Touch: true})
	assert.True(t, s.AutoFire())

	c.Apply(s, Frame{Touch: true, ToggleAutoFire: true})
	assert.False(t, s.AutoFire(), "later touches leave the toggle alone")

	c.Apply(s, Frame{ToggleAutoFire: true})
	assert.True(t, s.AutoFire())
}

func TestWatchSpritesResolvesSignals(t *testing.T) {
	r := NewReadiness(quietLogger())
	lib := assets.NewLibrary(quietLogger())
	lib.Preload()

	r.WatchSprites(context.Background(), lib)
	require.Eventually(t, func() bool {
		return len(r.Pending()) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []Signal{SignalWindow}, r.Pending())
	assert.InDelta(t, 1.2, r.ShipAspect(), 1e-9)
	assert.False(t, r.Fallback(SignalShipSprite))
}
