package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spacedodge/internal/object"
)

func values(a *Arena[int]) []int {
	return a.AppendTo(nil)
}

func TestArenaSpawnIsDeferred(t *testing.T) {
	var a Arena[int]
	a.Spawn(1)
	a.Spawn(2)
	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 2, a.Pending())

	a.Flush()
	assert.Equal(t, []int{1, 2}, values(&a))
	assert.Zero(t, a.Pending())
}

func TestArenaKillKeepsIndicesUntilFlush(t *testing.T) {
	var a Arena[int]
	for i := 0; i < 5; i++ {
		a.Spawn(i * 10)
	}
	a.Flush()

	require.True(t, a.Kill(1))
	assert.False(t, a.Kill(1), "double kill is rejected")
	assert.False(t, a.Kill(7), "out of range is rejected")
	assert.False(t, a.Kill(-1))
	assert.Nil(t, a.At(1))
	assert.Equal(t, 30, *a.At(3), "indices do not shift before Flush")
	assert.Equal(t, 4, a.Live())

	a.Spawn(99)
	a.Flush()
	assert.Equal(t, []int{0, 20, 30, 40, 99}, values(&a))
	assert.True(t, a.Alive(4))
}

func TestArenaEachSkipsKilled(t *testing.T) {
	var a Arena[int]
	for i := 0; i < 4; i++ {
		a.Spawn(i)
	}
	a.Flush()

	var seen []int
	a.Each(func(i int, v *int) bool {
		seen = append(seen, *v)
		if i == 0 {
			a.Kill(2)
		}
		return true
	})
	assert.Equal(t, []int{0, 1, 3}, seen)

	seen = seen[:0]
	a.Each(func(_ int, v *int) bool {
		seen = append(seen, *v)
		return false
	})
	assert.Equal(t, []int{0}, seen)
}

func TestArenaUpdate(t *testing.T) {
	var a Arena[int]
	for i := 1; i <= 6; i++ {
		a.Spawn(i)
	}
	a.Flush()

	a.Update(func(v *int) bool {
		*v *= 10
		return *v%20 == 0
	})
	a.Flush()
	assert.Equal(t, []int{10, 30, 50}, values(&a))
}

func TestArenaClear(t *testing.T) {
	var a Arena[int]
	a.Spawn(1)
	a.Flush()
	a.Spawn(2)
	a.Kill(0)

	a.Clear()
	assert.Zero(t, a.Len())
	assert.Zero(t, a.Pending())
	a.Flush()
	assert.Zero(t, a.Len())
}

func TestStore(t *testing.T) {
	var s Store
	assert.True(t, s.Empty())

	s.Asteroids.Spawn(object.Asteroid{Health: 1})
	s.Particles.Spawn(object.Particle{Life: 3})
	assert.False(t, s.Empty())

	s.Flush()
	assert.Equal(t, 1, s.Asteroids.Len())
	assert.Equal(t, 1, s.Particles.Len())

	s.Clear()
	assert.True(t, s.Empty())
}
