package object

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spacedodge/internal/loop/config"
)

var testField = Field{Width: 480, Height: 320}

func TestCategoryForRoll(t *testing.T) {
	cases := []struct {
		roll float64
		want AsteroidCategory
	}{
		{0, AsteroidSmall},
		{0.599, AsteroidSmall},
		{0.6, AsteroidMedium},
		{0.899, AsteroidMedium},
		{0.9, AsteroidLarge},
		{0.999, AsteroidLarge},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CategoryForRoll(tc.roll), "roll %v", tc.roll)
	}
}

func TestSpawnDistribution(t *testing.T) {
	const n = 100000
	s := NewAsteroidSpawner(config.Classic, rand.New(rand.NewSource(1)))

	counts := map[AsteroidCategory]int{}
	for i := 0; i < n; i++ {
		a := s.NewAsteroid(testField)
		counts[a.Category]++

		require.Equal(t, a.Category.Health(), a.Health)
		require.Equal(t, a.Health, a.MaxHealth)
		require.Equal(t, a.Category.ScoreValue(), a.ScoreValue)
	}

	assert.Len(t, counts, 3)
	assert.InDelta(t, 0.6, float64(counts[AsteroidSmall])/n, 0.01)
	assert.InDelta(t, 0.3, float64(counts[AsteroidMedium])/n, 0.01)
	assert.InDelta(t, 0.1, float64(counts[AsteroidLarge])/n, 0.01)
}

func TestCategoryTable(t *testing.T) {
	assert.Equal(t, 1, AsteroidSmall.Health())
	assert.Equal(t, 3, AsteroidMedium.Health())
	assert.Equal(t, 5, AsteroidLarge.Health())
	assert.Equal(t, 10, AsteroidSmall.ScoreValue())
	assert.Equal(t, 25, AsteroidMedium.ScoreValue())
	assert.Equal(t, 50, AsteroidLarge.ScoreValue())
	assert.InDelta(t, 2.5, AsteroidLarge.Multiplier(config.Arcade), 1e-9)
	assert.InDelta(t, 1.75, AsteroidLarge.Multiplier(config.Classic), 1e-9)
}

func TestNewAsteroidRolls(t *testing.T) {
	// x, category, speed, rotation, drift
	rng := &scriptRand{floats: []float64{0.5, 0.95, 1, 1, 0}}
	s := NewAsteroidSpawner(config.Classic, rng)

	a := s.NewAsteroid(testField)
	require.Equal(t, AsteroidLarge, a.Category)

	margin := config.BaseAsteroidSize * config.Classic.MaxMultiplier()
	assert.InDelta(t, 30*1.75, a.Size, 1e-9)
	assert.InDelta(t, 0.5*(testField.Width-margin)+a.Size/2, a.X, 1e-9)
	assert.LessOrEqual(t, a.Y+a.Size/2, 0.0, "spawns above the top edge")
	assert.InDelta(t, 2*1.3/1.75, a.Speed, 1e-9, "larger asteroids are slower")
	assert.InDelta(t, 0.025/1.75, a.RotationSpeed, 1e-9)
	assert.InDelta(t, -0.5, a.DriftX, 1e-9)
}

func TestSpawnerUpdateChance(t *testing.T) {
	out := &collect[Asteroid]{}

	s := NewAsteroidSpawner(config.Classic, &scriptRand{floats: []float64{0.5}})
	assert.False(t, s.Update(testField, out))
	assert.Empty(t, out.items)

	s = NewAsteroidSpawner(config.Classic, &scriptRand{floats: []float64{0.01}})
	assert.True(t, s.Update(testField, out))
	assert.Len(t, out.items, 1)
}

func TestAsteroidUpdate(t *testing.T) {
	a := NewAsteroid(100, 100, AsteroidSmall, config.Classic)
	a.Speed = 2
	a.DriftX = 0.5
	a.RotationSpeed = 0.01

	assert.False(t, a.Update(testField))
	assert.InDelta(t, 102.0, a.Y, 1e-9)
	assert.InDelta(t, 100.5, a.X, 1e-9)
	assert.InDelta(t, 0.01, a.Angle, 1e-9)

	t.Run("wraps left to right", func(t *testing.T) {
		a := NewAsteroid(-14.9, 50, AsteroidSmall, config.Classic)
		a.DriftX = -0.2
		a.Update(testField)
		assert.InDelta(t, testField.Width+15, a.X, 1e-9)
	})

	t.Run("wraps right to left", func(t *testing.T) {
		a := NewAsteroid(testField.Width+14.9, 50, AsteroidSmall, config.Classic)
		a.DriftX = 0.2
		a.Update(testField)
		assert.InDelta(t, -15.0, a.X, 1e-9)
	})

	t.Run("removed past bottom", func(t *testing.T) {
		a := NewAsteroid(50, testField.Height+14, AsteroidSmall, config.Classic)
		a.Speed = 2
		assert.True(t, a.Update(testField))
	})
}

func TestAsteroidHit(t *testing.T) {
	a := NewAsteroid(0, 0, AsteroidLarge, config.Classic)
	a.Speed = 1

	for want := 4; want >= 1; want-- {
		assert.False(t, a.Hit())
		assert.Equal(t, want, a.Health)
	}
	assert.True(t, a.Hit())
	assert.Equal(t, 0, a.Health)
	assert.InDelta(t, 0.59049, a.Speed, 1e-9)

	a.Hit()
	assert.Equal(t, 0, a.Health, "health never goes negative")
	assert.InDelta(t, 1.0, a.Damage(), 1e-9)
}
