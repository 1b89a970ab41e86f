package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEaseConvergesMonotonically(t *testing.T) {
	var c Controller
	c.Add(50)

	prev := c.Displayed()
	ticks := 0
	for !c.Settled() {
		c.Ease()
		ticks++
		require.Less(t, ticks, 100, "must converge in bounded ticks")
		require.GreaterOrEqual(t, c.Displayed(), prev)
		require.LessOrEqual(t, c.Displayed(), c.Score(), "never overshoots")
		prev = c.Displayed()
	}
	assert.Equal(t, 50, c.Displayed())
}

func TestEaseLargeGapUsesFraction(t *testing.T) {
	var c Controller
	c.Add(1000)
	c.Ease()
	assert.Equal(t, 50, c.Displayed())

	for i := 0; i < 200 && !c.Settled(); i++ {
		c.Ease()
	}
	assert.True(t, c.Settled())
	assert.Equal(t, 1000, c.Displayed())
}

func TestEaseAfterMoreScore(t *testing.T) {
	var c Controller
	c.Add(10)
	for i := 0; i < 5; i++ {
		c.Ease()
	}
	c.Add(25)
	prev := c.Displayed()
	for !c.Settled() {
		c.Ease()
		require.GreaterOrEqual(t, c.Displayed(), prev)
		prev = c.Displayed()
	}
	assert.Equal(t, 35, c.Displayed())
}

func TestCommitAndReset(t *testing.T) {
	var c Controller
	c.SetHigh(900)
	c.Add(1200)

	assert.True(t, c.Commit())
	assert.Equal(t, 1200, c.High())

	c.Reset()
	assert.Zero(t, c.Score())
	assert.Zero(t, c.Displayed())
	assert.Equal(t, 1200, c.High())

	c.Add(100)
	assert.False(t, c.Commit())
	assert.Equal(t, 1200, c.High())

	c.SetHigh(-5)
	assert.Zero(t, c.High())
}
