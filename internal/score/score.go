// Package score tracks the running score, its animated display value and the
// persisted high score.
package score

import (
	"math"

	"github.com/tomz197/spacedodge/internal/loop/config"
)

// Controller holds the score state of one session.
type Controller struct {
	score     int
	displayed float64
	high      int
}

// Add awards points.
func (c *Controller) Add(points int) {
	c.score += points
}

// Score returns the raw score.
func (c *Controller) Score() int {
	return c.score
}

// High returns the best score known to this session.
func (c *Controller) High() int {
	return c.high
}

// SetHigh sets the high score, typically from storage.
func (c *Controller) SetHigh(high int) {
	c.high = max(high, 0)
}

// Displayed returns the animated score shown to the player.
func (c *Controller) Displayed() int {
	return int(math.Floor(c.displayed))
}

// Ease moves the displayed score toward the raw score by the larger of a
// fixed step and a fraction of the gap, never overshooting.
func (c *Controller) Ease() {
	target := float64(c.score)
	switch {
	case c.displayed < target:
		c.displayed += max(config.ScoreEaseMinStep, (target-c.displayed)*config.ScoreEaseFraction)
		if c.displayed > target {
			c.displayed = target
		}
	case c.displayed > target:
		c.displayed -= max(config.ScoreEaseMinStep, (c.displayed-target)*config.ScoreEaseFraction)
		if c.displayed < target {
			c.displayed = target
		}
	}
}

// Settled reports whether the displayed score has caught up.
func (c *Controller) Settled() bool {
	return c.displayed == float64(c.score)
}

// Commit raises the high score to the raw score if it was beaten.
// Returns true when the high score changed.
func (c *Controller) Commit() bool {
	if c.score <= c.high {
		return false
	}
	c.high = c.score
	return true
}

// Reset zeroes the raw and displayed scores. The high score is kept.
func (c *Controller) Reset() {
	c.score = 0
	c.displayed = 0
}
