package object

import "time"

// Expiry is an optional absolute deadline. The zero value is inactive.
type Expiry struct {
	end time.Time
	set bool
}

// Arm sets the deadline to now+d.
func (e *Expiry) Arm(now time.Time, d time.Duration) {
	e.end = now.Add(d)
	e.set = true
}

// Clear deactivates the timer.
func (e *Expiry) Clear() {
	*e = Expiry{}
}

// IsSet reports whether a deadline is stored, even if it has passed.
func (e Expiry) IsSet() bool {
	return e.set
}

// Active reports whether the deadline is set and still in the future.
func (e Expiry) Active(now time.Time) bool {
	return e.set && now.Before(e.end)
}

// Expire clears the timer once now has reached the deadline.
// Returns true if the timer was cleared by this call.
func (e *Expiry) Expire(now time.Time) bool {
	if e.set && !now.Before(e.end) {
		e.Clear()
		return true
	}
	return false
}

// EndTime returns the deadline and whether one is set.
func (e Expiry) EndTime() (time.Time, bool) {
	return e.end, e.set
}

// Remaining returns the time left before the deadline, or 0 when inactive.
func (e Expiry) Remaining(now time.Time) time.Duration {
	if !e.Active(now) {
		return 0
	}
	return e.end.Sub(now)
}
