package session

// Frame is one frame of frontend input in field coordinates.
type Frame struct {
	X, Y           float64
	Fire           bool // Mouse button, touch or fire key held
	Touch          bool // Input came from a touch screen
	ToggleAutoFire bool
}

// Controls turns held input state into press and release edges.
type Controls struct {
	fireHeld  bool
	touchSeen bool
}

// Apply forwards one frame of input to s. The first touch turns auto-fire on,
// since a finger on the ship cannot also hold a fire button.
func (c *Controls) Apply(s *Session, f Frame) {
	s.PointerMoved(f.X, f.Y)

	if f.Touch && !c.touchSeen {
		c.touchSeen = true
		s.SetAutoFire(true)
	}
	if f.ToggleAutoFire {
		s.SetAutoFire(!s.AutoFire())
	}

	switch {
	case f.Fire && !c.fireHeld:
		s.Press()
	case !f.Fire && c.fireHeld:
		s.Release()
	}
	c.fireHeld = f.Fire
}
