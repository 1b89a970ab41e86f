package client

import (
	"time"

	"github.com/tomz197/spacedodge/internal/loop/session"
)

// ClientState holds per-connection state that is not part of the game
// simulation: terminal bookkeeping, input edges and screen timers.
type ClientState struct {
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	isInactive    bool          // Whether the client is in inactive warning state
	wasInactive   bool
	shuttingDown  bool
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown

	prevPhase       session.Phase
	prevReady       bool
	wasShuttingDown bool

	pointerX, pointerY float64 // Pointer in field coordinates
	mouseHeld          bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running: true,
	}
}
