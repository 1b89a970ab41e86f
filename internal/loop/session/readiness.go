package session

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spacedodge/internal/assets"
)

// Signal is an external resource the session waits for before it can start.
type Signal int

const (
	SignalWindow Signal = iota
	SignalShipSprite
	SignalAsteroidSprite
	numSignals
)

// String returns the signal name.
func (s Signal) String() string {
	switch s {
	case SignalWindow:
		return "window"
	case SignalShipSprite:
		return "ship sprite"
	case SignalAsteroidSprite:
		return "asteroid sprite"
	}
	return "unknown"
}

// Readiness collects load-completion signals. Loaders may resolve signals
// from any goroutine.
type Readiness struct {
	mu         sync.Mutex
	done       [numSignals]bool
	failed     [numSignals]bool
	shipAspect float64
	logger     *log.Logger
}

// NewReadiness creates a readiness tracker with no signals resolved.
func NewReadiness(logger *log.Logger) *Readiness {
	if logger == nil {
		logger = log.Default()
	}
	return &Readiness{
		shipAspect: 1,
		logger:     logger,
	}
}

// Resolve marks a signal as complete. A non-nil err is logged and the
// signal still resolves, with renderers falling back to primitive shapes.
func (r *Readiness) Resolve(sig Signal, err error) {
	if sig < 0 || sig >= numSignals {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.logger.Error("Resource failed to load, using fallback", "resource", sig, "err", err)
		r.failed[sig] = true
	}
	r.done[sig] = true
}

// SetShipAspect records the ship sprite's height/width ratio.
func (r *Readiness) SetShipAspect(aspect float64) {
	if aspect <= 0 {
		return
	}
	r.mu.Lock()
	r.shipAspect = aspect
	r.mu.Unlock()
}

// ShipAspect returns the ship sprite's height/width ratio (1 until known).
func (r *Readiness) ShipAspect() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.shipAspect
}

// Ready reports whether every signal has resolved.
func (r *Readiness) Ready() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.done {
		if !d {
			return false
		}
	}
	return true
}

// Fallback reports whether sig resolved with an error.
func (r *Readiness) Fallback(sig Signal) bool {
	if sig < 0 || sig >= numSignals {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed[sig]
}

// Pending returns the signals still outstanding.
func (r *Readiness) Pending() []Signal {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Signal
	for sig, d := range r.done {
		if !d {
			out = append(out, Signal(sig))
		}
	}
	return out
}

// WatchSprites resolves the sprite signals as lib finishes decoding. The ship
// aspect is recorded before its signal resolves so the first layout uses it.
func (r *Readiness) WatchSprites(ctx context.Context, lib *assets.Library) {
	lib.Notify(ctx, func(name assets.Name, sprite *assets.Sprite, err error) {
		switch name {
		case assets.Ship:
			if err == nil {
				r.SetShipAspect(sprite.Aspect)
			}
			r.Resolve(SignalShipSprite, err)
		case assets.Asteroid:
			r.Resolve(SignalAsteroidSprite, err)
		}
	})
}
