// Package session runs a single Space Dodge game: the state machine, the
// per-tick simulation and the snapshots handed to renderers.
package session

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/object"
	"github.com/tomz197/spacedodge/internal/physics"
	"github.com/tomz197/spacedodge/internal/score"
	"github.com/tomz197/spacedodge/internal/storage"
	"github.com/tomz197/spacedodge/internal/world"
)

// Phase represents the current game phase.
type Phase int

const (
	PhaseIdle     Phase = iota // Waiting for the first press
	PhaseActive                // Ship under control, spawns running
	PhaseGameOver              // Ship destroyed, only effects animate
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseGameOver:
		return "game over"
	}
	return "unknown"
}

// HighScoreStore loads and saves the persisted high score.
type HighScoreStore interface {
	Load(ctx context.Context) int
	Save(ctx context.Context, v int) error
}

// saveTimeout bounds the high score write on reset.
const saveTimeout = 2 * time.Second

// collisionGridCellSize is the cell size for the bullet broad-phase grid.
// Must be >= the largest asteroid plus the widest bullet.
const collisionGridCellSize = 120.0

// Options configures a session.
type Options struct {
	Profile    config.Profile
	Rand       object.Rand    // Defaults to a time-seeded math/rand source
	HighScores HighScoreStore // Defaults to an in-memory store
	Readiness  *Readiness     // Defaults to a fresh tracker
	Logger     *log.Logger
	AutoFire   bool // Shoot every tick while the ship is under control
}

// Session owns all game state for one player.
type Session struct {
	logger     *log.Logger
	rng        object.Rand
	spawner    *object.AsteroidSpawner
	highScores HighScoreStore
	ready      *Readiness

	field object.Field
	ship  object.Ship
	store world.Store
	stars []object.Star
	score score.Controller
	grid  *physics.SpatialGrid

	started       bool
	phase         Phase
	controlActive bool
	animating     bool
	targetX       float64
	targetY       float64
	pointerX      float64
	pointerY      float64
	pointerDown   bool
	autoFire      bool
	gameOverAt    time.Time
	now           time.Time
	tick          uint64

	// Double-buffered snapshots to avoid allocations
	snapshot     atomic.Pointer[Snapshot]
	snapshotBufs [2]Snapshot
	snapshotIdx  int
}

// New creates a session. It stays idle until every readiness signal has
// resolved; the window signal resolves on the first valid Resize.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	profile := opts.Profile
	if profile.Validate() != nil {
		logger.Warn("Invalid difficulty profile, using classic", "profile", profile.Name)
		profile = config.Classic
	}
	highScores := opts.HighScores
	if highScores == nil {
		highScores = score.NewHighScores(storage.NewMemory(), config.HighScoreKey, logger)
	}
	ready := opts.Readiness
	if ready == nil {
		ready = NewReadiness(logger)
	}

	s := &Session{
		logger:     logger,
		rng:        rng,
		spawner:    object.NewAsteroidSpawner(profile, rng),
		highScores: highScores,
		ready:      ready,
		ship:       object.NewShip(1),
		grid:       physics.NewSpatialGrid(1, 1, collisionGridCellSize),
		autoFire:   opts.AutoFire,
	}
	s.snapshot.Store(&Snapshot{})
	return s
}

// Readiness returns the tracker external loaders report to.
func (s *Session) Readiness() *Readiness {
	return s.ready
}

// Phase returns the current game phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Started reports whether all resources are ready and the game has been set up.
func (s *Session) Started() bool {
	return s.started
}

// Resize sets the playfield size. The ship moves to the bottom center.
func (s *Session) Resize(width, height float64) {
	field := object.Field{Width: width, Height: height}
	if !field.Valid() {
		return
	}
	first := !s.field.Valid()
	s.field = field
	s.grid.Resize(width, height)
	s.ship.Dock(field)
	if first {
		s.ready.Resolve(SignalWindow, nil)
	}
}

// Field returns the playfield size.
func (s *Session) Field() object.Field {
	return s.field
}

// PointerMoved records the pointer position in field coordinates.
func (s *Session) PointerMoved(x, y float64) {
	s.pointerX = x
	s.pointerY = y
}

// Press handles a press (mouse down, touch start, fire key). The first press
// starts the game; a press after game over restarts it.
func (s *Session) Press() {
	if !s.started {
		return
	}

	if s.phase == PhaseGameOver {
		s.Reset()
		s.phase = PhaseActive
		s.controlActive = true
		s.pointerDown = true
		s.ship.Follow(s.pointerX, s.pointerY, s.field)
		s.logger.Debug("Game restarted")
		return
	}

	s.pointerDown = true
	if !s.controlActive && !s.animating {
		s.phase = PhaseActive
		s.controlActive = true
		s.animating = true
		s.targetX = s.pointerX
		s.targetY = s.pointerY
		s.logger.Debug("Game started")
	}
}

// Release handles the end of a press.
func (s *Session) Release() {
	s.pointerDown = false
}

// SetAutoFire switches continuous firing for touch devices.
func (s *Session) SetAutoFire(on bool) {
	s.autoFire = on
}

// AutoFire reports whether continuous firing is on.
func (s *Session) AutoFire() bool {
	return s.autoFire
}

// Reset commits the high score and returns to a fresh idle game.
func (s *Session) Reset() {
	s.commitHighScore()

	s.phase = PhaseIdle
	s.controlActive = false
	s.animating = false
	s.gameOverAt = time.Time{}
	s.score.Reset()
	s.store.Clear()
	s.ship.Reset()
	if s.field.Valid() {
		s.ship.Center(s.field)
	}
}

// Close persists a pending high score when the player leaves mid-game.
func (s *Session) Close() {
	if s.started {
		s.commitHighScore()
	}
}

// commitHighScore saves the score if it beats the high score. The stored
// value is re-read first, since other sessions may share the key.
func (s *Session) commitHighScore() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	s.score.SetHigh(max(s.score.High(), s.highScores.Load(ctx)))
	if !s.score.Commit() {
		return
	}
	if err := s.highScores.Save(ctx, s.score.High()); err != nil {
		s.logger.Error("Failed to save high score", "err", err)
		return
	}
	s.logger.Info("New high score", "score", s.score.High())
}

// start loads the high score and sets up the first game once every
// resource is ready.
func (s *Session) start() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	s.ship.SetAspect(s.ready.ShipAspect())
	s.score.SetHigh(s.highScores.Load(ctx))
	s.Reset()
	s.stars = object.NewStarfield(s.field, s.rng)
	s.started = true
	s.logger.Debug("Session ready", "high", s.score.High(), "field", s.field)
}
