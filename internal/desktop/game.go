// Package desktop runs one player in a resizable window. The playfield
// follows the window size and the pointer is the mouse or a finger.
package desktop

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/spacedodge/internal/assets"
	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/loop/session"
	"github.com/tomz197/spacedodge/internal/scene"
)

// Options configures the window.
type Options struct {
	Session *session.Session
	Sprites *assets.Library // A private library is created if nil
	Logger  *log.Logger
	Title   string
}

// Game implements ebiten.Game for one session.
type Game struct {
	session  *session.Session
	sprites  *assets.Library
	controls session.Controls
	surface  *surface
	snap     *session.Snapshot
	touchIDs []ebiten.TouchID
	width    int
	height   int
	cancel   context.CancelFunc
	logger   *log.Logger
	rng      *rand.Rand
}

// NewGame creates the game and starts watching sprite loading.
func NewGame(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	sprites := opts.Sprites
	if sprites == nil {
		sprites = assets.NewLibrary(logger)
		sprites.Preload()
	}

	ctx, cancel := context.WithCancel(context.Background())
	opts.Session.Readiness().WatchSprites(ctx, sprites)

	return &Game{
		session: opts.Session,
		sprites: sprites,
		surface: newSurface(sprites),
		snap:    opts.Session.Snapshot(),
		cancel:  cancel,
		logger:  logger,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run opens the window and blocks until it closes.
func Run(opts Options) error {
	g := NewGame(opts)
	defer g.Close()

	title := opts.Title
	if title == "" {
		title = "Space Dodge"
	}
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Close stops sprite watching and saves the high score.
func (g *Game) Close() {
	g.cancel()
	g.session.Close()
}

// Update reads input and advances the session by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.controls.Apply(g.session, g.readFrame())
	g.snap = g.session.Tick(time.Now())
	return nil
}

// readFrame collects the pointer and fire state. A touch overrides the mouse.
func (g *Game) readFrame() session.Frame {
	cx, cy := ebiten.CursorPosition()
	f := session.Frame{
		X: float64(cx),
		Y: float64(cy),
		Fire: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
			ebiten.IsKeyPressed(ebiten.KeySpace) ||
			ebiten.IsKeyPressed(ebiten.KeyEnter),
		ToggleAutoFire: inpututil.IsKeyJustPressed(ebiten.KeyF),
	}

	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	if len(g.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(g.touchIDs[0])
		f.X, f.Y = float64(tx), float64(ty)
		f.Fire = true
		f.Touch = true
	}
	return f
}

// Draw paints the latest snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(draw.RGBA(draw.Background))

	snap := g.snap
	if snap.Ready {
		g.surface.begin(screen)
		scene.Draw(g.surface, snap, g.rng.Float64)
	}
	drawHUD(screen, g.surface.face, snap, g.session.AutoFire())
}

// Layout keeps one field pixel per window pixel and resizes the field with
// the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.session.Resize(float64(outsideWidth), float64(outsideHeight))
		g.logger.Debug("Window resized", "width", outsideWidth, "height", outsideHeight)
	}
	return outsideWidth, outsideHeight
}
