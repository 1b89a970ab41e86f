// Package client runs one terminal player: it reads keys and mouse
// reports, ticks the player's game session and renders each frame.
package client

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/spacedodge/internal/assets"
	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/input"
	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/loop/session"
)

// keyboardStep is how far the arrow keys move the pointer per frame.
const keyboardStep = 6.0

// Client handles rendering and input for a single connection.
type Client struct {
	session      *session.Session
	controls     session.Controls
	sprites      *assets.Library
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	surface      *termSurface
	styles       styles
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	shutdown     <-chan struct{}
	players      func() int
	logger       *log.Logger
	rng          *rand.Rand
}

// Options configures the client.
type Options struct {
	Session      *session.Session
	Sprites      *assets.Library    // Shared sprite cache; a private one is created if nil
	TermSizeFunc draw.TermSizeFunc  // Defaults to the size of os.Stdout
	Renderer     *lipgloss.Renderer // Styles HUD text for this terminal
	Username     string
	Logger       *log.Logger
	Shutdown     <-chan struct{} // Closed when the server is stopping
	Players      func() int      // Connected player count for the title screen
}

// NewClient creates a client that reads from r and draws to w.
func NewClient(r *bufio.Reader, w io.Writer, opts Options) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	sprites := opts.Sprites
	if sprites == nil {
		sprites = assets.NewLibrary(logger)
		sprites.Preload()
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.NewRenderer(w)
	}

	state := NewClientState()
	state.pointerX = config.FieldWidth / 2
	state.pointerY = config.FieldHeight / 2
	state.prevPhase = -1

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.FieldWidth, config.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)
	st := newStyles(renderer)

	return &Client{
		session:      opts.Session,
		sprites:      sprites,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		surface:      &termSurface{canvas: canvas, sprites: sprites, styles: st},
		styles:       st,
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    time.Now(),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		shutdown:     opts.Shutdown,
		players:      opts.Players,
		logger:       logger,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run starts the client loop. Blocks until the player quits, goes idle for
// too long, ctx ends or the server finishes shutting down.
func (c *Client) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.session.Readiness().WatchSprites(ctx, c.sprites)

	if err := draw.EnterGame(c.writer); err != nil {
		return err
	}
	defer func() {
		_ = draw.LeaveGame(c.writer)
	}()
	defer c.session.Close()

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents(ctx)
		c.updateScreen()

		if c.state.shuttingDown {
			c.updateShutdownState()
		}

		snap := c.session.Tick(frameStart)

		if err := c.drawFrame(snap); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.logger.Debug("Client loop finished", "user", c.username)
	return nil
}

// processInput reads input and forwards pointer and fire changes to the session.
func (c *Client) processInput() {
	in := input.ReadInput(c.inputStream)

	if len(in.Pressed) > 0 || len(in.Mouse) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if in.Quit {
		c.state.Running = false
		return
	}

	for _, ev := range in.Mouse {
		x, y, ok := c.canvas.TerminalToLogical(ev.Col, ev.Row)
		if ok {
			c.state.pointerX, c.state.pointerY = x, y
		}
		switch {
		case ev.Kind == input.MousePress && ev.Button == 0:
			c.state.mouseHeld = true
		case ev.Kind == input.MouseRelease:
			c.state.mouseHeld = false
		}
	}

	// Arrow keys and WASD nudge the pointer for keyboard-only play.
	switch {
	case in.Left:
		c.state.pointerX -= keyboardStep
	case in.Right:
		c.state.pointerX += keyboardStep
	}
	switch {
	case in.Up:
		c.state.pointerY -= keyboardStep
	case in.Down:
		c.state.pointerY += keyboardStep
	}
	c.state.pointerX = min(max(c.state.pointerX, 0), config.FieldWidth)
	c.state.pointerY = min(max(c.state.pointerY, 0), config.FieldHeight)

	c.controls.Apply(c.session, session.Frame{
		X:              c.state.pointerX,
		Y:              c.state.pointerY,
		Fire:           c.state.mouseHeld || in.Space || in.Enter,
		ToggleAutoFire: in.AutoFire,
	})
}

// processServerEvents handles shutdown notices from the server.
func (c *Client) processServerEvents(ctx context.Context) {
	select {
	case <-ctx.Done():
		c.state.Running = false
		return
	default:
	}

	if c.shutdown == nil || c.state.shuttingDown {
		return
	}
	select {
	case <-c.shutdown:
		c.state.shuttingDown = true
		c.state.shutdownTimer = config.ShutdownDisplaySeconds
	default:
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)

	// The field keeps its logical size; only the terminal mapping changes.
	if !c.session.Field().Valid() {
		c.session.Resize(config.FieldWidth, config.FieldHeight)
	}
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
