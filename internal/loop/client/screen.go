package client

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/spacedodge/internal/assets"
	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/loop/config"
	"github.com/tomz197/spacedodge/internal/loop/session"
	"github.com/tomz197/spacedodge/internal/scene"
)

// styles are the lipgloss styles for one terminal.
type styles struct {
	renderer *lipgloss.Renderer
	hud      lipgloss.Style
	dim      lipgloss.Style
	title    lipgloss.Style
	prompt   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	// The canvas already emits 24-bit colors, so text may too.
	r.SetColorProfile(termenv.TrueColor)
	return styles{
		renderer: r,
		hud:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")),
		dim:      r.NewStyle().Foreground(lipgloss.Color("#8A8A8A")),
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color(draw.Title.Hex())),
		prompt:   r.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
	}
}

// color returns a style with c as the foreground.
func (s styles) color(c color.RGBA) lipgloss.Style {
	return s.renderer.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)))
}

// overlayText is text queued by the scene, written after the canvas.
type overlayText struct {
	x, y float64
	s    string
	c    color.RGBA
}

// termSurface draws scene primitives onto the half-block canvas.
type termSurface struct {
	canvas  *draw.Canvas
	sprites *assets.Library
	styles  styles
	texts   []overlayText
}

func (t *termSurface) FillRect(x, y, w, h float64, c color.RGBA) {
	t.canvas.FillRect(x, y, w, h, c)
}

func (t *termSurface) FillCircle(cx, cy, r float64, c color.RGBA) {
	t.canvas.FillCircle(cx, cy, r, c)
}

func (t *termSurface) FillPolygon(points []draw.Point, c color.RGBA) {
	t.canvas.DrawPolygon(points, true, c)
}

func (t *termSurface) StrokeLine(a, b draw.Point, c color.RGBA) {
	t.canvas.DrawLine(a, b, c)
}

func (t *termSurface) Sprite(name assets.Name, cx, cy, w, h, angle float64) bool {
	sprite, ok := t.sprites.Get(name)
	if !ok {
		return false
	}
	pw, ph := t.canvas.PixelSize(w, h)
	t.canvas.DrawImage(sprite.Scaled(pw, ph), cx, cy, w, h, angle)
	return true
}

func (t *termSurface) Text(x, y float64, s string, c color.RGBA) {
	t.texts = append(t.texts, overlayText{x: x, y: y, s: s, c: c})
}

// flushTexts writes queued scene text and marks it for repaint next frame.
func (t *termSurface) flushTexts(cw *draw.ChunkWriter) {
	for _, txt := range t.texts {
		col, row := t.canvas.LogicalToTerminal(txt.x, txt.y)
		col -= len(txt.s) / 2
		if row < 1 || row > t.canvas.TerminalHeight() || col < 1 || col+len(txt.s) > t.canvas.TerminalWidth() {
			continue
		}
		cw.WriteAt(col, row, t.styles.color(txt.c).Render(txt.s))
		t.canvas.MarkTextDirty(col, row, len(txt.s))
	}
	t.texts = t.texts[:0]
}

// drawFrame draws the current frame.
func (c *Client) drawFrame(snap *session.Snapshot) error {
	// On phase or overlay transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	if snap.Phase != c.state.prevPhase || snap.Ready != c.state.prevReady ||
		c.state.isInactive != c.state.wasInactive || c.state.shuttingDown != c.state.wasShuttingDown {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevPhase = snap.Phase
		c.state.prevReady = snap.Ready
		c.state.wasInactive = c.state.isInactive
		c.state.wasShuttingDown = c.state.shuttingDown
	}

	c.canvas.Clear()
	if snap.Ready {
		scene.Draw(c.surface, snap, c.rng.Float64)
	}

	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.surface.flushTexts(c.chunkWriter)
	c.drawUI(snap)

	return c.chunkWriter.Flush()
}

// writeText writes styled text at a canvas position. The cells are marked
// dirty so the canvas repaints them once the text goes away.
func (c *Client) writeText(col, row int, s string) {
	width := lipgloss.Width(s)
	if row < 1 || row > c.canvas.TerminalHeight() || col < 1 {
		return
	}
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, width)
}

// writeCentered writes s centered on column centerX.
func (c *Client) writeCentered(centerX, row int, s string) {
	c.writeText(centerX-lipgloss.Width(s)/2, row, s)
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI(snap *session.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.shuttingDown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch {
	case !snap.Ready:
		c.drawLoadingScreen(centerX, centerY, snap)
	case snap.Phase == session.PhaseGameOver:
		c.drawGameOverScreen(centerX, centerY, snap)
	case !snap.ControlActive:
		c.drawStartScreen(centerX, centerY)
	default:
		c.drawPlayingHUD(termWidth, termHeight, snap)
	}
}

// blinkOn drives blinking prompts.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawLoadingScreen lists what the game is still waiting for.
func (c *Client) drawLoadingScreen(centerX, centerY int, snap *session.Snapshot) {
	for i, line := range scene.Lines(snap) {
		c.writeCentered(centerX, centerY-1+i, c.styles.hud.Render(line))
	}

	pending := c.session.Readiness().Pending()
	names := make([]string, len(pending))
	for i, sig := range pending {
		names[i] = sig.String()
	}
	if len(names) > 0 {
		c.writeCentered(centerX, centerY+1, c.styles.dim.Render("waiting for "+strings.Join(names, ", ")))
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, c.styles.title.Render("INACTIVITY WARNING"))

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.writeCentered(centerX, centerY, c.styles.prompt.Render(msg))
	c.writeCentered(centerX, centerY+2, c.styles.dim.Render("Press any key to continue"))
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  ___ ___  _   ___ ___   ___   ___  ___   ___ ___ `,
		` / __| _ \/_\ / __| __| |   \ / _ \|   \ / __| __|`,
		` \__ \  _/ _ \ (__| _|  | |) | (_) | |) | (_ | _| `,
		` |___/_|/_/ \_\___|___| |___/ \___/|___/ \___|___|`,
	}

	titleStartY := centerY - 8
	for i, line := range titleArt {
		c.writeCentered(centerX, titleStartY+i, c.styles.title.Render(line))
	}

	subtitle := "~ Dodge the rocks. Shoot the rocks. ~"
	c.writeCentered(centerX, titleStartY+len(titleArt)+1, c.styles.dim.Render(subtitle))

	controlsY := titleStartY + len(titleArt) + 3
	c.writeCentered(centerX, controlsY, c.styles.hud.Render("Controls"))

	controlLines := []string{
		"Mouse  . . . . . . .  Steer",
		"Click / SPACE  . . .  Shoot",
		"Arrows / WASD  . . .  Nudge",
		"F  . . . . . . .  Auto-fire",
		"Q  . . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, controlsY+1+i, c.styles.prompt.Render(line))
	}

	if blinkOn() {
		prompt := ">>  Click or press SPACE to start  <<"
		c.writeCentered(centerX, controlsY+len(controlLines)+2, c.styles.title.Render(prompt))
	}

	info := make([]string, 0, 2)
	if c.username != "" {
		info = append(info, "pilot: "+c.username)
	}
	if c.players != nil {
		info = append(info, fmt.Sprintf("pilots online: %d", c.players()))
	}
	if len(info) > 0 {
		c.writeCentered(centerX, controlsY+len(controlLines)+4, c.styles.dim.Render(strings.Join(info, "  |  ")))
	}
}

// drawPlayingHUD draws the in-game HUD.
func (c *Client) drawPlayingHUD(termWidth, termHeight int, snap *session.Snapshot) {
	scoreText := c.styles.hud.Render("Score: " + scene.FormatScore(snap.DisplayedScore))
	c.writeText(2, 1, scoreText)

	highText := c.styles.dim.Render("High: " + scene.FormatScore(max(snap.HighScore, snap.Score)))
	c.writeText(termWidth-lipgloss.Width(highText), 1, highText)

	if status := scene.WeaponStatus(snap); status != "" {
		c.writeText(2, termHeight, c.styles.color(scene.WeaponColor(snap.Weapon)).Render(status))
	}

	var flags []string
	if snap.Ship.Shield {
		flags = append(flags, c.styles.color(draw.RGBA(draw.Shield)).Render("SHIELD"))
	}
	if c.session.AutoFire() {
		flags = append(flags, c.styles.dim.Render("AUTO-FIRE"))
	}
	if len(flags) > 0 {
		line := strings.Join(flags, " ")
		c.writeText(termWidth-lipgloss.Width(line), termHeight, line)
	}
}

// drawGameOverScreen draws the final score and the restart prompt.
func (c *Client) drawGameOverScreen(centerX, centerY int, snap *session.Snapshot) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}

	titleStartY := centerY - 6
	for i, line := range titleArt {
		c.writeCentered(centerX, titleStartY+i, c.styles.title.Render(line))
	}

	// Skip the "GAME OVER" header line; the art replaces it.
	lines := scene.Lines(snap)[2:]
	for i, line := range lines {
		c.writeCentered(centerX, titleStartY+len(titleArt)+1+i, c.styles.hud.Render(line))
	}

	if scene.ShowRestartPrompt(snap) && blinkOn() {
		prompt := ">>  Click or press SPACE to play again  <<"
		c.writeCentered(centerX, titleStartY+len(titleArt)+len(lines)+2, c.styles.prompt.Render(prompt))
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, c.styles.title.Render("SERVER SHUTTING DOWN"))
	c.writeCentered(centerX, centerY-1, c.styles.prompt.Render("The server is restarting for maintenance."))
	c.writeCentered(centerX, centerY, c.styles.prompt.Render("Your high score will be saved."))

	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, c.styles.hud.Render(fmt.Sprintf("Disconnecting in %d seconds...", remaining)))
	c.writeCentered(centerX, centerY+4, c.styles.dim.Render("Press Q to disconnect now"))
}
