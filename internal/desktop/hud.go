package desktop

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/loop/session"
	"github.com/tomz197/spacedodge/internal/scene"
)

const (
	hudMargin  = 12
	lineHeight = 18
)

var (
	white = draw.RGBA(draw.White)
	grey  = color.RGBA{0x8A, 0x8A, 0x8A, 0xFF}
	title = draw.RGBA(draw.Title)
)

func drawHUD(screen *ebiten.Image, face text.Face, snap *session.Snapshot, autoFire bool) {
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	cx, cy := w/2, h/2

	switch {
	case !snap.Ready, snap.Phase == session.PhaseGameOver:
		lines := scene.Lines(snap)
		top := cy - float64(len(lines)-1)*lineHeight/2
		for i, line := range lines {
			c := white
			if i == 0 && snap.Ready {
				c = title
			}
			drawText(screen, face, line, cx, top+float64(i)*lineHeight, text.AlignCenter, c)
		}
		if scene.ShowRestartPrompt(snap) && blinkOn() {
			drawText(screen, face, "Click to play again", cx, top+float64(len(lines)+1)*lineHeight, text.AlignCenter, grey)
		}
	case !snap.ControlActive:
		drawText(screen, face, "SPACE DODGE", cx, cy-2*lineHeight, text.AlignCenter, title)
		drawText(screen, face, "Move the mouse to steer, click to shoot", cx, cy, text.AlignCenter, white)
		if blinkOn() {
			drawText(screen, face, "Click to start", cx, cy+2*lineHeight, text.AlignCenter, grey)
		}
	default:
		drawText(screen, face, "Score: "+scene.FormatScore(snap.DisplayedScore), hudMargin, hudMargin, text.AlignStart, white)
		drawText(screen, face, "High: "+scene.FormatScore(max(snap.HighScore, snap.Score)), w-hudMargin, hudMargin, text.AlignEnd, grey)
		if status := scene.WeaponStatus(snap); status != "" {
			drawText(screen, face, status, hudMargin, h-hudMargin, text.AlignStart, scene.WeaponColor(snap.Weapon))
		}
		if autoFire {
			drawText(screen, face, "AUTO-FIRE", w-hudMargin, h-hudMargin, text.AlignEnd, grey)
		}
	}
}

// blinkOn drives blinking prompts.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}
