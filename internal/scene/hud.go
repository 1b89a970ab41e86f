package scene

import (
	"fmt"
	"image/color"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tomz197/spacedodge/internal/draw"
	"github.com/tomz197/spacedodge/internal/loop/session"
	"github.com/tomz197/spacedodge/internal/object"
)

var printer = message.NewPrinter(language.English)

// FormatScore renders a score with thousands separators.
func FormatScore(n int) string {
	return printer.Sprintf("%d", n)
}

// WeaponLabel names the active weapon modifier, or "" with none active.
func WeaponLabel(mod object.WeaponMod) string {
	switch mod {
	case object.ModRapidFire:
		return "RAPID FIRE"
	case object.ModSpreadShot:
		return "SPREAD SHOT"
	case object.ModWideShot:
		return "WIDE SHOT"
	case object.ModMalfunction:
		return "WEAPON MALFUNCTION"
	}
	return ""
}

// WeaponColor returns the HUD color of a modifier, matching its pickup.
func WeaponColor(mod object.WeaponMod) color.RGBA {
	switch mod {
	case object.ModRapidFire:
		return draw.RGBA(draw.PowerupBase(object.PowerupRapidFire))
	case object.ModSpreadShot:
		return draw.RGBA(draw.PowerupBase(object.PowerupSpreadShot))
	case object.ModWideShot:
		return draw.RGBA(draw.PowerupBase(object.PowerupWideShot))
	case object.ModMalfunction:
		return draw.RGBA(draw.PowerupBase(object.PowerupMalfunction))
	}
	return draw.RGBA(draw.White)
}

// WeaponStatus is the HUD line for the active modifier, e.g.
// "RAPID FIRE 3.2s".
func WeaponStatus(snap *session.Snapshot) string {
	label := WeaponLabel(snap.Weapon)
	if label == "" {
		return ""
	}
	return fmt.Sprintf("%s %.1fs", label, snap.WeaponRemaining.Seconds())
}

// Lines returns the centered text block for the current phase, or nil while
// playing.
func Lines(snap *session.Snapshot) []string {
	switch {
	case !snap.Ready:
		return []string{"Loading..."}
	case snap.Phase == session.PhaseGameOver:
		return []string{
			"GAME OVER",
			"",
			"Final Score: " + FormatScore(snap.DisplayedScore),
			"High Score: " + FormatScore(snap.HighScore),
		}
	}
	return nil
}

// ShowRestartPrompt reports whether the game-over prompt should be visible.
// The prompt appears after a short pause so a held button does not skip the
// results.
func ShowRestartPrompt(snap *session.Snapshot) bool {
	return snap.Phase == session.PhaseGameOver && snap.GameOverElapsed >= restartPromptDelay
}

const restartPromptDelay = 750 * time.Millisecond
