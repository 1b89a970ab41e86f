// Package draw renders to ANSI terminals using truecolor half-block cells.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// SGR sequences for text overlays.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorDim        = "\033[2m"
	ColorBrightCyan = "\033[96m"
	ColorOrange     = "\033[38;2;248;80;19m"
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
