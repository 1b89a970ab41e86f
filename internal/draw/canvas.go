package draw

import (
	"image"
	"image/color"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// cell is one rendered terminal character: a half-block glyph with the
// upper sub-pixel in the foreground and the lower one in the background.
// A zero alpha means the terminal default color.
type cell struct {
	ch     rune
	fg, bg color.RGBA
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
// Only cells that changed since the previous Render are written.
type Canvas struct {
	termWidth      int          // Actual terminal columns
	termHeight     int          // Actual terminal rows
	subPixelHeight int          // termHeight * 2
	pixels         []color.RGBA // Flat slice: [y * termWidth + x], alpha 0 means unset

	cells []cell // Last rendered contents per terminal cell
	valid []bool // cells[i] matches what the terminal shows

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder // Buffer for batching render output
	numBuf          [20]byte        // Scratch for integer formatting
	scaledBuf       []Point         // Reusable buffer for fillPolygon scaled points
	intersectionBuf []float64       // Reusable buffer for scanline intersections
	polygonBuf      []Point         // Reusable buffer for polygon point generation
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 1)
	termHeight = max(termHeight, 1)

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]color.RGBA, c.subPixelHeight*termWidth)
		c.cells = make([]cell, termWidth*termHeight)
		c.valid = make([]bool, termWidth*termHeight)
	}

	c.scaleX = float64(c.termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetLogicalSize changes the coordinate space drawn into.
func (c *Canvas) SetLogicalSize(logicalWidth, logicalHeight float64) {
	if logicalWidth <= 0 || logicalHeight <= 0 {
		return
	}
	c.logicalWidth = logicalWidth
	c.logicalHeight = logicalHeight
	c.Resize(c.termWidth, c.termHeight)
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render write every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	clear(c.valid)
}

// MarkTextDirty records that text was written over length cells starting at
// the 1-based canvas position (col, row), so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, length int) {
	if row < 1 || row > c.termHeight {
		return
	}
	start := max(col-1, 0)
	end := min(col-1+length, c.termWidth)
	offset := (row - 1) * c.termWidth
	for x := start; x < end; x++ {
		c.valid[offset+x] = false
	}
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col color.RGBA) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		col.A = 0xff
		c.pixels[y*c.termWidth+x] = col
	}
}

// At returns the pixel at actual terminal sub-pixel coordinates.
func (c *Canvas) At(x, y int) (color.RGBA, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return color.RGBA{}, false
	}
	p := c.pixels[y*c.termWidth+x]
	return p, p.A != 0
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64, col color.RGBA) {
	c.setPixel(int(x*c.scaleX), int(y*c.scaleY), col)
}

// FillRect fills the logical rectangle with top-left (x, y).
// At least one pixel is drawn.
func (c *Canvas) FillRect(x, y, w, h float64, col color.RGBA) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := max(int(math.Ceil((x+w)*c.scaleX))-1, x0)
	y1 := max(int(math.Ceil((y+h)*c.scaleY))-1, y0)

	x0, x1 = max(x0, 0), min(x1, c.termWidth-1)
	y0, y1 = max(y0, 0), min(y1, c.subPixelHeight-1)
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// FillCircle fills a circle given in logical coordinates.
// Scaling may turn it into an ellipse in pixel space.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.RGBA) {
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY
	if rx < 0.5 || ry < 0.5 {
		c.setPixel(int(pcx), int(pcy), col)
		return
	}

	y0 := max(int(math.Floor(pcy-ry)), 0)
	y1 := min(int(math.Ceil(pcy+ry)), c.subPixelHeight-1)
	x0 := max(int(math.Floor(pcx-rx)), 0)
	x1 := min(int(math.Ceil(pcx+rx)), c.termWidth-1)
	for py := y0; py <= y1; py++ {
		dy := (float64(py) + 0.5 - pcy) / ry
		for px := x0; px <= x1; px++ {
			dx := (float64(px) + 0.5 - pcx) / rx
			if dx*dx+dy*dy <= 1 {
				c.setPixel(px, py, col)
			}
		}
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col color.RGBA) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, filled bool, col color.RGBA) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, col)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []Point, col color.RGBA) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	yStart := max(int(math.Floor(minY)), 0)
	yEnd := min(int(math.Ceil(maxY)), c.subPixelHeight-1)

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5
		intersections := c.intersectionBuf[:0]

		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// PixelSize converts a logical size to whole terminal sub-pixels.
func (c *Canvas) PixelSize(w, h float64) (pw, ph int) {
	return max(int(math.Round(w*c.scaleX)), 1), max(int(math.Round(h*c.scaleY)), 1)
}

// DrawImage stamps img centered at logical (cx, cy), stretched to the
// logical size w x h and rotated by angle radians (clockwise on screen).
// img should already be scaled close to PixelSize(w, h); sampling is
// nearest-neighbor and pixels under half opacity are skipped.
func (c *Canvas) DrawImage(img *image.RGBA, cx, cy, w, h, angle float64) {
	b := img.Bounds()
	if b.Empty() || w <= 0 || h <= 0 {
		return
	}

	sin, cos := math.Sincos(angle)
	radius := math.Hypot(w, h) / 2
	x0 := max(int(math.Floor((cx-radius)*c.scaleX)), 0)
	x1 := min(int(math.Ceil((cx+radius)*c.scaleX)), c.termWidth-1)
	y0 := max(int(math.Floor((cy-radius)*c.scaleY)), 0)
	y1 := min(int(math.Ceil((cy+radius)*c.scaleY)), c.subPixelHeight-1)

	imgW, imgH := float64(b.Dx()), float64(b.Dy())
	for py := y0; py <= y1; py++ {
		ly := (float64(py)+0.5)/c.scaleY - cy
		for px := x0; px <= x1; px++ {
			lx := (float64(px)+0.5)/c.scaleX - cx

			// Undo the rotation to find the source position.
			ux := lx*cos + ly*sin
			uy := -lx*sin + ly*cos
			sx := int(math.Floor((ux/w + 0.5) * imgW))
			sy := int(math.Floor((uy/h + 0.5) * imgH))
			if sx < 0 || sy < 0 || sx >= b.Dx() || sy >= b.Dy() {
				continue
			}

			off := img.PixOffset(b.Min.X+sx, b.Min.Y+sy)
			a := img.Pix[off+3]
			if a < 0x80 {
				continue
			}
			c.setPixel(px, py, color.RGBA{
				R: unpremultiply(img.Pix[off], a),
				G: unpremultiply(img.Pix[off+1], a),
				B: unpremultiply(img.Pix[off+2], a),
			})
		}
	}
}

func unpremultiply(v, a uint8) uint8 {
	return uint8(min(int(v)*0xff/int(a), 0xff))
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// makeCell combines two stacked sub-pixels into one terminal cell.
func makeCell(top, bottom color.RGBA) cell {
	switch {
	case top.A == 0 && bottom.A == 0:
		return cell{ch: ' '}
	case top == bottom:
		return cell{ch: BlockFull, fg: top}
	case bottom.A == 0:
		return cell{ch: BlockUpperHalf, fg: top}
	case top.A == 0:
		return cell{ch: BlockLowerHalf, fg: bottom}
	default:
		return cell{ch: BlockUpperHalf, fg: top, bg: bottom}
	}
}

// Render outputs the changed cells to the writer using truecolor half-block characters.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.WriteString(ColorReset)

	var fg, bg color.RGBA // Current terminal colors, zero is the default
	cursor := -1          // Cell index the terminal cursor is on, -1 if unknown

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			next := makeCell(c.pixels[topOffset+col], c.pixels[bottomOffset+col])
			idx := row*c.termWidth + col
			if c.valid[idx] && c.cells[idx] == next {
				continue
			}
			c.cells[idx] = next
			c.valid[idx] = true

			if cursor != idx {
				c.moveCursor(col+1+c.offsetCol, row+1+c.offsetRow)
			}
			if next.fg != fg {
				c.writeColor(38, next.fg)
				fg = next.fg
			}
			if next.bg != bg {
				c.writeColor(48, next.bg)
				bg = next.bg
			}
			c.renderBuf.WriteRune(next.ch)

			cursor = idx + 1
			if col == c.termWidth-1 {
				cursor = -1
			}
		}
	}
	c.renderBuf.WriteString(ColorReset)

	_ = writeChunks(w, c.renderBuf.String())
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// writeColor emits a 24-bit SGR color; layer is 38 for foreground, 48 for background.
func (c *Canvas) writeColor(layer int, col color.RGBA) {
	if col.A == 0 {
		if layer == 38 {
			c.renderBuf.WriteString("\033[39m")
		} else {
			c.renderBuf.WriteString("\033[49m")
		}
		return
	}
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(layer), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.R), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.G), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col.B), 10))
	c.renderBuf.WriteByte('m')
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			writeAt(&buf, left, top, "┌"+line+"┐")
			writeAt(&buf, left, bottom, "└"+line+"┘")
		} else {
			writeAt(&buf, c.offsetCol+1, top, line)
			writeAt(&buf, c.offsetCol+1, bottom, line)
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			writeAt(&buf, left, row, "│")
			writeAt(&buf, right, row, "│")
		}
	}

	io.WriteString(w, buf.String())
}

func writeAt(buf *strings.Builder, col, row int, s string) {
	buf.WriteString("\033[")
	buf.WriteString(strconv.Itoa(row))
	buf.WriteByte(';')
	buf.WriteString(strconv.Itoa(col))
	buf.WriteByte('H')
	buf.WriteString(s)
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based canvas position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(x * c.scaleX)
	py := int(y * c.scaleY)
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based screen position, as reported by
// mouse events, to the logical coordinates at the center of that cell.
// ok is false when the position lies outside the canvas.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64, ok bool) {
	col -= c.offsetCol
	row -= c.offsetRow
	if col < 1 || col > c.termWidth || row < 1 || row > c.termHeight {
		return 0, 0, false
	}
	x = (float64(col-1) + 0.5) / c.scaleX
	y = (float64(row-1)*2 + 1) / c.scaleY
	return x, y, true
}

// BorrowPoints returns a reusable slice of Points with the given length.
// The returned slice is only valid until the next call to BorrowPoints.
// This avoids per-frame allocations for polygon rendering.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}
