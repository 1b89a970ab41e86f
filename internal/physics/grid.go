package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection on a
// bounded field. Items are inserted by box and index, then nearby items can be
// queried by box. Positions outside the field clamp to the border cells, so
// entities spawning above the top edge still land in the grid.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
	seen        []uint32 // Per-index query stamp, dedupes items spanning several cells
	stamp       uint32
}

// gridCell stores the indices of items that overlap a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewSpatialGrid creates a grid covering a width x height field.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	g := &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
	}
	g.Resize(width, height)
	return g
}

// Resize reallocates the cells for new field dimensions and drops all items.
func (g *SpatialGrid) Resize(width, height float64) {
	cols := int(math.Ceil(width / g.cellSize))
	rows := int(math.Ceil(height / g.cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols == g.cols && rows == g.rows {
		g.Clear()
		return
	}
	g.cols = cols
	g.rows = rows
	g.cells = make([]gridCell, cols*rows)
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) to every cell its box overlaps.
func (g *SpatialGrid) Insert(r Rect, index int) {
	c0, r0 := g.posToCell(r.X, r.Y)
	c1, r1 := g.posToCell(r.Right(), r.Bottom())
	for row := r0; row <= r1; row++ {
		offset := row * g.cols
		for col := c0; col <= c1; col++ {
			g.cells[offset+col].items = append(g.cells[offset+col].items, index)
		}
	}
}

// QueryRect calls fn once for each item index whose cells overlap r.
// If fn returns true, iteration stops early.
func (g *SpatialGrid) QueryRect(r Rect, fn func(index int) bool) {
	g.stamp++
	if g.stamp == 0 {
		clear(g.seen)
		g.stamp = 1
	}

	c0, r0 := g.posToCell(r.X, r.Y)
	c1, r1 := g.posToCell(r.Right(), r.Bottom())
	for row := r0; row <= r1; row++ {
		offset := row * g.cols
		for col := c0; col <= c1; col++ {
			for _, itemIdx := range g.cells[offset+col].items {
				if !g.markSeen(itemIdx) {
					continue
				}
				if fn(itemIdx) {
					return
				}
			}
		}
	}
}

// markSeen records the index for the current query and reports whether it
// was new.
func (g *SpatialGrid) markSeen(index int) bool {
	if index >= len(g.seen) {
		grown := make([]uint32, index+1, 2*(index+1))
		copy(grown, g.seen)
		g.seen = grown
	}
	if g.seen[index] == g.stamp {
		return false
	}
	g.seen[index] = g.stamp
	return true
}

// posToCell converts field coordinates to grid cell coordinates.
// Clamps to valid range for off-field positions.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
