// Package shelf holds the placement engine for the bookshelf: the pixel/cell
// mapper, the push-chain resolver, the drag session state machine, the
// group packer and the application handle that talks to the layout store.
//
// Nothing here imports Bubble Tea. A "pixel" is one terminal character cell;
// the view layer translates mouse messages into the calls below.
package shelf

import (
	"fmt"

	"github.com/vovakirdan/tui-bookshelf/internal/core"
)

// Cell addresses one slot on the shelf.
type Cell struct {
	Row int
	Col int
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Grid is the size of a shelf unit: Rows shelves of Cols books each.
type Grid struct {
	Rows int
	Cols int
}

// Contains reports whether the cell lies inside the grid.
func (g Grid) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// Geometry describes how a grid is drawn on screen.
type Geometry struct {
	CellWidth  int // columns per book slot
	CellHeight int // lines per book slot
	Frame      int // thickness of side frame and shelf planks
	TopGap     int // lines above the first shelf
}

// DefaultGeometry returns the geometry used when no config overrides it.
func DefaultGeometry() Geometry {
	return Geometry{CellWidth: 6, CellHeight: 4, Frame: 1, TopGap: 2}
}

// Mapper converts between screen positions and grid cells.
type Mapper struct {
	Geometry Geometry
	Grid     Grid
}

// NewMapper creates a mapper for the given geometry and grid.
func NewMapper(geo Geometry, grid Grid) Mapper {
	return Mapper{Geometry: geo, Grid: grid}
}

func (m Mapper) rowPitch() int {
	return m.Geometry.CellHeight + m.Geometry.Frame
}

// CellToPixel returns the top-left screen position of a cell.
func (m Mapper) CellToPixel(c Cell) (x, y int) {
	x = m.Geometry.Frame + c.Col*m.Geometry.CellWidth
	y = m.Geometry.TopGap + c.Row*m.rowPitch()
	return x, y
}

// PixelToCell returns the cell under (x, y). Positions outside the shelf
// resolve to the nearest edge cell, so a drag that strays past the frame still
// targets something valid.
func (m Mapper) PixelToCell(x, y int) Cell {
	col := core.FloorDiv(x-m.Geometry.Frame, max(m.Geometry.CellWidth, 1))
	row := core.FloorDiv(y-m.Geometry.TopGap, max(m.rowPitch(), 1))
	return Cell{
		Row: core.Clamp(row, 0, max(m.Grid.Rows-1, 0)),
		Col: core.Clamp(col, 0, max(m.Grid.Cols-1, 0)),
	}
}

// Bounds returns the screen rectangle occupied by a cell.
func (m Mapper) Bounds(c Cell) core.Rect {
	x, y := m.CellToPixel(c)
	return core.NewRect(x, y, m.Geometry.CellWidth, m.Geometry.CellHeight)
}

// Size returns the screen size of the whole shelf including the outer frame.
func (m Mapper) Size() (w, h int) {
	w = 2*m.Geometry.Frame + m.Grid.Cols*m.Geometry.CellWidth
	h = m.Geometry.TopGap + m.Grid.Rows*m.rowPitch()
	return w, h
}

// ItemAt returns the key of the item drawn under (x, y). Unlike PixelToCell
// it does not clamp: clicking the frame or empty space hits nothing.
func (m Mapper) ItemAt(layout Layout, x, y int) (string, bool) {
	for _, it := range layout {
		if m.Bounds(it.Cell).Contains(x, y) {
			return it.Key, true
		}
	}
	return "", false
}
