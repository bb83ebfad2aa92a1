package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-bookshelf/internal/core"
	"github.com/vovakirdan/tui-bookshelf/internal/shelf"
)

// Runes used to draw the shelf.
const (
	runePlank     = '═'
	runeSide      = '║'
	runeTopPlank  = '▁'
	runeEmptySlot = '·'
)

// helpHeight returns how many lines the help bar takes.
func (m Model) helpHeight() int {
	if m.help.ShowAll {
		rows := 0
		for _, col := range m.keys.FullHelp() {
			rows = max(rows, len(col))
		}
		return rows
	}
	return 1
}

// draw renders the shelf into the screen buffer. The shelf is anchored at
// the top-left corner so mouse coordinates and mapper pixels coincide.
func (m Model) draw() {
	w := m.config.ScreenW
	if m.handOpen {
		w -= handPanelWidth + 5
	}
	h := m.config.ScreenH - m.helpHeight()
	if w != m.screen.Width() || h != m.screen.Height() {
		m.screen.Resize(max(w, 1), max(h, 1))
	}
	m.screen.Clear()

	grid := m.current.Grid
	m.screen.DrawText(0, 0, fmt.Sprintf("Bookshelf  %d shelves x %d  %d books", grid.Rows, grid.Cols, len(m.current.Items)), core.ColorStatus)

	m.drawFrame()
	m.drawEmptySlots()

	preview := m.session.Preview()
	if m.session.State() == shelf.DragDragging && preview.Guide.Visible {
		m.screen.DrawDashedBox(m.mapper.Bounds(preview.Guide.Cell), core.ColorGuide)
	}

	displaced := make(map[string]bool)
	if m.session.State() == shelf.DragDragging && preview.Outcome.OK {
		for _, mv := range preview.Outcome.Moves {
			displaced[mv.Key] = true
		}
	}

	mover := m.session.Key()
	for _, it := range m.current.Items {
		if it.Key == mover {
			continue
		}
		color := spineColor(it.Key)
		if displaced[it.Key] {
			color = core.ColorDisplaced
		}
		m.drawBook(it, color)
	}
	if it, ok := m.current.Items.Find(mover); ok {
		m.drawBook(it, core.ColorDragged)
	}

	_, shelfH := m.mapper.Size()
	if len(m.current.Items) == 0 {
		m.screen.DrawText(0, shelfH+1, "The shelf is empty. Add books with `shelf hand add`, then shelve them.", core.ColorMuted)
	}
	statusColor := core.ColorStatus
	if m.statusErr {
		statusColor = core.ColorError
	}
	m.screen.DrawText(0, shelfH+2, m.status, statusColor)
}

func (m Model) drawFrame() {
	geo := m.mapper.Geometry
	w, h := m.mapper.Size()
	pitch := geo.CellHeight + geo.Frame

	if geo.TopGap > 1 {
		m.screen.DrawHLine(0, geo.TopGap-1, w, runeTopPlank, core.ColorWood)
	}
	for r := range m.current.Grid.Rows {
		y := geo.TopGap + r*pitch + geo.CellHeight
		for i := range geo.Frame {
			m.screen.DrawHLine(0, y+i, w, runePlank, core.ColorWood)
		}
	}
	for i := range geo.Frame {
		m.screen.DrawVLine(i, geo.TopGap, h-geo.TopGap, runeSide, core.ColorWood)
		m.screen.DrawVLine(w-1-i, geo.TopGap, h-geo.TopGap, runeSide, core.ColorWood)
	}
}

func (m Model) drawEmptySlots() {
	occ := m.current.Items.Occupancy("")
	for r := range m.current.Grid.Rows {
		for c := range m.current.Grid.Cols {
			cell := shelf.Cell{Row: r, Col: c}
			if _, taken := occ[cell]; taken {
				continue
			}
			x, y := m.mapper.Bounds(cell).Center()
			m.screen.Set(x, y, runeEmptySlot, core.ColorMuted)
		}
	}
}

// drawBook draws one book at its animated position: a box with the title
// and class code inside.
func (m Model) drawBook(it shelf.Item, color core.Color) {
	box := m.mapper.Bounds(it.Cell)
	if x, y, ok := m.anim.Pos(it.Key); ok {
		box = box.Translate(x-box.X, y-box.Y)
	}
	geo := m.mapper.Geometry
	x, y := box.X, box.Y
	m.screen.FillRect(box, ' ', color)
	m.screen.DrawBox(box, color)

	inner := geo.CellWidth - 2
	if inner < 1 || geo.CellHeight < 3 {
		return
	}
	label := it.Title
	if label == "" {
		label = it.Key
	}
	m.screen.DrawText(x+1, y+1, truncate(label, inner), color)
	if it.Class != "" && geo.CellHeight >= 4 {
		m.screen.DrawText(x+1, y+2, truncate(it.Class, inner), core.ColorMuted)
	}
}

// spineColor alternates colours by key so neighbours stay distinct.
func spineColor(key string) core.Color {
	sum := 0
	for _, r := range key {
		sum += int(r)
	}
	if sum%2 == 0 {
		return core.ColorSpine
	}
	return core.ColorSpineAlt
}
