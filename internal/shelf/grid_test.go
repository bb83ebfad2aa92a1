package shelf

import "testing"

func TestCellToPixel(t *testing.T) {
	m := NewMapper(DefaultGeometry(), Grid{Rows: 3, Cols: 5})

	tests := []struct {
		cell  Cell
		wantX int
		wantY int
	}{
		{Cell{Row: 0, Col: 0}, 1, 2},
		{Cell{Row: 0, Col: 4}, 25, 2},
		{Cell{Row: 2, Col: 1}, 7, 12},
	}

	for _, tt := range tests {
		x, y := m.CellToPixel(tt.cell)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("CellToPixel(%s) = (%d, %d), want (%d, %d)", tt.cell, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestPixelCellRoundTrip(t *testing.T) {
	geometries := []Geometry{
		DefaultGeometry(),
		{CellWidth: 1, CellHeight: 1, Frame: 0, TopGap: 0},
		{CellWidth: 9, CellHeight: 5, Frame: 2, TopGap: 3},
	}

	for _, geo := range geometries {
		m := NewMapper(geo, Grid{Rows: 4, Cols: 7})
		for row := 0; row < m.Grid.Rows; row++ {
			for col := 0; col < m.Grid.Cols; col++ {
				c := Cell{Row: row, Col: col}
				x, y := m.CellToPixel(c)
				got := m.PixelToCell(x+geo.CellWidth/2, y+geo.CellHeight/2)
				if got != c {
					t.Errorf("geometry %+v: round trip of %s gave %s", geo, c, got)
				}
			}
		}
	}
}

func TestPixelToCellClamps(t *testing.T) {
	m := NewMapper(DefaultGeometry(), Grid{Rows: 2, Cols: 3})

	tests := []struct {
		name string
		x, y int
		want Cell
	}{
		{"above and left", -40, -40, Cell{Row: 0, Col: 0}},
		{"below and right", 500, 500, Cell{Row: 1, Col: 2}},
		{"left frame", 0, 3, Cell{Row: 0, Col: 0}},
		{"right of last column", 40, 3, Cell{Row: 0, Col: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.PixelToCell(tt.x, tt.y); got != tt.want {
				t.Errorf("PixelToCell(%d, %d) = %s, want %s", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestMapperSize(t *testing.T) {
	m := NewMapper(DefaultGeometry(), Grid{Rows: 3, Cols: 5})
	w, h := m.Size()
	if w != 32 || h != 17 {
		t.Errorf("Size() = (%d, %d), want (32, 17)", w, h)
	}
}

func TestItemAt(t *testing.T) {
	m := NewMapper(DefaultGeometry(), Grid{Rows: 2, Cols: 3})
	layout := Layout{item("A", 0, 0), item("B", 1, 2)}

	tests := []struct {
		name   string
		x, y   int
		want   string
		wantOK bool
	}{
		{"inside A", 3, 3, "A", true},
		{"A corner", 1, 2, "A", true},
		{"inside B", 15, 9, "B", true},
		{"frame", 0, 3, "", false},
		{"empty slot", 9, 3, "", false},
		{"shelf plank", 3, 6, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.ItemAt(layout, tt.x, tt.y)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ItemAt(%d, %d) = (%q, %v), want (%q, %v)", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
