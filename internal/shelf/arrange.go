package shelf

import "sort"

// Group is a run of books that should sit together, usually one
// classification code.
type Group struct {
	Class string
	Keys  []string
}

// Arrange packs groups onto shelves of perShelf books, left to right and top
// to bottom. A group that will not fit in what is left of a started row
// begins a new row; one too large for any row simply wraps. A key seen in an
// earlier group is skipped.
func Arrange(groups []Group, perShelf int) []Placement {
	if perShelf < 1 {
		return nil
	}

	var out []Placement
	seen := make(map[string]bool)
	row, col := 0, 0

	for _, g := range groups {
		fresh := make([]string, 0, len(g.Keys))
		for _, k := range g.Keys {
			if !seen[k] {
				fresh = append(fresh, k)
				seen[k] = true
			}
		}
		if len(fresh) == 0 {
			continue
		}

		if len(fresh) > perShelf-col && col > 0 {
			row++
			col = 0
		}
		for _, k := range fresh {
			out = append(out, Placement{Key: k, Cell: Cell{Row: row, Col: col}})
			col++
			if col >= perShelf {
				row++
				col = 0
			}
		}
	}
	return out
}

// RowsNeeded returns how many rows a set of placements spans.
func RowsNeeded(ps []Placement) int {
	rows := 0
	for _, p := range ps {
		rows = max(rows, p.Cell.Row+1)
	}
	return rows
}

// GroupByClass splits a layout into groups by classification code. Groups are
// ordered by code with unclassified books last; inside a group books keep
// their current reading order (row, then column).
func GroupByClass(layout Layout) []Group {
	ordered := layout.Clone()
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Cell, ordered[j].Cell
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})

	byClass := make(map[string]*Group)
	var classes []string
	for _, it := range ordered {
		g, ok := byClass[it.Class]
		if !ok {
			g = &Group{Class: it.Class}
			byClass[it.Class] = g
			classes = append(classes, it.Class)
		}
		g.Keys = append(g.Keys, it.Key)
	}

	sort.Slice(classes, func(i, j int) bool {
		a, b := classes[i], classes[j]
		if a == "" || b == "" {
			return b == "" && a != ""
		}
		return a < b
	})

	out := make([]Group, 0, len(classes))
	for _, c := range classes {
		out = append(out, *byClass[c])
	}
	return out
}

// Repack rebuilds a layout with perShelf books per row, grouped by class.
// It returns the new layout and the grid that holds it; the grid keeps at
// least minRows rows.
func Repack(layout Layout, perShelf, minRows int) (Layout, Grid) {
	ps := Arrange(GroupByClass(layout), perShelf)
	out := make(Layout, 0, len(ps))
	for _, p := range ps {
		it, _ := layout.Find(p.Key)
		it.Cell = p.Cell
		out = append(out, it)
	}
	return out, Grid{Rows: max(RowsNeeded(ps), minRows, 1), Cols: perShelf}
}
