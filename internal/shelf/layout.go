package shelf

import "sort"

// Item is a book placed on the shelf. Key is the catalog identifier (ISBN);
// the remaining fields are display data and never affect placement.
type Item struct {
	Key     string
	Cell    Cell
	Title   string
	Authors string
	Cover   string
	Class   string // classification code used to group books when re-packing
}

// Placement is the persisted part of an item: where it sits.
type Placement struct {
	Key  string
	Cell Cell
}

// Layout is the set of items of one shelf unit. Order carries no meaning.
type Layout []Item

// Clone returns an independent copy of the layout.
func (l Layout) Clone() Layout {
	if l == nil {
		return nil
	}
	out := make(Layout, len(l))
	copy(out, l)
	return out
}

// Index returns the position of key in the slice, or -1.
func (l Layout) Index(key string) int {
	for i := range l {
		if l[i].Key == key {
			return i
		}
	}
	return -1
}

// Find returns the item with the given key.
func (l Layout) Find(key string) (Item, bool) {
	if i := l.Index(key); i >= 0 {
		return l[i], true
	}
	return Item{}, false
}

// Occupancy maps each occupied cell to the key of its item, skipping the
// excluded key. Used with the mover's key so its old cell reads as empty.
func (l Layout) Occupancy(exclude string) map[Cell]string {
	occ := make(map[Cell]string, len(l))
	for _, it := range l {
		if it.Key == exclude {
			continue
		}
		occ[it.Cell] = it.Key
	}
	return occ
}

// Placements returns the (key, cell) pairs sorted by row, column.
func (l Layout) Placements() []Placement {
	out := make([]Placement, 0, len(l))
	for _, it := range l {
		out = append(out, Placement{Key: it.Key, Cell: it.Cell})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cell.Row != out[j].Cell.Row {
			return out[i].Cell.Row < out[j].Cell.Row
		}
		return out[i].Cell.Col < out[j].Cell.Col
	})
	return out
}

// SamePlacement reports whether both layouts put the same keys in the same cells.
func (l Layout) SamePlacement(other Layout) bool {
	if len(l) != len(other) {
		return false
	}
	for _, it := range l {
		o, ok := other.Find(it.Key)
		if !ok || o.Cell != it.Cell {
			return false
		}
	}
	return true
}

// Row returns the items on one shelf ordered by column.
func (l Layout) Row(row int) Layout {
	var out Layout
	for _, it := range l {
		if it.Cell.Row == row {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cell.Col < out[j].Cell.Col })
	return out
}

// Shelf is one fetched snapshot of the layout store.
type Shelf struct {
	Grid  Grid
	Items Layout
}

// Clone returns an independent copy of the snapshot.
func (s Shelf) Clone() Shelf {
	return Shelf{Grid: s.Grid, Items: s.Items.Clone()}
}
