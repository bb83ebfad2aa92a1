package shelf

import "fmt"

// Direction is the column step of a push chain.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// DirectionFromDelta picks the push direction from the horizontal pointer
// delta: non-negative pushes right first, negative pushes left first.
func DirectionFromDelta(dx int) Direction {
	if dx < 0 {
		return Left
	}
	return Right
}

// Opposite returns the reversed direction.
func (d Direction) Opposite() Direction {
	if d == Left {
		return Right
	}
	return Left
}

// String returns "left" or "right".
func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

func (d Direction) normalize() Direction {
	if d == Left {
		return Left
	}
	return Right
}

// Move records one relocation.
type Move struct {
	Key  string
	From Cell
	To   Cell
}

// Outcome is the result of one Resolve call. A failed outcome is an ordinary
// value: its Layout is an unchanged copy of the input.
type Outcome struct {
	OK        bool
	Layout    Layout
	Mover     Move
	Moves     []Move    // displaced items, farthest first
	Direction Direction // direction the winning chain was pushed
	Reason    string    // why the outcome failed; empty on success
}

// Resolve places the moving item at target, pushing any intruder one column
// at a time along a single row. The preferred direction is tried first, then
// the opposite one; if both chains run off the shelf nothing moves.
//
// The mover is left out of occupancy for the whole call, so its old cell is
// free for the chain to land in.
func Resolve(grid Grid, layout Layout, key string, target Cell, preferred Direction) Outcome {
	preferred = preferred.normalize()

	idx := layout.Index(key)
	if idx < 0 {
		return failed(layout, preferred, fmt.Sprintf("unknown item %q", key))
	}
	if !grid.Contains(target) {
		return failed(layout, preferred, fmt.Sprintf("cell %s is outside the shelf", target))
	}

	occ := layout.Occupancy(key)
	mover := Move{Key: key, From: layout[idx].Cell, To: target}

	for _, dir := range [2]Direction{preferred, preferred.Opposite()} {
		moves, ok := pushChain(grid, occ, target, dir)
		if !ok {
			continue
		}

		next := layout.Clone()
		for _, mv := range moves {
			next[next.Index(mv.Key)].Cell = mv.To
		}
		next[idx].Cell = target

		return Outcome{
			OK:        true,
			Layout:    next,
			Mover:     mover,
			Moves:     moves,
			Direction: dir,
		}
	}

	return failed(layout, preferred, fmt.Sprintf("row %d is full in both directions from %s", target.Row, target))
}

func failed(layout Layout, dir Direction, reason string) Outcome {
	return Outcome{
		Layout:    layout.Clone(),
		Direction: dir,
		Reason:    reason,
	}
}

// pushChain walks from start along dir until it finds an empty cell. Every
// occupied cell on the way shifts one step toward that gap. The walk stops at
// the first empty cell or at the shelf edge, so it takes at most grid.Cols
// steps.
func pushChain(grid Grid, occ map[Cell]string, start Cell, dir Direction) ([]Move, bool) {
	var chain []Cell
	c := start
	for range grid.Cols + 1 {
		if _, taken := occ[c]; !taken {
			moves := make([]Move, 0, len(chain))
			for i := len(chain) - 1; i >= 0; i-- {
				from := chain[i]
				moves = append(moves, Move{
					Key:  occ[from],
					From: from,
					To:   Cell{Row: from.Row, Col: from.Col + int(dir)},
				})
			}
			return moves, true
		}

		chain = append(chain, c)
		c = Cell{Row: c.Row, Col: c.Col + int(dir)}
		if !grid.Contains(c) {
			return nil, false
		}
	}
	return nil, false
}

// Validate checks that every item is inside the grid, keys are unique and no
// two items share a cell.
func Validate(grid Grid, layout Layout) error {
	seenKeys := make(map[string]bool, len(layout))
	seenCells := make(map[Cell]string, len(layout))

	for _, it := range layout {
		if it.Key == "" {
			return &Error{Code: CodeInvalidLayout, Message: "item without key"}
		}
		if seenKeys[it.Key] {
			return &Error{Code: CodeInvalidLayout, Message: fmt.Sprintf("item %q placed twice", it.Key)}
		}
		seenKeys[it.Key] = true

		if !grid.Contains(it.Cell) {
			return &Error{Code: CodeInvalidLayout, Message: fmt.Sprintf("item %q at %s is outside the %dx%d shelf", it.Key, it.Cell, grid.Rows, grid.Cols)}
		}
		if other, ok := seenCells[it.Cell]; ok {
			return &Error{Code: CodeInvalidLayout, Message: fmt.Sprintf("items %q and %q share cell %s", other, it.Key, it.Cell)}
		}
		seenCells[it.Cell] = it.Key
	}
	return nil
}
