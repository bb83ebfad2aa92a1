package shelf

// DragState is the phase of a drag gesture.
type DragState int

const (
	DragIdle       DragState = iota // no gesture in progress
	DragDragging                    // pointer held on a book
	DragCommitting                  // released; waiting for persist + refresh
)

// String returns a human-readable name for the state.
func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragDragging:
		return "dragging"
	case DragCommitting:
		return "committing"
	default:
		return "unknown"
	}
}

// Guide is the placement marker shown at the target cell during a drag.
type Guide struct {
	Visible bool
	Cell    Cell
}

// Preview is the live feedback for one pointer move.
type Preview struct {
	Outcome Outcome
	Target  Cell
	Guide   Guide
	X, Y    int // top-left of the dragged book, following the pointer
}

// Commit is what a finished gesture hands to the layout store.
type Commit struct {
	Key     string
	Outcome Outcome
	Layout  Layout // full layout to persist, changed or not
	Origin  Cell   // where the book was picked up
	Snap    Cell   // where the book settles: target on success, origin on failure
	Changed bool
}

// Session tracks a single drag gesture. It holds no layout of its own: every
// Move and End resolves against the authoritative layout passed in, so a
// failed preview never leaks into the next one.
type Session struct {
	mapper Mapper
	state  DragState

	key    string
	origin Cell

	offsetX, offsetY int // pointer position relative to the book's corner
	x, y             int // book's corner while dragging
	lastPointerX     int
	dir              Direction
	target           Cell

	preview Preview
}

// NewSession creates an idle session for the given mapper.
func NewSession(m Mapper) *Session {
	return &Session{mapper: m, dir: Right}
}

// SetMapper replaces the geometry and grid bounds. Bounds only change between
// gestures, so the call is ignored while a drag is active.
func (s *Session) SetMapper(m Mapper) bool {
	if s.state != DragIdle {
		return false
	}
	s.mapper = m
	return true
}

// Mapper returns the current mapper.
func (s *Session) Mapper() Mapper {
	return s.mapper
}

// State returns the current phase.
func (s *Session) State() DragState {
	return s.state
}

// Key returns the key of the book being dragged, or "" when idle.
func (s *Session) Key() string {
	return s.key
}

// Direction returns the push direction chosen by the latest pointer move.
func (s *Session) Direction() Direction {
	return s.dir
}

// Preview returns the latest move feedback.
func (s *Session) Preview() Preview {
	return s.preview
}

// Start picks up the book under the pointer. It returns false if a gesture is
// already active or the key is not on the shelf.
func (s *Session) Start(layout Layout, key string, px, py int) bool {
	if s.state != DragIdle {
		return false
	}
	it, ok := layout.Find(key)
	if !ok {
		return false
	}

	ix, iy := s.mapper.CellToPixel(it.Cell)
	s.key = key
	s.origin = it.Cell
	s.target = it.Cell
	s.offsetX, s.offsetY = px-ix, py-iy
	s.x, s.y = ix, iy
	s.lastPointerX = px
	s.dir = Right
	s.state = DragDragging

	s.preview = Preview{
		Outcome: Outcome{OK: true, Layout: layout.Clone(), Direction: Right},
		Target:  it.Cell,
		X:       ix,
		Y:       iy,
	}
	return true
}

// Move follows the pointer and re-resolves against layout. The push direction
// is re-derived from this event's horizontal delta every time.
func (s *Session) Move(layout Layout, px, py int) Preview {
	if s.state != DragDragging {
		return s.preview
	}

	dx := px - s.lastPointerX
	s.lastPointerX = px
	s.dir = DirectionFromDelta(dx)
	s.follow(px, py)

	out := Resolve(s.mapper.Grid, layout, s.key, s.target, s.dir)
	s.preview = Preview{
		Outcome: out,
		Target:  s.target,
		Guide:   Guide{Visible: out.OK, Cell: s.target},
		X:       s.x,
		Y:       s.y,
	}
	return s.preview
}

// End drops the book. The outcome is recomputed against layout rather than
// reusing the last preview. A release without horizontal travel keeps the
// direction of the last move, so the drop lands where the preview showed.
func (s *Session) End(layout Layout, px, py int) (Commit, bool) {
	if s.state != DragDragging {
		return Commit{}, false
	}

	if dx := px - s.lastPointerX; dx != 0 {
		s.dir = DirectionFromDelta(dx)
	}
	s.lastPointerX = px
	s.follow(px, py)

	out := Resolve(s.mapper.Grid, layout, s.key, s.target, s.dir)
	c := Commit{
		Key:     s.key,
		Outcome: out,
		Origin:  s.origin,
	}
	if out.OK {
		c.Layout = out.Layout
		c.Snap = s.target
	} else {
		c.Layout = layout.Clone()
		c.Snap = s.origin
	}
	c.Changed = !c.Layout.SamePlacement(layout)

	s.state = DragCommitting
	s.preview.Guide = Guide{}
	return c, true
}

// Settle finishes a committed gesture once the store has been refreshed.
func (s *Session) Settle() {
	if s.state != DragCommitting {
		return
	}
	s.state = DragIdle
	s.key = ""
	s.preview = Preview{}
}

func (s *Session) follow(px, py int) {
	s.x, s.y = px-s.offsetX, py-s.offsetY
	g := s.mapper.Geometry
	s.target = s.mapper.PixelToCell(s.x+g.CellWidth/2, s.y+g.CellHeight/2)
}
