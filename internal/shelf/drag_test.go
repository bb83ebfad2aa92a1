package shelf

import "testing"

func newTestSession(rows, cols int) *Session {
	return NewSession(NewMapper(DefaultGeometry(), Grid{Rows: rows, Cols: cols}))
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestSession(1, 5)
	layout := Layout{item("A", 0, 0), item("B", 0, 1), item("C", 0, 2)}

	if s.State() != DragIdle {
		t.Fatalf("new session state = %s, want idle", s.State())
	}

	// Grab A one column right and one line down from its corner.
	if !s.Start(layout, "A", 3, 3) {
		t.Fatal("Start() rejected")
	}
	if s.State() != DragDragging || s.Key() != "A" {
		t.Fatalf("after Start: state=%s key=%q", s.State(), s.Key())
	}
	if s.Preview().Guide.Visible {
		t.Error("guide visible right after Start")
	}

	// Corner lands at x=13, so the book's centre is over column 2.
	p := s.Move(layout, 15, 3)
	if p.Target != (Cell{Row: 0, Col: 2}) {
		t.Fatalf("target = %s, want (0,2)", p.Target)
	}
	if !p.Outcome.OK || !p.Guide.Visible || p.Guide.Cell != p.Target {
		t.Fatalf("preview = %+v, want visible guide at target", p)
	}
	if p.X != 13 || p.Y != 2 {
		t.Errorf("dragged book at (%d, %d), want (13, 2)", p.X, p.Y)
	}
	if got := cellOf(t, p.Outcome.Layout, "C"); got.Col != 3 {
		t.Errorf("preview: C at %s, want column 3", got)
	}
	if cellOf(t, layout, "C").Col != 2 {
		t.Error("preview mutated the authoritative layout")
	}

	c, ok := s.End(layout, 15, 3)
	if !ok {
		t.Fatal("End() rejected")
	}
	if s.State() != DragCommitting {
		t.Errorf("after End: state = %s, want committing", s.State())
	}
	if !c.Changed || c.Snap != (Cell{Row: 0, Col: 2}) || c.Origin != (Cell{Row: 0, Col: 0}) {
		t.Errorf("commit = %+v", c)
	}
	want := map[string]int{"A": 2, "B": 1, "C": 3}
	for key, col := range want {
		if got := cellOf(t, c.Layout, key); got.Col != col {
			t.Errorf("commit: %s at %s, want column %d", key, got, col)
		}
	}

	if s.Start(layout, "B", 9, 3) {
		t.Error("Start() accepted while committing")
	}

	s.Settle()
	if s.State() != DragIdle || s.Key() != "" {
		t.Errorf("after Settle: state=%s key=%q", s.State(), s.Key())
	}
}

func TestSessionFailedPreviewAndSnapBack(t *testing.T) {
	s := newTestSession(2, 3)
	layout := Layout{
		item("A", 0, 0), item("B", 0, 1), item("C", 0, 2),
		item("M", 1, 0),
	}

	// M sits at (1,7); grab it at (2,8).
	if !s.Start(layout, "M", 2, 8) {
		t.Fatal("Start() rejected")
	}

	p := s.Move(layout, 8, 3)
	if p.Target != (Cell{Row: 0, Col: 1}) {
		t.Fatalf("target = %s, want (0,1)", p.Target)
	}
	if p.Outcome.OK || p.Guide.Visible {
		t.Fatalf("expected failed preview with hidden guide, got %+v", p)
	}
	if !p.Outcome.Layout.SamePlacement(layout) {
		t.Error("failed preview moved other books")
	}

	// Back over its own row: nothing accumulated from the failed attempt.
	p = s.Move(layout, 8, 8)
	if !p.Outcome.OK || !p.Guide.Visible {
		t.Fatalf("expected success on empty cell, got %+v", p)
	}
	if !p.Outcome.Layout.Row(0).SamePlacement(layout.Row(0)) {
		t.Error("earlier failed preview leaked into the next one")
	}

	// Drop on the full row.
	c, ok := s.End(layout, 8, 3)
	if !ok {
		t.Fatal("End() rejected")
	}
	if c.Outcome.OK || c.Changed {
		t.Errorf("expected rejected drop, got %+v", c)
	}
	if c.Snap != c.Origin || c.Origin != (Cell{Row: 1, Col: 0}) {
		t.Errorf("snap = %s origin = %s, want both (1,0)", c.Snap, c.Origin)
	}
	if !c.Layout.SamePlacement(layout) {
		t.Error("rejected drop changed the layout")
	}
}

func TestSessionDirectionFollowsPointer(t *testing.T) {
	s := newTestSession(1, 5)
	layout := Layout{item("B", 0, 2), item("M", 0, 4)}

	// M sits at x=25; grab it two columns in.
	if !s.Start(layout, "M", 27, 3) {
		t.Fatal("Start() rejected")
	}

	// Dragging left over B pushes it left.
	p := s.Move(layout, 15, 3)
	if s.Direction() != Left {
		t.Fatalf("direction = %s, want left", s.Direction())
	}
	if got := cellOf(t, p.Outcome.Layout, "B"); got.Col != 1 {
		t.Errorf("leftward: B at %s, want column 1", got)
	}

	// A purely vertical wiggle counts as non-negative dx.
	p = s.Move(layout, 15, 4)
	if s.Direction() != Right {
		t.Fatalf("direction = %s, want right", s.Direction())
	}
	if got := cellOf(t, p.Outcome.Layout, "B"); got.Col != 3 {
		t.Errorf("rightward: B at %s, want column 3", got)
	}

	// Releasing without horizontal travel keeps the last direction.
	c, _ := s.End(layout, 15, 4)
	if c.Outcome.Direction != Right {
		t.Errorf("commit direction = %s, want right", c.Outcome.Direction)
	}
	if got := cellOf(t, c.Layout, "B"); got.Col != 3 {
		t.Errorf("commit: B at %s, want column 3", got)
	}
}

func TestSessionReleaseDeltaWins(t *testing.T) {
	s := newTestSession(1, 5)
	layout := Layout{item("B", 0, 2), item("M", 0, 4)}

	s.Start(layout, "M", 27, 3)
	s.Move(layout, 14, 3)
	s.Move(layout, 16, 3)
	if s.Direction() != Right {
		t.Fatalf("direction = %s, want right", s.Direction())
	}

	// Still over column 2 but travelling left at release.
	c, _ := s.End(layout, 15, 3)
	if c.Outcome.Direction != Left {
		t.Fatalf("commit direction = %s, want left", c.Outcome.Direction)
	}
	if got := cellOf(t, c.Layout, "B"); got.Col != 1 {
		t.Errorf("commit: B at %s, want column 1", got)
	}
}

func TestSessionIgnoresOutOfOrderCalls(t *testing.T) {
	s := newTestSession(1, 3)
	layout := Layout{item("A", 0, 0)}

	if s.Start(layout, "Z", 1, 1) {
		t.Error("Start() accepted an unknown key")
	}
	if p := s.Move(layout, 5, 5); p.Outcome.OK {
		t.Error("Move() while idle produced an outcome")
	}
	if _, ok := s.End(layout, 5, 5); ok {
		t.Error("End() while idle accepted")
	}

	s.Start(layout, "A", 2, 3)
	if s.Start(layout, "A", 2, 3) {
		t.Error("second Start() accepted during a drag")
	}
	if s.SetMapper(NewMapper(DefaultGeometry(), Grid{Rows: 2, Cols: 3})) {
		t.Error("SetMapper() accepted during a drag")
	}
}
