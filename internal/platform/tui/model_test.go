package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bookshelf/internal/core"
	"github.com/vovakirdan/tui-bookshelf/internal/notify"
	"github.com/vovakirdan/tui-bookshelf/internal/shelf"
	"github.com/vovakirdan/tui-bookshelf/internal/storage"
)

const (
	isbnA = "1000000001"
	isbnB = "1000000002"
	isbnC = "1000000003"
	isbnD = "1000000004"
)

// newTestModel opens a store shaped like grid, shelves one book per isbn
// (classes keep them in argument order) and loads the model.
func newTestModel(t *testing.T, grid shelf.Grid, opts Options, isbns ...string) (Model, *storage.Store) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "shelf.db"), storage.WithInitialGrid(grid))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	for i, isbn := range isbns {
		b := storage.Book{ISBN: isbn, Title: "Book " + isbn, Class: string(rune('a' + i))}
		if _, err := store.AddToHand(ctx, b); err != nil {
			t.Fatalf("AddToHand(%s) error: %v", isbn, err)
		}
	}
	if len(isbns) > 0 {
		if err := store.ShelveFromHand(ctx, isbns); err != nil {
			t.Fatalf("ShelveFromHand() error: %v", err)
		}
	}

	opts.Hand = store
	app := shelf.NewApp(store, nil)
	m := NewModel(ctx, app, core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60}, opts)
	m = update(t, m, m.loadCmd()())
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

// run executes cmd and every command batched inside it, returning the
// messages that are not animation ticks.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case nil, TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, run(c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func cellOf(t *testing.T, layout shelf.Layout, key string) shelf.Cell {
	t.Helper()
	it, ok := layout.Find(key)
	if !ok {
		t.Fatalf("book %s missing from layout", key)
	}
	return it.Cell
}

func TestModelDragPushesLeftWhenRightIsBlocked(t *testing.T) {
	m, store := newTestModel(t, shelf.Grid{Rows: 1, Cols: 3}, Options{}, isbnA, isbnB, isbnC)

	// Default geometry: slot 0 starts at x=1, slot 1 at x=7, the row at y=2.
	m = update(t, m, mouse(tea.MouseActionPress, 2, 3))
	if m.session.State() != shelf.DragDragging || m.session.Key() != isbnA {
		t.Fatalf("press did not start dragging %s: state %v key %q", isbnA, m.session.State(), m.session.Key())
	}

	m = update(t, m, mouse(tea.MouseActionMotion, 8, 3))
	p := m.session.Preview()
	if !p.Outcome.OK || !p.Guide.Visible || p.Target != (shelf.Cell{Row: 0, Col: 1}) {
		t.Fatalf("preview = %+v, want a visible guide at slot 1", p)
	}
	if p.Outcome.Direction != shelf.Left {
		t.Errorf("preview direction = %v, want Left", p.Outcome.Direction)
	}

	next, cmd := m.Update(mouse(tea.MouseActionRelease, 8, 3))
	m = next.(Model)
	if m.session.State() != shelf.DragCommitting {
		t.Fatalf("state after release = %v, want committing", m.session.State())
	}
	if m.idle() {
		t.Error("model should be busy while the commit is in flight")
	}

	var committed bool
	for _, msg := range run(cmd) {
		if _, ok := msg.(committedMsg); ok {
			committed = true
		}
		m = update(t, m, msg)
	}
	if !committed {
		t.Fatal("release did not produce a commit")
	}
	if m.session.State() != shelf.DragIdle || !m.idle() {
		t.Errorf("model not idle after commit: state %v busy %v", m.session.State(), m.busy)
	}

	s, err := store.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	want := map[string]int{isbnA: 1, isbnB: 0, isbnC: 2}
	for key, col := range want {
		if got := cellOf(t, s.Items, key); got != (shelf.Cell{Row: 0, Col: col}) {
			t.Errorf("%s at %v, want column %d", key, got, col)
		}
	}
}

func TestModelDragSnapsBackWhenRowIsFull(t *testing.T) {
	m, store := newTestModel(t, shelf.Grid{Rows: 2, Cols: 2}, Options{}, isbnA, isbnC, isbnD)

	ctx := context.Background()
	start := []shelf.Placement{
		{Key: isbnA, Cell: shelf.Cell{Row: 0, Col: 0}},
		{Key: isbnC, Cell: shelf.Cell{Row: 1, Col: 0}},
		{Key: isbnD, Cell: shelf.Cell{Row: 1, Col: 1}},
	}
	if err := store.Commit(ctx, start); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
	m = update(t, m, m.loadCmd()())

	m = update(t, m, mouse(tea.MouseActionPress, 2, 3))
	// Row 1 starts at y=7; the item centre lands there with the pointer at y=7.
	m = update(t, m, mouse(tea.MouseActionMotion, 2, 7))
	p := m.session.Preview()
	if p.Outcome.OK || p.Guide.Visible {
		t.Fatalf("preview into a full row should fail: %+v", p)
	}
	if !strings.Contains(m.status, "No room on shelf 2") {
		t.Errorf("status = %q", m.status)
	}

	next, cmd := m.Update(mouse(tea.MouseActionRelease, 2, 7))
	m = next.(Model)
	if got := cellOf(t, m.current.Items, isbnA); got != (shelf.Cell{Row: 0, Col: 0}) {
		t.Errorf("book snapped to %v, want its origin", got)
	}
	if !strings.Contains(m.status, "went back") {
		t.Errorf("status = %q", m.status)
	}
	for _, msg := range run(cmd) {
		m = update(t, m, msg)
	}

	s, err := store.Fetch(ctx)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	for _, want := range start {
		if got := cellOf(t, s.Items, want.Key); got != want.Cell {
			t.Errorf("%s at %v, want %v", want.Key, got, want.Cell)
		}
	}
}

func TestModelPressOnEmptySlotIgnored(t *testing.T) {
	m, _ := newTestModel(t, shelf.Grid{Rows: 1, Cols: 3}, Options{}, isbnA)

	m = update(t, m, mouse(tea.MouseActionPress, 14, 3))
	if m.session.State() != shelf.DragIdle {
		t.Errorf("state = %v, want idle", m.session.State())
	}

	m = update(t, m, tea.MouseMsg{X: 2, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if m.session.State() != shelf.DragIdle {
		t.Errorf("right button started a drag")
	}
}

func TestModelRemoveOnlyShelfShowsReason(t *testing.T) {
	m, _ := newTestModel(t, shelf.Grid{Rows: 1, Cols: 3}, Options{}, isbnA)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m = next.(Model)
	if !m.busy {
		t.Fatal("remove did not start a store call")
	}
	for _, msg := range run(cmd) {
		m = update(t, m, msg)
	}

	if !m.statusErr || !strings.Contains(m.status, "only shelf") {
		t.Errorf("status = %q (error %v), want the rejection reason", m.status, m.statusErr)
	}
	if m.current.Grid.Rows != 1 {
		t.Errorf("rows = %d, want 1", m.current.Grid.Rows)
	}
}

func TestModelCapacityKeys(t *testing.T) {
	m, _ := newTestModel(t, shelf.Grid{Rows: 1, Cols: 2}, Options{}, isbnA, isbnB, isbnC)

	// Three books on a 1x2 shelf were packed onto two rows.
	if m.current.Grid.Rows != 2 {
		t.Fatalf("rows = %d, want 2", m.current.Grid.Rows)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m = next.(Model)
	for _, msg := range run(cmd) {
		m = update(t, m, msg)
	}
	if m.current.Grid.Cols != 3 {
		t.Errorf("cols = %d, want 3", m.current.Grid.Cols)
	}
	if got := cellOf(t, m.current.Items, isbnC); got != (shelf.Cell{Row: 0, Col: 2}) {
		t.Errorf("%s at %v after repack, want (0,2)", isbnC, got)
	}
}

func TestModelDefersRemoteReloadWhileDragging(t *testing.T) {
	events := make(chan notify.Event)
	m, _ := newTestModel(t, shelf.Grid{Rows: 1, Cols: 3}, Options{Events: events, Source: "me"}, isbnA, isbnB)

	m = update(t, m, remoteMsg(notify.Event{Kind: shelf.EventCommit, Source: "me"}))
	if m.reloadPending {
		t.Error("own event marked a reload")
	}

	m = update(t, m, mouse(tea.MouseActionPress, 2, 3))
	m = update(t, m, remoteMsg(notify.Event{Kind: shelf.EventCommit, Source: "other"}))
	if !m.reloadPending {
		t.Fatal("remote event during a drag should defer a reload")
	}

	before := m.current.Items.Clone()
	m = update(t, m, loadedMsg{shelf: shelf.Shelf{Grid: shelf.Grid{Rows: 1, Cols: 3}}})
	if !m.current.Items.SamePlacement(before) {
		t.Error("a fetch replaced the layout in the middle of a drag")
	}
}

func TestModelHandShelve(t *testing.T) {
	m, store := newTestModel(t, shelf.Grid{Rows: 1, Cols: 3}, Options{}, isbnA)

	ctx := context.Background()
	if _, err := store.AddToHand(ctx, storage.Book{ISBN: isbnB, Title: "Later", Class: "z"}); err != nil {
		t.Fatalf("AddToHand() error: %v", err)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if !m.handOpen {
		t.Fatal("tab did not open the hand")
	}
	for _, msg := range run(cmd) {
		m = update(t, m, msg)
	}
	if isbn, ok := m.hand.Selected(); !ok || isbn != isbnB {
		t.Fatalf("selected = %q, %v", isbn, ok)
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	for _, msg := range run(cmd) {
		next, follow := m.Update(msg)
		m = next.(Model)
		for _, msg := range run(follow) {
			m = update(t, m, msg)
		}
	}

	if _, ok := m.current.Items.Find(isbnB); !ok {
		t.Errorf("%s not on the shelf after shelving", isbnB)
	}
	if _, ok := m.hand.Selected(); ok {
		t.Error("hand should be empty")
	}
}

func TestModelViewRendersBooks(t *testing.T) {
	m, _ := newTestModel(t, shelf.Grid{Rows: 1, Cols: 3}, Options{}, isbnA)

	out := m.View()
	if out == "" {
		t.Fatal("View() returned empty string")
	}
	if !strings.Contains(out, "Bookshelf") {
		t.Errorf("View() is missing the title:\n%s", out)
	}
}

func TestModelDrawsDraggedBookAtPointer(t *testing.T) {
	m, _ := newTestModel(t, shelf.Grid{Rows: 1, Cols: 3}, Options{}, isbnA)

	m = update(t, m, mouse(tea.MouseActionPress, 2, 3))
	// Pointer grabbed the book one cell in; the box follows off the slot grid.
	m = update(t, m, mouse(tea.MouseActionMotion, 9, 3))
	m.View()

	if c := m.screen.GetCell(8, 2); c.Rune != '┌' || c.Color != core.ColorDragged {
		t.Errorf("cell (8,2) = %q colour %v, want the dragged book's corner", c.Rune, c.Color)
	}
	if r := m.screen.Get(1, 2); r == '┌' {
		t.Error("book still drawn at its origin slot")
	}
}
