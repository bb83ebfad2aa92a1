package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bookshelf/internal/core"
	"github.com/vovakirdan/tui-bookshelf/internal/notify"
	"github.com/vovakirdan/tui-bookshelf/internal/shelf"
	"github.com/vovakirdan/tui-bookshelf/internal/storage"
)

// Options wires the optional collaborators of the view.
type Options struct {
	Geometry       shelf.Geometry
	AnimationTicks int
	Logger         *log.Logger

	// Hand enables the hand panel.
	Hand HandStore

	// Events delivers changes made by other sessions. Events whose Source
	// equals Source came from this session and are ignored.
	Events <-chan notify.Event
	Source string
}

// Messages produced by commands.
type (
	loadedMsg struct {
		shelf shelf.Shelf
		err   error
	}
	changedMsg struct {
		action core.Action
		shelf  shelf.Shelf
		err    error
	}
	committedMsg struct {
		shelf shelf.Shelf
	}
	handLoadedMsg struct {
		entries []storage.HandEntry
		err     error
	}
	shelvedMsg struct {
		isbn string
		err  error
	}
	remoteMsg notify.Event
)

// Model is the Bubble Tea model for the interactive shelf.
type Model struct {
	ctx    context.Context
	app    *shelf.App
	opts   Options
	logger *log.Logger

	screen  *core.Screen
	config  core.RuntimeConfig
	mapper  shelf.Mapper
	session *shelf.Session
	current shelf.Shelf
	anim    *animator

	keys   KeyMap
	keymap *KeyMapper
	help   help.Model
	hand   handPanel

	handOpen      bool
	busy          bool // a store call is in flight
	animating     bool // a tick is scheduled
	reloadPending bool // another session changed the shelf mid-drag
	status        string
	statusErr     bool
	quitting      bool
}

// NewModel creates the shelf view over app.
func NewModel(ctx context.Context, app *shelf.App, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Geometry == (shelf.Geometry{}) {
		opts.Geometry = shelf.DefaultGeometry()
	}
	if opts.AnimationTicks < 0 {
		opts.AnimationTicks = 0
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	current := app.Current()
	mapper := shelf.NewMapper(opts.Geometry, current.Grid)
	keys := DefaultKeyMap()
	h := help.New()
	h.ShowAll = false

	return Model{
		ctx:     ctx,
		app:     app,
		opts:    opts,
		logger:  opts.Logger,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:  cfg,
		mapper:  mapper,
		session: shelf.NewSession(mapper),
		current: current,
		anim:    newAnimator(opts.AnimationTicks),
		keys:    keys,
		keymap:  NewKeyMapper(keys),
		help:    h,
		hand:    newHandPanel(cfg.ScreenH - 8),
	}
}

// Init fetches the shelf and starts listening for remote changes.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCmd()}
	if m.opts.Hand != nil {
		cmds = append(cmds, m.handCmd())
	}
	if m.opts.Events != nil {
		cmds = append(cmds, waitForEvent(m.opts.Events))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case loadedMsg:
		if msg.err != nil {
			m.setError("Could not load the shelf; see the log.")
			return m, nil
		}
		if m.session.State() != shelf.DragIdle {
			m.reloadPending = true
			return m, nil
		}
		return m, m.apply(msg.shelf)

	case changedMsg:
		return m.handleChanged(msg)

	case committedMsg:
		m.busy = false
		m.session.Settle()
		cmd := m.apply(msg.shelf)
		if m.reloadPending {
			m.reloadPending = false
			return m, tea.Batch(cmd, m.loadCmd())
		}
		return m, cmd

	case handLoadedMsg:
		if msg.err != nil {
			m.logger.Error("load hand failed", "error", msg.err)
			m.setError("Could not load the hand; see the log.")
			return m, nil
		}
		m.hand.SetEntries(msg.entries)
		return m, nil

	case shelvedMsg:
		m.busy = false
		if msg.err != nil {
			m.reportError("shelve book", msg.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Shelved %s.", msg.isbn))
		return m, tea.Batch(m.loadCmd(), m.handCmd())

	case remoteMsg:
		return m.handleRemote(notify.Event(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keymap.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.handOpen && (key.Matches(msg, m.keys.Up) || key.Matches(msg, m.keys.Down)) {
		var cmd tea.Cmd
		m.hand, cmd = m.hand.Update(msg)
		return m, cmd
	}

	switch action {
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case core.ActionHand:
		if m.opts.Hand == nil {
			m.setError("The hand is not available in this session.")
			return m, nil
		}
		m.handOpen = !m.handOpen
		if m.handOpen {
			return m, m.handCmd()
		}
		return m, nil

	case core.ActionRefresh:
		if m.session.State() != shelf.DragIdle {
			return m, nil
		}
		return m, m.loadCmd()

	case core.ActionCapacityUp, core.ActionCapacityDown, core.ActionAddRow,
		core.ActionRemoveRow, core.ActionArrange:
		if !m.idle() {
			return m, nil
		}
		m.busy = true
		return m, m.changeCmd(action)

	case core.ActionShelve:
		if !m.handOpen || !m.idle() {
			return m, nil
		}
		isbn, ok := m.hand.Selected()
		if !ok {
			return m, nil
		}
		m.busy = true
		return m, m.shelveCmd(isbn)
	}

	return m, nil
}

// handleMouse drives the drag session. Update runs one message at a time,
// so every move is resolved before the next one arrives.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.idle() {
			return m, nil
		}
		key, ok := m.mapper.ItemAt(m.current.Items, msg.X, msg.Y)
		if !ok || !m.session.Start(m.current.Items, key, msg.X, msg.Y) {
			return m, nil
		}
		m.anim.Sync(m.mapper, m.current.Items, key)
		p := m.session.Preview()
		m.anim.Place(key, p.X, p.Y)
		m.setStatus(fmt.Sprintf("Moving %s", m.title(key)))
		return m, m.startTick()

	case tea.MouseActionMotion:
		if m.session.State() != shelf.DragDragging {
			return m, nil
		}
		p := m.session.Move(m.current.Items, msg.X, msg.Y)
		mover := m.session.Key()
		m.anim.Place(mover, p.X, p.Y)
		if p.Outcome.OK {
			m.anim.Sync(m.mapper, p.Outcome.Layout, mover)
			m.setStatus(fmt.Sprintf("Moving %s to %s", m.title(mover), describeCell(p.Target)))
		} else {
			m.setStatus(fmt.Sprintf("No room on shelf %d", p.Target.Row+1))
		}
		return m, m.startTick()

	case tea.MouseActionRelease:
		if m.session.State() != shelf.DragDragging {
			return m, nil
		}
		c, ok := m.session.End(m.current.Items, msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.anim.Sync(m.mapper, c.Layout, "")
		cmd := m.commitCmd(c.Layout)
		m.current.Items = c.Layout
		m.busy = true

		switch {
		case !c.Outcome.OK:
			m.setStatus(fmt.Sprintf("No room there; %s went back.", m.title(c.Key)))
		case c.Changed:
			m.setStatus(fmt.Sprintf("Placed %s at %s.", m.title(c.Key), describeCell(c.Snap)))
		default:
			m.setStatus("")
		}
		return m, tea.Batch(cmd, m.startTick())
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.hand.SetHeight(msg.Height - 8)
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances animations and keeps ticking while anything moves.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.anim.Step() {
		return m, tickCmd(m.config.TickRate)
	}
	m.animating = false
	return m, nil
}

func (m Model) handleChanged(msg changedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.reportError(actionVerb(msg.action), msg.err)
		return m, nil
	}
	cmd := m.apply(msg.shelf)
	m.setStatus(fmt.Sprintf("%d shelves of %d books.", msg.shelf.Grid.Rows, msg.shelf.Grid.Cols))
	return m, cmd
}

func (m Model) handleRemote(ev notify.Event) (tea.Model, tea.Cmd) {
	next := waitForEvent(m.opts.Events)
	if ev.Source == m.opts.Source {
		return m, next
	}
	m.logger.Debug("remote change", "kind", ev.Kind, "id", ev.ID)
	if !m.idle() {
		m.reloadPending = true
		return m, next
	}
	cmds := []tea.Cmd{next, m.loadCmd()}
	if m.handOpen {
		cmds = append(cmds, m.handCmd())
	}
	return m, tea.Batch(cmds...)
}

// apply adopts a fetched snapshot as the authoritative layout.
func (m *Model) apply(s shelf.Shelf) tea.Cmd {
	m.current = s
	m.mapper = shelf.NewMapper(m.opts.Geometry, s.Grid)
	m.session.SetMapper(m.mapper)
	m.anim.Sync(m.mapper, s.Items, "")
	return m.startTick()
}

func (m *Model) startTick() tea.Cmd {
	if m.animating || !m.anim.Active() {
		return nil
	}
	m.animating = true
	return tickCmd(m.config.TickRate)
}

// idle reports whether the store may be called: no drag and no call in flight.
func (m Model) idle() bool {
	return !m.busy && m.session.State() == shelf.DragIdle
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

// reportError shows store rejections as-is and hides transient failures
// behind a pointer to the log, where App has already recorded them.
func (m *Model) reportError(verb string, err error) {
	if msg, ok := shelf.UserMessage(err); ok {
		m.setError(msg)
		return
	}
	m.logger.Error(verb+" failed", "error", err)
	m.setError(fmt.Sprintf("Could not %s; see the log.", verb))
}

func (m Model) title(key string) string {
	if it, ok := m.current.Items.Find(key); ok && it.Title != "" {
		return it.Title
	}
	return key
}

func (m Model) loadCmd() tea.Cmd {
	app, ctx := m.app, m.ctx
	return func() tea.Msg {
		s, err := app.Load(ctx)
		return loadedMsg{shelf: s, err: err}
	}
}

func (m Model) changeCmd(action core.Action) tea.Cmd {
	app, ctx, cols := m.app, m.ctx, m.current.Grid.Cols
	return func() tea.Msg {
		var s shelf.Shelf
		var err error
		switch action {
		case core.ActionCapacityUp:
			s, err = app.SetCapacity(ctx, cols+1)
		case core.ActionCapacityDown:
			s, err = app.SetCapacity(ctx, cols-1)
		case core.ActionAddRow:
			s, err = app.AddRow(ctx)
		case core.ActionRemoveRow:
			s, err = app.RemoveRow(ctx)
		case core.ActionArrange:
			s, err = app.Arrange(ctx)
		}
		return changedMsg{action: action, shelf: s, err: err}
	}
}

// commitCmd persists a finished drag. App.Commit logs a failed write and
// refreshes either way, so the message always carries the stored layout.
func (m Model) commitCmd(layout shelf.Layout) tea.Cmd {
	app, ctx := m.app, m.ctx
	layout = layout.Clone()
	return func() tea.Msg {
		return committedMsg{shelf: app.Commit(ctx, layout)}
	}
}

func (m Model) handCmd() tea.Cmd {
	hand, ctx := m.opts.Hand, m.ctx
	if hand == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := hand.Hand(ctx)
		return handLoadedMsg{entries: entries, err: err}
	}
}

func (m Model) shelveCmd(isbn string) tea.Cmd {
	hand, app, ctx := m.opts.Hand, m.app, m.ctx
	return func() tea.Msg {
		if err := hand.ShelveFromHand(ctx, []string{isbn}); err != nil {
			return shelvedMsg{isbn: isbn, err: err}
		}
		app.Changed(ctx, shelf.EventHand)
		return shelvedMsg{isbn: isbn}
	}
}

// waitForEvent blocks on the next remote event.
func waitForEvent(ch <-chan notify.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return remoteMsg(ev)
	}
}

func actionVerb(a core.Action) string {
	switch a {
	case core.ActionCapacityUp, core.ActionCapacityDown:
		return "change capacity"
	case core.ActionAddRow:
		return "add a shelf"
	case core.ActionRemoveRow:
		return "remove the shelf"
	case core.ActionArrange:
		return "arrange the shelf"
	default:
		return "update the shelf"
	}
}

func describeCell(c shelf.Cell) string {
	return fmt.Sprintf("shelf %d, slot %d", c.Row+1, c.Col+1)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.draw()
	body := RenderScreen(m.screen)
	if m.handOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", m.hand.View())
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return body + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for the shelf view.
func Run(ctx context.Context, app *shelf.App, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(ctx, app, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Press, drag and release events
	)

	_, err := p.Run()
	return err
}
