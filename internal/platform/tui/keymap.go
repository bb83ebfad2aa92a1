package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bookshelf/internal/core"
)

// KeyMap defines the key bindings of the shelf view.
type KeyMap struct {
	CapacityUp   key.Binding
	CapacityDown key.Binding
	AddRow       key.Binding
	RemoveRow    key.Binding
	Arrange      key.Binding
	Refresh      key.Binding
	Hand         key.Binding
	Shelve       key.Binding
	Up           key.Binding
	Down         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CapacityUp, k.CapacityDown, k.AddRow, k.RemoveRow, k.Hand, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CapacityUp, k.CapacityDown, k.AddRow, k.RemoveRow},
		{k.Arrange, k.Refresh},
		{k.Hand, k.Up, k.Down, k.Shelve},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		CapacityUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "wider shelves"),
		),
		CapacityDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "narrower shelves"),
		),
		AddRow: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add shelf"),
		),
		RemoveRow: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove last shelf"),
		),
		Arrange: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "arrange by class"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Hand: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "hand"),
		),
		Shelve: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "shelve book"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "prev book"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next book"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to shelf actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.keys.CapacityUp):
		return core.ActionCapacityUp, false
	case key.Matches(msg, km.keys.CapacityDown):
		return core.ActionCapacityDown, false
	case key.Matches(msg, km.keys.AddRow):
		return core.ActionAddRow, false
	case key.Matches(msg, km.keys.RemoveRow):
		return core.ActionRemoveRow, false
	case key.Matches(msg, km.keys.Arrange):
		return core.ActionArrange, false
	case key.Matches(msg, km.keys.Refresh):
		return core.ActionRefresh, false
	case key.Matches(msg, km.keys.Hand):
		return core.ActionHand, false
	case key.Matches(msg, km.keys.Shelve):
		return core.ActionShelve, false
	case key.Matches(msg, km.keys.Help):
		return core.ActionHelp, false
	}
	return core.ActionNone, false
}
