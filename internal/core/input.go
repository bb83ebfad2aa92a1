package core

// Action represents a semantic shelf action, abstracted from physical key presses.
type Action int

const (
	ActionNone         Action = iota
	ActionCapacityUp          // +, = - one more book per shelf
	ActionCapacityDown        // -, _ - one less book per shelf
	ActionAddRow              // a - append a shelf row
	ActionRemoveRow           // d - remove the last shelf row
	ActionRefresh             // r - re-fetch the layout
	ActionArrange             // o - re-pack books by class
	ActionHand                // tab - show or hide the hand
	ActionShelve              // enter - shelve the selected hand book
	ActionHelp                // ? - toggle full help
	ActionQuit                // q, ctrl+c
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionCapacityUp:
		return "CapacityUp"
	case ActionCapacityDown:
		return "CapacityDown"
	case ActionAddRow:
		return "AddRow"
	case ActionRemoveRow:
		return "RemoveRow"
	case ActionRefresh:
		return "Refresh"
	case ActionArrange:
		return "Arrange"
	case ActionHand:
		return "Hand"
	case ActionShelve:
		return "Shelve"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
