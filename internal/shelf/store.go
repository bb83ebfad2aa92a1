package shelf

import "context"

// Store is the persistent side of the shelf. Implementations must be safe
// for use from several sessions at once.
type Store interface {
	// Fetch returns the current items and grid size.
	Fetch(ctx context.Context) (Shelf, error)
	// SetCapacity changes books per shelf and re-packs the layout.
	SetCapacity(ctx context.Context, perShelf int) error
	// Arrange re-packs the layout by class at the current capacity,
	// adding shelves only when the books no longer fit.
	Arrange(ctx context.Context) error
	// AddRow appends an empty shelf.
	AddRow(ctx context.Context) error
	// RemoveRow drops the last shelf. It is rejected with ErrRowOccupied
	// while books sit on it and with ErrLastRow when it is the only one.
	RemoveRow(ctx context.Context) error
	// Commit persists a complete layout.
	Commit(ctx context.Context, placements []Placement) error
}

// Event kinds published after a successful store change.
const (
	EventCommit   = "commit"
	EventCapacity = "capacity"
	EventRows     = "rows"
	EventArrange  = "arrange"
	EventHand     = "hand"
)

// Notifier tells other sessions that the store changed.
type Notifier interface {
	Publish(ctx context.Context, kind string) error
}
