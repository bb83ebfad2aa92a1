package shelf

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// App is the application-state handle: it owns the last fetched snapshot and
// routes every change through the store. Views hold an *App instead of
// reaching for shared globals.
type App struct {
	store    Store
	logger   *log.Logger
	notifier Notifier

	mu      sync.RWMutex
	current Shelf
}

// Option configures an App.
type Option func(*App)

// WithNotifier publishes an event after every successful change.
func WithNotifier(n Notifier) Option {
	return func(a *App) { a.notifier = n }
}

// NewApp creates an App over store. A nil logger discards output.
func NewApp(store Store, logger *log.Logger, opts ...Option) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	a := &App{store: store, logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Logger returns the logger the App writes to.
func (a *App) Logger() *log.Logger {
	return a.logger
}

// Current returns a copy of the last fetched snapshot.
func (a *App) Current() Shelf {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current.Clone()
}

// Load fetches the store. On failure the previous snapshot is kept and
// returned alongside the error.
func (a *App) Load(ctx context.Context) (Shelf, error) {
	s, err := a.store.Fetch(ctx)
	if err != nil {
		a.logger.Error("fetch layout failed", "error", err)
		return a.Current(), err
	}

	a.mu.Lock()
	a.current = s.Clone()
	a.mu.Unlock()

	a.logger.Debug("layout fetched", "rows", s.Grid.Rows, "cols", s.Grid.Cols, "books", len(s.Items))
	return s, nil
}

// SetCapacity changes books per shelf. Values below one are rejected before
// reaching the store.
func (a *App) SetCapacity(ctx context.Context, perShelf int) (Shelf, error) {
	if perShelf < 1 {
		return a.Current(), Reject(CodeInvalidCapacity, "books per shelf must be at least 1, got %d", perShelf)
	}
	return a.change(ctx, EventCapacity, func() error {
		return a.store.SetCapacity(ctx, perShelf)
	})
}

// Arrange re-packs the shelf by class at the current capacity.
func (a *App) Arrange(ctx context.Context) (Shelf, error) {
	return a.change(ctx, EventArrange, func() error {
		return a.store.Arrange(ctx)
	})
}

// AddRow appends an empty shelf.
func (a *App) AddRow(ctx context.Context) (Shelf, error) {
	return a.change(ctx, EventRows, func() error {
		return a.store.AddRow(ctx)
	})
}

// RemoveRow drops the last shelf. A rejection carries a message for the user;
// see UserMessage.
func (a *App) RemoveRow(ctx context.Context) (Shelf, error) {
	return a.change(ctx, EventRows, func() error {
		return a.store.RemoveRow(ctx)
	})
}

// Commit persists layout and then refreshes. A failed write is logged, not
// returned: the refresh that follows restores whatever the store holds.
func (a *App) Commit(ctx context.Context, layout Layout) Shelf {
	if err := a.store.Commit(ctx, layout.Placements()); err != nil {
		a.logger.Error("commit layout failed", "error", err)
	} else {
		a.logger.Debug("layout committed", "books", len(layout))
		a.notify(ctx, EventCommit)
	}
	s, _ := a.Load(ctx)
	return s
}

// Changed publishes kind for a change made outside the App, such as the CLI
// moving books out of the hand.
func (a *App) Changed(ctx context.Context, kind string) {
	a.notify(ctx, kind)
}

func (a *App) change(ctx context.Context, kind string, fn func() error) (Shelf, error) {
	if err := fn(); err != nil {
		if msg, ok := UserMessage(err); ok {
			a.logger.Info("change rejected", "kind", kind, "reason", msg)
		} else {
			a.logger.Error("change failed", "kind", kind, "error", err)
		}
		return a.Current(), err
	}
	a.notify(ctx, kind)
	return a.Load(ctx)
}

func (a *App) notify(ctx context.Context, kind string) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.Publish(ctx, kind); err != nil {
		a.logger.Warn("publish event failed", "kind", kind, "error", err)
	}
}
