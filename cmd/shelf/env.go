package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/tui-bookshelf/internal/notify"
	"github.com/vovakirdan/tui-bookshelf/internal/shelf"
	"github.com/vovakirdan/tui-bookshelf/internal/storage"
)

func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "shelf",
	})
	if flagVerbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// openStore opens the configured database, seeding a new one with the
// configured shelf shape.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(cfg.Storage.Path, storage.WithInitialGrid(cfg.InitialGrid()))
	if err != nil {
		return nil, fmt.Errorf("could not open shelf database: %w", err)
	}
	return store, nil
}

// redisOptions returns nil when change notification is disabled.
func redisOptions() *redis.Options {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}

// openNotifier connects to Redis when configured. It returns nil when
// notification is off or the server cannot be reached.
func openNotifier(ctx context.Context, l *log.Logger) *notify.Redis {
	opts := redisOptions()
	if opts == nil {
		return nil
	}
	n, err := notify.NewRedis(opts, cfg.Redis.Prefix)
	if err != nil {
		l.Warn("change notification disabled", "error", err)
		return nil
	}
	if err := n.Ping(ctx); err != nil {
		l.Warn("change notification disabled", "addr", opts.Addr, "error", err)
		n.Close()
		return nil
	}
	return n
}

// session bundles what the one-shot commands need.
type session struct {
	store    *storage.Store
	notifier *notify.Redis
	app      *shelf.App
}

func openSession(ctx context.Context) (*session, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	s := &session{store: store}

	var opts []shelf.Option
	if n := openNotifier(ctx, logger); n != nil {
		s.notifier = n
		opts = append(opts, shelf.WithNotifier(n))
	}
	s.app = shelf.NewApp(store, logger, opts...)
	return s, nil
}

func (s *session) Close() {
	if s.notifier != nil {
		s.notifier.Close()
	}
	s.store.Close()
}

// explain turns a rejection into its reason and keeps other errors intact.
func explain(err error) error {
	if msg, ok := shelf.UserMessage(err); ok {
		return errors.New(msg)
	}
	return err
}
