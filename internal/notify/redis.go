// Package notify broadcasts shelf changes between sessions that share one
// database, using Redis Pub/Sub.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/tui-bookshelf/internal/shelf"
)

// Event announces one committed change.
type Event struct {
	ID     string    `json:"id"`
	Kind   string    `json:"kind"`
	Source string    `json:"source"` // publishing Redis client, see Redis.Source
	At     time.Time `json:"at"`
}

// Redis publishes and receives layout events. It implements shelf.Notifier.
// Safe for concurrent use.
type Redis struct {
	rdb    *redis.Client
	prefix string
	source string
}

var _ shelf.Notifier = (*Redis)(nil)

// EventsChannel returns the Pub/Sub channel for a key prefix.
func EventsChannel(prefix string) string {
	return prefix + ":layout_events"
}

// NewRedis creates a notifier. Each value gets its own source id so a
// session can recognise its own events.
func NewRedis(opts *redis.Options, prefix string) (*Redis, error) {
	if prefix == "" {
		return nil, fmt.Errorf("notify: key prefix cannot be empty")
	}
	return &Redis{
		rdb:    redis.NewClient(opts),
		prefix: prefix,
		source: uuid.NewString(),
	}, nil
}

// Source returns the id stamped on events from this notifier.
func (r *Redis) Source() string {
	return r.source
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

// Publish sends an event of the given kind.
func (r *Redis) Publish(ctx context.Context, kind string) error {
	ev := Event{
		ID:     uuid.NewString(),
		Kind:   kind,
		Source: r.source,
		At:     time.Now().UTC(),
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("notify: cannot marshal event: %w", err)
	}
	if err := r.rdb.Publish(ctx, EventsChannel(r.prefix), data).Err(); err != nil {
		return fmt.Errorf("notify: cannot publish event: %w", err)
	}
	return nil
}

// Subscription delivers events until closed or its context ends.
type Subscription struct {
	events <-chan Event
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the event channel. It is closed when the subscription ends.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Errors returns malformed-message errors. The subscription keeps running
// after them; errors beyond the buffer are dropped.
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription. Safe to call more than once.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// Subscribe starts listening for events. It returns once Redis has
// confirmed the subscription, so nothing published afterwards is missed.
func (r *Redis) Subscribe(ctx context.Context) (*Subscription, error) {
	pubsub := r.rdb.Subscribe(ctx, EventsChannel(r.prefix))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("notify: cannot subscribe: %w", err)
	}

	events := make(chan Event, 10)
	errs := make(chan error, 10)
	subCtx, cancel := context.WithCancel(ctx)

	go func() {
		defer close(events)
		defer close(errs)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}

				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					// Dropped when nobody drains Errors.
					select {
					case errs <- fmt.Errorf("notify: cannot unmarshal event: %w", err):
					default:
					}
					continue
				}

				select {
				case events <- ev:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{events: events, errors: errs, cancel: cancel}, nil
}
