// Package collections holds the in-memory managers for each trip collection.
//
// Every manager keeps a copy of its collection guarded by a RWMutex, loads
// it from a store.Store (falling back to seed data when the stored document
// is absent or unreadable; absent synced seeds are stored) and writes the whole collection back after every
// successful mutation. A mutation that fails validation or fails to persist
// leaves the in-memory copy unchanged.
package collections

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/logging"
	"github.com/agentstation/tripmap/pkg/store"
	"github.com/agentstation/tripmap/pkg/trip"
)

// Collection names used in change events and logs.
const (
	CollectionItinerary = "itinerary"
	CollectionFlights   = "flights"
	CollectionExpenses  = "expenses"
	CollectionChecklist = "checklist"
	CollectionCoupons   = "coupons"
	CollectionShopping  = "shopping"
	CollectionSettings  = "settings"
)

// Change actions.
const (
	ActionAdd    = "add"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionMove   = "move"
	ActionToggle = "toggle"
	ActionReset  = "reset"
)

// ChangeEvent describes one successful mutation.
type ChangeEvent struct {
	Collection string    `json:"collection"`
	Action     string    `json:"action"`
	ID         string    `json:"id,omitempty"`
	At         time.Time `json:"at"`
}

// Option configures a manager.
type Option func(*options)

type options struct {
	logger *zerolog.Logger
	now    func() time.Time
	newID  trip.IDFunc
	notify func(ChangeEvent)
}

// WithLogger sets the logger used for load fallbacks and mutations.
func WithLogger(l *zerolog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDFunc sets the generator for new record ids.
func WithIDFunc(fn trip.IDFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithNotifier registers a callback fired after every successful mutation.
func WithNotifier(fn func(ChangeEvent)) Option {
	return func(o *options) {
		o.notify = fn
	}
}

func applyOptions(opts []Option) options {
	o := options{
		logger: logging.Default(),
		now:    time.Now,
		newID:  trip.NewID,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// base is the persistence plumbing shared by every manager.
type base struct {
	options
	store      store.Store
	collection string
}

func newBase(s store.Store, collection string, opts []Option) base {
	return base{
		options:    applyOptions(opts),
		store:      s,
		collection: collection,
	}
}

// ctx attaches the manager's logger unless the caller already set one.
func (b *base) ctx(ctx context.Context) context.Context {
	if logging.FromContext(ctx) == logging.Default() {
		ctx = logging.WithLogger(ctx, b.logger)
	}
	return logging.WithCollection(ctx, b.collection)
}

// persistSeed writes seed under schema when nothing is stored there yet, so
// a sync gathers what the device shows. A document that exists but fails
// to decode is left alone, as is any store error.
func persistSeed[T any](ctx context.Context, b *base, schema store.Schema, seed T) {
	_, err := b.store.Load(ctx, schema.Key)
	if err == nil || !errors.IsNotFound(err) {
		return
	}
	if err := store.Put(ctx, b.store, schema, seed); err != nil {
		b.logger.Warn().Err(err).Str("key", schema.Key).Msg("Failed to store seed data")
	}
}

func (b *base) changed(action, id string) {
	b.logger.Debug().
		Str("collection", b.collection).
		Str("action", action).
		Str("id", id).
		Msg("Collection changed")
	if b.notify != nil {
		b.notify(ChangeEvent{Collection: b.collection, Action: action, ID: id, At: b.now()})
	}
}
