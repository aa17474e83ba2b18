// Package tripmap is the library entry point for a shared trip plan: the
// day-by-day itinerary, flights, expenses, packing checklist, coupons and
// shopping list of one group trip, kept in a pluggable store and synced
// between devices through a remote endpoint or a copy-paste token.
//
// Example usage:
//
//	tm, err := tripmap.New(tripmap.WithStoreDSN("sqlite://~/.tripmap/trip.db"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tm.Close()
//
//	// Register event hooks
//	tm.OnChange(func(e tripmap.ChangeEvent) {
//	    log.Printf("%s %s %s", e.Collection, e.Action, e.ID)
//	})
//
//	// Add a stop to day 2
//	item, err := tm.Itinerary().AddItem(ctx, 2, collections.ItemInput{
//	    Time:  "09:00",
//	    Title: "伏見稻荷大社",
//	})
//
//	// Send everything to the shared endpoint
//	ack, err := tm.Push(ctx)
package tripmap

import (
	"context"
	"sync"

	"github.com/agentstation/tripmap/internal/live"
	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/logging"
	"github.com/agentstation/tripmap/pkg/store"
	"github.com/agentstation/tripmap/pkg/syncer"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Collections gives access to the collection managers.
type Collections interface {
	Itinerary() *collections.Itinerary
	Flights() *collections.Flights
	Expenses() *collections.Expenses
	Checklist() *collections.Checklist
	Coupons() *collections.Coupons
	Shopping() *collections.Shopping
	Settings() *collections.Settings
}

// Client is a trip plan backed by a store.
type Client interface {

	// Collections provides the per-collection managers
	Collections

	// Syncer exports, imports, pushes and pulls the shared collections
	Syncer

	// Live provides weather, exchange rate and tips
	Live

	// Persistence handles reloading, backups and closing the store
	Persistence

	// Hooks provides access to event callback registration
	Hooks
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options

	store     store.Store
	ownsStore bool

	set    *collections.Set
	engine *syncer.Engine
	live   *live.Service
	hooks  *hooks

	closeOnce sync.Once
}

// New creates a Client. Without WithStore or WithStoreDSN the trip lives in
// memory only.
func New(opts ...Option) (Client, error) {
	o := defaults().apply(opts...)

	c := &client{
		options: o,
		hooks:   newHooks(),
	}

	if o.store != nil {
		c.store = o.store
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), constants.StoreOpenTimeout)
		s, err := store.Open(logging.WithLogger(ctx, o.logger), o.storeDSN)
		cancel()
		if err != nil {
			return nil, errors.WrapResource("open", "store", o.storeDSN, err)
		}
		c.store = s
		c.ownsStore = true
	}

	ctx := logging.WithLogger(context.Background(), o.logger)
	c.set = collections.NewSet(ctx, c.store,
		collections.WithLogger(o.logger),
		collections.WithClock(o.now),
		collections.WithNotifier(c.hooks.triggerChange),
	)

	remote := o.remote
	if remote == nil {
		remote = syncer.NewHTTPRemote(c.SyncURL, o.transportOptions()...)
	}
	c.engine = syncer.New(c.store,
		syncer.WithRemote(remote),
		syncer.WithReload(func(ctx context.Context) error {
			c.set.Load(ctx)
			return nil
		}),
		syncer.WithClock(o.now),
		syncer.WithVerifyPush(o.verifyPush),
		syncer.WithSettleDelay(o.settleDelay),
		syncer.WithStatusHook(c.hooks.triggerSyncStatus),
		syncer.WithLogger(o.logger),
	)

	c.live = o.live
	if c.live == nil {
		c.live = live.New(live.WithLogger(o.logger))
	}

	o.logger.Debug().
		Int("days", len(c.set.Itinerary.Days())).
		Int("expenses", len(c.set.Expenses.List())).
		Msg("Trip loaded")

	return c, nil
}

// Itinerary returns the itinerary manager.
func (c *client) Itinerary() *collections.Itinerary { return c.set.Itinerary }

// Flights returns the flights manager.
func (c *client) Flights() *collections.Flights { return c.set.Flights }

// Expenses returns the expenses manager.
func (c *client) Expenses() *collections.Expenses { return c.set.Expenses }

// Checklist returns the checklist manager.
func (c *client) Checklist() *collections.Checklist { return c.set.Checklist }

// Coupons returns the coupons manager.
func (c *client) Coupons() *collections.Coupons { return c.set.Coupons }

// Shopping returns the shopping manager.
func (c *client) Shopping() *collections.Shopping { return c.set.Shopping }

// Settings returns the settings manager.
func (c *client) Settings() *collections.Settings { return c.set.Settings }
