package collections

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/store"
	"github.com/agentstation/tripmap/pkg/trip"
)

// CouponInput is the editable content of a coupon.
type CouponInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ExpiryDate  string `json:"expiryDate,omitempty"`
}

func (in CouponInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.NewValidationError("title", in.Title, "title is required")
	}
	if strings.TrimSpace(in.URL) == "" {
		return errors.NewValidationError("url", in.URL, "url is required")
	}
	return nil
}

// Coupons manages the coupon list.
type Coupons struct {
	base
	mu      sync.RWMutex
	coupons []trip.Coupon
}

// NewCoupons creates a coupon manager holding the seed until Load is called.
func NewCoupons(s store.Store, opts ...Option) *Coupons {
	return &Coupons{
		base:    newBase(s, CollectionCoupons, opts),
		coupons: trip.SeedCoupons(),
	}
}

// Load replaces the in-memory coupons with the stored ones, or the seed.
func (m *Coupons) Load(ctx context.Context) {
	ctx = m.ctx(ctx)
	coupons, ok := store.Get[[]trip.Coupon](ctx, m.store, CouponsSchema)
	if !ok || coupons == nil {
		coupons = trip.SeedCoupons()
		persistSeed(ctx, &m.base, CouponsSchema, coupons)
	}
	m.mu.Lock()
	m.coupons = coupons
	m.mu.Unlock()
}

// List returns a copy of the coupons.
func (m *Coupons) List() []trip.Coupon {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.coupons)
}

// Add appends a coupon and returns it.
func (m *Coupons) Add(ctx context.Context, in CouponInput) (trip.Coupon, error) {
	if err := in.validate(); err != nil {
		return trip.Coupon{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := in.coupon(m.newID(trip.PrefixCoupon))
	next := append(slices.Clone(m.coupons), c)
	if err := m.commit(ctx, next); err != nil {
		return trip.Coupon{}, err
	}
	m.changed(ActionAdd, c.ID)
	return c, nil
}

// Update replaces the content of a coupon, keeping its id.
func (m *Coupons) Update(ctx context.Context, id string, in CouponInput) (trip.Coupon, error) {
	if err := in.validate(); err != nil {
		return trip.Coupon{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return trip.Coupon{}, errors.NewNotFoundError("coupon", id)
	}
	next := slices.Clone(m.coupons)
	next[i] = in.coupon(id)
	if err := m.commit(ctx, next); err != nil {
		return trip.Coupon{}, err
	}
	m.changed(ActionUpdate, id)
	return next[i], nil
}

// Delete removes a coupon.
func (m *Coupons) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return errors.NewNotFoundError("coupon", id)
	}
	next := slices.Delete(slices.Clone(m.coupons), i, i+1)
	if err := m.commit(ctx, next); err != nil {
		return err
	}
	m.changed(ActionDelete, id)
	return nil
}

func (in CouponInput) coupon(id string) trip.Coupon {
	return trip.Coupon{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		URL:         strings.TrimSpace(in.URL),
		ExpiryDate:  in.ExpiryDate,
	}
}

func (m *Coupons) commit(ctx context.Context, next []trip.Coupon) error {
	if err := store.Put(m.ctx(ctx), m.store, CouponsSchema, next); err != nil {
		return err
	}
	m.coupons = next
	return nil
}

func (m *Coupons) index(id string) int {
	return slices.IndexFunc(m.coupons, func(c trip.Coupon) bool { return c.ID == id })
}
