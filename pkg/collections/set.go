package collections

import (
	"context"

	"github.com/agentstation/tripmap/pkg/store"
)

// Set is every manager of a trip sharing one store.
type Set struct {
	Itinerary *Itinerary
	Flights   *Flights
	Expenses  *Expenses
	Checklist *Checklist
	Coupons   *Coupons
	Shopping  *Shopping
	Settings  *Settings
}

// NewSet creates all managers over s and loads them.
func NewSet(ctx context.Context, s store.Store, opts ...Option) *Set {
	set := &Set{
		Itinerary: NewItinerary(s, opts...),
		Flights:   NewFlights(s, opts...),
		Expenses:  NewExpenses(s, opts...),
		Checklist: NewChecklist(s, opts...),
		Coupons:   NewCoupons(s, opts...),
		Shopping:  NewShopping(s, opts...),
		Settings:  NewSettings(s, opts...),
	}
	set.Load(ctx)
	return set
}

// Load makes every manager discard its memory and re-read the store.
func (s *Set) Load(ctx context.Context) {
	s.Itinerary.Load(ctx)
	s.Flights.Load(ctx)
	s.Expenses.Load(ctx)
	s.Checklist.Load(ctx)
	s.Coupons.Load(ctx)
	s.Shopping.Load(ctx)
	s.Settings.Load(ctx)
}
