package collections

import (
	"context"
	"slices"
	"sync"

	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/store"
	"github.com/agentstation/tripmap/pkg/trip"
)

// FlightUpdate holds the editable fields of a flight. Nil fields are left alone.
type FlightUpdate struct {
	DepartureTime *string `json:"departureTime,omitempty"`
	ArrivalTime   *string `json:"arrivalTime,omitempty"`
	Seat          *string `json:"seat,omitempty"`
}

// Flights manages the two fixed flight legs.
type Flights struct {
	base
	mu      sync.RWMutex
	flights []trip.Flight
}

// NewFlights creates a flights manager holding the seed until Load is called.
func NewFlights(s store.Store, opts ...Option) *Flights {
	return &Flights{
		base:    newBase(s, CollectionFlights, opts),
		flights: trip.SeedFlights(),
	}
}

// Load replaces the in-memory flights with the stored ones, or the seed.
func (m *Flights) Load(ctx context.Context) {
	flights, ok := store.Get[[]trip.Flight](m.ctx(ctx), m.store, FlightsSchema)
	if !ok || flights == nil {
		flights = trip.SeedFlights()
	}
	m.mu.Lock()
	m.flights = flights
	m.mu.Unlock()
}

// List returns a copy of the flights.
func (m *Flights) List() []trip.Flight {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.flights)
}

// Get returns the flight with id.
func (m *Flights) Get(id string) (trip.Flight, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := slices.IndexFunc(m.flights, func(f trip.Flight) bool { return f.ID == id })
	if i < 0 {
		return trip.Flight{}, errors.NewNotFoundError("flight", id)
	}
	return m.flights[i], nil
}

// Update changes the departure time, arrival time or seat of a flight.
func (m *Flights) Update(ctx context.Context, id string, u FlightUpdate) (trip.Flight, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.IndexFunc(m.flights, func(f trip.Flight) bool { return f.ID == id })
	if i < 0 {
		return trip.Flight{}, errors.NewNotFoundError("flight", id)
	}

	next := slices.Clone(m.flights)
	if u.DepartureTime != nil {
		next[i].DepartureTime = *u.DepartureTime
	}
	if u.ArrivalTime != nil {
		next[i].ArrivalTime = *u.ArrivalTime
	}
	if u.Seat != nil {
		next[i].Seat = *u.Seat
	}

	if err := store.Put(m.ctx(ctx), m.store, FlightsSchema, next); err != nil {
		return trip.Flight{}, err
	}
	m.flights = next
	m.changed(ActionUpdate, id)
	return next[i], nil
}
