package collections

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/store"
	"github.com/agentstation/tripmap/pkg/trip"
)

// ItemInput is the editable content of a schedule item. The transport leg
// is attached only when TransportDetail is set.
type ItemInput struct {
	Time        string `json:"time,omitempty"`
	Title       string `json:"title"`
	Duration    string `json:"duration,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	Note        string `json:"note,omitempty"`
	Photo       string `json:"photo,omitempty"`
	IsOptional  bool   `json:"isOptional,omitempty"`

	TransportMode     trip.TransportMode `json:"transportMode,omitempty"`
	TransportDetail   string             `json:"transportDetail,omitempty"`
	TransportDuration string             `json:"transportDuration,omitempty"`
	TransportNote     string             `json:"transportNote,omitempty"`
}

func (in ItemInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.NewValidationError("title", in.Title, "title is required")
	}
	if in.Time != "" && !trip.ValidClock(in.Time) {
		return errors.NewValidationError("time", in.Time, "time must be HH:MM")
	}
	if in.TransportMode != "" && !in.TransportMode.Valid() {
		return errors.NewValidationError("transportMode", in.TransportMode, "unknown transport mode")
	}
	return nil
}

func (in ItemInput) item(id string) trip.ScheduleItem {
	item := trip.ScheduleItem{
		ID:          id,
		Time:        in.Time,
		Title:       strings.TrimSpace(in.Title),
		Duration:    in.Duration,
		Location:    in.Location,
		Description: in.Description,
		Note:        in.Note,
		Photo:       in.Photo,
		IsOptional:  in.IsOptional,
	}
	if in.TransportDetail != "" {
		mode := in.TransportMode
		if mode == "" {
			mode = trip.TransportWalk
		}
		item.TransportAfter = &trip.TransportInfo{
			Mode:     mode,
			Detail:   in.TransportDetail,
			Duration: in.TransportDuration,
			Note:     in.TransportNote,
		}
	}
	return item
}

// Itinerary manages the day-by-day schedule.
type Itinerary struct {
	base
	mu   sync.RWMutex
	days []trip.DayItinerary
}

// NewItinerary creates an itinerary manager holding the seed until Load is called.
func NewItinerary(s store.Store, opts ...Option) *Itinerary {
	return &Itinerary{
		base: newBase(s, CollectionItinerary, opts),
		days: seedItinerary(),
	}
}

func seedItinerary() []trip.DayItinerary {
	days := trip.SeedItinerary()
	for i := range days {
		days[i].Items = trip.SortSchedule(days[i].Items)
	}
	return days
}

// Load replaces the in-memory itinerary with the stored one, or the seed.
func (m *Itinerary) Load(ctx context.Context) {
	ctx = m.ctx(ctx)
	days, ok := store.Get[[]trip.DayItinerary](ctx, m.store, ItinerarySchema)
	if !ok || days == nil {
		days = seedItinerary()
		persistSeed(ctx, &m.base, ItinerarySchema, days)
	}
	for i := range days {
		if days[i].Items == nil {
			days[i].Items = []trip.ScheduleItem{}
		}
		days[i].Items = trip.SortSchedule(days[i].Items)
	}

	m.mu.Lock()
	m.days = days
	m.mu.Unlock()

	m.logger.Debug().Int("days", len(days)).Bool("stored", ok).Msg("Itinerary loaded")
}

// Days returns a copy of every day in order.
func (m *Itinerary) Days() []trip.DayItinerary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return trip.CloneDays(m.days)
}

// Day returns a copy of the day with id.
func (m *Itinerary) Day(id int) (trip.DayItinerary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.dayIndex(id)
	if i < 0 {
		return trip.DayItinerary{}, errors.NewNotFoundError("day", strconv.Itoa(id))
	}
	return m.days[i].Clone(), nil
}

// AddItem adds a schedule item to a day and returns it.
func (m *Itinerary) AddItem(ctx context.Context, dayID int, in ItemInput) (trip.ScheduleItem, error) {
	if err := in.validate(); err != nil {
		return trip.ScheduleItem{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d := m.dayIndex(dayID)
	if d < 0 {
		return trip.ScheduleItem{}, errors.NewNotFoundError("day", strconv.Itoa(dayID))
	}

	item := in.item(m.newID(trip.PrefixScheduleItem))
	next := trip.CloneDays(m.days)
	next[d].Items = trip.SortSchedule(append(next[d].Items, item))

	if err := m.commit(ctx, next); err != nil {
		return trip.ScheduleItem{}, err
	}
	m.changed(ActionAdd, item.ID)
	return item.Clone(), nil
}

// UpdateItem replaces the content of an item, keeping its id.
func (m *Itinerary) UpdateItem(ctx context.Context, dayID int, itemID string, in ItemInput) (trip.ScheduleItem, error) {
	if err := in.validate(); err != nil {
		return trip.ScheduleItem{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d, i, err := m.find(dayID, itemID)
	if err != nil {
		return trip.ScheduleItem{}, err
	}

	item := in.item(itemID)
	next := trip.CloneDays(m.days)
	next[d].Items[i] = item
	next[d].Items = trip.SortSchedule(next[d].Items)

	if err := m.commit(ctx, next); err != nil {
		return trip.ScheduleItem{}, err
	}
	m.changed(ActionUpdate, itemID)
	return item.Clone(), nil
}

// DeleteItem removes an item from a day.
func (m *Itinerary) DeleteItem(ctx context.Context, dayID int, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, i, err := m.find(dayID, itemID)
	if err != nil {
		return err
	}

	next := trip.CloneDays(m.days)
	next[d].Items = append(next[d].Items[:i], next[d].Items[i+1:]...)

	if err := m.commit(ctx, next); err != nil {
		return err
	}
	m.changed(ActionDelete, itemID)
	return nil
}

// MoveItem moves an item to another day, keeping its content and id.
func (m *Itinerary) MoveItem(ctx context.Context, fromDay, toDay int, itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, i, err := m.find(fromDay, itemID)
	if err != nil {
		return err
	}
	to := m.dayIndex(toDay)
	if to < 0 {
		return errors.NewNotFoundError("day", strconv.Itoa(toDay))
	}
	if to == d {
		return nil
	}

	next := trip.CloneDays(m.days)
	item := next[d].Items[i]
	next[d].Items = append(next[d].Items[:i], next[d].Items[i+1:]...)
	next[to].Items = trip.SortSchedule(append(next[to].Items, item))

	if err := m.commit(ctx, next); err != nil {
		return err
	}
	m.changed(ActionMove, itemID)
	return nil
}

// commit persists next and swaps it in. Callers hold m.mu.
func (m *Itinerary) commit(ctx context.Context, next []trip.DayItinerary) error {
	if err := store.Put(m.ctx(ctx), m.store, ItinerarySchema, next); err != nil {
		return err
	}
	m.days = next
	return nil
}

func (m *Itinerary) dayIndex(id int) int {
	for i, d := range m.days {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func (m *Itinerary) find(dayID int, itemID string) (day, item int, err error) {
	day = m.dayIndex(dayID)
	if day < 0 {
		return -1, -1, errors.NewNotFoundError("day", strconv.Itoa(dayID))
	}
	for i, it := range m.days[day].Items {
		if it.ID == itemID {
			return day, i, nil
		}
	}
	return -1, -1, errors.NewNotFoundError("schedule item", itemID)
}
