package collections

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/store"
	"github.com/agentstation/tripmap/pkg/trip"
)

// ShoppingInput is the editable content of a shopping item. An empty or
// unknown Type becomes the fallback type.
type ShoppingInput struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Type  string `json:"type"`
	Photo string `json:"photo,omitempty"`
	Note  string `json:"note,omitempty"`
}

// ShoppingProgress counts bought items.
type ShoppingProgress struct {
	Bought int `json:"bought"`
	Total  int `json:"total"`
}

// Shopping manages the shopping list and its types.
type Shopping struct {
	base
	mu    sync.RWMutex
	items []trip.ShoppingItem
	types []string
}

// NewShopping creates a shopping manager holding the seed until Load is called.
func NewShopping(s store.Store, opts ...Option) *Shopping {
	return &Shopping{
		base:  newBase(s, CollectionShopping, opts),
		items: []trip.ShoppingItem{},
		types: trip.SeedShoppingTypes(),
	}
}

// Load replaces the in-memory list and types with the stored ones.
func (m *Shopping) Load(ctx context.Context) {
	ctx = m.ctx(ctx)
	items, ok := store.Get[[]trip.ShoppingItem](ctx, m.store, ShoppingItemsSchema)
	if !ok || items == nil {
		items = []trip.ShoppingItem{}
	}
	types, ok := store.Get[[]string](ctx, m.store, ShoppingTypesSchema)
	if !ok || types == nil {
		types = trip.SeedShoppingTypes()
	}
	if !slices.Contains(types, constants.FallbackShoppingType) {
		types = append(types, constants.FallbackShoppingType)
	}

	m.mu.Lock()
	m.items = items
	m.types = types
	m.mu.Unlock()
}

// Items returns a copy of the shopping list, newest first.
func (m *Shopping) Items() []trip.ShoppingItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.items)
}

// Types returns a copy of the shopping types in order.
func (m *Shopping) Types() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.types)
}

// AddItem prepends a shopping item and returns it.
func (m *Shopping) AddItem(ctx context.Context, in ShoppingInput) (trip.ShoppingItem, error) {
	if strings.TrimSpace(in.Name) == "" {
		return trip.ShoppingItem{}, errors.NewValidationError("name", in.Name, "name is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item := m.item(m.newID(trip.PrefixShoppingItem), in, false)
	next := append([]trip.ShoppingItem{item}, m.items...)
	if err := m.commitItems(ctx, next); err != nil {
		return trip.ShoppingItem{}, err
	}
	m.changed(ActionAdd, item.ID)
	return item, nil
}

// UpdateItem replaces the content of an item, keeping its id and bought flag.
func (m *Shopping) UpdateItem(ctx context.Context, id string, in ShoppingInput) (trip.ShoppingItem, error) {
	if strings.TrimSpace(in.Name) == "" {
		return trip.ShoppingItem{}, errors.NewValidationError("name", in.Name, "name is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return trip.ShoppingItem{}, errors.NewNotFoundError("shopping item", id)
	}
	next := slices.Clone(m.items)
	next[i] = m.item(id, in, m.items[i].IsBought)
	if err := m.commitItems(ctx, next); err != nil {
		return trip.ShoppingItem{}, err
	}
	m.changed(ActionUpdate, id)
	return next[i], nil
}

// ToggleBought flips the bought flag of an item and returns the new value.
func (m *Shopping) ToggleBought(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return false, errors.NewNotFoundError("shopping item", id)
	}
	next := slices.Clone(m.items)
	next[i].IsBought = !next[i].IsBought
	if err := m.commitItems(ctx, next); err != nil {
		return false, err
	}
	m.changed(ActionToggle, id)
	return next[i].IsBought, nil
}

// DeleteItem removes an item.
func (m *Shopping) DeleteItem(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return errors.NewNotFoundError("shopping item", id)
	}
	next := slices.Delete(slices.Clone(m.items), i, i+1)
	if err := m.commitItems(ctx, next); err != nil {
		return err
	}
	m.changed(ActionDelete, id)
	return nil
}

// AddType appends a shopping type.
func (m *Shopping) AddType(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.NewValidationError("type", name, "type is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if slices.Contains(m.types, name) {
		return errors.NewValidationError("type", name, "type already exists")
	}
	next := append(slices.Clone(m.types), name)
	if err := m.commitTypes(ctx, next); err != nil {
		return err
	}
	m.changed(ActionAdd, name)
	return nil
}

// DeleteType removes a shopping type. Items of that type move to the
// fallback type first; the fallback type itself cannot be removed.
func (m *Shopping) DeleteType(ctx context.Context, name string) error {
	if name == constants.FallbackShoppingType {
		return &errors.ProtectedError{Resource: "shopping type", Value: name}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := slices.Index(m.types, name)
	if i < 0 {
		return errors.NewNotFoundError("shopping type", name)
	}

	items := slices.Clone(m.items)
	moved := 0
	for j := range items {
		if items[j].Type == name {
			items[j].Type = constants.FallbackShoppingType
			moved++
		}
	}
	if moved > 0 {
		if err := m.commitItems(ctx, items); err != nil {
			return err
		}
	}
	if err := m.commitTypes(ctx, slices.Delete(slices.Clone(m.types), i, i+1)); err != nil {
		return err
	}

	m.logger.Debug().Str("type", name).Int("reassigned", moved).Msg("Shopping type deleted")
	m.changed(ActionDelete, name)
	return nil
}

// Progress counts bought items.
func (m *Shopping) Progress() ShoppingProgress {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p := ShoppingProgress{Total: len(m.items)}
	for _, item := range m.items {
		if item.IsBought {
			p.Bought++
		}
	}
	return p
}

func (m *Shopping) item(id string, in ShoppingInput, bought bool) trip.ShoppingItem {
	typ := in.Type
	if !slices.Contains(m.types, typ) {
		typ = constants.FallbackShoppingType
	}
	return trip.ShoppingItem{
		ID:       id,
		Name:     strings.TrimSpace(in.Name),
		Brand:    in.Brand,
		Type:     typ,
		Photo:    in.Photo,
		Note:     in.Note,
		IsBought: bought,
	}
}

func (m *Shopping) commitItems(ctx context.Context, next []trip.ShoppingItem) error {
	if err := store.Put(m.ctx(ctx), m.store, ShoppingItemsSchema, next); err != nil {
		return err
	}
	m.items = next
	return nil
}

func (m *Shopping) commitTypes(ctx context.Context, next []string) error {
	if err := store.Put(m.ctx(ctx), m.store, ShoppingTypesSchema, next); err != nil {
		return err
	}
	m.types = next
	return nil
}

func (m *Shopping) index(id string) int {
	return slices.IndexFunc(m.items, func(i trip.ShoppingItem) bool { return i.ID == id })
}
