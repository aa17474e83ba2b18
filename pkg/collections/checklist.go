package collections

import (
	"context"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/store"
	"github.com/agentstation/tripmap/pkg/trip"
)

// CategoryProgress is how much of one category is packed.
type CategoryProgress struct {
	CategoryID string `json:"categoryId"`
	Title      string `json:"title"`
	Completed  int    `json:"completed"`
	Total      int    `json:"total"`
	Percent    int    `json:"percent"`
}

// Checklist manages packing categories and the checked-state map.
//
// Checked-state is keyed by item name, so an item name is unique across all
// categories.
type Checklist struct {
	base
	mu         sync.RWMutex
	categories []trip.ChecklistCategory
	checked    trip.CheckedState
}

// NewChecklist creates a checklist manager holding the seed until Load is called.
func NewChecklist(s store.Store, opts ...Option) *Checklist {
	return &Checklist{
		base:       newBase(s, CollectionChecklist, opts),
		categories: trip.SeedChecklist(),
		checked:    trip.CheckedState{},
	}
}

// Load replaces the in-memory categories and checked-state with the stored ones.
func (m *Checklist) Load(ctx context.Context) {
	ctx = m.ctx(ctx)
	cats, ok := store.Get[[]trip.ChecklistCategory](ctx, m.store, ChecklistCategoriesSchema)
	if !ok || cats == nil {
		cats = trip.SeedChecklist()
	}
	checked, ok := store.Get[trip.CheckedState](ctx, m.store, CheckedSchema)
	if !ok || checked == nil {
		checked = trip.CheckedState{}
	}

	m.mu.Lock()
	m.categories = cats
	m.checked = checked
	m.mu.Unlock()
}

// Categories returns a copy of the categories.
func (m *Checklist) Categories() []trip.ChecklistCategory {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return trip.CloneCategories(m.categories)
}

// Checked returns a copy of the checked-state.
func (m *Checklist) Checked() trip.CheckedState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.checked.Clone()
}

// Toggle flips the checked-state of an item and returns the new value.
func (m *Checklist) Toggle(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasItem(name) {
		return false, errors.NewNotFoundError("checklist item", name)
	}
	next := m.checked.Clone()
	next[name] = !next[name]
	if err := m.commitChecked(ctx, next); err != nil {
		return false, err
	}
	m.changed(ActionToggle, name)
	return next[name], nil
}

// SetChecked sets the checked-state of an item.
func (m *Checklist) SetChecked(ctx context.Context, name string, checked bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.hasItem(name) {
		return errors.NewNotFoundError("checklist item", name)
	}
	next := m.checked.Clone()
	next[name] = checked
	if err := m.commitChecked(ctx, next); err != nil {
		return err
	}
	m.changed(ActionToggle, name)
	return nil
}

// ResetChecks clears every checkmark.
func (m *Checklist) ResetChecks(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.commitChecked(ctx, trip.CheckedState{}); err != nil {
		return err
	}
	m.changed(ActionReset, "")
	return nil
}

// AddCategory appends an empty category and returns it.
func (m *Checklist) AddCategory(ctx context.Context, title string) (trip.ChecklistCategory, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return trip.ChecklistCategory{}, errors.NewValidationError("title", title, "title is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	cat := trip.ChecklistCategory{ID: m.newID(trip.PrefixCategory), Title: title, Items: []string{}}
	next := append(trip.CloneCategories(m.categories), cat)
	if err := m.commitCategories(ctx, next); err != nil {
		return trip.ChecklistCategory{}, err
	}
	m.changed(ActionAdd, cat.ID)
	return cat, nil
}

// RenameCategory changes the title of a category.
func (m *Checklist) RenameCategory(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.NewValidationError("title", title, "title is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.categoryIndex(id)
	if i < 0 {
		return errors.NewNotFoundError("checklist category", id)
	}
	next := trip.CloneCategories(m.categories)
	next[i].Title = title
	if err := m.commitCategories(ctx, next); err != nil {
		return err
	}
	m.changed(ActionUpdate, id)
	return nil
}

// DeleteCategory removes a category and the checked-state of its items.
func (m *Checklist) DeleteCategory(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.categoryIndex(id)
	if i < 0 {
		return errors.NewNotFoundError("checklist category", id)
	}

	removed := m.categories[i].Items
	next := slices.Delete(trip.CloneCategories(m.categories), i, i+1)
	if err := m.commitCategories(ctx, next); err != nil {
		return err
	}
	if err := m.prune(ctx, removed...); err != nil {
		return err
	}
	m.changed(ActionDelete, id)
	return nil
}

// AddItem appends an item name to a category. Names must be unique across
// the whole checklist.
func (m *Checklist) AddItem(ctx context.Context, categoryID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.NewValidationError("name", name, "name is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.categoryIndex(categoryID)
	if i < 0 {
		return errors.NewNotFoundError("checklist category", categoryID)
	}
	if m.hasItem(name) {
		return errors.NewValidationError("name", name, "an item with this name already exists")
	}

	next := trip.CloneCategories(m.categories)
	next[i].Items = append(next[i].Items, name)
	if err := m.commitCategories(ctx, next); err != nil {
		return err
	}
	m.changed(ActionAdd, name)
	return nil
}

// RemoveItem removes an item from a category and drops its checked-state.
// The category stays even when it becomes empty.
func (m *Checklist) RemoveItem(ctx context.Context, categoryID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.categoryIndex(categoryID)
	if i < 0 {
		return errors.NewNotFoundError("checklist category", categoryID)
	}
	j := slices.Index(m.categories[i].Items, name)
	if j < 0 {
		return errors.NewNotFoundError("checklist item", name)
	}

	next := trip.CloneCategories(m.categories)
	next[i].Items = slices.Delete(next[i].Items, j, j+1)
	if err := m.commitCategories(ctx, next); err != nil {
		return err
	}
	if err := m.prune(ctx, name); err != nil {
		return err
	}
	m.changed(ActionDelete, name)
	return nil
}

// Progress reports completion per category, in category order.
func (m *Checklist) Progress() []CategoryProgress {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]CategoryProgress, 0, len(m.categories))
	for _, c := range m.categories {
		p := CategoryProgress{CategoryID: c.ID, Title: c.Title, Total: len(c.Items)}
		for _, name := range c.Items {
			if m.checked[name] {
				p.Completed++
			}
		}
		if p.Total > 0 {
			p.Percent = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
		}
		out = append(out, p)
	}
	return out
}

// prune drops names from the checked-state, writing only when something changed.
func (m *Checklist) prune(ctx context.Context, names ...string) error {
	next := m.checked.Clone()
	for _, name := range names {
		delete(next, name)
	}
	if len(next) == len(m.checked) {
		return nil
	}
	return m.commitChecked(ctx, next)
}

func (m *Checklist) commitCategories(ctx context.Context, next []trip.ChecklistCategory) error {
	if err := store.Put(m.ctx(ctx), m.store, ChecklistCategoriesSchema, next); err != nil {
		return err
	}
	m.categories = next
	return nil
}

func (m *Checklist) commitChecked(ctx context.Context, next trip.CheckedState) error {
	if err := store.Put(m.ctx(ctx), m.store, CheckedSchema, next); err != nil {
		return err
	}
	m.checked = next
	return nil
}

func (m *Checklist) categoryIndex(id string) int {
	return slices.IndexFunc(m.categories, func(c trip.ChecklistCategory) bool { return c.ID == id })
}

func (m *Checklist) hasItem(name string) bool {
	for _, c := range m.categories {
		if slices.Contains(c.Items, name) {
			return true
		}
	}
	return false
}
