package collections

import (
	"context"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/store"
	"github.com/agentstation/tripmap/pkg/trip"
)

// ExpenseInput is a new expense. Date is an ISO "yyyy-mm-dd" string and
// defaults to today.
type ExpenseInput struct {
	Date        string  `json:"date,omitempty"`
	Category    string  `json:"category"`
	AmountJPY   float64 `json:"amountJpy"`
	Description string  `json:"description"`
}

// ExpenseUpdate holds the editable fields of an expense. Amounts are fixed
// at creation. Nil fields are left alone.
type ExpenseUpdate struct {
	Date        *string `json:"date,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ExpenseSummary totals the expense list.
type ExpenseSummary struct {
	Count      int                `json:"count"`
	TotalJPY   float64            `json:"totalJpy"`
	TotalTWD   float64            `json:"totalTwd"`
	ByCategory []CategorySubtotal `json:"byCategory"`
}

// CategorySubtotal is the spending in one category.
type CategorySubtotal struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	JPY      float64 `json:"jpy"`
	TWD      float64 `json:"twd"`
}

// ConvertJPY returns jpy × rate rounded half away from zero to two places.
func ConvertJPY(jpy, rate float64) float64 {
	twd, _ := decimal.NewFromFloat(jpy).Mul(decimal.NewFromFloat(rate)).Round(2).Float64()
	return twd
}

// Expenses manages the expense ledger, newest first.
type Expenses struct {
	base
	mu       sync.RWMutex
	expenses []trip.Expense
}

// NewExpenses creates an empty expense manager.
func NewExpenses(s store.Store, opts ...Option) *Expenses {
	return &Expenses{
		base:     newBase(s, CollectionExpenses, opts),
		expenses: []trip.Expense{},
	}
}

// Load replaces the in-memory ledger with the stored one, or an empty ledger.
func (m *Expenses) Load(ctx context.Context) {
	expenses, ok := store.Get[[]trip.Expense](m.ctx(ctx), m.store, ExpensesSchema)
	if !ok || expenses == nil {
		expenses = []trip.Expense{}
	}
	m.mu.Lock()
	m.expenses = expenses
	m.mu.Unlock()
}

// List returns a copy of the ledger, newest first.
func (m *Expenses) List() []trip.Expense {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.expenses)
}

// Add records an expense converted at rate and returns it.
func (m *Expenses) Add(ctx context.Context, in ExpenseInput, rate float64) (trip.Expense, error) {
	desc := strings.TrimSpace(in.Description)
	switch {
	case desc == "":
		return trip.Expense{}, errors.NewValidationError("description", in.Description, "description is required")
	case !trip.IsExpenseCategory(in.Category):
		return trip.Expense{}, errors.NewValidationError("category", in.Category, "unknown expense category")
	case math.IsNaN(in.AmountJPY) || math.IsInf(in.AmountJPY, 0) || in.AmountJPY < 0:
		return trip.Expense{}, errors.NewValidationError("amountJpy", in.AmountJPY, "amount must be a non-negative number")
	case math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0:
		return trip.Expense{}, errors.NewValidationError("rate", rate, "exchange rate must be positive")
	}

	date := in.Date
	if date == "" {
		date = m.now().Format("2006-01-02")
	}

	e := trip.Expense{
		ID:          m.newID(trip.PrefixExpense),
		Date:        date,
		Category:    in.Category,
		AmountJPY:   in.AmountJPY,
		AmountTWD:   ConvertJPY(in.AmountJPY, rate),
		Description: desc,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := append([]trip.Expense{e}, m.expenses...)
	if err := m.commit(ctx, next); err != nil {
		return trip.Expense{}, err
	}
	m.changed(ActionAdd, e.ID)
	return e, nil
}

// Update changes the date, category or description of an expense.
func (m *Expenses) Update(ctx context.Context, id string, u ExpenseUpdate) (trip.Expense, error) {
	if u.Category != nil && !trip.IsExpenseCategory(*u.Category) {
		return trip.Expense{}, errors.NewValidationError("category", *u.Category, "unknown expense category")
	}
	if u.Description != nil && strings.TrimSpace(*u.Description) == "" {
		return trip.Expense{}, errors.NewValidationError("description", *u.Description, "description is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return trip.Expense{}, errors.NewNotFoundError("expense", id)
	}

	next := slices.Clone(m.expenses)
	if u.Date != nil {
		next[i].Date = *u.Date
	}
	if u.Category != nil {
		next[i].Category = *u.Category
	}
	if u.Description != nil {
		next[i].Description = strings.TrimSpace(*u.Description)
	}

	if err := m.commit(ctx, next); err != nil {
		return trip.Expense{}, err
	}
	m.changed(ActionUpdate, id)
	return next[i], nil
}

// Delete removes an expense.
func (m *Expenses) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return errors.NewNotFoundError("expense", id)
	}

	next := slices.Delete(slices.Clone(m.expenses), i, i+1)
	if err := m.commit(ctx, next); err != nil {
		return err
	}
	m.changed(ActionDelete, id)
	return nil
}

// Summary totals the ledger overall and per category, in category order.
func (m *Expenses) Summary() ExpenseSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	jpy, twd := decimal.Zero, decimal.Zero
	perJPY := make(map[string]decimal.Decimal)
	perTWD := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for _, e := range m.expenses {
		j, t := decimal.NewFromFloat(e.AmountJPY), decimal.NewFromFloat(e.AmountTWD)
		jpy, twd = jpy.Add(j), twd.Add(t)
		perJPY[e.Category] = perJPY[e.Category].Add(j)
		perTWD[e.Category] = perTWD[e.Category].Add(t)
		counts[e.Category]++
	}

	s := ExpenseSummary{
		Count:      len(m.expenses),
		TotalJPY:   jpy.InexactFloat64(),
		TotalTWD:   twd.Round(2).InexactFloat64(),
		ByCategory: []CategorySubtotal{},
	}
	for _, c := range trip.ExpenseCategories {
		if counts[c] == 0 {
			continue
		}
		s.ByCategory = append(s.ByCategory, CategorySubtotal{
			Category: c,
			Count:    counts[c],
			JPY:      perJPY[c].InexactFloat64(),
			TWD:      perTWD[c].Round(2).InexactFloat64(),
		})
	}
	return s
}

func (m *Expenses) commit(ctx context.Context, next []trip.Expense) error {
	if err := store.Put(m.ctx(ctx), m.store, ExpensesSchema, next); err != nil {
		return err
	}
	m.expenses = next
	return nil
}

func (m *Expenses) index(id string) int {
	return slices.IndexFunc(m.expenses, func(e trip.Expense) bool { return e.ID == id })
}
