package collections_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/store/memory"
	"github.com/agentstation/tripmap/pkg/trip"
)

func newExpenses(t *testing.T) *collections.Expenses {
	t.Helper()
	m := collections.NewExpenses(memory.New(), testOptions(t, nil)...)
	m.Load(context.Background())
	return m
}

func TestConvertJPY(t *testing.T) {
	tests := []struct {
		jpy, rate, want float64
	}{
		{1000, 0.21, 210},
		{1234, 0.2153, 265.68},
		{5, 0.211, 1.06},
		{0, 0.21, 0},
		{999.5, 0.21, 209.9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, collections.ConvertJPY(tt.jpy, tt.rate), "%v × %v", tt.jpy, tt.rate)
	}
}

func TestExpenseAmountFixedAtCreation(t *testing.T) {
	ctx := context.Background()
	m := newExpenses(t)

	e, err := m.Add(ctx, collections.ExpenseInput{
		Category:    trip.CategoryFood,
		AmountJPY:   1000,
		Description: "拉麵",
	}, 0.21)
	require.NoError(t, err)
	assert.Equal(t, 210.0, e.AmountTWD)
	assert.Equal(t, "2026-02-28", e.Date)

	// A later rate does not touch existing records.
	_, err = m.Add(ctx, collections.ExpenseInput{
		Category:    trip.CategoryTransport,
		AmountJPY:   500,
		Description: "地鐵",
	}, 0.25)
	require.NoError(t, err)

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, "地鐵", list[0].Description, "newest first")
	assert.Equal(t, 210.0, list[1].AmountTWD)
}

func TestExpenseValidation(t *testing.T) {
	tests := []struct {
		name  string
		input collections.ExpenseInput
		rate  float64
	}{
		{"missing description", collections.ExpenseInput{Category: trip.CategoryFood, AmountJPY: 1}, 0.21},
		{"unknown category", collections.ExpenseInput{Category: "娛樂", AmountJPY: 1, Description: "x"}, 0.21},
		{"negative amount", collections.ExpenseInput{Category: trip.CategoryFood, AmountJPY: -1, Description: "x"}, 0.21},
		{"NaN amount", collections.ExpenseInput{Category: trip.CategoryFood, AmountJPY: math.NaN(), Description: "x"}, 0.21},
		{"zero rate", collections.ExpenseInput{Category: trip.CategoryFood, AmountJPY: 1, Description: "x"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newExpenses(t)
			_, err := m.Add(context.Background(), tt.input, tt.rate)
			assert.True(t, errors.IsValidationError(err))
			assert.Empty(t, m.List())
		})
	}
}

func TestExpenseUpdateKeepsAmounts(t *testing.T) {
	ctx := context.Background()
	m := newExpenses(t)

	e, err := m.Add(ctx, collections.ExpenseInput{Category: trip.CategoryShopping, AmountJPY: 3000, Description: "藥妝"}, 0.21)
	require.NoError(t, err)

	cat, desc := trip.CategoryOther, "唐吉訶德"
	updated, err := m.Update(ctx, e.ID, collections.ExpenseUpdate{Category: &cat, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, trip.CategoryOther, updated.Category)
	assert.Equal(t, "唐吉訶德", updated.Description)
	assert.Equal(t, e.AmountJPY, updated.AmountJPY)
	assert.Equal(t, e.AmountTWD, updated.AmountTWD)
	assert.Equal(t, e.Date, updated.Date)

	_, err = m.Update(ctx, "missing", collections.ExpenseUpdate{Description: &desc})
	assert.True(t, errors.IsNotFound(err))
}

func TestExpenseDeleteAndSummary(t *testing.T) {
	ctx := context.Background()
	m := newExpenses(t)

	add := func(cat string, jpy float64) trip.Expense {
		e, err := m.Add(ctx, collections.ExpenseInput{Category: cat, AmountJPY: jpy, Description: cat}, 0.21)
		require.NoError(t, err)
		return e
	}
	add(trip.CategoryFood, 1000)
	add(trip.CategoryFood, 500)
	gone := add(trip.CategoryTransport, 240)
	add(trip.CategoryAccommodation, 20000)

	require.NoError(t, m.Delete(ctx, gone.ID))
	assert.True(t, errors.IsNotFound(m.Delete(ctx, gone.ID)))

	s := m.Summary()
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 21500.0, s.TotalJPY)
	assert.Equal(t, 4515.0, s.TotalTWD)
	assert.Equal(t, []collections.CategorySubtotal{
		{Category: trip.CategoryFood, Count: 2, JPY: 1500, TWD: 315},
		{Category: trip.CategoryAccommodation, Count: 1, JPY: 20000, TWD: 4200},
	}, s.ByCategory)
}
