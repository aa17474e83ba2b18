package tripmap

import (
	"context"

	"github.com/agentstation/tripmap/internal/live"
	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/trip"
)

// Live enriches the trip with data fetched at request time. Lookups never
// fail on provider errors; the Live flag of each result tells whether the
// value is fresh or a fallback.
type Live interface {
	// Weather returns the current weather in city
	Weather(ctx context.Context, city trip.City) live.Weather

	// Rate returns the JPY to TWD exchange rate
	Rate(ctx context.Context) live.Rate

	// Tips returns tips for the itinerary day dayID
	Tips(ctx context.Context, dayID int) (live.Tips, error)

	// AddExpenseAtLiveRate records an expense converted at the current rate
	AddExpenseAtLiveRate(ctx context.Context, in collections.ExpenseInput) (trip.Expense, live.Rate, error)
}

// Weather returns the current weather in city.
func (c *client) Weather(ctx context.Context, city trip.City) live.Weather {
	return c.live.Weather(ctx, city, c.set.Itinerary.Days())
}

// Rate returns the JPY to TWD exchange rate.
func (c *client) Rate(ctx context.Context) live.Rate {
	return c.live.Rate(ctx)
}

// Tips returns tips for a day of the itinerary.
func (c *client) Tips(ctx context.Context, dayID int) (live.Tips, error) {
	day, err := c.set.Itinerary.Day(dayID)
	if err != nil {
		return live.Tips{}, err
	}
	return c.live.Tips(ctx, day), nil
}

// AddExpenseAtLiveRate records an expense converted at the current rate,
// which is the default rate when it cannot be fetched.
func (c *client) AddExpenseAtLiveRate(ctx context.Context, in collections.ExpenseInput) (trip.Expense, live.Rate, error) {
	rate := c.live.Rate(ctx)
	e, err := c.set.Expenses.Add(ctx, in, rate.JPYToTWD)
	return e, rate, err
}
