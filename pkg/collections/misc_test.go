package collections_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/store/memory"
	"github.com/agentstation/tripmap/pkg/trip"
)

func TestFlightsUpdateEditableFields(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	m := collections.NewFlights(s, testOptions(t, nil)...)
	m.Load(ctx)

	seat := "32A"
	dep := "2026/02/27 11:00"
	f, err := m.Update(ctx, "f1", collections.FlightUpdate{Seat: &seat, DepartureTime: &dep})
	require.NoError(t, err)
	assert.Equal(t, "32A", f.Seat)
	assert.Equal(t, dep, f.DepartureTime)
	assert.Equal(t, "MM024", f.FlightNo)
	assert.Equal(t, "2026/02/27 14:05", f.ArrivalTime)

	reloaded := collections.NewFlights(s, testOptions(t, nil)...)
	reloaded.Load(ctx)
	got, err := reloaded.Get("f1")
	require.NoError(t, err)
	assert.Equal(t, f, got)

	_, err = m.Update(ctx, "f9", collections.FlightUpdate{Seat: &seat})
	assert.True(t, errors.IsNotFound(err))
}

func TestCouponsCRUD(t *testing.T) {
	ctx := context.Background()
	m := collections.NewCoupons(memory.New(), testOptions(t, nil)...)
	m.Load(ctx)
	require.Len(t, m.List(), 2)

	c, err := m.Add(ctx, collections.CouponInput{Title: "Matsumoto Kiyoshi", URL: "https://www.matsukiyo.co.jp"})
	require.NoError(t, err)
	assert.Equal(t, c, m.List()[2], "new coupons are appended")

	_, err = m.Add(ctx, collections.CouponInput{Title: "no url"})
	assert.True(t, errors.IsValidationError(err))

	c, err = m.Update(ctx, c.ID, collections.CouponInput{Title: "松本清", URL: c.URL, ExpiryDate: "2026-03-31"})
	require.NoError(t, err)
	assert.Equal(t, "松本清", m.List()[2].Title)

	require.NoError(t, m.Delete(ctx, "1"))
	assert.Len(t, m.List(), 2)
	assert.True(t, errors.IsNotFound(m.Delete(ctx, "1")))
}

func TestSettingsSyncURL(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	m := collections.NewSettings(s, testOptions(t, nil)...)
	m.Load(ctx)
	assert.Equal(t, constants.DefaultSyncURL, m.SyncURL())

	require.NoError(t, m.SetSyncURL(ctx, "https://relay.example.com/relay"))
	assert.True(t, errors.IsValidationError(m.SetSyncURL(ctx, "not a url")))

	reloaded := collections.NewSettings(s, testOptions(t, nil)...)
	reloaded.Load(ctx)
	assert.Equal(t, "https://relay.example.com/relay", reloaded.SyncURL())

	require.NoError(t, reloaded.SetSyncURL(ctx, " "))
	assert.Equal(t, constants.DefaultSyncURL, reloaded.SyncURL())
}

func TestSetLoadDiscardsMemory(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	set := collections.NewSet(ctx, s, testOptions(t, nil)...)

	_, err := set.Coupons.Add(ctx, collections.CouponInput{Title: "x", URL: "https://x"})
	require.NoError(t, err)

	// Another writer replaces the stored coupons behind the manager's back.
	other := collections.NewCoupons(s, testOptions(t, nil)...)
	other.Load(ctx)
	require.NoError(t, other.Delete(ctx, "1"))
	require.NoError(t, other.Delete(ctx, "2"))

	assert.Len(t, set.Coupons.List(), 3)
	set.Load(ctx)
	assert.Len(t, set.Coupons.List(), 1)
	assert.Equal(t, trip.SeedFlights(), set.Flights.List())
}
