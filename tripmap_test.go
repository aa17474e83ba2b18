package tripmap

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tripmap/internal/live"
	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/logging"
	"github.com/agentstation/tripmap/pkg/save"
	"github.com/agentstation/tripmap/pkg/store/memory"
	"github.com/agentstation/tripmap/pkg/syncer"
	"github.com/agentstation/tripmap/pkg/trip"
)

var fixedNow = time.Date(2026, 2, 28, 9, 30, 0, 0, time.UTC)

// slotRemote keeps the last pushed payload, like the spreadsheet endpoint.
type slotRemote struct {
	mu   sync.Mutex
	last *syncer.Payload
}

func (r *slotRemote) Push(_ context.Context, p *syncer.Payload) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, err := json.Marshal(p)
	if err != nil {
		return 0, err
	}
	var cp syncer.Payload
	if err := json.Unmarshal(data, &cp); err != nil {
		return 0, err
	}
	r.last = &cp
	return 200, nil
}

func (r *slotRemote) Fetch(context.Context) (*syncer.Payload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return &syncer.Payload{}, nil
	}
	return r.last, nil
}

func (r *slotRemote) Endpoint() string { return "slot://test" }

type fixedRate float64

func (f fixedRate) JPYToTWD(context.Context) (float64, error) { return float64(f), nil }

func newClient(t *testing.T, opts ...Option) Client {
	t.Helper()
	base := []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithSettleDelay(10 * time.Millisecond),
		WithLogger(logging.NewNopLogger()),
	}
	c, err := New(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewLoadsSeed(t *testing.T) {
	c := newClient(t)
	assert.Equal(t, trip.SeedItinerary(), c.Itinerary().Days())
	assert.Len(t, c.Flights().List(), 2)
	assert.Contains(t, c.Shopping().Types(), "其他")
	assert.Equal(t, syncer.StatusIdle, c.SyncStatus())
}

func TestOnChange(t *testing.T) {
	c := newClient(t)
	var events []ChangeEvent
	c.OnChange(func(e ChangeEvent) { events = append(events, e) })

	item, err := c.Itinerary().AddItem(context.Background(), 2, collections.ItemInput{Time: "07:30", Title: "早餐"})
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, ChangeEvent{
		Collection: collections.CollectionItinerary,
		Action:     collections.ActionAdd,
		ID:         item.ID,
		At:         fixedNow,
	}, events[0])
}

func TestTokenBetweenDevices(t *testing.T) {
	ctx := context.Background()
	phone := newClient(t)
	laptop := newClient(t)

	_, err := phone.Coupons().Add(ctx, collections.CouponInput{Title: "免稅 5%", URL: "https://example.com/c"})
	require.NoError(t, err)
	token, err := phone.ExportToken(ctx)
	require.NoError(t, err)

	var reloads []ReloadEvent
	laptop.OnReload(func(e ReloadEvent) { reloads = append(reloads, e) })

	written, err := laptop.ImportToken(ctx, token, syncer.Yes)
	require.NoError(t, err)
	assert.Len(t, written, 4)
	assert.Equal(t, phone.Coupons().List(), laptop.Coupons().List())
	require.Len(t, reloads, 1)
	assert.Equal(t, ReloadImport, reloads[0].Source)
	assert.Equal(t, written, reloads[0].Keys)
}

func TestUntouchedDeviceSharesItsItinerary(t *testing.T) {
	ctx := context.Background()
	phone := newClient(t)
	laptop := newClient(t)

	token, err := phone.ExportToken(ctx)
	require.NoError(t, err)
	p, err := syncer.Decode(token)
	require.NoError(t, err)
	assert.Len(t, p.Itinerary, len(phone.Itinerary().Days()))

	_, err = laptop.ImportToken(ctx, token, syncer.Yes)
	require.NoError(t, err)
	assert.Equal(t, phone.Itinerary().Days(), laptop.Itinerary().Days())
	assert.Equal(t, phone.Coupons().List(), laptop.Coupons().List())
}

func TestPushPullThroughRemote(t *testing.T) {
	ctx := context.Background()
	remote := &slotRemote{}
	phone := newClient(t, WithRemote(remote))
	laptop := newClient(t, WithRemote(remote))

	out, err := laptop.Pull(ctx, syncer.Yes)
	require.NoError(t, err)
	assert.Equal(t, syncer.PullEmpty, out.Result)

	_, err = phone.Expenses().Add(ctx, collections.ExpenseInput{Category: trip.CategoryFood, AmountJPY: 1200, Description: "拉麵"}, 0.21)
	require.NoError(t, err)

	var statuses []syncer.Status
	var mu sync.Mutex
	phone.OnSyncStatus(func(_, next syncer.Status) {
		mu.Lock()
		defer mu.Unlock()
		statuses = append(statuses, next)
	})

	_, err = phone.Push(ctx)
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return phone.SyncStatus() == syncer.StatusIdle }, time.Second, 5*time.Millisecond)
	mu.Lock()
	assert.Equal(t, []syncer.Status{syncer.StatusLoading, syncer.StatusSuccess, syncer.StatusIdle}, statuses)
	mu.Unlock()

	var reloads []ReloadEvent
	laptop.OnReload(func(e ReloadEvent) { reloads = append(reloads, e) })
	out, err = laptop.Pull(ctx, syncer.Yes)
	require.NoError(t, err)
	assert.Equal(t, syncer.PullApplied, out.Result)
	assert.Equal(t, phone.Expenses().List(), laptop.Expenses().List())
	require.Len(t, reloads, 1)
	assert.Equal(t, ReloadPull, reloads[0].Source)
}

func TestSyncURL(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)
	require.NoError(t, c.SetSyncURL(ctx, "https://relay.example.com/api/v1/relay"))
	assert.Equal(t, "https://relay.example.com/api/v1/relay", c.SyncURL())

	fixed := newClient(t, WithSyncURL("https://fixed.example.com/exec"))
	assert.Equal(t, "https://fixed.example.com/exec", fixed.SyncURL())
	assert.ErrorIs(t, fixed.SetSyncURL(ctx, "https://other.example.com"), errors.ErrNotConfigured)
}

func TestLive(t *testing.T) {
	ctx := context.Background()
	svc := live.New(live.WithRates(fixedRate(0.2)), live.WithLogger(logging.NewNopLogger()))
	c := newClient(t, WithLive(svc))

	e, rate, err := c.AddExpenseAtLiveRate(ctx, collections.ExpenseInput{Category: trip.CategoryTransport, AmountJPY: 1000, Description: "ICOCA 加值"})
	require.NoError(t, err)
	assert.True(t, rate.Live)
	assert.Equal(t, 200.0, e.AmountTWD)

	tips, err := c.Tips(ctx, 1)
	require.NoError(t, err)
	assert.False(t, tips.Live)
	assert.Equal(t, trip.SeedItinerary()[0].Weather.Tips, tips.Tips)

	_, err = c.Tips(ctx, 99)
	assert.True(t, errors.IsNotFound(err))

	w := c.Weather(ctx, trip.Kyoto)
	assert.False(t, w.Live)
	assert.NotEmpty(t, w.Seed.Condition)
}

func TestBackup(t *testing.T) {
	ctx := context.Background()
	c := newClient(t)

	var buf bytes.Buffer
	require.NoError(t, c.Backup(ctx, save.WithWriter(&buf)))
	var snap Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &snap))
	assert.Equal(t, c.Snapshot(), snap)

	path := filepath.Join(t.TempDir(), "backup", "trip.yaml")
	require.NoError(t, c.Backup(ctx, save.WithPath(path), save.WithFormat(save.FormatYAML)))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var fromYAML Snapshot
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Equal(t, c.Snapshot().Itinerary, fromYAML.Itinerary)

	assert.ErrorIs(t, c.Backup(ctx), errors.ErrNotConfigured)
}

func TestReloadPicksUpExternalWrites(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	a := newClient(t, WithStore(s))
	b := newClient(t, WithStore(s))

	_, err := a.Shopping().AddItem(ctx, collections.ShoppingInput{Name: "Eye drops", Brand: "Rohto", Type: "藥妝"})
	require.NoError(t, err)

	assert.Empty(t, b.Shopping().Items())
	var got []ReloadEvent
	b.OnReload(func(e ReloadEvent) { got = append(got, e) })
	b.Reload(ctx)
	assert.Equal(t, a.Shopping().Items(), b.Shopping().Items())
	require.Len(t, got, 1)
	assert.Equal(t, ReloadManual, got[0].Source)
}
