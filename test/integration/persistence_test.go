package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tripmap"
	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/logging"
	"github.com/agentstation/tripmap/pkg/trip"
)

// backends returns the DSNs to exercise. Server-backed stores run only
// when their test DSN is set.
func backends(t *testing.T) map[string]string {
	dir := t.TempDir()
	dsns := map[string]string{
		"file":   "file://" + filepath.Join(dir, "data"),
		"sqlite": "sqlite://" + filepath.Join(dir, "trip.db"),
	}
	for name, env := range map[string]string{
		"postgres": "TRIPMAP_TEST_POSTGRES_DSN",
		"redis":    "TRIPMAP_TEST_REDIS_URL",
		"mongo":    "TRIPMAP_TEST_MONGO_URI",
	} {
		if v := os.Getenv(env); v != "" {
			dsns[name] = v
		}
	}
	return dsns
}

func open(t *testing.T, dsn string) tripmap.Client {
	t.Helper()
	c, err := tripmap.New(tripmap.WithStoreDSN(dsn), tripmap.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	return c
}

// TestDataSurvivesRestart writes through one client, closes it and reads
// everything back through a fresh one on the same store.
func TestDataSurvivesRestart(t *testing.T) {
	for name, dsn := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first := open(t, dsn)
			e, err := first.Expenses().Add(ctx, collections.ExpenseInput{
				Date: "2026-02-27", Category: trip.CategoryTransport, AmountJPY: 1290, Description: "Haruka",
			}, 0.2)
			require.NoError(t, err)
			_, err = first.Checklist().Toggle(ctx, "護照")
			require.NoError(t, err)
			item, err := first.Itinerary().AddItem(ctx, 1, collections.ItemInput{Time: "21:00", Title: "Konbini run"})
			require.NoError(t, err)
			require.NoError(t, first.SetSyncURL(ctx, "http://localhost:8080/api/v1/relay"))
			require.NoError(t, first.Close())

			second := open(t, dsn)
			defer second.Close()

			assert.Contains(t, second.Expenses().List(), e)
			assert.True(t, second.Checklist().Checked()["護照"])
			day, err := second.Itinerary().Day(1)
			require.NoError(t, err)
			assert.Contains(t, day.Items, item)
			assert.Equal(t, "http://localhost:8080/api/v1/relay", second.SyncURL())
		})
	}
}

// TestTokenMovesTripBetweenBackends exports from a file store and imports
// into SQLite.
func TestTokenMovesTripBetweenBackends(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	src := open(t, "file://"+filepath.Join(dir, "src"))
	defer src.Close()
	_, err := src.Coupons().Add(ctx, collections.CouponInput{Title: "Loft", URL: "https://example.com/loft"})
	require.NoError(t, err)
	token, err := src.ExportToken(ctx)
	require.NoError(t, err)

	dst := open(t, "sqlite://"+filepath.Join(dir, "dst.db"))
	defer dst.Close()
	written, err := dst.ImportToken(ctx, token, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, written)
	assert.Equal(t, src.Coupons().List(), dst.Coupons().List())
	assert.Equal(t, src.Itinerary().Days(), dst.Itinerary().Days())
}
