package shopping

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tripmap"
	"github.com/agentstation/tripmap/internal/cmd/application"
	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/logging"
	"github.com/agentstation/tripmap/pkg/store/memory"
	"github.com/agentstation/tripmap/pkg/trip"
)

func newTestApp(t *testing.T, format string) (*application.Mock, tripmap.Client) {
	t.Helper()
	tm, err := tripmap.New(tripmap.WithStore(memory.New()), tripmap.WithLogger(logging.NewNopLogger()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tm.Close() })
	return &application.Mock{
		TripFunc:         func() (tripmap.Client, error) { return tm, nil },
		OutputFormatFunc: func() string { return format },
	}, tm
}

func run(t *testing.T, app application.Application, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestEyeDropsScenario(t *testing.T) {
	app, tm := newTestApp(t, "table")

	out, err := run(t, app, "add", "--name", "Eye drops", "--brand", "Rohto", "--type", "藥妝")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Eye drops (藥妝)")

	out, err = run(t, app, "bought", "Eye drops")
	require.NoError(t, err)
	assert.Contains(t, out, "Bought Eye drops (1/1)")

	out, err = run(t, app, "rm-type", "藥妝")
	require.NoError(t, err)
	assert.Contains(t, out, "1 items moved to "+constants.FallbackShoppingType)

	items := tm.Shopping().Items()
	require.Len(t, items, 1)
	assert.Equal(t, constants.FallbackShoppingType, items[0].Type)
	assert.True(t, items[0].IsBought)
	assert.NotContains(t, tm.Shopping().Types(), "藥妝")
}

func TestFallbackTypeIsProtected(t *testing.T) {
	app, _ := newTestApp(t, "table")
	_, err := run(t, app, "rm-type", constants.FallbackShoppingType)
	assert.True(t, errors.IsProtected(err))
}

func TestAddRequiresName(t *testing.T) {
	app, tm := newTestApp(t, "table")
	_, err := run(t, app, "add", "--brand", "Rohto")
	require.Error(t, err)
	assert.Empty(t, tm.Shopping().Items())
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	app, tm := newTestApp(t, "table")
	_, err := run(t, app, "add", "--name", "Kit Kat", "--brand", "Nestle", "--type", "零食伴手禮", "--note", "matcha")
	require.NoError(t, err)
	id := tm.Shopping().Items()[0].ID

	_, err = run(t, app, "update", id, "--brand", "Nestlé")
	require.NoError(t, err)

	got := tm.Shopping().Items()[0]
	assert.Equal(t, "Kit Kat", got.Name)
	assert.Equal(t, "Nestlé", got.Brand)
	assert.Equal(t, "零食伴手禮", got.Type)
	assert.Equal(t, "matcha", got.Note)

	_, err = run(t, app, "rm", "Kit Kat")
	require.NoError(t, err)
	assert.Empty(t, tm.Shopping().Items())

	_, err = run(t, app, "rm", "Kit Kat")
	assert.True(t, errors.IsNotFound(err))
}

func TestTypesJSON(t *testing.T) {
	app, _ := newTestApp(t, "json")
	_, err := run(t, app, "add-type", "藥局")
	require.NoError(t, err)

	out, err := run(t, app, "types")
	require.NoError(t, err)
	var types []string
	require.NoError(t, json.Unmarshal([]byte(out), &types))
	assert.Equal(t, append(trip.SeedShoppingTypes(), "藥局"), types)
}
