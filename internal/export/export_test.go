package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/trip"
)

func TestItinerary(t *testing.T) {
	days := []trip.DayItinerary{
		{
			ID:       1,
			Date:     "2025/03/01",
			Title:    "抵達京都",
			Location: trip.Kyoto,
			Hotel:    "Hotel Kanra",
			Weather:  trip.WeatherData{TempRange: "5-12°C", Condition: "晴", Clothing: "厚外套"},
			Items: []trip.ScheduleItem{
				{ID: "a", Time: "09:00", Title: "伏見稻荷", Duration: "2h",
					TransportAfter: &trip.TransportInfo{Mode: trip.TransportTrain, Detail: "JR 奈良線", Duration: "10 min"}},
				{ID: "b", Time: "13:00", Title: "清水寺", Note: "a|b", IsOptional: true},
			},
		},
		{ID: 2, Date: "2025/03/02", Title: "空白", Location: trip.Osaka},
	}

	out, err := ItineraryString("京阪之旅", days)
	require.NoError(t, err)

	assert.Contains(t, out, "# 京阪之旅")
	assert.Equal(t, 2, strings.Count(out, "\n## "))
	assert.Contains(t, out, "## Day 1 · 2025/03/01 · 抵達京都")
	assert.Contains(t, out, "Hotel Kanra")
	assert.Contains(t, out, "5-12°C 晴")
	assert.Contains(t, out, "伏見稻荷")
	assert.Contains(t, out, "清水寺 (optional)")
	assert.Contains(t, out, `a\|b`)
	assert.Contains(t, out, "伏見稻荷 → Train: JR 奈良線 (10 min)")
	assert.Contains(t, out, "No plans yet.")
}

func TestItinerarySeed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Itinerary(&buf, "", trip.SeedItinerary()))
	assert.Equal(t, len(trip.SeedItinerary()), strings.Count(buf.String(), "## Day "))
}

func TestTokenQR(t *testing.T) {
	png, err := TokenQR("eyJ0aW1lc3RhbXAiOjF9", 256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	_, err = TokenQR("", 0)
	assert.True(t, errors.IsValidationError(err))

	_, err = TokenQR(strings.Repeat("A", 8000), 0)
	assert.True(t, errors.IsValidationError(err))
}
