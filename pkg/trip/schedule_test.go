package trip

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortSchedule(t *testing.T) {
	items := []ScheduleItem{
		{ID: "a", Title: "no time 1"},
		{ID: "b", Time: "15:00"},
		{ID: "c", Title: "no time 2"},
		{ID: "d", Time: "09:00"},
		{ID: "e", Time: "15:00"},
	}

	sorted := SortSchedule(items)

	assert.Equal(t, []string{"d", "b", "e", "a", "c"}, ids(sorted))
	assert.Equal(t, "a", items[0].ID, "input must not be reordered")
}

func TestSortScheduleProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	times := []string{"", "", "08:30", "09:00", "12:15", "23:59", "00:00"}

	for round := 0; round < 200; round++ {
		n := r.Intn(12)
		items := make([]ScheduleItem, n)
		for i := range items {
			items[i] = ScheduleItem{ID: string(rune('a' + i)), Time: times[r.Intn(len(times))]}
		}
		pos := make(map[string]int, n)
		for i, it := range items {
			pos[it.ID] = i
		}

		sorted := SortSchedule(items)
		require.Len(t, sorted, n)

		seenUntimed := false
		for i, it := range sorted {
			if it.Time == "" {
				seenUntimed = true
			} else {
				require.False(t, seenUntimed, "timed item after untimed item")
			}
			if i == 0 {
				continue
			}
			prev := sorted[i-1]
			if prev.Time != "" && it.Time != "" {
				require.LessOrEqual(t, prev.Time, it.Time)
			}
			if prev.Time == it.Time {
				require.Less(t, pos[prev.ID], pos[it.ID], "stable order broken")
			}
		}
	}
}

func TestValidClock(t *testing.T) {
	assert.True(t, ValidClock("00:00"))
	assert.True(t, ValidClock("23:59"))
	assert.False(t, ValidClock("24:00"))
	assert.False(t, ValidClock("9:00"))
	assert.False(t, ValidClock(""))
}

func TestDayCloneIsDeep(t *testing.T) {
	day := SeedItinerary()[0]
	clone := day.Clone()

	clone.Items[0].TransportAfter.Detail = "changed"
	clone.Weather.Tips[0] = "changed"

	assert.NotEqual(t, "changed", day.Items[0].TransportAfter.Detail)
	assert.NotEqual(t, "changed", day.Weather.Tips[0])
}

func ids(items []ScheduleItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
