package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/trip"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "JPY 1,000", FormatJPY(1000))
	assert.Equal(t, "JPY 0", FormatJPY(0))
	assert.Equal(t, "TWD 210.00", FormatTWD(210))
	assert.Equal(t, "TWD 1,234.50", FormatTWD(1234.5))
}

func TestDashAndTruncate(t *testing.T) {
	assert.Equal(t, "-", Dash(""))
	assert.Equal(t, "-", Dash("   "))
	assert.Equal(t, "Osaka", Dash("Osaka"))

	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "清水寺...", Truncate("清水寺二年坂三年坂", 6))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0/0 (0%)", Percent(0, 0))
	assert.Equal(t, "1/3 (33%)", Percent(1, 3))
	assert.Equal(t, "4/4 (100%)", Percent(4, 4))
}

func TestDaysToTableData(t *testing.T) {
	days := trip.SeedItinerary()
	data := DaysToTableData(days)

	require.Len(t, data.Rows, len(days))
	assert.Equal(t, []string{"Day", "Date", "Title", "City", "Hotel", "Stops"}, data.Headers)
	assert.Equal(t, "1", data.Rows[0][0])
	assert.Equal(t, days[0].Date, data.Rows[0][1])
}

func TestScheduleToTableDataWide(t *testing.T) {
	day := trip.DayItinerary{
		ID: 1,
		Items: []trip.ScheduleItem{
			{ID: "a", Time: "09:00", Title: "Fushimi Inari", IsOptional: true,
				TransportAfter: &trip.TransportInfo{Mode: trip.TransportTrain, Detail: "JR Nara line", Duration: "5min"}},
			{ID: "b", Title: "Dinner"},
		},
	}

	narrow := ScheduleToTableData(day, false)
	assert.Len(t, narrow.Headers, 5)
	assert.Equal(t, "Fushimi Inari (optional)", narrow.Rows[0][2])
	assert.Equal(t, "-", narrow.Rows[1][1])

	wide := ScheduleToTableData(day, true)
	require.Len(t, wide.Headers, 7)
	assert.Contains(t, wide.Rows[0][5], "JR Nara line")
	assert.Equal(t, "-", wide.Rows[1][5])
}

func TestSummaryToTableData(t *testing.T) {
	data := SummaryToTableData(collections.ExpenseSummary{
		Count:    3,
		TotalJPY: 4500,
		TotalTWD: 945,
		ByCategory: []collections.CategorySubtotal{
			{Category: trip.CategoryFood, Count: 2, JPY: 1500, TWD: 315},
			{Category: trip.CategoryTransport, Count: 1, JPY: 3000, TWD: 630},
		},
	})

	require.Len(t, data.Rows, 3)
	assert.Equal(t, []string{"Total", "3", "JPY 4,500", "TWD 945.00"}, data.Rows[2])
}

func TestChecklistToTableData(t *testing.T) {
	cats := []trip.ChecklistCategory{{ID: "docs", Title: "Documents", Items: []string{"Passport", "Cash"}}}
	data := ChecklistToTableData(cats, trip.CheckedState{"Passport": true})

	require.Len(t, data.Rows, 2)
	assert.Equal(t, "✓", data.Rows[0][3])
	assert.Equal(t, "", data.Rows[1][3])
}

func TestShoppingToTableDataGroupsByType(t *testing.T) {
	types := []string{"藥妝", "零食", "其他"}
	items := []trip.ShoppingItem{
		{ID: "1", Name: "Pocky", Type: "零食"},
		{ID: "2", Name: "Eye drops", Type: "藥妝", IsBought: true},
		{ID: "3", Name: "Umbrella", Type: "其他"},
		{ID: "4", Name: "Kit Kat", Type: "零食"},
	}
	data := ShoppingToTableData(items, types)

	var ids []string
	for _, row := range data.Rows {
		ids = append(ids, row[0])
	}
	assert.Equal(t, []string{"2", "1", "4", "3"}, ids)
	assert.Equal(t, "✓", data.Rows[0][5])

	counts := TypesToTableData(types, items)
	assert.Equal(t, [][]string{{"藥妝", "1"}, {"零食", "2"}, {"其他", "1"}}, counts.Rows)
}
