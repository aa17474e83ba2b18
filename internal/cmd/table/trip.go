package table

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/trip"
)

// DaysToTableData lists the days of the trip.
func DaysToTableData(days []trip.DayItinerary) Data {
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, []string{
			strconv.Itoa(d.ID),
			d.Date,
			d.Title,
			string(d.Location),
			Dash(d.Hotel),
			strconv.Itoa(len(d.Items)),
		})
	}
	return Data{
		Headers:         []string{"Day", "Date", "Title", "City", "Hotel", "Stops"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignRight},
	}
}

// ScheduleToTableData lists the stops of one day in order.
func ScheduleToTableData(day trip.DayItinerary, wide bool) Data {
	headers := []string{"ID", "Time", "Title", "Duration", "Location"}
	if wide {
		headers = append(headers, "Next", "Note")
	}
	rows := make([][]string, 0, len(day.Items))
	for _, it := range day.Items {
		title := it.Title
		if it.IsOptional {
			title += " (optional)"
		}
		row := []string{it.ID, Dash(it.Time), title, Dash(it.Duration), Dash(it.Location)}
		if wide {
			next := "-"
			if t := it.TransportAfter; t != nil {
				next = strings.TrimSpace(string(t.Mode) + " " + t.Detail + " " + t.Duration)
			}
			row = append(row, next, Dash(Truncate(it.Note, 60)))
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// FlightsToTableData lists flight legs.
func FlightsToTableData(flights []trip.Flight) Data {
	rows := make([][]string, 0, len(flights))
	for _, f := range flights {
		rows = append(rows, []string{
			f.ID,
			string(f.Type),
			f.Airline + " " + f.FlightNo,
			f.From + " → " + f.To,
			f.DepartureTime,
			f.ArrivalTime,
			Dash(f.Terminal),
			Dash(f.Seat),
		})
	}
	return Data{
		Headers: []string{"ID", "Leg", "Flight", "Route", "Departs", "Arrives", "Terminal", "Seat"},
		Rows:    rows,
	}
}

// ExpensesToTableData lists expenses with both currencies.
func ExpensesToTableData(expenses []trip.Expense) Data {
	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{
			e.ID,
			e.Date,
			e.Category,
			FormatJPY(e.AmountJPY),
			FormatTWD(e.AmountTWD),
			Dash(e.Description),
		})
	}
	return Data{
		Headers:         []string{"ID", "Date", "Category", "JPY", "TWD", "Description"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignDefault, AlignDefault, AlignDefault, AlignRight, AlignRight},
	}
}

// SummaryToTableData lists per-category subtotals and a total row.
func SummaryToTableData(s collections.ExpenseSummary) Data {
	rows := make([][]string, 0, len(s.ByCategory)+1)
	for _, c := range s.ByCategory {
		rows = append(rows, []string{c.Category, strconv.Itoa(c.Count), FormatJPY(c.JPY), FormatTWD(c.TWD)})
	}
	rows = append(rows, []string{"Total", strconv.Itoa(s.Count), FormatJPY(s.TotalJPY), FormatTWD(s.TotalTWD)})
	return Data{
		Headers:         []string{"Category", "Count", "JPY", "TWD"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignDefault, AlignRight, AlignRight, AlignRight},
	}
}

// ChecklistToTableData lists every packing item with its category and state.
func ChecklistToTableData(cats []trip.ChecklistCategory, checked trip.CheckedState) Data {
	var rows [][]string
	for _, c := range cats {
		for _, name := range c.Items {
			rows = append(rows, []string{c.ID, c.Title, name, Check(checked[name])})
		}
	}
	return Data{
		Headers:         []string{"Category ID", "Category", "Item", "Packed"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignDefault, AlignDefault, AlignDefault, AlignCenter},
	}
}

// ProgressToTableData lists packing progress per category.
func ProgressToTableData(progress []collections.CategoryProgress) Data {
	rows := make([][]string, 0, len(progress))
	for _, p := range progress {
		rows = append(rows, []string{p.CategoryID, p.Title, Percent(p.Completed, p.Total)})
	}
	return Data{Headers: []string{"ID", "Category", "Packed"}, Rows: rows}
}

// CouponsToTableData lists coupons.
func CouponsToTableData(coupons []trip.Coupon) Data {
	rows := make([][]string, 0, len(coupons))
	for _, c := range coupons {
		rows = append(rows, []string{c.ID, c.Title, Dash(Truncate(c.Description, 40)), Dash(c.ExpiryDate), c.URL})
	}
	return Data{Headers: []string{"ID", "Title", "Description", "Expires", "URL"}, Rows: rows}
}

// ShoppingToTableData lists shopping items grouped by type in type order.
func ShoppingToTableData(items []trip.ShoppingItem, types []string) Data {
	order := make(map[string]int, len(types))
	for i, t := range types {
		order[t] = i
	}
	sorted := make([]trip.ShoppingItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return order[sorted[i].Type] < order[sorted[j].Type]
	})

	rows := make([][]string, 0, len(sorted))
	for _, it := range sorted {
		rows = append(rows, []string{it.ID, it.Type, it.Name, Dash(it.Brand), Dash(Truncate(it.Note, 40)), Check(it.IsBought)})
	}
	return Data{
		Headers:         []string{"ID", "Type", "Name", "Brand", "Note", "Bought"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignDefault, AlignDefault, AlignDefault, AlignDefault, AlignDefault, AlignCenter},
	}
}

// TypesToTableData lists shopping types with how many items use each.
func TypesToTableData(types []string, items []trip.ShoppingItem) Data {
	counts := make(map[string]int, len(types))
	for _, it := range items {
		counts[it.Type]++
	}
	rows := make([][]string, 0, len(types))
	for _, t := range types {
		rows = append(rows, []string{t, strconv.Itoa(counts[t])})
	}
	return Data{Headers: []string{"Type", "Items"}, Rows: rows, ColumnAlignment: []Align{AlignDefault, AlignRight}}
}

// AccommodationsToTableData lists hotels.
func AccommodationsToTableData(hotels []trip.Accommodation) Data {
	rows := make([][]string, 0, len(hotels))
	for _, h := range hotels {
		rows = append(rows, []string{h.Name, h.CheckIn, h.CheckOut, h.RoomType, h.Phone, h.Address})
	}
	return Data{Headers: []string{"Hotel", "Check-in", "Check-out", "Room", "Phone", "Address"}, Rows: rows}
}

// TrainsToTableData lists airport train departures.
func TrainsToTableData(trains []trip.TrainSchedule) Data {
	rows := make([][]string, 0, len(trains))
	for _, tr := range trains {
		rows = append(rows, []string{tr.Name, tr.Dep, tr.Arr, tr.Duration, Dash(tr.Note)})
	}
	return Data{Headers: []string{"Train", "Departs", "Arrives", "Duration", "Note"}, Rows: rows}
}
