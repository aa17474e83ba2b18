package bot

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/agentstation/tripmap/internal/live"
	"github.com/agentstation/tripmap/pkg/trip"
)

// FormatDay renders one day's schedule as plain text.
func FormatDay(day trip.DayItinerary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Day %d · %s\n%s (%s)\n", day.ID, day.Date, day.Title, day.Location)
	if day.Weather.TempRange != "" {
		fmt.Fprintf(&b, "🌤 %s %s\n", day.Weather.TempRange, day.Weather.Condition)
	}
	if len(day.Items) == 0 {
		b.WriteString("No plans yet.\n")
	}
	for _, item := range day.Items {
		clock := item.Time
		if clock == "" {
			clock = "--:--"
		}
		fmt.Fprintf(&b, "%s %s", clock, item.Title)
		if item.Location != "" {
			fmt.Fprintf(&b, " @ %s", item.Location)
		}
		b.WriteString("\n")
		if t := item.TransportAfter; t != nil {
			fmt.Fprintf(&b, "   ↓ %s %s\n", t.Mode, t.Detail)
		}
	}
	if day.Hotel != "" {
		fmt.Fprintf(&b, "🏨 %s\n", day.Hotel)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatShopping lists the unbought items grouped by type in type order.
func FormatShopping(items []trip.ShoppingItem, types []string) string {
	byType := map[string][]trip.ShoppingItem{}
	for _, item := range items {
		if !item.IsBought {
			byType[item.Type] = append(byType[item.Type], item)
		}
	}
	if len(byType) == 0 {
		return "Everything is bought 🎉"
	}

	order := append([]string(nil), types...)
	for t := range byType {
		if !slices.Contains(order, t) {
			order = append(order, t)
		}
	}

	var b strings.Builder
	for _, t := range order {
		group := byType[t]
		if len(group) == 0 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool { return group[i].Name < group[j].Name })
		fmt.Fprintf(&b, "【%s】\n", t)
		for _, item := range group {
			if item.Brand != "" {
				fmt.Fprintf(&b, "• %s (%s)\n", item.Name, item.Brand)
			} else {
				fmt.Fprintf(&b, "• %s\n", item.Name)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatRate renders the exchange rate with its source.
func FormatRate(r live.Rate) string {
	source := "live"
	if !r.Live {
		source = "default"
	}
	return fmt.Sprintf("¥1 = NT$%.4f (%s)\n¥10,000 = NT$%.0f", r.JPYToTWD, source, r.JPYToTWD*10000)
}

// FormatExpense confirms a recorded expense.
func FormatExpense(e trip.Expense, r live.Rate) string {
	return fmt.Sprintf("✅ %s ¥%.0f → NT$%.2f\n%s · %s (rate %.4f)",
		e.Category, e.AmountJPY, e.AmountTWD, e.Description, e.Date, r.JPYToTWD)
}
