package trip

import (
	"regexp"
	"slices"
	"strings"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidClock reports whether s is an "HH:MM" 24-hour time.
func ValidClock(s string) bool {
	return clockPattern.MatchString(s)
}

// SortSchedule returns items ordered for display and storage: items with a
// time first, by time string, then items without a time. Equal keys keep
// their original order. The input slice is not modified.
func SortSchedule(items []ScheduleItem) []ScheduleItem {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, compareScheduleItems)
	return sorted
}

func compareScheduleItems(a, b ScheduleItem) int {
	switch {
	case a.Time == "" && b.Time == "":
		return 0
	case a.Time == "":
		return 1
	case b.Time == "":
		return -1
	default:
		return strings.Compare(a.Time, b.Time)
	}
}

// Clone returns a deep copy of the day.
func (d DayItinerary) Clone() DayItinerary {
	d.Weather.Tips = slices.Clone(d.Weather.Tips)
	items := make([]ScheduleItem, len(d.Items))
	for i, item := range d.Items {
		items[i] = item.Clone()
	}
	d.Items = items
	return d
}

// Clone returns a deep copy of the item.
func (s ScheduleItem) Clone() ScheduleItem {
	if s.TransportAfter != nil {
		t := *s.TransportAfter
		s.TransportAfter = &t
	}
	return s
}

// CloneDays deep-copies an itinerary.
func CloneDays(days []DayItinerary) []DayItinerary {
	out := make([]DayItinerary, len(days))
	for i, d := range days {
		out[i] = d.Clone()
	}
	return out
}

// CloneCategories deep-copies checklist categories.
func CloneCategories(cats []ChecklistCategory) []ChecklistCategory {
	out := make([]ChecklistCategory, len(cats))
	for i, c := range cats {
		c.Items = slices.Clone(c.Items)
		out[i] = c
	}
	return out
}
