// Package export renders trip data for sharing outside the app: the
// itinerary as a Markdown document and sync tokens as QR codes.
package export

import (
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/trip"
)

// Itinerary writes days as Markdown with one section per day.
func Itinerary(w io.Writer, title string, days []trip.DayItinerary) error {
	doc := md.NewMarkdown(w)
	if title != "" {
		doc.H1(title)
	}

	for _, day := range days {
		doc.H2(dayHeading(day))
		doc.PlainText(dayMeta(day)).LF()
		doc.PlainText(weatherLine(day.Weather)).LF()

		if len(day.Items) == 0 {
			doc.PlainText(md.Italic("No plans yet.")).LF()
			continue
		}

		rows := make([][]string, 0, len(day.Items))
		for _, item := range day.Items {
			rows = append(rows, []string{
				cell(item.Time),
				cell(itemTitle(item)),
				cell(item.Duration),
				cell(item.Location),
				cell(item.Note),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"Time", "Stop", "Duration", "Location", "Note"},
			Rows:   rows,
		})

		if legs := transportLegs(day.Items); len(legs) > 0 {
			doc.PlainText(md.Bold("Getting around")).LF()
			doc.BulletList(legs...)
		}
	}

	if err := doc.Build(); err != nil {
		return errors.WrapIO("write", "markdown", err)
	}
	return nil
}

// ItineraryString renders the itinerary to a string.
func ItineraryString(title string, days []trip.DayItinerary) (string, error) {
	var b strings.Builder
	if err := Itinerary(&b, title, days); err != nil {
		return "", err
	}
	return b.String(), nil
}

func dayHeading(day trip.DayItinerary) string {
	return fmt.Sprintf("Day %d · %s · %s", day.ID, day.Date, day.Title)
}

func dayMeta(day trip.DayItinerary) string {
	meta := "📍 " + string(day.Location)
	if day.Hotel != "" {
		meta += " · 🏨 " + day.Hotel
	}
	return meta
}

func weatherLine(w trip.WeatherData) string {
	parts := []string{}
	if w.TempRange != "" {
		parts = append(parts, w.TempRange)
	}
	if w.Condition != "" {
		parts = append(parts, w.Condition)
	}
	line := "🌤 " + strings.Join(parts, " ")
	if w.Clothing != "" {
		line += " · 👕 " + w.Clothing
	}
	return line
}

func itemTitle(item trip.ScheduleItem) string {
	if item.IsOptional {
		return item.Title + " (optional)"
	}
	return item.Title
}

func transportLegs(items []trip.ScheduleItem) []string {
	var legs []string
	for _, item := range items {
		t := item.TransportAfter
		if t == nil {
			continue
		}
		leg := fmt.Sprintf("%s → %s: %s", item.Title, t.Mode, t.Detail)
		if t.Duration != "" {
			leg += " (" + t.Duration + ")"
		}
		if t.Note != "" {
			leg += ", " + t.Note
		}
		legs = append(legs, leg)
	}
	return legs
}

// cell keeps table rows on one line.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
