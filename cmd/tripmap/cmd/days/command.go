// Package days provides the itinerary commands: listing days and editing
// the stops of a day.
package days

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/tripmap/internal/cmd/application"
	"github.com/agentstation/tripmap/internal/cmd/cmdutil"
	"github.com/agentstation/tripmap/internal/cmd/output"
	"github.com/agentstation/tripmap/internal/cmd/table"
)

// NewCommand creates the days command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "days [day]",
		Short: "List the days of the trip or show one day's schedule",
		Example: `  tripmap days
  tripmap days 3
  tripmap days 3 -o wide`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				days := tm.Itinerary().Days()
				return cmdutil.Render(cmd, app, table.DaysToTableData(days), days)
			}

			id, err := cmdutil.DayArg(args[0])
			if err != nil {
				return err
			}
			day, err := tm.Itinerary().Day(id)
			if err != nil {
				return err
			}

			format := output.Format(app.OutputFormat())
			if format.IsTable() {
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Day %d · %s · %s (%s)\n", day.ID, day.Date, day.Title, day.Location)
				fmt.Fprintf(w, "%s %s, %s\n", day.Weather.Condition, day.Weather.TempRange, day.Weather.Clothing)
				if day.Hotel != "" {
					fmt.Fprintf(w, "Hotel: %s\n", day.Hotel)
				}
			}
			return cmdutil.Render(cmd, app, table.ScheduleToTableData(day, format == output.FormatWide), day)
		},
	}
}
