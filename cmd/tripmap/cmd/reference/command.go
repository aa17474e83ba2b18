// Package reference provides the commands for static trip data: hotels
// and airport trains.
package reference

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/tripmap/internal/cmd/application"
	"github.com/agentstation/tripmap/internal/cmd/cmdutil"
	"github.com/agentstation/tripmap/internal/cmd/table"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/trip"
)

// NewHotelsCommand creates the hotels command.
func NewHotelsCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "hotels",
		Aliases: []string{"accommodations"},
		Short:   "Show the booked hotels",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hotels := trip.Accommodations()
			return cmdutil.Render(cmd, app, table.AccommodationsToTableData(hotels), hotels)
		},
	}
}

// NewTrainsCommand creates the trains command.
func NewTrainsCommand(app application.Application) *cobra.Command {
	var line string
	cmd := &cobra.Command{
		Use:   "trains",
		Short: "Show Kansai airport train departures (Haruka, Rapi:t)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var trains []trip.TrainSchedule
			switch strings.ToLower(line) {
			case "", "all":
				trains = append(trip.HarukaSchedule(), trip.RapitSchedule()...)
			case "haruka":
				trains = trip.HarukaSchedule()
			case "rapit", "rapi:t":
				trains = trip.RapitSchedule()
			default:
				return errors.NewValidationError("line", line, "must be haruka, rapit or all")
			}
			return cmdutil.Render(cmd, app, table.TrainsToTableData(trains), trains)
		},
	}
	cmd.Flags().StringVar(&line, "line", "all", "haruka, rapit or all")
	return cmd
}
