// Package flights provides the flight commands.
package flights

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/tripmap/internal/cmd/alerts"
	"github.com/agentstation/tripmap/internal/cmd/application"
	"github.com/agentstation/tripmap/internal/cmd/cmdutil"
	"github.com/agentstation/tripmap/internal/cmd/table"
	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/errors"
)

// NewCommand creates the flights command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flights",
		Short: "Show the flight legs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			flights := tm.Flights().List()
			return cmdutil.Render(cmd, app, table.FlightsToTableData(flights), flights)
		},
	}
	cmd.AddCommand(newUpdateCommand(app))
	return cmd
}

func newUpdateCommand(app application.Application) *cobra.Command {
	var departure, arrival, seat string
	cmd := &cobra.Command{
		Use:     "update <flight-id>",
		Short:   "Change the departure time, arrival time or seat of a flight",
		Example: `  tripmap flights update f1 --seat 32A --departure "2026/02/26 06:55"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u collections.FlightUpdate
			if cmd.Flags().Changed("departure") {
				u.DepartureTime = &departure
			}
			if cmd.Flags().Changed("arrival") {
				u.ArrivalTime = &arrival
			}
			if cmd.Flags().Changed("seat") {
				u.Seat = &seat
			}
			if u.DepartureTime == nil && u.ArrivalTime == nil && u.Seat == nil {
				return errors.NewValidationError("", nil, "set at least one of --departure, --arrival, --seat")
			}

			tm, err := app.Trip()
			if err != nil {
				return err
			}
			f, err := tm.Flights().Update(cmd.Context(), args[0], u)
			if err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Updated %s %s", f.Airline, f.FlightNo))
		},
	}
	cmd.Flags().StringVar(&departure, "departure", "", "departure time as YYYY/MM/DD HH:mm")
	cmd.Flags().StringVar(&arrival, "arrival", "", "arrival time as YYYY/MM/DD HH:mm")
	cmd.Flags().StringVar(&seat, "seat", "", "seat number")
	return cmd
}
