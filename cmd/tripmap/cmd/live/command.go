// Package live provides the weather, exchange-rate and tips commands.
package live

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/tripmap/internal/cmd/alerts"
	"github.com/agentstation/tripmap/internal/cmd/application"
	"github.com/agentstation/tripmap/internal/cmd/cmdutil"
	"github.com/agentstation/tripmap/internal/cmd/output"
	"github.com/agentstation/tripmap/internal/cmd/table"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/trip"
)

// ParseCity accepts a city name in any case.
func ParseCity(s string) (trip.City, error) {
	for _, c := range []trip.City{trip.Kyoto, trip.Osaka} {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", errors.NewValidationError("city", s, "must be Kyoto or Osaka")
}

// NewWeatherCommand creates the weather command.
func NewWeatherCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:       "weather <city>",
		Short:     "Current weather in Kyoto or Osaka",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"Kyoto", "Osaka"},
		RunE: func(cmd *cobra.Command, args []string) error {
			city, err := ParseCity(args[0])
			if err != nil {
				return err
			}
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			w := tm.Weather(cmd.Context(), city)
			if !output.Format(app.OutputFormat()).IsTable() {
				return cmdutil.Render(cmd, app, output.Data{}, w)
			}

			out := cmd.OutOrStdout()
			if w.Live && w.Reading != nil {
				fmt.Fprintf(out, "%s: %.1f°C, %s\n", city, w.Reading.TemperatureC, w.Reading.Condition)
			} else {
				fmt.Fprintf(out, "%s: %s, %s (forecast)\n", city, w.Seed.TempRange, w.Seed.Condition)
			}
			if w.Seed.Clothing != "" {
				fmt.Fprintf(out, "Wear: %s\n", w.Seed.Clothing)
			}
			return nil
		},
	}
}

// NewRateCommand creates the rate command.
func NewRateCommand(app application.Application) *cobra.Command {
	var amount float64
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "JPY to TWD exchange rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			r := tm.Rate(cmd.Context())
			if !output.Format(app.OutputFormat()).IsTable() {
				return cmdutil.Render(cmd, app, output.Data{}, r)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "¥1 = NT$%.4f\n", r.JPYToTWD)
			if amount > 0 {
				fmt.Fprintf(out, "%s = %s\n", table.FormatJPY(amount), table.FormatTWD(amount*r.JPYToTWD))
			}
			if !r.Live {
				return cmdutil.Notify(cmd, app, alerts.NewWarning("Rate service unavailable, showing the default rate"))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&amount, "convert", 0, "also convert this many yen")
	return cmd
}

// NewTipsCommand creates the tips command.
func NewTipsCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "tips <day>",
		Short: "Travel tips for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dayID, err := cmdutil.DayArg(args[0])
			if err != nil {
				return err
			}
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			t, err := tm.Tips(cmd.Context(), dayID)
			if err != nil {
				return err
			}
			if !output.Format(app.OutputFormat()).IsTable() {
				return cmdutil.Render(cmd, app, output.Data{}, t)
			}
			out := cmd.OutOrStdout()
			for _, tip := range t.Tips {
				fmt.Fprintf(out, "• %s\n", tip)
			}
			return nil
		},
	}
}
