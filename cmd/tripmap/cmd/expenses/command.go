// Package expenses provides the expense commands.
package expenses

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/tripmap/internal/cmd/alerts"
	"github.com/agentstation/tripmap/internal/cmd/application"
	"github.com/agentstation/tripmap/internal/cmd/cmdutil"
	"github.com/agentstation/tripmap/internal/cmd/table"
	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/trip"
)

// NewCommand creates the expenses command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"expense"},
		Short:   "List expenses",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			list := tm.Expenses().List()
			return cmdutil.Render(cmd, app, table.ExpensesToTableData(list), list)
		},
	}
	cmd.AddCommand(
		newAddCommand(app),
		newUpdateCommand(app),
		newRemoveCommand(app),
		newSummaryCommand(app),
	)
	return cmd
}

func newAddCommand(app application.Application) *cobra.Command {
	var in collections.ExpenseInput
	cmd := &cobra.Command{
		Use:   "add <jpy> <description...>",
		Short: "Record an expense in yen, converted to TWD at the current rate",
		Long: `Record an expense in yen. The TWD amount is fixed at the exchange rate
fetched now (or the default rate when the rate service is unreachable).

Categories: ` + strings.Join(trip.ExpenseCategories, ", "),
		Example: `  tripmap expenses add 1200 拉麵 --category 餐飲
  tripmap expenses add 3500 "Suica top-up" --category 交通 --date 2026-02-27`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseYen(args[0])
			if err != nil {
				return err
			}
			in.AmountJPY = amount
			in.Description = strings.Join(args[1:], " ")

			tm, err := app.Trip()
			if err != nil {
				return err
			}
			e, rate, err := tm.AddExpenseAtLiveRate(cmd.Context(), in)
			if err != nil {
				return err
			}

			alert := alerts.Successf("Added %s (%s) %s", table.FormatJPY(e.AmountJPY), table.FormatTWD(e.AmountTWD), e.Description).
				WithDetails("id: " + e.ID)
			if !rate.Live {
				alert.WithDetails("rate service unavailable, used default rate " + strconv.FormatFloat(rate.JPYToTWD, 'f', -1, 64))
			}
			return cmdutil.Notify(cmd, app, alert)
		},
	}
	cmd.Flags().StringVarP(&in.Category, "category", "c", trip.CategoryOther, "expense category")
	cmd.Flags().StringVar(&in.Date, "date", "", "date as YYYY-MM-DD (default today)")
	return cmd
}

func newUpdateCommand(app application.Application) *cobra.Command {
	var date, category, description string
	cmd := &cobra.Command{
		Use:   "update <expense-id>",
		Short: "Change the date, category or description of an expense",
		Long:  "Change the date, category or description of an expense. Amounts cannot change; remove and re-add instead.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u collections.ExpenseUpdate
			if cmd.Flags().Changed("date") {
				u.Date = &date
			}
			if cmd.Flags().Changed("category") {
				u.Category = &category
			}
			if cmd.Flags().Changed("description") {
				u.Description = &description
			}
			if u.Date == nil && u.Category == nil && u.Description == nil {
				return errors.NewValidationError("", nil, "set at least one of --date, --category, --description")
			}

			tm, err := app.Trip()
			if err != nil {
				return err
			}
			e, err := tm.Expenses().Update(cmd.Context(), args[0], u)
			if err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Updated %s", e.ID))
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD")
	cmd.Flags().StringVarP(&category, "category", "c", "", "expense category")
	cmd.Flags().StringVar(&description, "description", "", "description")
	return cmd
}

func newRemoveCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <expense-id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove an expense",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			if err := tm.Expenses().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Removed %s", args[0]))
		},
	}
}

func newSummaryCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Total spending by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			s := tm.Expenses().Summary()
			return cmdutil.Render(cmd, app, table.SummaryToTableData(s), s)
		},
	}
}

// parseYen accepts "1200", "1,200" and "¥1200".
func parseYen(s string) (float64, error) {
	clean := strings.NewReplacer(",", "", "¥", "", "円", "").Replace(strings.TrimSpace(s))
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || v <= 0 {
		return 0, errors.NewValidationError("amountJpy", s, "must be a positive yen amount")
	}
	return v, nil
}
