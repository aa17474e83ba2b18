// Package coupons provides the coupon commands.
package coupons

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/tripmap/internal/cmd/alerts"
	"github.com/agentstation/tripmap/internal/cmd/application"
	"github.com/agentstation/tripmap/internal/cmd/cmdutil"
	"github.com/agentstation/tripmap/internal/cmd/table"
	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/errors"
)

// NewCommand creates the coupons command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "coupons",
		Aliases: []string{"coupon"},
		Short:   "List discount and tax-free coupons",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			list := tm.Coupons().List()
			return cmdutil.Render(cmd, app, table.CouponsToTableData(list), list)
		},
	}
	cmd.AddCommand(newAddCommand(app), newUpdateCommand(app), newRemoveCommand(app))
	return cmd
}

func registerFlags(cmd *cobra.Command, in *collections.CouponInput) {
	cmd.Flags().StringVar(&in.Title, "title", "", "coupon title")
	cmd.Flags().StringVar(&in.Description, "description", "", "what the coupon gives")
	cmd.Flags().StringVar(&in.URL, "url", "", "link to the coupon")
	cmd.Flags().StringVar(&in.ExpiryDate, "expires", "", "expiry date, informational")
}

func newAddCommand(app application.Application) *cobra.Command {
	var in collections.CouponInput
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a coupon",
		Example: `  tripmap coupons add --title "Bic Camera" --description "10% off + 5% tax free" --url https://example.com/bic`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			c, err := tm.Coupons().Add(cmd.Context(), in)
			if err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Added coupon %s", c.Title).WithDetails("id: "+c.ID))
		},
	}
	registerFlags(cmd, &in)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func newUpdateCommand(app application.Application) *cobra.Command {
	var in collections.CouponInput
	cmd := &cobra.Command{
		Use:   "update <coupon-id>",
		Short: "Change a coupon; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}

			var next collections.CouponInput
			found := false
			for _, c := range tm.Coupons().List() {
				if c.ID == args[0] {
					next = collections.CouponInput{Title: c.Title, Description: c.Description, URL: c.URL, ExpiryDate: c.ExpiryDate}
					found = true
					break
				}
			}
			if !found {
				return errors.NewNotFoundError("coupon", args[0])
			}

			fl := cmd.Flags()
			if fl.Changed("title") {
				next.Title = in.Title
			}
			if fl.Changed("description") {
				next.Description = in.Description
			}
			if fl.Changed("url") {
				next.URL = in.URL
			}
			if fl.Changed("expires") {
				next.ExpiryDate = in.ExpiryDate
			}

			c, err := tm.Coupons().Update(cmd.Context(), args[0], next)
			if err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Updated coupon %s", c.Title))
		},
	}
	registerFlags(cmd, &in)
	return cmd
}

func newRemoveCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <coupon-id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a coupon",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			if err := tm.Coupons().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Removed coupon %s", args[0]))
		},
	}
}
