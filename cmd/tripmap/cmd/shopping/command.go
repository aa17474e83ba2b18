// Package shopping provides the shopping list commands.
package shopping

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/tripmap/internal/cmd/alerts"
	"github.com/agentstation/tripmap/internal/cmd/application"
	"github.com/agentstation/tripmap/internal/cmd/cmdutil"
	"github.com/agentstation/tripmap/internal/cmd/output"
	"github.com/agentstation/tripmap/internal/cmd/table"
	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/trip"
)

// NewCommand creates the shopping command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shopping",
		Short: "Show the shopping list grouped by type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			s := tm.Shopping()
			items, types := s.Items(), s.Types()
			if err := cmdutil.Render(cmd, app, table.ShoppingToTableData(items, types), items); err != nil {
				return err
			}
			if output.Format(app.OutputFormat()).IsTable() {
				p := s.Progress()
				fmt.Fprintf(cmd.OutOrStdout(), "%s bought\n", table.Percent(p.Bought, p.Total))
			}
			return nil
		},
	}
	cmd.AddCommand(
		newAddCommand(app),
		newUpdateCommand(app),
		newBoughtCommand(app),
		newRemoveCommand(app),
		newTypesCommand(app),
		newAddTypeCommand(app),
		newRemoveTypeCommand(app),
	)
	return cmd
}

func registerFlags(cmd *cobra.Command, in *collections.ShoppingInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "item name")
	cmd.Flags().StringVar(&in.Brand, "brand", "", "brand")
	cmd.Flags().StringVarP(&in.Type, "type", "t", constants.FallbackShoppingType, "shopping type")
	cmd.Flags().StringVar(&in.Note, "note", "", "note")
	cmd.Flags().StringVar(&in.Photo, "photo", "", "photo as a data URL")
}

func newAddCommand(app application.Application) *cobra.Command {
	var in collections.ShoppingInput
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add an item to buy",
		Example: `  tripmap shopping add --name "Eye drops" --brand Rohto --type 藥妝`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			it, err := tm.Shopping().AddItem(cmd.Context(), in)
			if err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Added %s (%s)", it.Name, it.Type).WithDetails("id: "+it.ID))
		},
	}
	registerFlags(cmd, &in)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newUpdateCommand(app application.Application) *cobra.Command {
	var in collections.ShoppingInput
	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Change an item; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			current, err := find(tm.Shopping().Items(), args[0])
			if err != nil {
				return err
			}

			next := collections.ShoppingInput{Name: current.Name, Brand: current.Brand, Type: current.Type, Photo: current.Photo, Note: current.Note}
			fl := cmd.Flags()
			if fl.Changed("name") {
				next.Name = in.Name
			}
			if fl.Changed("brand") {
				next.Brand = in.Brand
			}
			if fl.Changed("type") {
				next.Type = in.Type
			}
			if fl.Changed("note") {
				next.Note = in.Note
			}
			if fl.Changed("photo") {
				next.Photo = in.Photo
			}

			it, err := tm.Shopping().UpdateItem(cmd.Context(), current.ID, next)
			if err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Updated %s", it.Name))
		},
	}
	registerFlags(cmd, &in)
	return cmd
}

func newBoughtCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "bought <item-id or name>",
		Short:   "Toggle whether an item is bought",
		Example: `  tripmap shopping bought "Eye drops"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			it, err := find(tm.Shopping().Items(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			bought, err := tm.Shopping().ToggleBought(cmd.Context(), it.ID)
			if err != nil {
				return err
			}
			p := tm.Shopping().Progress()
			if bought {
				return cmdutil.Notify(cmd, app, alerts.Successf("Bought %s (%d/%d)", it.Name, p.Bought, p.Total))
			}
			return cmdutil.Notify(cmd, app, alerts.NewInfo(fmt.Sprintf("%s back on the list (%d/%d)", it.Name, p.Bought, p.Total)))
		},
	}
}

func newRemoveCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <item-id or name>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove an item",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			it, err := find(tm.Shopping().Items(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if err := tm.Shopping().DeleteItem(cmd.Context(), it.ID); err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Removed %s", it.Name))
		},
	}
}

func newTypesCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List shopping types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			types := tm.Shopping().Types()
			return cmdutil.Render(cmd, app, table.TypesToTableData(types, tm.Shopping().Items()), types)
		},
	}
}

func newAddTypeCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "add-type <name>",
		Short: "Add a shopping type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			if err := tm.Shopping().AddType(cmd.Context(), args[0]); err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Added type %s", args[0]))
		},
	}
}

func newRemoveTypeCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "rm-type <name>",
		Short: "Remove a shopping type; its items move to " + constants.FallbackShoppingType,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			moved := 0
			for _, it := range tm.Shopping().Items() {
				if it.Type == args[0] {
					moved++
				}
			}
			if err := tm.Shopping().DeleteType(cmd.Context(), args[0]); err != nil {
				return err
			}
			alert := alerts.Successf("Removed type %s", args[0])
			if moved > 0 {
				alert.WithDetails(fmt.Sprintf("%d items moved to %s", moved, constants.FallbackShoppingType))
			}
			return cmdutil.Notify(cmd, app, alert)
		},
	}
}

// find matches an item by id, then by case-insensitive name.
func find(items []trip.ShoppingItem, key string) (trip.ShoppingItem, error) {
	key = strings.TrimSpace(key)
	for _, it := range items {
		if it.ID == key {
			return it, nil
		}
	}
	for _, it := range items {
		if strings.EqualFold(it.Name, key) {
			return it, nil
		}
	}
	return trip.ShoppingItem{}, errors.NewNotFoundError("shopping item", key)
}
