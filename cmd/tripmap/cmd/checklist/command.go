// Package checklist provides the packing checklist commands.
package checklist

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/tripmap/internal/cmd/alerts"
	"github.com/agentstation/tripmap/internal/cmd/application"
	"github.com/agentstation/tripmap/internal/cmd/cmdutil"
	"github.com/agentstation/tripmap/internal/cmd/table"
	"github.com/agentstation/tripmap/pkg/trip"
)

// NewCommand creates the checklist command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "checklist",
		Aliases: []string{"packing"},
		Short:   "Show the packing checklist",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			cl := tm.Checklist()
			cats, checked := cl.Categories(), cl.Checked()
			raw := struct {
				Categories []trip.ChecklistCategory `json:"categories"`
				Checked    trip.CheckedState        `json:"checked"`
			}{cats, checked}
			return cmdutil.Render(cmd, app, table.ChecklistToTableData(cats, checked), raw)
		},
	}
	cmd.AddCommand(
		newProgressCommand(app),
		newToggleCommand(app),
		newResetCommand(app),
		newAddCommand(app),
		newRemoveCommand(app),
		newAddCategoryCommand(app),
		newRenameCategoryCommand(app),
		newRemoveCategoryCommand(app),
	)
	return cmd
}

func newProgressCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Packed items per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			p := tm.Checklist().Progress()
			return cmdutil.Render(cmd, app, table.ProgressToTableData(p), p)
		},
	}
}

func newToggleCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <item>",
		Short:   "Mark an item packed or unpacked",
		Example: `  tripmap checklist toggle 護照`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			packed, err := tm.Checklist().Toggle(cmd.Context(), name)
			if err != nil {
				return err
			}
			if packed {
				return cmdutil.Notify(cmd, app, alerts.Successf("Packed %s", name))
			}
			return cmdutil.Notify(cmd, app, alerts.NewInfo("Unpacked "+name))
		},
	}
}

func newResetCommand(app application.Application) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Unpack every item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmdutil.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Clear every packed mark?", yes) {
				return cmdutil.Notify(cmd, app, alerts.NewInfo("Reset canceled"))
			}
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			if err := tm.Checklist().ResetChecks(cmd.Context()); err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.NewSuccess("Checklist reset"))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newAddCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "add <category-id> <item>",
		Short: "Add an item to a category",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args[1:], " ")
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			if err := tm.Checklist().AddItem(cmd.Context(), args[0], name); err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Added %s", name))
		},
	}
}

func newRemoveCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <category-id> <item>",
		Aliases: []string{"remove"},
		Short:   "Remove an item from a category",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args[1:], " ")
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			if err := tm.Checklist().RemoveItem(cmd.Context(), args[0], name); err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Removed %s", name))
		},
	}
}

func newAddCategoryCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "add-category <title>",
		Short: "Add a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			c, err := tm.Checklist().AddCategory(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Added category %s", c.Title).WithDetails("id: "+c.ID))
		},
	}
}

func newRenameCategoryCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "rename-category <category-id> <title>",
		Short: "Rename a category",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.Join(args[1:], " ")
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			if err := tm.Checklist().RenameCategory(cmd.Context(), args[0], title); err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Renamed %s to %s", args[0], title))
		},
	}
}

func newRemoveCategoryCommand(app application.Application) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm-category <category-id>",
		Short: "Remove a category and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmdutil.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Remove category "+args[0]+" and all its items?", yes) {
				return cmdutil.Notify(cmd, app, alerts.NewInfo("Removal canceled"))
			}
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			if err := tm.Checklist().DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Removed category %s", args[0]))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
