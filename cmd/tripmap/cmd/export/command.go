// Package export provides the export command, which writes the itinerary
// as a Markdown document.
package export

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/tripmap/internal/cmd/alerts"
	"github.com/agentstation/tripmap/internal/cmd/application"
	"github.com/agentstation/tripmap/internal/cmd/cmdutil"
	tmexport "github.com/agentstation/tripmap/internal/export"
	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
)

// DefaultTitle heads the exported document.
const DefaultTitle = "Kansai Trip"

// NewCommand creates the export command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export trip data for sharing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newMarkdownCommand(app))
	return cmd
}

func newMarkdownCommand(app application.Application) *cobra.Command {
	var (
		outPath string
		title   string
	)
	cmd := &cobra.Command{
		Use:     "markdown",
		Aliases: []string{"md"},
		Short:   "Write the itinerary as Markdown",
		Example: `  tripmap export markdown > trip.md
  tripmap export markdown --out trip.md --title "Kyoto & Osaka"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			days := tm.Itinerary().Days()

			if outPath == "" {
				return tmexport.Itinerary(cmd.OutOrStdout(), title, days)
			}

			f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
			if err != nil {
				return errors.WrapIO("create", outPath, err)
			}
			if err := tmexport.Itinerary(f, title, days); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return errors.WrapIO("close", outPath, err)
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Wrote %d days to %s", len(days), outPath))
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "", "write to this file instead of stdout")
	cmd.Flags().StringVar(&title, "title", DefaultTitle, "document title (empty for none)")
	return cmd
}
