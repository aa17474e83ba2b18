// Package tripsync provides the sync commands: token export and import,
// push and pull against the sync endpoint, and the endpoint setting.
package tripsync

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/tripmap/internal/cmd/alerts"
	"github.com/agentstation/tripmap/internal/cmd/application"
	"github.com/agentstation/tripmap/internal/cmd/cmdutil"
	"github.com/agentstation/tripmap/internal/cmd/output"
	"github.com/agentstation/tripmap/internal/export"
	"github.com/agentstation/tripmap/pkg/constants"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/save"
	"github.com/agentstation/tripmap/pkg/syncer"
)

// NewCommand creates the sync command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Share the trip between devices",
		Long: `Share the itinerary, expenses, checklist and coupons between devices.

A sync token carries everything in one string that can be pasted or
scanned as a QR code. Push and pull exchange the same data through the
sync endpoint, which can be another tripmap server's /api/v1/relay.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newStatusCommand(app),
		newExportCommand(app),
		newImportCommand(app),
		newPushCommand(app),
		newPullCommand(app),
		newURLCommand(app),
		newBackupCommand(app),
	)
	return cmd
}

// Status is what sync status reports.
type Status struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	URL    string `json:"url"`
}

func newStatusCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the sync endpoint and the last sync result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			s := Status{Status: string(tm.SyncStatus()), URL: tm.SyncURL()}
			if err := tm.SyncError(); err != nil {
				s.Error = err.Error()
			}
			return cmdutil.Render(cmd, app, output.Data{}, s)
		},
	}
}

func newExportCommand(app application.Application) *cobra.Command {
	var qrPath string
	var size int
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print a sync token, or write it as a QR code",
		Example: `  tripmap sync export | pbcopy
  tripmap sync export --qr trip.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			token, err := tm.ExportToken(cmd.Context())
			if err != nil {
				return err
			}
			if qrPath == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), token)
				return err
			}

			png, err := export.TokenQR(token, size)
			if err != nil {
				return err
			}
			if err := os.WriteFile(qrPath, png, constants.FilePermissions); err != nil {
				return errors.WrapIO("write", qrPath, err)
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Wrote QR code to %s", qrPath))
		},
	}
	cmd.Flags().StringVar(&qrPath, "qr", "", "write the token as a PNG QR code to this file")
	cmd.Flags().IntVar(&size, "size", export.DefaultQRSize, "QR code size in pixels")
	return cmd
}

func newImportCommand(app application.Application) *cobra.Command {
	var yes, dryRun bool
	cmd := &cobra.Command{
		Use:   "import [token|-]",
		Short: "Replace local data with a sync token",
		Long: `Replace the local itinerary, expenses, checklist and coupons with the
contents of a sync token. The token is read from stdin when omitted or "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := cmdutil.ReadArgOrStdin(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if dryRun {
				p, err := syncer.Decode(token)
				if err != nil {
					return err
				}
				return cmdutil.Render(cmd, app, output.Data{}, p.Preview())
			}

			// The token arrived on stdin, so the prompt cannot read an answer from it.
			if (len(args) == 0 || args[0] == "-") && !yes {
				return errors.NewValidationError("yes", nil, "pass --yes when the token comes from stdin")
			}

			tm, err := app.Trip()
			if err != nil {
				return err
			}
			written, err := tm.ImportToken(cmd.Context(), token, cmdutil.SyncConfirm(cmd, yes))
			if errors.IsCanceled(err) {
				return cmdutil.Notify(cmd, app, alerts.NewInfo("Import canceled, nothing changed"))
			}
			if err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Imported %s", strings.Join(written, ", ")))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only show what the token contains")
	return cmd
}

func newPushCommand(app application.Application) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Upload local data to the sync endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			if !cmdutil.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Replace the shared copy at "+tm.SyncURL()+"?", yes) {
				return cmdutil.Notify(cmd, app, alerts.NewInfo("Push canceled"))
			}
			ack, err := tm.Push(cmd.Context())
			if err != nil {
				return err
			}
			alert := alerts.Successf("Pushed to %s", tm.SyncURL())
			if ack.Timestamp > 0 {
				alert.WithDetails("remote timestamp: " + time.UnixMilli(ack.Timestamp).Local().Format(time.DateTime))
			}
			if ack.Verified {
				alert.WithDetails("verified by reading it back")
			}
			return cmdutil.Notify(cmd, app, alert)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newPullCommand(app application.Application) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Replace local data with the sync endpoint's copy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			outcome, err := tm.Pull(cmd.Context(), cmdutil.SyncConfirm(cmd, yes))
			if err != nil {
				return err
			}
			switch outcome.Result {
			case syncer.PullEmpty:
				return cmdutil.Notify(cmd, app, alerts.NewInfo("Nothing to pull, the endpoint has no data yet"))
			case syncer.PullDeclined:
				return cmdutil.Notify(cmd, app, alerts.NewInfo("Pull canceled, nothing changed"))
			default:
				return cmdutil.Notify(cmd, app, alerts.Successf("Pulled %s", strings.Join(outcome.Written, ", ")))
			}
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newURLCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "url [new-url]",
		Short: "Show or change the sync endpoint",
		Long: `Show or change the saved sync endpoint. An empty string ("") restores the default.
The --sync-url flag overrides the saved endpoint for a single run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), tm.SyncURL())
				return err
			}
			if err := tm.SetSyncURL(cmd.Context(), args[0]); err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Sync endpoint set to %s", tm.SyncURL()))
		},
	}
}

func newBackupCommand(app application.Application) *cobra.Command {
	var out, format string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a copy of every collection before a risky import",
		Example: `  tripmap sync backup --out trip-backup.json
  tripmap sync backup --format yaml > trip.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format == "" {
				format = filepath.Ext(out)
			}
			f, err := save.ParseFormat(format)
			if err != nil {
				return err
			}
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			if out == "" {
				return tm.Backup(cmd.Context(), save.WithFormat(f), save.WithWriter(cmd.OutOrStdout()))
			}
			if err := tm.Backup(cmd.Context(), save.WithFormat(f), save.WithPath(out)); err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Wrote backup to %s", out))
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "", "json or yaml (default from the file extension, else json)")
	return cmd
}
