package app

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/tripmap/cmd/tripmap/cmd/bot"
	"github.com/agentstation/tripmap/cmd/tripmap/cmd/checklist"
	"github.com/agentstation/tripmap/cmd/tripmap/cmd/coupons"
	"github.com/agentstation/tripmap/cmd/tripmap/cmd/days"
	"github.com/agentstation/tripmap/cmd/tripmap/cmd/expenses"
	"github.com/agentstation/tripmap/cmd/tripmap/cmd/export"
	"github.com/agentstation/tripmap/cmd/tripmap/cmd/flights"
	"github.com/agentstation/tripmap/cmd/tripmap/cmd/live"
	"github.com/agentstation/tripmap/cmd/tripmap/cmd/reference"
	"github.com/agentstation/tripmap/cmd/tripmap/cmd/serve"
	"github.com/agentstation/tripmap/cmd/tripmap/cmd/shopping"
	"github.com/agentstation/tripmap/cmd/tripmap/cmd/tripsync"
	"github.com/agentstation/tripmap/internal/cmd/output"
	"github.com/agentstation/tripmap/pkg/logging"
)

// Command group IDs.
const (
	groupTrip   = "trip"
	groupSync   = "sync"
	groupServer = "server"
)

// Execute runs the tripmap CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	if path := configFlag(args); path != "" {
		config, err := LoadConfigFile(path)
		if err != nil {
			return err
		}
		a.config = config
	}

	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tripmap",
		Short:   "Plan, track and sync a group trip",
		Version: a.version,
		Long: `Tripmap keeps a shared trip plan: the day-by-day itinerary, flights,
expenses, packing checklist, coupons and shopping list.

Data lives in a local store (JSON files by default, or SQLite, PostgreSQL,
Redis or MongoDB) and is shared between devices with a sync token or a
remote endpoint such as another tripmap server's relay.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(
		&cobra.Group{ID: groupTrip, Title: "Trip Commands:"},
		&cobra.Group{ID: groupSync, Title: "Sync Commands:"},
		&cobra.Group{ID: groupServer, Title: "Server Commands:"},
	)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.config.ConfigFile, "config", a.config.ConfigFile, "config file (default is $HOME/.tripmap.yaml)")
	flags.StringVar(&a.config.Store, "store", a.config.Store, "store DSN: file path, sqlite://, postgres://, redis://, mongodb:// or memory://")
	flags.StringVar(&a.config.SyncURL, "sync-url", a.config.SyncURL, "sync endpoint for this run (not saved)")
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", a.config.Verbose, "verbose output (shortcut for --log-level=debug)")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", a.config.Quiet, "minimal output (shortcut for --log-level=warn)")
	flags.BoolVar(&a.config.NoColor, "no-color", a.config.NoColor, "disable colored output")
	flags.StringVarP(&a.config.Format, "output", "o", a.config.Format, "output format: table, wide, json, yaml")
	flags.StringVar(&a.config.LogLevel, "log-level", a.config.LogLevel, "log level: trace, debug, info, warn, error (overrides -v/-q)")

	// --format as a hidden alias for --output
	flags.StringVar(&a.config.Format, "format", a.config.Format, "")
	_ = flags.MarkHidden("format")

	rootCmd.SetVersionTemplate("tripmap {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(_ *cobra.Command, _ []string) error {
	if _, err := output.ParseFormat(a.config.Format); err != nil {
		return err
	}
	// Component loggers in the library packages derive from the default.
	logging.Configure(loggingConfig(a.config))
	a.logger = logging.Default()
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	group := func(id string, cmds ...*cobra.Command) {
		for _, c := range cmds {
			c.GroupID = id
			rootCmd.AddCommand(c)
		}
	}

	group(groupTrip,
		days.NewCommand(a),
		days.NewItemCommand(a),
		flights.NewCommand(a),
		expenses.NewCommand(a),
		checklist.NewCommand(a),
		coupons.NewCommand(a),
		shopping.NewCommand(a),
		reference.NewHotelsCommand(a),
		reference.NewTrainsCommand(a),
		live.NewWeatherCommand(a),
		live.NewRateCommand(a),
		live.NewTipsCommand(a),
	)
	group(groupSync,
		tripsync.NewCommand(a),
		export.NewCommand(a),
	)
	group(groupServer,
		serve.NewCommand(a),
		bot.NewCommand(a),
	)

	rootCmd.AddCommand(a.NewVersionCommand(), a.NewManCommand())
}

// configFlag finds --config before cobra parses, so the file can seed flag defaults.
func configFlag(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--":
			return ""
		case arg == "--config" && i+1 < len(args):
			return args[i+1]
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
