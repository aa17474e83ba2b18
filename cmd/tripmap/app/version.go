package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/tripmap/internal/cmd/output"
)

// VersionInfo is the build information printed by the version command.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	BuiltBy   string `json:"builtBy"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := a.versionInfo()
			switch a.config.Format {
			case "json", "yaml":
				return output.NewFormatter(output.Format(a.config.Format)).Format(cmd.OutOrStdout(), info)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tripmap %s\n", info.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit:   %s\n", info.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:    %s by %s\n", info.Date, info.BuiltBy)
			fmt.Fprintf(cmd.OutOrStdout(), "  go:       %s %s\n", info.GoVersion, info.Platform)
			return nil
		},
	}
}

func (a *App) versionInfo() VersionInfo {
	return VersionInfo{
		Version:   a.version,
		Commit:    a.commit,
		Date:      a.date,
		BuiltBy:   a.builtBy,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}
