// Package cmdutil holds helpers shared by tripmap commands: argument
// parsing, rendering and the y/N confirmation prompt.
package cmdutil

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/tripmap/internal/cmd/alerts"
	"github.com/agentstation/tripmap/internal/cmd/application"
	"github.com/agentstation/tripmap/internal/cmd/output"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/syncer"
)

// DayArg parses a day number argument.
func DayArg(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id < 1 {
		return 0, errors.NewValidationError("day", s, "must be a positive day number")
	}
	return id, nil
}

// Render writes rows as a table, or raw as JSON or YAML, to the command's output.
func Render(cmd *cobra.Command, app application.Application, rows output.Data, raw any) error {
	return output.Write(cmd.OutOrStdout(), app.OutputFormat(), rows, raw)
}

// Notify writes a status line in the configured output format.
func Notify(cmd *cobra.Command, app application.Application, alert *alerts.Alert) error {
	return alerts.NewFormatWriter(cmd.OutOrStdout(), output.Format(app.OutputFormat())).WriteAlert(alert)
}

// Confirm asks question on out and reads a y/N answer from in. Anything but
// "y" or "yes" declines, including end of input. yes skips the prompt.
func Confirm(in io.Reader, out io.Writer, question string, yes bool) bool {
	if yes {
		return true
	}
	fmt.Fprintf(out, "%s (y/N): ", question)
	response, _ := bufio.NewReader(in).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// SyncConfirm shows what a payload would overwrite and asks before applying it.
func SyncConfirm(cmd *cobra.Command, yes bool) syncer.Confirm {
	return func(_ context.Context, p syncer.Preview) (bool, error) {
		out := cmd.ErrOrStderr()
		fmt.Fprintf(out, "Data from %s:\n", p.Timestamp.Local().Format("2006/01/02 15:04"))
		fmt.Fprintf(out, "  %d days, %d stops\n", p.Days, p.Items)
		fmt.Fprintf(out, "  %d expenses, %d coupons, %d packed items\n", p.Expenses, p.Coupons, p.Checked)
		fmt.Fprintf(out, "This overwrites local %s.\n", strings.Join(p.Collections, ", "))
		return Confirm(cmd.InOrStdin(), out, "Overwrite local data?", yes), nil
	}
}

// ReadArgOrStdin returns args[0], or all of in when args is empty or "-".
func ReadArgOrStdin(in io.Reader, args []string) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return strings.TrimSpace(args[0]), nil
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", errors.WrapIO("read", "stdin", err)
	}
	return strings.TrimSpace(string(b)), nil
}
