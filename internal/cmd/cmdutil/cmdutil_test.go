package cmdutil

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/syncer"
)

func TestDayArg(t *testing.T) {
	id, err := DayArg(" 3 ")
	require.NoError(t, err)
	assert.Equal(t, 3, id)

	for _, bad := range []string{"0", "-1", "two", ""} {
		_, err := DayArg(bad)
		assert.True(t, errors.IsValidationError(err), bad)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		yes   bool
		want  bool
	}{
		{name: "y", input: "y\n", want: true},
		{name: "yes uppercase", input: "YES\n", want: true},
		{name: "no", input: "n\n", want: false},
		{name: "empty line", input: "\n", want: false},
		{name: "end of input", input: "", want: false},
		{name: "flag skips prompt", input: "", yes: true, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := Confirm(strings.NewReader(tt.input), &out, "Overwrite?", tt.yes)
			assert.Equal(t, tt.want, got)
			if tt.yes {
				assert.Empty(t, out.String())
			} else {
				assert.Equal(t, "Overwrite? (y/N): ", out.String())
			}
		})
	}
}

func TestSyncConfirmShowsPreview(t *testing.T) {
	cmd := &cobra.Command{}
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader("y\n"))

	ok, err := SyncConfirm(cmd, false)(t.Context(), syncer.Preview{
		Timestamp:   time.Date(2026, 2, 27, 12, 0, 0, 0, time.UTC),
		Days:        6,
		Items:       31,
		Expenses:    4,
		Collections: []string{"itinerary", "expenses"},
	})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, stderr.String(), "6 days, 31 stops")
	assert.Contains(t, stderr.String(), "itinerary, expenses")
}

func TestReadArgOrStdin(t *testing.T) {
	got, err := ReadArgOrStdin(strings.NewReader("ignored"), []string{" tok "})
	require.NoError(t, err)
	assert.Equal(t, "tok", got)

	got, err = ReadArgOrStdin(strings.NewReader("from-stdin\n"), []string{"-"})
	require.NoError(t, err)
	assert.Equal(t, "from-stdin", got)

	got, err = ReadArgOrStdin(strings.NewReader("piped\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "piped", got)
}
