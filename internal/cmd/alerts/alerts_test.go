package alerts

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/tripmap/internal/cmd/output"
)

func TestAlertString(t *testing.T) {
	assert.Equal(t, "✓ Pushed", NewSuccess("Pushed").String())
	assert.Equal(t, "✗ Pull failed: boom", NewError("Pull failed").WithError(errors.New("boom")).String())
	assert.Equal(t, "! Using default rate 0.21", Warningf("Using default rate %.2f", 0.21).String())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "unknown(9)", Level(9).String())
	assert.Equal(t, "?", Level(9).Icon())
}

func TestFormatWriterText(t *testing.T) {
	var buf bytes.Buffer
	w := NewFormatWriter(&buf, output.FormatTable)

	require.NoError(t, w.WriteAlert(Successf("Added coupon %s", "Bic Camera").WithDetails("id: cp-1")))
	assert.Equal(t, "✓ Added coupon Bic Camera\n   id: cp-1\n", buf.String())
}

func TestFormatWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewFormatWriter(&buf, output.FormatJSON)

	require.NoError(t, w.WriteAlert(NewError("Push failed").WithError(errors.New("status 500"))))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "error", got["level"])
	assert.Equal(t, "Push failed", got["message"])
	assert.Equal(t, "status 500", got["error"])
	assert.NotContains(t, got, "details")
}

func TestFormatWriterYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatWriter(&buf, output.FormatYAML).WriteAlert(NewInfo("Nothing to pull")))
	assert.Contains(t, buf.String(), "level: info")
	assert.Contains(t, buf.String(), "message: Nothing to pull")
}

func TestDiscardWriter(t *testing.T) {
	assert.NoError(t, DiscardWriter.WriteAlert(NewInfo("ignored")))
}
