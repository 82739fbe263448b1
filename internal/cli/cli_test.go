package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSequence(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// execute runs the root command with args and captures stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const validDoc = `
time_plan: {interval: 1s, loops: 2}
channels:
  - {config: DAPI, exposure: 10}
  - {config: FITC, exposure: 20}
`

func TestValidateCommandValid(t *testing.T) {
	path := writeSequence(t, validDoc)

	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "valid")
	assert.Contains(t, out, "axis t: 2")
	assert.Contains(t, out, "axis c: 2")
}

func TestValidateCommandJSONFormat(t *testing.T) {
	path := writeSequence(t, validDoc)

	out, err := execute(t, "--format", "json", "validate", path)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestValidateCommandSchemaError(t *testing.T) {
	path := writeSequence(t, "z_plan: {range: 4}\n")

	out, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "E_SCHEMA")
}

func TestValidateCommandConfigError(t *testing.T) {
	path := writeSequence(t, `
axis_order: ct
time_plan: {interval: 1s, duration: 5s}
channels: [DAPI]
`)

	out, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "DYNAMIC_AXIS_NOT_OUTERMOST")
}

func TestValidateCommandMissingFile(t *testing.T) {
	_, err := execute(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEventsCommandText(t *testing.T) {
	path := writeSequence(t, validDoc)

	out, err := execute(t, "events", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "index=t=0,c=0")
	assert.Contains(t, lines[0], "channel=DAPI")
	assert.Contains(t, lines[0], "t_min=0s")
	assert.Contains(t, lines[3], "index=t=1,c=1")
}

func TestEventsCommandJSONStream(t *testing.T) {
	path := writeSequence(t, validDoc)

	out, err := execute(t, "--format", "json", "events", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		var ev map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &ev))
		assert.Contains(t, ev, "index")
	}
}

func TestEventsCommandLimit(t *testing.T) {
	path := writeSequence(t, validDoc)

	out, err := execute(t, "events", "--limit", "2", path)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestRunAndShowRoundTrip(t *testing.T) {
	path := writeSequence(t, validDoc)
	db := filepath.Join(t.TempDir(), "runs.db")

	out, err := execute(t, "run", "--db", db, path)
	require.NoError(t, err)
	assert.Contains(t, out, "4 events recorded")

	listing, err := execute(t, "show", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, listing, path)

	// Extract the run id from the listing's first column.
	runID := strings.Fields(strings.TrimSpace(listing))[0]

	replay, err := execute(t, "--format", "json", "show", "--db", db, runID)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(replay), "\n"), 4)
}

func TestRunCommandJSONResult(t *testing.T) {
	path := writeSequence(t, validDoc)
	db := filepath.Join(t.TempDir(), "runs.db")

	out, err := execute(t, "--format", "json", "run", "--db", db, path)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestShowCommandUnknownRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	_, err := execute(t, "show", "--db", db, "no-such-run")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestShowCommandEmptyDatabase(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	out, err := execute(t, "show", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "no recorded runs")
}

func TestRootCommandRejectsBadFormat(t *testing.T) {
	path := writeSequence(t, validDoc)
	_, err := execute(t, "--format", "xml", "validate", path)
	require.Error(t, err)
}

func TestExitErrorCodes(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "boom")))

	wrapped := WrapExitError(ExitFailure, "outer", errors.New("inner"))
	assert.Equal(t, ExitFailure, GetExitCode(wrapped))
	assert.Contains(t, wrapped.Error(), "outer")
	assert.Contains(t, wrapped.Error(), "inner")
}
