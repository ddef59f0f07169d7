package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/occfilter/internal/testutil"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "occfilter", cmd.Use)
	assert.Contains(t, cmd.Long, "OCCFILTER_")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"validate"},
		{"params"},
		{"parse", "date"},
		{"parse", "geometry"},
		{"parse", "value"},
		{"request", "put"},
		{"request", "list"},
		{"request", "find"},
		{"test"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	depthFlag := cmd.PersistentFlags().Lookup("max-depth")
	require.NotNil(t, depthFlag)
	assert.Equal(t, "64", depthFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestRequestCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	listCmd, _, err := cmd.Find([]string{"request", "list"})
	require.NoError(t, err)

	assert.NotNil(t, listCmd.InheritedFlags().Lookup("db"))
	limitFlag := listCmd.Flags().Lookup("limit")
	require.NotNil(t, limitFlag)
	assert.Equal(t, "20", limitFlag.DefValue)
}

func TestRootRejectsInvalidFormat(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"params", "--format", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "format")
}

func TestRootAppliesConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	testutil.WriteFile(t, dir, "occfilter.yaml", "format: json\nmax_depth: 2\n")
	doc := testutil.WriteFile(t, dir, "deep.json",
		`{"type":"not","predicate":{"type":"not","predicate":{"type":"isNull","parameter":"YEAR"}}}`)

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"validate", doc})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MALFORMED_PREDICATE", resp.Error.Code)
}

func TestRootFlagOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	testutil.WriteFile(t, dir, "occfilter.yaml", "format: json\nmax_depth: 2\n")
	doc := testutil.WriteFile(t, dir, "deep.json",
		`{"type":"not","predicate":{"type":"not","predicate":{"type":"isNull","parameter":"YEAR"}}}`)

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"validate", doc, "--max-depth", "0", "--format", "text"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "✓ Predicate valid")
	assert.Contains(t, buf.String(), "Depth:")
}
