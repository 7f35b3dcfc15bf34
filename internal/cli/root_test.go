package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "querygrid", cmd.Use)
	assert.Contains(t, cmd.Long, "AND-group")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"equation-to-table", "table-to-equation", "history"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
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

	outputFlag := cmd.PersistentFlags().Lookup("output-dir")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "outputs", outputFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("history-db"))
}

func TestTableToEquationCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	sub, _, err := cmd.Find([]string{"table-to-equation"})
	require.NoError(t, err)

	tests := map[string]string{
		"group-op": "AND",
		"term-op":  "OR",
		"pretty":   "false",
		"max-line": "100",
		"sheet":    "",
		"batch":    "false",
	}
	for name, def := range tests {
		flag := sub.Flags().Lookup(name)
		require.NotNil(t, flag, "flag %s", name)
		assert.Equal(t, def, flag.DefValue, "flag %s", name)
	}
}

func TestEquationToTableCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	sub, _, err := cmd.Find([]string{"equation-to-table"})
	require.NoError(t, err)

	for _, name := range []string{"batch", "bare-terms", "yaml"} {
		flag := sub.Flags().Lookup(name)
		require.NotNil(t, flag, "flag %s", name)
		assert.Equal(t, "false", flag.DefValue)
	}
}

func TestRoot_NoCommandIsError(t *testing.T) {
	workspace(t)

	stdout, _, err := execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "equation-to-table")
}

func TestRoot_Help(t *testing.T) {
	workspace(t)

	for _, args := range [][]string{{"--help"}, {"help"}, {"-h"}} {
		stdout, _, err := execute(args...)
		require.NoError(t, err, "args %v", args)
		assert.Contains(t, stdout, "table-to-equation")
	}
}

func TestRoot_InvalidFormat(t *testing.T) {
	workspace(t)

	_, _, err := execute("--format", "xml", "history", "--history-db", "h.db")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRoot_InvalidConfig(t *testing.T) {
	workspace(t)
	writeFile(t, ".querygrid.yaml", "max_line_length: -1\n")

	_, _, err := execute("table-to-equation", "terms.csv")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeConfig)
}

func TestConversion_MissingArguments(t *testing.T) {
	workspace(t)

	for _, name := range []string{"equation-to-table", "table-to-equation"} {
		_, _, err := execute(name)
		require.Error(t, err, name)
		assert.Equal(t, ExitCommandError, GetExitCode(err), name)
	}

	_, _, err := execute("equation-to-table", "a.txt", "prefix", "extra")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "--batch")
}
