package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "checkoutfn", cmd.Use)
	assert.Contains(t, cmd.Long, "checkout customization functions")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"run", "config", "functions", "test", "replay", "trace", "stats"}

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
}

func TestInvalidFormat(t *testing.T) {
	_, err := executeCommand(t, "", "functions", "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
}

func TestDatabaseFlagDefaultsToEnv(t *testing.T) {
	t.Setenv(DatabaseEnv, "/tmp/from-env.db")

	cmd := NewRootCommand()
	for _, name := range []string{"run", "replay", "trace", "stats"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		dbFlag := sub.Flags().Lookup("db")
		require.NotNil(t, dbFlag, name)
		assert.Equal(t, "/tmp/from-env.db", dbFlag.DefValue, name)
	}
}

func TestFunctionsCommand(t *testing.T) {
	out, err := executeCommand(t, "", "functions")
	require.NoError(t, err)
	assert.Contains(t, out, "delivery")
	assert.Contains(t, out, "discount")
	assert.Contains(t, out, "payment")
	assert.Less(t, strings.Index(out, "delivery"), strings.Index(out, "payment"))
	assert.Contains(t, out, "method,rate")
	assert.Contains(t, out, "rate,zip")
}

func TestFunctionsCommandJSON(t *testing.T) {
	out, err := executeCommand(t, "", "functions", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"status":"ok"`)
	assert.Contains(t, out, `{"name":"discount","description":`)
	assert.Contains(t, out, `"config_fields":["method","rate"]`)
	assert.Contains(t, out, `"config_fields":[]`)
}
