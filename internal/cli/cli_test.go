package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildParser_RegistersAllCommands(t *testing.T) {
	parser, globals, cmds := buildParser("1.0.0-test")

	require.NotNil(t, parser)
	require.NotNil(t, globals)
	require.NotNil(t, cmds)

	names := []string{"report", "top", "habits", "artist", "serve"}
	for _, name := range names {
		assert.NotNil(t, parser.Find(name), "command %q should be registered", name)
	}
}

func TestBuildParser_CommandsShareGlobals(t *testing.T) {
	_, globals, cmds := buildParser("1.0.0-test")

	assert.Same(t, globals, cmds.Report.globals)
	assert.Same(t, globals, cmds.Top.globals)
	assert.Same(t, globals, cmds.Habits.globals)
	assert.Same(t, globals, cmds.Artist.globals)
	assert.Same(t, globals, cmds.Serve.globals)
}

func TestRunWithArgs_Version(t *testing.T) {
	output := captureOutput(t, func() {
		err := RunWithArgs("9.9.9", []string{"--version"})
		require.NoError(t, err)
	})

	assert.Contains(t, output, "replay 9.9.9")
}

func TestRunWithArgs_UnknownCommand(t *testing.T) {
	err := RunWithArgs("1.0.0-test", []string{"definitely-not-a-command"})
	assert.Error(t, err)
}

func TestRunWithArgs_Help(t *testing.T) {
	// go-flags renders help to stderr and reports ErrHelp, which Run treats
	// as success.
	err := RunWithArgs("1.0.0-test", []string{"--help"})
	assert.NoError(t, err)
}
