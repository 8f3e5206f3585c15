package execshell_test

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/quickrepo/internal/execshell"
)

func TestOSCommandRunnerCapturesAndStreamsInteractiveOutput(testInstance *testing.T) {
	if _, lookupError := exec.LookPath("echo"); lookupError != nil {
		testInstance.Skip("echo is not available")
	}

	terminalOutput := &bytes.Buffer{}
	runner := &execshell.OSCommandRunner{TerminalOutput: terminalOutput, TerminalError: &bytes.Buffer{}}

	capturedResult, capturedError := runner.Run(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandName("echo"),
		Details: execshell.CommandDetails{Arguments: []string{"captured"}},
	})
	require.NoError(testInstance, capturedError)
	require.Equal(testInstance, "captured\n", capturedResult.StandardOutput)
	require.Empty(testInstance, terminalOutput.String())

	streamedResult, streamedError := runner.Run(context.Background(), execshell.ShellCommand{
		Name:    execshell.CommandName("echo"),
		Details: execshell.CommandDetails{Arguments: []string{"streamed"}, Interactive: true},
	})
	require.NoError(testInstance, streamedError)
	require.Equal(testInstance, "streamed\n", streamedResult.StandardOutput)
	require.Equal(testInstance, "streamed\n", terminalOutput.String())
}

func TestOSCommandRunnerReportsMissingExecutable(testInstance *testing.T) {
	runner := execshell.NewOSCommandRunner()

	_, runError := runner.Run(context.Background(), execshell.ShellCommand{Name: execshell.CommandName("quickrepo-missing-executable")})
	require.Error(testInstance, runError)
}
