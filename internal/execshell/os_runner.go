package execshell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// OSCommandRunner executes commands using the operating system facilities.
// Interactive commands share the runner's terminal streams.
type OSCommandRunner struct {
	TerminalInput  io.Reader
	TerminalOutput io.Writer
	TerminalError  io.Writer
}

// NewOSCommandRunner constructs a runner backed by os/exec and the process standard streams.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{TerminalInput: os.Stdin, TerminalOutput: os.Stdout, TerminalError: os.Stderr}
}

// Run executes the supplied command using os/exec.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	commandArguments := append([]string{}, command.Details.Arguments...)
	executable := exec.CommandContext(executionContext, string(command.Name), commandArguments...)

	if len(command.Details.WorkingDirectory) > 0 {
		executable.Dir = command.Details.WorkingDirectory
	}

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	if command.Details.Interactive {
		if runner.TerminalOutput != nil {
			executable.Stdout = io.MultiWriter(&standardOutputBuffer, runner.TerminalOutput)
		}
		if runner.TerminalError != nil {
			executable.Stderr = io.MultiWriter(&standardErrorBuffer, runner.TerminalError)
		}
		if runner.TerminalInput != nil {
			executable.Stdin = runner.TerminalInput
		}
	}

	runError := executable.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return ExecutionResult{
				StandardOutput: standardOutputBuffer.String(),
				StandardError:  standardErrorBuffer.String(),
				ExitCode:       exitError.ExitCode(),
			}, nil
		}
		return ExecutionResult{}, runError
	}

	return ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
		ExitCode:       0,
	}, nil
}
