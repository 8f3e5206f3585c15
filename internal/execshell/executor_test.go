package execshell_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/quickrepo/internal/execshell"
)

const (
	testExecutionSuccessCaseNameConstant         = "success"
	testExecutionFailureCaseNameConstant         = "failure_exit_code"
	testExecutionRunnerErrorCaseNameConstant     = "runner_error"
	testGitCommandCaseNameConstant               = "git"
	testSSHKeygenCommandCaseNameConstant         = "ssh_keygen"
	testDiffCommandCaseNameConstant              = "diff"
	testCommandArgumentConstant                  = "--version"
	testWorkingDirectoryConstant                 = "."
	testStandardErrorOutputConstant              = "failure"
	testLoggerInitializationCaseNameConstant     = "logger_validation"
	testRunnerInitializationCaseNameConstant     = "runner_validation"
	testSuccessfulInitializationCaseNameConstant = "successful_initialization"
	testCommitMessageConstant                    = "Initial commit"
	testDryRunCommitAnnouncementConstant         = "[DRY-RUN] Would run: git commit -m \"Initial commit\"\n"
)

type recordingCommandRunner struct {
	executionResult  execshell.ExecutionResult
	executionError   error
	recordedCommands []execshell.ShellCommand
}

func (runner *recordingCommandRunner) Run(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.recordedCommands = append(runner.recordedCommands, command)
	return runner.executionResult, runner.executionError
}

type recordingEventObserver struct {
	started   int
	completed int
	failed    int
	simulated []string
}

func (eventObserver *recordingEventObserver) CommandStarted(execshell.ShellCommand) {
	eventObserver.started++
}

func (eventObserver *recordingEventObserver) CommandCompleted(execshell.ShellCommand, execshell.ExecutionResult) {
	eventObserver.completed++
}

func (eventObserver *recordingEventObserver) CommandExecutionFailed(execshell.ShellCommand, error) {
	eventObserver.failed++
}

func (eventObserver *recordingEventObserver) CommandSimulated(command execshell.ShellCommand) {
	eventObserver.simulated = append(eventObserver.simulated, execshell.FormatCommandLine(command))
}

func TestShellExecutorInitializationValidation(testInstance *testing.T) {
	testCases := []struct {
		name          string
		logger        *zap.Logger
		runner        execshell.CommandRunner
		expectError   error
		expectSuccess bool
	}{
		{
			name:        testLoggerInitializationCaseNameConstant,
			logger:      nil,
			runner:      &recordingCommandRunner{},
			expectError: execshell.ErrLoggerNotConfigured,
		},
		{
			name:        testRunnerInitializationCaseNameConstant,
			logger:      zap.NewNop(),
			runner:      nil,
			expectError: execshell.ErrCommandRunnerNotConfigured,
		},
		{
			name:          testSuccessfulInitializationCaseNameConstant,
			logger:        zap.NewNop(),
			runner:        &recordingCommandRunner{},
			expectSuccess: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor, creationError := execshell.NewShellExecutor(testCase.logger, testCase.runner)
			if testCase.expectSuccess {
				require.NoError(testInstance, creationError)
				require.NotNil(testInstance, executor)
				require.False(testInstance, executor.DryRun())
			} else {
				require.Error(testInstance, creationError)
				require.ErrorIs(testInstance, creationError, testCase.expectError)
			}
		})
	}
}

func TestShellExecutorExecuteBehavior(testInstance *testing.T) {
	testCases := []struct {
		name             string
		runnerResult     execshell.ExecutionResult
		runnerError      error
		expectErrorType  any
		expectedLogCount int
	}{
		{
			name: testExecutionSuccessCaseNameConstant,
			runnerResult: execshell.ExecutionResult{
				StandardOutput: "ok",
				ExitCode:       0,
			},
			expectedLogCount: 2,
		},
		{
			name: testExecutionFailureCaseNameConstant,
			runnerResult: execshell.ExecutionResult{
				StandardError: testStandardErrorOutputConstant,
				ExitCode:      1,
			},
			expectErrorType:  execshell.CommandFailedError{},
			expectedLogCount: 2,
		},
		{
			name:             testExecutionRunnerErrorCaseNameConstant,
			runnerError:      errors.New("runner failure"),
			expectErrorType:  execshell.CommandExecutionError{},
			expectedLogCount: 2,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observerLogs := observer.New(zap.DebugLevel)
			logger := zap.New(observerCore)

			recordingRunner := &recordingCommandRunner{
				executionResult: testCase.runnerResult,
				executionError:  testCase.runnerError,
			}
			eventObserver := &recordingEventObserver{}

			shellExecutor, creationError := execshell.NewShellExecutor(logger, recordingRunner, execshell.WithCommandEventObserver(eventObserver))
			require.NoError(testInstance, creationError)

			commandDetails := execshell.CommandDetails{Arguments: []string{testCommandArgumentConstant}, WorkingDirectory: testWorkingDirectoryConstant}
			executionResult, executionError := shellExecutor.Execute(context.Background(), execshell.ShellCommand{Name: execshell.CommandGit, Details: commandDetails})

			if testCase.expectErrorType != nil {
				require.Error(testInstance, executionError)
				require.IsType(testInstance, testCase.expectErrorType, executionError)
				require.Empty(testInstance, executionResult.StandardOutput)
			} else {
				require.NoError(testInstance, executionError)
				require.Equal(testInstance, testCase.runnerResult.StandardOutput, executionResult.StandardOutput)
			}

			require.Len(testInstance, observerLogs.All(), testCase.expectedLogCount)
			require.Equal(testInstance, 1, eventObserver.started)
			require.Equal(testInstance, 1, eventObserver.completed+eventObserver.failed)
		})
	}
}

func TestShellExecutorForwardsCommandToRunner(testInstance *testing.T) {
	testCases := []struct {
		name        string
		commandName execshell.CommandName
		details     execshell.CommandDetails
	}{
		{
			name:        testGitCommandCaseNameConstant,
			commandName: execshell.CommandGit,
			details:     execshell.CommandDetails{Arguments: []string{"init"}, WorkingDirectory: testWorkingDirectoryConstant},
		},
		{
			name:        testSSHKeygenCommandCaseNameConstant,
			commandName: execshell.CommandSSHKeygen,
			details:     execshell.CommandDetails{Arguments: []string{"-t", "ed25519"}, Interactive: true},
		},
		{
			name:        testDiffCommandCaseNameConstant,
			commandName: execshell.CommandDiff,
			details:     execshell.CommandDetails{Arguments: []string{"-rq", "/tmp/scratch", "."}, WorkingDirectory: testWorkingDirectoryConstant},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			recordingRunner := &recordingCommandRunner{}
			executor, creationError := execshell.NewShellExecutor(zap.NewNop(), recordingRunner)
			require.NoError(testInstance, creationError)

			_, executionError := executor.Execute(context.Background(), execshell.ShellCommand{Name: testCase.commandName, Details: testCase.details})
			require.NoError(testInstance, executionError)
			require.Equal(testInstance, []execshell.ShellCommand{{Name: testCase.commandName, Details: testCase.details}}, recordingRunner.recordedCommands)
		})
	}
}

func TestShellExecutorDryRunAnnouncesMutatingCommands(testInstance *testing.T) {
	recordingRunner := &recordingCommandRunner{executionResult: execshell.ExecutionResult{StandardOutput: "unexpected"}}
	announcementBuffer := &bytes.Buffer{}
	eventObserver := &recordingEventObserver{}

	executor, creationError := execshell.NewShellExecutor(
		zap.NewNop(),
		recordingRunner,
		execshell.WithDryRun(true),
		execshell.WithDryRunOutput(announcementBuffer),
		execshell.WithCommandEventObserver(eventObserver),
	)
	require.NoError(testInstance, creationError)
	require.True(testInstance, executor.DryRun())

	commitCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"commit", "-m", testCommitMessageConstant}},
	}

	require.NoError(testInstance, executor.Run(context.Background(), commitCommand))
	require.True(testInstance, executor.Succeeded(context.Background(), commitCommand))
	require.Empty(testInstance, executor.Output(context.Background(), commitCommand))

	require.Empty(testInstance, recordingRunner.recordedCommands)
	require.Equal(testInstance, testDryRunCommitAnnouncementConstant+testDryRunCommitAnnouncementConstant+testDryRunCommitAnnouncementConstant, announcementBuffer.String())
	require.Len(testInstance, eventObserver.simulated, 3)
	require.Zero(testInstance, eventObserver.started)
}

func TestShellExecutorDryRunExecutesReadOnlyCommands(testInstance *testing.T) {
	recordingRunner := &recordingCommandRunner{executionResult: execshell.ExecutionResult{StandardOutput: "alice\n"}}
	announcementBuffer := &bytes.Buffer{}

	executor, creationError := execshell.NewShellExecutor(
		zap.NewNop(),
		recordingRunner,
		execshell.WithDryRun(true),
		execshell.WithDryRunOutput(announcementBuffer),
	)
	require.NoError(testInstance, creationError)

	readCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"config", "--global", "user.name"}, ReadOnly: true},
	}

	require.Equal(testInstance, "alice", executor.Output(context.Background(), readCommand))
	require.Len(testInstance, recordingRunner.recordedCommands, 1)
	require.Equal(testInstance, "[DRY-RUN] Reading: git config --global user.name\n", announcementBuffer.String())
}

func TestShellExecutorEntryPointsReportOutcome(testInstance *testing.T) {
	testCases := []struct {
		name              string
		runnerResult      execshell.ExecutionResult
		runnerError       error
		expectedOutput    string
		expectedSucceeded bool
	}{
		{
			name:              "zero_exit",
			runnerResult:      execshell.ExecutionResult{StandardOutput: "  main\n"},
			expectedOutput:    "main",
			expectedSucceeded: true,
		},
		{
			name:              "non_zero_exit_keeps_output",
			runnerResult:      execshell.ExecutionResult{StandardOutput: "partial\n", ExitCode: 1},
			expectedOutput:    "partial",
			expectedSucceeded: false,
		},
		{
			name:              "runner_error",
			runnerError:       errors.New("executable file not found"),
			expectedOutput:    "",
			expectedSucceeded: false,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			recordingRunner := &recordingCommandRunner{executionResult: testCase.runnerResult, executionError: testCase.runnerError}
			executor, creationError := execshell.NewShellExecutor(zap.NewNop(), recordingRunner)
			require.NoError(testInstance, creationError)

			command := execshell.ShellCommand{Name: execshell.CommandGit, Details: execshell.CommandDetails{Arguments: []string{"push", "-u", "origin", "main"}}}

			require.Equal(testInstance, testCase.expectedOutput, executor.Output(context.Background(), command))
			require.Equal(testInstance, testCase.expectedSucceeded, executor.Succeeded(context.Background(), command))
			runError := executor.Run(context.Background(), command)
			if testCase.expectedSucceeded {
				require.NoError(testInstance, runError)
			} else {
				require.Error(testInstance, runError)
			}

			require.Len(testInstance, recordingRunner.recordedCommands, 3)
			require.False(testInstance, recordingRunner.recordedCommands[0].Details.Interactive)
			require.True(testInstance, recordingRunner.recordedCommands[1].Details.Interactive)
			require.True(testInstance, recordingRunner.recordedCommands[2].Details.Interactive)
		})
	}
}

func TestFormatCommandLineQuotesArgumentsWithWhitespace(testInstance *testing.T) {
	command := execshell.ShellCommand{
		Name:    execshell.CommandSSHKeygen,
		Details: execshell.CommandDetails{Arguments: []string{"-t", "ed25519", "-C", "alice@example.com"}},
	}
	require.Equal(testInstance, "ssh-keygen -t ed25519 -C alice@example.com", execshell.FormatCommandLine(command))

	command = execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"config", "--global", "user.name", "Alice Doe"}},
	}
	require.Equal(testInstance, "git config --global user.name \"Alice Doe\"", execshell.FormatCommandLine(command))
}
