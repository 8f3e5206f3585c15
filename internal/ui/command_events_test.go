package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/quickrepo/internal/execshell"
	"github.com/temirov/quickrepo/internal/ui"
)

const (
	testWorkingDirectoryConstant            = "/tmp/project"
	testRemoteReferenceConstant             = "git@github.com:alice/demo.git"
	testExecutionFailureReasonConstant      = "execution failed"
	testStandardErrorMessageConstant        = "error: remote origin already exists."
	testStartMessageExpectationConstant     = "Adding origin remote " + testRemoteReferenceConstant + " in " + testWorkingDirectoryConstant
	testSuccessMessageExpectationConstant   = "Added origin remote " + testRemoteReferenceConstant + " in " + testWorkingDirectoryConstant
	testFailureMessageExpectationConstant   = "Failed to add origin remote " + testRemoteReferenceConstant + " in " + testWorkingDirectoryConstant + " (exit code 3: " + testStandardErrorMessageConstant + ")"
	testSimulatedMessageExpectationConstant = "Dry run skipped: " + testStartMessageExpectationConstant
	testExecutionFailureMessageExpectation  = "Unable to add origin remote " + testRemoteReferenceConstant + " in " + testWorkingDirectoryConstant + ": " + testExecutionFailureReasonConstant
)

func TestConsoleCommandEventLoggerEmitsMessages(testInstance *testing.T) {
	command := execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments:        []string{"remote", "add", "origin", testRemoteReferenceConstant},
			WorkingDirectory: testWorkingDirectoryConstant,
		},
	}

	testCases := []struct {
		name            string
		invoke          func(logger *ui.ConsoleCommandEventLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "command_started",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandStarted(command)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testStartMessageExpectationConstant,
		},
		{
			name: "command_completed_success",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testSuccessMessageExpectationConstant,
		},
		{
			name: "command_completed_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 3, StandardError: testStandardErrorMessageConstant})
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: testFailureMessageExpectationConstant,
		},
		{
			name: "command_execution_failure",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandExecutionFailed(command, errors.New(testExecutionFailureReasonConstant))
			},
			expectedLevel:   zapcore.ErrorLevel,
			expectedMessage: testExecutionFailureMessageExpectation,
		},
		{
			name: "command_simulated",
			invoke: func(logger *ui.ConsoleCommandEventLogger) {
				logger.CommandSimulated(command)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testSimulatedMessageExpectationConstant,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			consoleLogger := zap.New(observerCore)
			eventLogger := ui.NewConsoleCommandEventLogger(consoleLogger)

			testCase.invoke(eventLogger)

			entries := observedLogs.All()
			require.Len(testInstance, entries, 1)
			require.Equal(testInstance, testCase.expectedLevel, entries[0].Level)
			require.Equal(testInstance, testCase.expectedMessage, entries[0].Message)
		})
	}
}

func TestNilConsoleCommandEventLoggerIgnoresEvents(testInstance *testing.T) {
	var eventLogger *ui.ConsoleCommandEventLogger
	require.NotPanics(testInstance, func() {
		eventLogger.CommandStarted(execshell.ShellCommand{Name: execshell.CommandGit})
		eventLogger.CommandCompleted(execshell.ShellCommand{Name: execshell.CommandGit}, execshell.ExecutionResult{})
		eventLogger.CommandExecutionFailed(execshell.ShellCommand{Name: execshell.CommandGit}, errors.New("boom"))
		eventLogger.CommandSimulated(execshell.ShellCommand{Name: execshell.CommandGit})
	})
}
