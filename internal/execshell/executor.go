package execshell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant        = "shell executor logger not configured"
	commandRunnerNotConfiguredMessageConstant = "shell executor command runner not configured"
	commandFailedTemplateConstant             = "%s exited with code %d%s"
	commandExecutionTemplateConstant          = "%s could not be executed: %v"
	dryRunAnnouncementTemplateConstant        = "[DRY-RUN] Would run: %s\n"
	dryRunReadAnnouncementTemplateConstant    = "[DRY-RUN] Reading: %s\n"
	dryRunSkippedLogMessageConstant           = "command simulated"
	logFieldCommandConstant                   = "command"
	logFieldArgumentsConstant                 = "arguments"
	logFieldExitCodeConstant                  = "exit_code"
	logFieldWorkingDirectoryConstant          = "working_directory"
	shellSafeCharactersConstant               = "-_./:=@+%,~^*"
)

// CommandName identifies an external executable invoked by the executor.
type CommandName string

// Supported executables.
const (
	CommandGit       CommandName = CommandName("git")
	CommandSSHKeygen CommandName = CommandName("ssh-keygen")
	CommandDiff      CommandName = CommandName("diff")
)

// CommandDetails describes how a command should be executed.
type CommandDetails struct {
	Arguments        []string
	WorkingDirectory string
	// ReadOnly commands run even when the executor simulates.
	ReadOnly bool
	// Interactive commands are attached to the terminal while output is still captured.
	Interactive bool
}

// ShellCommand pairs an executable with its execution details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outcome of a finished process.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner executes a single shell command.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// ErrLoggerNotConfigured indicates the executor was built without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates the executor was built without a runner.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)

// CommandFailedError reports a command that exited with a non-zero status.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command.
func (failedError CommandFailedError) Error() string {
	standardErrorSuffix := ""
	if trimmed := strings.TrimSpace(failedError.Result.StandardError); len(trimmed) > 0 {
		standardErrorSuffix = ": " + trimmed
	}
	return fmt.Sprintf(commandFailedTemplateConstant, FormatCommandLine(failedError.Command), failedError.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a command that could not be started or awaited.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (executionError CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionTemplateConstant, FormatCommandLine(executionError.Command), executionError.Cause)
}

// Unwrap exposes the underlying cause.
func (executionError CommandExecutionError) Unwrap() error {
	return executionError.Cause
}

// ShellExecutorOption customizes a ShellExecutor.
type ShellExecutorOption func(executor *ShellExecutor)

// WithDryRun toggles simulation. Simulated commands are announced instead of executed.
func WithDryRun(dryRun bool) ShellExecutorOption {
	return func(executor *ShellExecutor) {
		executor.dryRun = dryRun
	}
}

// WithDryRunOutput sets the writer receiving simulated command announcements.
func WithDryRunOutput(writer io.Writer) ShellExecutorOption {
	return func(executor *ShellExecutor) {
		if writer != nil {
			executor.dryRunOutput = writer
		}
	}
}

// WithCommandEventObserver registers an observer for command lifecycle events.
func WithCommandEventObserver(observer CommandEventObserver) ShellExecutorOption {
	return func(executor *ShellExecutor) {
		if observer != nil {
			executor.observer = observer
		}
	}
}

// ShellExecutor runs external commands with logging, lifecycle notifications, and simulation support.
type ShellExecutor struct {
	logger       *zap.Logger
	runner       CommandRunner
	formatter    CommandMessageFormatter
	observer     CommandEventObserver
	dryRun       bool
	dryRunOutput io.Writer
}

// NewShellExecutor validates dependencies and constructs a ShellExecutor.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, options ...ShellExecutorOption) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	executor := &ShellExecutor{
		logger:       logger,
		runner:       runner,
		formatter:    CommandMessageFormatter{},
		observer:     noopCommandEventObserver{},
		dryRunOutput: os.Stdout,
	}
	for _, option := range options {
		if option != nil {
			option(executor)
		}
	}
	return executor, nil
}

// DryRun reports whether the executor simulates mutating commands.
func (executor *ShellExecutor) DryRun() bool {
	return executor.dryRun
}

// Execute runs the command, or announces it when simulating a command that is not read-only.
// Read-only commands still run while simulating and are announced as reads.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	if executor.dryRun {
		if !command.Details.ReadOnly {
			fmt.Fprintf(executor.dryRunOutput, dryRunAnnouncementTemplateConstant, FormatCommandLine(command))
			executor.observer.CommandSimulated(command)
			executor.logger.Debug(dryRunSkippedLogMessageConstant, executor.commandFields(command)...)
			return ExecutionResult{}, nil
		}
		fmt.Fprintf(executor.dryRunOutput, dryRunReadAnnouncementTemplateConstant, FormatCommandLine(command))
	}

	executor.observer.CommandStarted(command)
	if executor.formatter.shouldLogStartMessage(command) {
		executor.logger.Debug(executor.formatter.BuildStartedMessage(command), executor.commandFields(command)...)
	}

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.observer.CommandExecutionFailed(command, runError)
		executor.logger.Error(executor.formatter.BuildExecutionFailureMessage(command, runError), append(executor.commandFields(command), zap.Error(runError))...)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.observer.CommandCompleted(command, executionResult)
	if executionResult.ExitCode != 0 {
		executor.logger.Warn(
			executor.formatter.BuildFailureMessage(command, executionResult),
			append(executor.commandFields(command), zap.Int(logFieldExitCodeConstant, executionResult.ExitCode))...,
		)
		return executionResult, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logger.Debug(executor.formatter.BuildSuccessMessage(command), executor.commandFields(command)...)
	return executionResult, nil
}

// Output returns the trimmed standard output of the command.
// A non-zero exit still yields whatever was printed; simulated commands yield an empty string.
func (executor *ShellExecutor) Output(executionContext context.Context, command ShellCommand) string {
	executionResult, _ := executor.Execute(executionContext, command)
	return strings.TrimSpace(executionResult.StandardOutput)
}

// Succeeded runs the command attached to the terminal and reports a zero exit status.
// Simulated commands always succeed.
func (executor *ShellExecutor) Succeeded(executionContext context.Context, command ShellCommand) bool {
	command.Details.Interactive = true
	_, executionError := executor.Execute(executionContext, command)
	return executionError == nil
}

// Run executes the command attached to the terminal and returns the failure, if any, for logging.
func (executor *ShellExecutor) Run(executionContext context.Context, command ShellCommand) error {
	command.Details.Interactive = true
	_, executionError := executor.Execute(executionContext, command)
	return executionError
}

func (executor *ShellExecutor) commandFields(command ShellCommand) []zap.Field {
	fields := []zap.Field{
		zap.String(logFieldCommandConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
	}
	if len(command.Details.WorkingDirectory) > 0 {
		fields = append(fields, zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory))
	}
	return fields
}

// FormatCommandLine renders the command as a copy-pasteable shell line, quoting arguments that need it.
func FormatCommandLine(command ShellCommand) string {
	renderedParts := make([]string, 0, len(command.Details.Arguments)+1)
	renderedParts = append(renderedParts, string(command.Name))
	for _, argument := range command.Details.Arguments {
		renderedParts = append(renderedParts, quoteArgument(argument))
	}
	return strings.Join(renderedParts, " ")
}

func quoteArgument(argument string) string {
	if len(argument) == 0 {
		return strconv.Quote(argument)
	}
	for _, character := range argument {
		isAlphanumeric := (character >= 'a' && character <= 'z') || (character >= 'A' && character <= 'Z') || (character >= '0' && character <= '9')
		if isAlphanumeric || strings.ContainsRune(shellSafeCharactersConstant, character) {
			continue
		}
		return strconv.Quote(argument)
	}
	return argument
}
