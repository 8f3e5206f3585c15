package testsupport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/quickrepo/internal/execshell"
	"github.com/temirov/quickrepo/internal/shared"
)

const (
	affirmativeShortAnswerConstant  = "y"
	affirmativeLongAnswerConstant   = "yes"
	scriptExhaustedTemplateConstant = "%w: %q"
)

// ErrPromptScriptExhausted indicates a prompt was issued after every scripted answer was consumed.
var ErrPromptScriptExhausted = errors.New("prompt script exhausted")

// ScriptedCommandRunner implements execshell.CommandRunner with canned results keyed by rendered command line.
type ScriptedCommandRunner struct {
	Results  map[string]execshell.ExecutionResult
	Errors   map[string]error
	Commands []execshell.ShellCommand
}

// Run records the command and returns the scripted outcome, defaulting to a silent success.
func (runner *ScriptedCommandRunner) Run(_ context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	runner.Commands = append(runner.Commands, command)
	commandLine := execshell.FormatCommandLine(command)
	if runError, exists := runner.Errors[commandLine]; exists {
		return execshell.ExecutionResult{}, runError
	}
	if result, exists := runner.Results[commandLine]; exists {
		return result, nil
	}
	return execshell.ExecutionResult{}, nil
}

// CommandLines renders every recorded command in execution order.
func (runner *ScriptedCommandRunner) CommandLines() []string {
	commandLines := make([]string, 0, len(runner.Commands))
	for _, command := range runner.Commands {
		commandLines = append(commandLines, execshell.FormatCommandLine(command))
	}
	return commandLines
}

// NewShellExecutor builds a real ShellExecutor around the provided runner.
func NewShellExecutor(testInstance testing.TB, runner execshell.CommandRunner, dryRun bool, announcements io.Writer) *execshell.ShellExecutor {
	testInstance.Helper()
	executor, creationError := execshell.NewShellExecutor(
		zap.NewNop(),
		runner,
		execshell.WithDryRun(dryRun),
		execshell.WithDryRunOutput(announcements),
	)
	require.NoError(testInstance, creationError)
	return executor
}

// ScriptedPrompter answers prompts from a fixed queue and records every prompt it receives.
type ScriptedPrompter struct {
	Answers []string
	Prompts []string
}

// Confirm consumes the next answer and accepts y or yes.
func (prompter *ScriptedPrompter) Confirm(prompt string) (bool, error) {
	answer, answerError := prompter.next(prompt)
	if answerError != nil {
		return false, answerError
	}
	normalizedAnswer := strings.ToLower(answer)
	return normalizedAnswer == affirmativeShortAnswerConstant || normalizedAnswer == affirmativeLongAnswerConstant, nil
}

// Ask consumes the next answer.
func (prompter *ScriptedPrompter) Ask(prompt string) (string, error) {
	return prompter.next(prompt)
}

// Choose consumes the next answer and maps it onto an option key when one matches.
func (prompter *ScriptedPrompter) Choose(prompt string, options []shared.PromptOption) (string, error) {
	answer, answerError := prompter.next(prompt)
	if answerError != nil {
		return "", answerError
	}
	for _, option := range options {
		if answer == option.Key {
			return option.Key, nil
		}
	}
	return answer, nil
}

// Remaining reports how many scripted answers have not been consumed.
func (prompter *ScriptedPrompter) Remaining() int {
	return len(prompter.Answers)
}

func (prompter *ScriptedPrompter) next(prompt string) (string, error) {
	prompter.Prompts = append(prompter.Prompts, prompt)
	if len(prompter.Answers) == 0 {
		return "", fmt.Errorf(scriptExhaustedTemplateConstant, ErrPromptScriptExhausted, prompt)
	}
	answer := prompter.Answers[0]
	prompter.Answers = prompter.Answers[1:]
	return strings.TrimSpace(answer), nil
}

// ConfigurationWrite captures a single configuration write.
type ConfigurationWrite struct {
	Key   string
	Value string
}

// MemoryConfigurationProvider stores configuration values in memory.
type MemoryConfigurationProvider struct {
	Values     map[string]string
	Writes     []ConfigurationWrite
	WriteError error
}

// Read returns the stored value and whether it is present and non-empty.
func (provider *MemoryConfigurationProvider) Read(_ context.Context, key string) (string, bool) {
	value, exists := provider.Values[key]
	if !exists || len(value) == 0 {
		return "", false
	}
	return value, true
}

// Write records the write and stores the value unless a write error is configured.
func (provider *MemoryConfigurationProvider) Write(_ context.Context, key string, value string) error {
	provider.Writes = append(provider.Writes, ConfigurationWrite{Key: key, Value: value})
	if provider.WriteError != nil {
		return provider.WriteError
	}
	if provider.Values == nil {
		provider.Values = map[string]string{}
	}
	provider.Values[key] = value
	return nil
}

// RecordingReporter accumulates reported output.
type RecordingReporter struct {
	builder strings.Builder
}

// Printf appends the formatted message.
func (reporter *RecordingReporter) Printf(format string, args ...any) {
	fmt.Fprintf(&reporter.builder, format, args...)
}

// Output returns everything reported so far.
func (reporter *RecordingReporter) Output() string {
	return reporter.builder.String()
}
