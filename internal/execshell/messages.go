package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitInitSubcommandNameConstant         = "init"
	gitConfigSubcommandNameConstant       = "config"
	gitGlobalFlagConstant                 = "--global"
	gitRemoteSubcommandNameConstant       = "remote"
	gitRemoteAddSubcommandNameConstant    = "add"
	gitRemoteSetURLSubcommandNameConstant = "set-url"
	gitCloneSubcommandNameConstant        = "clone"
	gitPullSubcommandNameConstant         = "pull"
	gitAddSubcommandNameConstant          = "add"
	gitCommitSubcommandNameConstant       = "commit"
	gitMessageFlagConstant                = "-m"
	gitBranchSubcommandNameConstant       = "branch"
	gitBranchMoveForceFlagConstant        = "-M"
	gitPushSubcommandNameConstant         = "push"
	gitForceFlagConstant                  = "--force"
	gitConfigReadArgumentCountConstant    = 3
)

const (
	gitInitStartTemplateConstant                    = "Initializing repository in %s"
	gitInitSuccessTemplateConstant                  = "Initialized repository in %s"
	gitInitFailureTemplateConstant                  = "Failed to initialize repository in %s (exit code %d%s)"
	gitInitExecutionFailureTemplateConstant         = "Unable to initialize repository in %s: %s"
	gitConfigReadStartTemplateConstant              = "Reading git configuration %s"
	gitConfigReadSuccessTemplateConstant            = "Read git configuration %s"
	gitConfigReadFailureTemplateConstant            = "Git configuration %s is not set (exit code %d%s)"
	gitConfigReadExecutionFailureTemplateConstant   = "Unable to read git configuration %s: %s"
	gitConfigWriteStartTemplateConstant             = "Setting git configuration %s to %q"
	gitConfigWriteSuccessTemplateConstant           = "Set git configuration %s to %q"
	gitConfigWriteFailureTemplateConstant           = "Failed to set git configuration %s to %q (exit code %d%s)"
	gitConfigWriteExecutionFailureTemplateConstant  = "Unable to set git configuration %s to %q: %s"
	gitRemoteAddStartTemplateConstant               = "Adding %s remote %s in %s"
	gitRemoteAddSuccessTemplateConstant             = "Added %s remote %s in %s"
	gitRemoteAddFailureTemplateConstant             = "Failed to add %s remote %s in %s (exit code %d%s)"
	gitRemoteAddExecutionFailureTemplateConstant    = "Unable to add %s remote %s in %s: %s"
	gitRemoteUpdateStartTemplateConstant            = "Updating %s remote for %s to %s"
	gitRemoteUpdateSuccessTemplateConstant          = "%s remote for %s now points to %s"
	gitRemoteUpdateFailureTemplateConstant          = "Failed to update %s remote for %s to %s (exit code %d%s)"
	gitRemoteUpdateExecutionFailureTemplateConstant = "Unable to update %s remote for %s to %s: %s"
	gitCloneStartTemplateConstant                   = "Cloning %s into %s"
	gitCloneSuccessTemplateConstant                 = "Cloned %s into %s"
	gitCloneFailureTemplateConstant                 = "Failed to clone %s into %s (exit code %d%s)"
	gitCloneExecutionFailureTemplateConstant        = "Unable to clone %s into %s: %s"
	gitPullStartTemplateConstant                    = "Pulling %s from %s into %s"
	gitPullSuccessTemplateConstant                  = "Pulled %s from %s into %s"
	gitPullFailureTemplateConstant                  = "Failed to pull %s from %s into %s (exit code %d%s)"
	gitPullExecutionFailureTemplateConstant         = "Unable to pull %s from %s into %s: %s"
	gitAddStartTemplateConstant                     = "Staging %s in %s"
	gitAddSuccessTemplateConstant                   = "Staged %s in %s"
	gitAddFailureTemplateConstant                   = "Failed to stage %s in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant          = "Unable to stage %s in %s: %s"
	gitCommitStartTemplateConstant                  = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant                = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant                = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant       = "Unable to create commit in %s with message %q: %s"
	gitBranchRenameStartTemplateConstant            = "Renaming current branch in %s to %s"
	gitBranchRenameSuccessTemplateConstant          = "Renamed current branch in %s to %s"
	gitBranchRenameFailureTemplateConstant          = "Failed to rename current branch in %s to %s (exit code %d%s)"
	gitBranchRenameExecutionFailureTemplateConstant = "Unable to rename current branch in %s to %s: %s"
	gitPushStartTemplateConstant                    = "Pushing %s to %s from %s"
	gitForcePushStartTemplateConstant               = "Force pushing %s to %s from %s"
	gitPushSuccessTemplateConstant                  = "Pushed %s to %s from %s"
	gitPushFailureTemplateConstant                  = "Failed to push %s to %s from %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant         = "Unable to push %s to %s from %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

// configuration lookups run several times per session and only add noise at start
func (formatter CommandMessageFormatter) shouldLogStartMessage(command ShellCommand) bool {
	if command.Name != CommandGit {
		return true
	}
	return !formatter.isGitConfigRead(command.Details.Arguments)
}

func (formatter CommandMessageFormatter) isGitConfigRead(arguments []string) bool {
	if len(arguments) != gitConfigReadArgumentCountConstant {
		return false
	}
	return strings.TrimSpace(arguments[0]) == gitConfigSubcommandNameConstant && strings.TrimSpace(arguments[1]) == gitGlobalFlagConstant
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitInitSubcommandNameConstant:
		return formatter.describeGitInitMessage(command, result, failure, stage)
	case gitConfigSubcommandNameConstant:
		return formatter.describeGitConfigMessage(command, result, failure, stage)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
	case gitCloneSubcommandNameConstant:
		return formatter.describeGitCloneMessage(command, result, failure, stage)
	case gitPullSubcommandNameConstant:
		return formatter.describeGitPullMessage(command, result, failure, stage)
	case gitAddSubcommandNameConstant:
		return formatter.describeGitAddMessage(command, result, failure, stage)
	case gitCommitSubcommandNameConstant:
		return formatter.describeGitCommitMessage(command, result, failure, stage)
	case gitBranchSubcommandNameConstant:
		return formatter.describeGitBranchMessage(command, result, failure, stage)
	case gitPushSubcommandNameConstant:
		return formatter.describeGitPushMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitInitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitInitStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitInitSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitInitFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitInitExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitConfigMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := formatter.withoutFlags(command.Details.Arguments[1:])
	configurationKey := formatter.ensureValue(formatter.argumentAtIndex(arguments, 0))

	if len(arguments) < 2 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitConfigReadStartTemplateConstant, configurationKey)
		case messageStageSuccess:
			return fmt.Sprintf(gitConfigReadSuccessTemplateConstant, configurationKey)
		case messageStageFailure:
			return fmt.Sprintf(gitConfigReadFailureTemplateConstant, configurationKey, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitConfigReadExecutionFailureTemplateConstant, configurationKey, formatter.describeFailure(failure))
		}
	}

	configurationValue := formatter.argumentAtIndex(arguments, 1)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitConfigWriteStartTemplateConstant, configurationKey, configurationValue)
	case messageStageSuccess:
		return fmt.Sprintf(gitConfigWriteSuccessTemplateConstant, configurationKey, configurationValue)
	case messageStageFailure:
		return fmt.Sprintf(gitConfigWriteFailureTemplateConstant, configurationKey, configurationValue, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitConfigWriteExecutionFailureTemplateConstant, configurationKey, configurationValue, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
	remoteURL := formatter.ensureValue(formatter.argumentAtIndex(arguments, 3))

	switch strings.TrimSpace(formatter.argumentAtIndex(arguments, 1)) {
	case gitRemoteAddSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteAddStartTemplateConstant, remoteName, remoteURL, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteAddSuccessTemplateConstant, remoteName, remoteURL, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteAddFailureTemplateConstant, remoteName, remoteURL, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRemoteAddExecutionFailureTemplateConstant, remoteName, remoteURL, workingDirectory, formatter.describeFailure(failure))
		}
	case gitRemoteSetURLSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteUpdateStartTemplateConstant, remoteName, workingDirectory, remoteURL)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteUpdateSuccessTemplateConstant, remoteName, workingDirectory, remoteURL)
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteUpdateFailureTemplateConstant, remoteName, workingDirectory, remoteURL, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRemoteUpdateExecutionFailureTemplateConstant, remoteName, workingDirectory, remoteURL, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitCloneMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := formatter.withoutFlags(command.Details.Arguments[1:])
	source := formatter.ensureValue(formatter.argumentAtIndex(arguments, 0))
	destination := formatter.ensureValue(formatter.argumentAtIndex(arguments, 1))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCloneStartTemplateConstant, source, destination)
	case messageStageSuccess:
		return fmt.Sprintf(gitCloneSuccessTemplateConstant, source, destination)
	case messageStageFailure:
		return fmt.Sprintf(gitCloneFailureTemplateConstant, source, destination, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCloneExecutionFailureTemplateConstant, source, destination, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitPullMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := formatter.withoutFlags(command.Details.Arguments[1:])
	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 0))
	branchName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 1))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitPullStartTemplateConstant, branchName, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitPullSuccessTemplateConstant, branchName, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitPullFailureTemplateConstant, branchName, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitPullExecutionFailureTemplateConstant, branchName, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitAddMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	paths := strings.Join(formatter.withoutFlags(command.Details.Arguments[1:]), ", ")
	paths = formatter.ensureValue(paths)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitAddStartTemplateConstant, paths, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitAddSuccessTemplateConstant, paths, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitAddFailureTemplateConstant, paths, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitAddExecutionFailureTemplateConstant, paths, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCommitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	commitMessage := formatter.extractCommitMessage(command.Details.Arguments)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCommitStartTemplateConstant, workingDirectory, commitMessage)
	case messageStageSuccess:
		return fmt.Sprintf(gitCommitSuccessTemplateConstant, workingDirectory, commitMessage)
	case messageStageFailure:
		return fmt.Sprintf(gitCommitFailureTemplateConstant, workingDirectory, commitMessage, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCommitExecutionFailureTemplateConstant, workingDirectory, commitMessage, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitBranchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if !containsArgument(arguments, gitBranchMoveForceFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	branchName := formatter.ensureValue(formatter.extractLastNonFlagArgument(arguments[1:]))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitBranchRenameStartTemplateConstant, workingDirectory, branchName)
	case messageStageSuccess:
		return fmt.Sprintf(gitBranchRenameSuccessTemplateConstant, workingDirectory, branchName)
	case messageStageFailure:
		return fmt.Sprintf(gitBranchRenameFailureTemplateConstant, workingDirectory, branchName, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitBranchRenameExecutionFailureTemplateConstant, workingDirectory, branchName, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitPushMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	nonFlagArguments := formatter.withoutFlags(arguments[1:])
	remoteName := formatter.ensureValue(formatter.argumentAtIndex(nonFlagArguments, 0))
	references := formatter.ensureValue(strings.Join(formatter.sliceFrom(nonFlagArguments, 1), ", "))

	switch stage {
	case messageStageStart:
		if containsArgument(arguments, gitForceFlagConstant) {
			return fmt.Sprintf(gitForcePushStartTemplateConstant, references, remoteName, workingDirectory)
		}
		return fmt.Sprintf(gitPushStartTemplateConstant, references, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitPushSuccessTemplateConstant, references, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitPushFailureTemplateConstant, references, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitPushExecutionFailureTemplateConstant, references, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	return fmt.Sprintf(commandLabelTemplateConstant, FormatCommandLine(command), formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) sliceFrom(arguments []string, index int) []string {
	if index >= len(arguments) {
		return nil
	}
	return arguments[index:]
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

// withoutFlags drops flag arguments together with the value following -m.
func (formatter CommandMessageFormatter) withoutFlags(arguments []string) []string {
	remaining := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		trimmed := strings.TrimSpace(arguments[index])
		if len(trimmed) == 0 {
			continue
		}
		if trimmed == gitMessageFlagConstant {
			index++
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		remaining = append(remaining, trimmed)
	}
	return remaining
}

func (formatter CommandMessageFormatter) extractLastNonFlagArgument(arguments []string) string {
	for index := len(arguments) - 1; index >= 0; index-- {
		argument := strings.TrimSpace(arguments[index])
		if len(argument) == 0 || strings.HasPrefix(argument, "-") {
			continue
		}
		return argument
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractCommitMessage(arguments []string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == gitMessageFlagConstant && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return fallbackUnknownValueLabelConstant
}
