// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
)

const (
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Print mutating commands instead of running them (git config reads still run and are printed)"
	// ProbeModeFlagName exposes the remote probe mode flag name.
	ProbeModeFlagName = "probe"
	// ProbeModeFlagUsage describes the remote probe mode flag purpose.
	ProbeModeFlagUsage = "How remote existence is checked."
	// PromptModeFlagName exposes the prompt mode flag name.
	PromptModeFlagName = "prompt"
	// PromptModeFlagUsage describes the prompt mode flag purpose.
	PromptModeFlagUsage = "How questions are asked."
)

// ExecutionDefaults describes default flag values shared across commands.
type ExecutionDefaults struct {
	DryRun     bool
	ProbeMode  string
	PromptMode string
}

// ExecutionChoices lists the accepted values for choice flags.
type ExecutionChoices struct {
	ProbeModes  []string
	PromptModes []string
}

// ExecutionFlagValues stores parsed execution flag values.
type ExecutionFlagValues struct {
	DryRun     bool
	ProbeMode  string
	PromptMode string
}

// BindExecutionFlags attaches the execution flags to the provided command using persistent scope.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionDefaults, choices ExecutionChoices) *ExecutionFlagValues {
	values := &ExecutionFlagValues{
		DryRun:     defaults.DryRun,
		ProbeMode:  defaults.ProbeMode,
		PromptMode: defaults.PromptMode,
	}
	if command == nil {
		return values
	}

	persistentFlagSet := command.PersistentFlags()
	AddToggleFlag(persistentFlagSet, &values.DryRun, DryRunFlagName, defaults.DryRun, DryRunFlagUsage)

	if len(choices.ProbeModes) > 0 {
		persistentFlagSet.StringVar(&values.ProbeMode, ProbeModeFlagName, defaults.ProbeMode, FormatChoiceUsage(defaults.ProbeMode, choices.ProbeModes, ProbeModeFlagUsage))
	}
	if len(choices.PromptModes) > 0 {
		persistentFlagSet.StringVar(&values.PromptMode, PromptModeFlagName, defaults.PromptMode, FormatChoiceUsage(defaults.PromptMode, choices.PromptModes, PromptModeFlagUsage))
	}

	return values
}
