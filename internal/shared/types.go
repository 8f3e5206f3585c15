package shared

import (
	"context"
	"io/fs"

	"github.com/temirov/quickrepo/internal/execshell"
)

const (
	// OriginRemoteNameConstant identifies the remote quickrepo links the working directory to.
	OriginRemoteNameConstant = "origin"
	// MainBranchNameConstant is the branch name every setup converges on.
	MainBranchNameConstant = "main"
)

// CommandExecutor exposes the simulation-aware entry points of the shell executor.
type CommandExecutor interface {
	Output(executionContext context.Context, command execshell.ShellCommand) string
	Succeeded(executionContext context.Context, command execshell.ShellCommand) bool
	Run(executionContext context.Context, command execshell.ShellCommand) error
	DryRun() bool
}

// PromptOption is one entry of a numbered menu.
type PromptOption struct {
	Key   string
	Label string
}

// Prompter collects answers from the person running the setup.
type Prompter interface {
	// Confirm interprets y/yes as acceptance and anything else as refusal.
	Confirm(prompt string) (bool, error)
	// Ask returns the trimmed answer; an empty answer is valid.
	Ask(prompt string) (string, error)
	// Choose returns the key of the selected option or the raw answer when it matches none.
	Choose(prompt string, options []PromptOption) (string, error)
}

// FileSystem provides the filesystem operations used by setup steps.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	WriteFile(path string, data []byte, permissions fs.FileMode) error
	RemoveAll(path string) error
}
