package gitconfig

import (
	"context"
	"errors"

	"github.com/temirov/quickrepo/internal/execshell"
	"github.com/temirov/quickrepo/internal/shared"
)

const (
	configSubcommandConstant       = "config"
	globalScopeFlagConstant        = "--global"
	executorNotConfiguredConstant  = "git configuration executor not configured"
	configurationKeyMissingMessage = "git configuration key must not be empty"
)

// Well-known global configuration keys.
const (
	UserNameKeyConstant      = "user.name"
	UserEmailKeyConstant     = "user.email"
	DefaultBranchKeyConstant = "init.defaultBranch"
)

// ErrExecutorNotConfigured indicates the provider was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredConstant)

// ErrConfigurationKeyMissing indicates an empty configuration key was supplied.
var ErrConfigurationKeyMissing = errors.New(configurationKeyMissingMessage)

// Provider reads and writes global configuration values.
type Provider interface {
	// Read returns the value and whether it is set to a non-empty string.
	Read(executionContext context.Context, key string) (string, bool)
	Write(executionContext context.Context, key string, value string) error
}

// GlobalProvider manages the global git configuration through the git executable.
type GlobalProvider struct {
	executor shared.CommandExecutor
}

// NewGlobalProvider constructs a provider backed by the supplied executor.
func NewGlobalProvider(executor shared.CommandExecutor) (*GlobalProvider, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &GlobalProvider{executor: executor}, nil
}

// Read looks up a key with git config --global. Lookups run even when the executor simulates.
func (provider *GlobalProvider) Read(executionContext context.Context, key string) (string, bool) {
	if len(key) == 0 {
		return "", false
	}
	value := provider.executor.Output(executionContext, execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments: []string{configSubcommandConstant, globalScopeFlagConstant, key},
			ReadOnly:  true,
		},
	})
	return value, len(value) > 0
}

// Write stores a key with git config --global.
// A failing git invocation is logged by the executor and does not interrupt setup.
func (provider *GlobalProvider) Write(executionContext context.Context, key string, value string) error {
	if len(key) == 0 {
		return ErrConfigurationKeyMissing
	}
	_ = provider.executor.Run(executionContext, execshell.ShellCommand{
		Name: execshell.CommandGit,
		Details: execshell.CommandDetails{
			Arguments: []string{configSubcommandConstant, globalScopeFlagConstant, key, value},
		},
	})
	return nil
}
