package gitconfig_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/quickrepo/internal/execshell"
	"github.com/temirov/quickrepo/internal/gitconfig"
	"github.com/temirov/quickrepo/internal/testsupport"
)

const (
	userNameLookupCommandConstant = "git config --global user.name"
	configuredUserNameConstant    = "Alice Example"
)

func TestGlobalProviderRead(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		results               map[string]execshell.ExecutionResult
		dryRun                bool
		expectedValue         string
		expectedFound         bool
		expectedAnnouncements string
	}{
		{
			name:          "configured",
			results:       map[string]execshell.ExecutionResult{userNameLookupCommandConstant: {StandardOutput: configuredUserNameConstant + "\n"}},
			expectedValue: configuredUserNameConstant,
			expectedFound: true,
		},
		{
			name:                  "configured_while_simulating",
			results:               map[string]execshell.ExecutionResult{userNameLookupCommandConstant: {StandardOutput: configuredUserNameConstant + "\n"}},
			dryRun:                true,
			expectedValue:         configuredUserNameConstant,
			expectedFound:         true,
			expectedAnnouncements: "[DRY-RUN] Reading: " + userNameLookupCommandConstant + "\n",
		},
		{
			name:          "unset",
			results:       map[string]execshell.ExecutionResult{userNameLookupCommandConstant: {ExitCode: 1}},
			expectedValue: "",
			expectedFound: false,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			runner := &testsupport.ScriptedCommandRunner{Results: testCase.results}
			announcements := &strings.Builder{}
			executor := testsupport.NewShellExecutor(subTest, runner, testCase.dryRun, announcements)
			provider, providerError := gitconfig.NewGlobalProvider(executor)
			require.NoError(subTest, providerError)

			value, found := provider.Read(context.Background(), gitconfig.UserNameKeyConstant)
			require.Equal(subTest, testCase.expectedValue, value)
			require.Equal(subTest, testCase.expectedFound, found)
			require.Equal(subTest, []string{userNameLookupCommandConstant}, runner.CommandLines())
			require.Equal(subTest, testCase.expectedAnnouncements, announcements.String())
		})
	}
}

func TestGlobalProviderWrite(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		dryRun                bool
		expectedCommandLines  []string
		expectedAnnouncements string
	}{
		{
			name:                 "executes",
			expectedCommandLines: []string{`git config --global user.name "Alice Example"`},
		},
		{
			name:                  "simulates",
			dryRun:                true,
			expectedCommandLines:  []string{},
			expectedAnnouncements: "[DRY-RUN] Would run: git config --global user.name \"Alice Example\"\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			runner := &testsupport.ScriptedCommandRunner{}
			announcements := &strings.Builder{}
			executor := testsupport.NewShellExecutor(subTest, runner, testCase.dryRun, announcements)
			provider, providerError := gitconfig.NewGlobalProvider(executor)
			require.NoError(subTest, providerError)

			writeError := provider.Write(context.Background(), gitconfig.UserNameKeyConstant, configuredUserNameConstant)
			require.NoError(subTest, writeError)
			require.Equal(subTest, testCase.expectedCommandLines, runner.CommandLines())
			require.Equal(subTest, testCase.expectedAnnouncements, announcements.String())
		})
	}
}

func TestGlobalProviderValidation(testInstance *testing.T) {
	_, providerError := gitconfig.NewGlobalProvider(nil)
	require.ErrorIs(testInstance, providerError, gitconfig.ErrExecutorNotConfigured)

	executor := testsupport.NewShellExecutor(testInstance, &testsupport.ScriptedCommandRunner{}, false, &strings.Builder{})
	provider, providerError := gitconfig.NewGlobalProvider(executor)
	require.NoError(testInstance, providerError)
	require.ErrorIs(testInstance, provider.Write(context.Background(), "", "value"), gitconfig.ErrConfigurationKeyMissing)
}

func TestGlobalProviderWriteIgnoresCommandFailures(testInstance *testing.T) {
	runner := &testsupport.ScriptedCommandRunner{
		Results: map[string]execshell.ExecutionResult{
			"git config --global init.defaultBranch main": {ExitCode: 255, StandardError: "error: could not lock config file"},
		},
	}
	executor := testsupport.NewShellExecutor(testInstance, runner, false, &strings.Builder{})
	provider, providerError := gitconfig.NewGlobalProvider(executor)
	require.NoError(testInstance, providerError)

	require.NoError(testInstance, provider.Write(context.Background(), gitconfig.DefaultBranchKeyConstant, "main"))
	require.Len(testInstance, runner.Commands, 1)
	require.True(testInstance, runner.Commands[0].Details.Interactive)
}
