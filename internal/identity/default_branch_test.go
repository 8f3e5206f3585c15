package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/quickrepo/internal/gitconfig"
	"github.com/temirov/quickrepo/internal/identity"
	"github.com/temirov/quickrepo/internal/testsupport"
)

const defaultBranchPromptConstant = "Would you like to set 'main' as your default branch globally? [y/n]: "

func TestEnsureDefaultBranch(testInstance *testing.T) {
	testCases := []struct {
		name            string
		values          map[string]string
		preferredBranch string
		answers         []string
		expectedOutcome identity.BranchOutcome
		expectedWrites  []testsupport.ConfigurationWrite
		expectedPrompts []string
		expectedOutput  string
	}{
		{
			name:            "already_main",
			values:          map[string]string{gitconfig.DefaultBranchKeyConstant: "main"},
			preferredBranch: "main",
			expectedOutcome: identity.BranchAlreadyPreferred,
		},
		{
			name:            "unset_and_accepted",
			preferredBranch: "main",
			answers:         []string{"y"},
			expectedOutcome: identity.BranchUpdated,
			expectedWrites:  []testsupport.ConfigurationWrite{{Key: gitconfig.DefaultBranchKeyConstant, Value: "main"}},
			expectedPrompts: []string{defaultBranchPromptConstant},
			expectedOutput:  "🔧 Current global default branch is: master (default)\n✅ Default branch updated to 'main'.\n\n",
		},
		{
			name:            "master_and_declined",
			values:          map[string]string{gitconfig.DefaultBranchKeyConstant: "master"},
			preferredBranch: "main",
			answers:         []string{"n"},
			expectedOutcome: identity.BranchLeftUnchanged,
			expectedPrompts: []string{defaultBranchPromptConstant},
			expectedOutput:  "🔧 Current global default branch is: master\n",
		},
		{
			name:            "empty_preference_defaults_to_main",
			values:          map[string]string{gitconfig.DefaultBranchKeyConstant: "main"},
			preferredBranch: "  ",
			expectedOutcome: identity.BranchAlreadyPreferred,
		},
		{
			name:            "custom_preference",
			values:          map[string]string{gitconfig.DefaultBranchKeyConstant: "main"},
			preferredBranch: "trunk",
			answers:         []string{"yes"},
			expectedOutcome: identity.BranchUpdated,
			expectedWrites:  []testsupport.ConfigurationWrite{{Key: gitconfig.DefaultBranchKeyConstant, Value: "trunk"}},
			expectedPrompts: []string{"Would you like to set 'trunk' as your default branch globally? [y/n]: "},
			expectedOutput:  "🔧 Current global default branch is: main\n✅ Default branch updated to 'trunk'.\n\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			provider := &testsupport.MemoryConfigurationProvider{Values: testCase.values}
			prompter := &testsupport.ScriptedPrompter{Answers: testCase.answers}
			reporter := &testsupport.RecordingReporter{}
			service, serviceError := identity.NewService(identity.ServiceDependencies{Provider: provider, Prompter: prompter, Reporter: reporter})
			require.NoError(subTest, serviceError)

			outcome, ensureError := service.EnsureDefaultBranch(context.Background(), testCase.preferredBranch)
			require.NoError(subTest, ensureError)
			require.Equal(subTest, testCase.expectedOutcome, outcome)
			require.Equal(subTest, testCase.expectedWrites, provider.Writes)
			require.Equal(subTest, testCase.expectedPrompts, prompter.Prompts)
			require.Equal(subTest, testCase.expectedOutput, reporter.Output())
		})
	}
}
