package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/quickrepo/internal/utils"
)

func TestCommandContextAccessorRunSettings(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		parentContext         context.Context
		configurationFilePath string
		dryRun                bool
	}{
		{name: "configuration file and dry run", parentContext: context.Background(), configurationFilePath: "/home/alice/.config/quickrepo/config.yaml", dryRun: true},
		{name: "embedded defaults only", parentContext: context.Background(), configurationFilePath: "", dryRun: false},
		{name: "nil parent context", parentContext: nil, configurationFilePath: "config.yaml", dryRun: true},
	}

	accessor := utils.NewCommandContextAccessor()
	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			settingsContext := accessor.WithRunSettings(testCase.parentContext, testCase.configurationFilePath, testCase.dryRun)

			configurationFilePath, available := accessor.ConfigurationFilePath(settingsContext)
			require.True(testInstance, available)
			require.Equal(testInstance, testCase.configurationFilePath, configurationFilePath)
			require.Equal(testInstance, testCase.dryRun, accessor.DryRun(settingsContext))
		})
	}
}

func TestCommandContextAccessorWithoutSettings(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	configurationFilePath, available := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, available)
	require.Empty(testInstance, configurationFilePath)
	require.False(testInstance, accessor.DryRun(context.Background()))

	_, nilAvailable := accessor.ConfigurationFilePath(nil)
	require.False(testInstance, nilAvailable)
}
