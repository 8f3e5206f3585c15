package utils

import "context"

type commandContextKey string

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	dryRunContextKeyConstant                = commandContextKey("dryRun")
)

// CommandContextAccessor stores resolved run settings on the cobra command context.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithRunSettings records the configuration file that was loaded and whether the run is simulated.
func (accessor CommandContextAccessor) WithRunSettings(parentContext context.Context, configurationFilePath string, dryRun bool) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	settingsContext := context.WithValue(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
	return context.WithValue(settingsContext, dryRunContextKeyConstant, dryRun)
}

// ConfigurationFilePath returns the configuration file recorded by WithRunSettings.
// An empty path with true means only embedded defaults and environment variables were used.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, available := executionContext.Value(configurationFilePathContextKeyConstant).(string)
	return configurationFilePath, available
}

// DryRun reports whether the run was recorded as simulated. Missing settings mean a real run.
func (accessor CommandContextAccessor) DryRun(executionContext context.Context) bool {
	if executionContext == nil {
		return false
	}
	dryRun, _ := executionContext.Value(dryRunContextKeyConstant).(bool)
	return dryRun
}
