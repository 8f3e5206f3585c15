package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/quickrepo/internal/execshell"
	"github.com/temirov/quickrepo/internal/filesystem"
	"github.com/temirov/quickrepo/internal/gitconfig"
	"github.com/temirov/quickrepo/internal/githubprobe"
	"github.com/temirov/quickrepo/internal/gitignore"
	"github.com/temirov/quickrepo/internal/gitrepo"
	"github.com/temirov/quickrepo/internal/identity"
	"github.com/temirov/quickrepo/internal/prompt"
	"github.com/temirov/quickrepo/internal/reconcile"
	"github.com/temirov/quickrepo/internal/setup"
	"github.com/temirov/quickrepo/internal/shared"
	"github.com/temirov/quickrepo/internal/sshkey"
	"github.com/temirov/quickrepo/internal/ui"
	"github.com/temirov/quickrepo/internal/utils"
	flagutils "github.com/temirov/quickrepo/internal/utils/flags"
	pathutils "github.com/temirov/quickrepo/internal/utils/path"
)

const (
	applicationNameConstant                 = "quickrepo"
	applicationShortDescriptionConstant     = "Interactive first-time Git repository setup"
	applicationLongDescriptionConstant      = `quickrepo initializes a Git repository, links the origin remote, creates a .gitignore,
and optionally pushes to GitHub, asking before every step that changes something.

Features:
  - Prompts for Git user info if missing
  - SSH key check and optional creation
  - Remote conflict detection with GitHub
  - Option to force push, pull, or compare changes
  - .gitignore presets for Python or Node
  - Global default branch name config`
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	setupConfigurationKeyConstant           = "setup"
	environmentPrefixConstant               = "QUICKREPO"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationDryRunFieldConstant        = "dry_run"
	configurationProbeModeFieldConstant     = "probe_mode"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	probeModeErrorTemplateConstant          = "invalid probe mode: %w"
	promptModeErrorTemplateConstant         = "invalid prompt mode: %w"
	workingDirectoryErrorTemplateConstant   = "unable to determine working directory: %w"
	setupConstructionErrorTemplateConstant  = "unable to prepare setup: %w"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	defaultConfigurationSearchPathConstant  = "."
	userConfigurationDirectoryNameConstant  = "quickrepo"
	githubTokenEnvironmentVariableConstant  = "GITHUB_TOKEN"
	rootCommandInfoMessageConstant          = "quickrepo started"
)

// Version is reported by --version and may be replaced at link time.
var Version = "dev"

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Setup  setup.Configuration            `mapstructure:"setup"`
}

// ApplicationCommonConfiguration stores logging configuration.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	executionFlags         *flagutils.ExecutionFlagValues
	commandContextAccessor utils.CommandContextAccessor

	inputFile                *os.File
	outputFile               *os.File
	errorFile                *os.File
	commandRunner            execshell.CommandRunner
	workingDirectoryProvider func() (string, error)
	homeDirectoryProvider    pathutils.HomeDirectoryProvider
	environmentLookup        func(string) (string, bool)
	probeBaseURL             string
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:      configurationLoader,
		loggerFactory:            utils.NewLoggerFactory(),
		logger:                   zap.NewNop(),
		commandContextAccessor:   utils.NewCommandContextAccessor(),
		inputFile:                os.Stdin,
		outputFile:               os.Stdout,
		errorFile:                os.Stderr,
		commandRunner:            execshell.NewOSCommandRunner(),
		workingDirectoryProvider: os.Getwd,
		homeDirectoryProvider:    os.UserHomeDir,
		environmentLookup:        os.LookupEnv,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	defaultSetupConfiguration := setup.DefaultConfiguration()
	application.executionFlags = flagutils.BindExecutionFlags(
		cobraCommand,
		flagutils.ExecutionDefaults{
			DryRun:     defaultSetupConfiguration.DryRun,
			ProbeMode:  defaultSetupConfiguration.Probe.Mode,
			PromptMode: defaultSetupConfiguration.PromptMode,
		},
		flagutils.ExecutionChoices{
			ProbeModes:  probeModeChoices(),
			PromptModes: promptModeChoices(),
		},
	)

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the root command with the provided arguments and ensures logger flushing.
func (application *Application) Execute(arguments []string) error {
	application.rootCommand.SetArgs(flagutils.NormalizeToggleArguments(application.rootCommand.PersistentFlags(), arguments))
	application.rootCommand.SetIn(application.inputFile)
	application.rootCommand.SetOut(application.outputFile)
	application.rootCommand.SetErr(application.errorFile)

	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and runs it with the process arguments.
func Execute() error {
	return NewApplication().Execute(os.Args[1:])
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
	}
	for configurationKey, configurationValue := range setup.DefaultConfigurationValues(setupConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if applyError := application.applyExecutionOverrides(command); applyError != nil {
		return applyError
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.Bool(configurationDryRunFieldConstant, application.configuration.Setup.DryRun),
		zap.String(configurationProbeModeFieldConstant, application.configuration.Setup.Probe.Mode),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithRunSettings(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
			application.configuration.Setup.DryRun,
		)
		command.SetContext(updatedContext)
	}

	return nil
}

// applyExecutionOverrides layers flag values and the token environment variable over the loaded setup configuration.
func (application *Application) applyExecutionOverrides(command *cobra.Command) error {
	setupConfiguration := application.configuration.Setup

	if application.persistentFlagChanged(command, flagutils.DryRunFlagName) {
		setupConfiguration.DryRun = application.executionFlags.DryRun
	}
	if application.persistentFlagChanged(command, flagutils.ProbeModeFlagName) {
		setupConfiguration.Probe.Mode = application.executionFlags.ProbeMode
	}
	if application.persistentFlagChanged(command, flagutils.PromptModeFlagName) {
		setupConfiguration.PromptMode = application.executionFlags.PromptMode
	}

	probeMode, probeModeError := flagutils.NormalizeChoice(setupConfiguration.Probe.Mode, githubprobe.ModeWeb, probeModeChoices())
	if probeModeError != nil {
		return fmt.Errorf(probeModeErrorTemplateConstant, probeModeError)
	}
	setupConfiguration.Probe.Mode = probeMode

	promptMode, promptModeError := flagutils.NormalizeChoice(setupConfiguration.PromptMode, prompt.PromptModeAutomatic, promptModeChoices())
	if promptModeError != nil {
		return fmt.Errorf(promptModeErrorTemplateConstant, promptModeError)
	}
	setupConfiguration.PromptMode = promptMode

	if len(strings.TrimSpace(setupConfiguration.Probe.Token)) == 0 && application.environmentLookup != nil {
		if environmentToken, found := application.environmentLookup(githubTokenEnvironmentVariableConstant); found {
			setupConfiguration.Probe.Token = environmentToken
		}
	}

	application.configuration.Setup = setupConfiguration.Sanitize()
	return nil
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	workingDirectory, workingDirectoryError := application.workingDirectoryProvider()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorTemplateConstant, workingDirectoryError)
	}

	configurationFilePath, _ := application.commandContextAccessor.ConfigurationFilePath(command.Context())
	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(configurationFileFieldConstant, configurationFilePath),
		zap.Bool(configurationDryRunFieldConstant, application.commandContextAccessor.DryRun(command.Context())),
	)

	runner, runnerError := application.buildRunner()
	if runnerError != nil {
		return fmt.Errorf(setupConstructionErrorTemplateConstant, runnerError)
	}

	_, runError := runner.Run(command.Context(), workingDirectory)
	return runError
}

// buildRunner wires every setup step against the process streams and the loaded configuration.
func (application *Application) buildRunner() (*setup.Runner, error) {
	setupConfiguration := application.configuration.Setup
	logger := application.logger
	reporter := shared.NewWriterReporter(application.outputFile, shared.WithTranscriptLogger(logger))
	fileSystem := filesystem.OSFileSystem{}
	homeExpander := pathutils.NewHomeExpanderWithProvider(application.homeDirectoryProvider)

	executor, executorError := execshell.NewShellExecutor(
		logger,
		application.commandRunner,
		execshell.WithDryRun(setupConfiguration.DryRun),
		execshell.WithDryRunOutput(application.outputFile),
		execshell.WithCommandEventObserver(ui.NewConsoleCommandEventLogger(logger)),
	)
	if executorError != nil {
		return nil, executorError
	}

	configurationProvider, providerError := gitconfig.NewGlobalProvider(executor)
	if providerError != nil {
		return nil, providerError
	}

	prompter, prompterError := prompt.NewConsolePrompter(setupConfiguration.PromptMode, application.inputFile, application.outputFile, application.errorFile)
	if prompterError != nil {
		return nil, prompterError
	}

	identityService, identityError := identity.NewService(identity.ServiceDependencies{
		Provider: configurationProvider,
		Prompter: prompter,
		Reporter: reporter,
	})
	if identityError != nil {
		return nil, identityError
	}

	keyService, keyError := sshkey.NewService(
		sshkey.ServiceDependencies{
			FileSystem:   fileSystem,
			Executor:     executor,
			Provider:     configurationProvider,
			Prompter:     prompter,
			Reporter:     reporter,
			HomeExpander: homeExpander,
		},
		sshkey.Options{
			Directory:       setupConfiguration.SSH.Directory,
			KeyType:         setupConfiguration.SSH.KeyType,
			PublicKeySuffix: setupConfiguration.SSH.PublicKeySuffix,
		},
	)
	if keyError != nil {
		return nil, keyError
	}

	prober, proberError := githubprobe.NewProber(githubprobe.Options{
		Mode:    setupConfiguration.Probe.Mode,
		Host:    setupConfiguration.RemoteHost,
		Timeout: setupConfiguration.Probe.Timeout,
		Token:   setupConfiguration.Probe.Token,
		BaseURL: application.probeBaseURL,
		Logger:  logger,
	})
	if proberError != nil {
		return nil, proberError
	}

	ignoreGenerator := gitignore.NewGenerator(
		gitignore.ServiceDependencies{FileSystem: fileSystem, Prompter: prompter, Reporter: reporter},
		setupConfiguration.Gitignore.Presets,
		setupConfiguration.DryRun,
	)

	reconcileService, reconcileError := reconcile.NewService(
		reconcile.ServiceDependencies{
			Executor:        executor,
			Prompter:        prompter,
			Reporter:        reporter,
			FileSystem:      fileSystem,
			Detector:        gitrepo.NewRepositoryDetector(fileSystem),
			Prober:          prober,
			IgnoreGenerator: ignoreGenerator,
			HomeExpander:    homeExpander,
		},
		reconcile.Options{
			Branch:           setupConfiguration.DefaultBranch,
			RemoteName:       setupConfiguration.RemoteName,
			RemoteHost:       setupConfiguration.RemoteHost,
			CommitMessage:    setupConfiguration.CommitMessage,
			ForceSyncMessage: setupConfiguration.ForceSyncMessage,
			ScratchClonePath: setupConfiguration.ScratchClonePath,
		},
	)
	if reconcileError != nil {
		return nil, reconcileError
	}

	return setup.NewRunner(
		setup.RunnerDependencies{
			Output:       application.outputFile,
			Reporter:     reporter,
			Prompter:     prompter,
			HomeExpander: homeExpander,
			Identity:     identityService,
			SSHKeys:      keyService,
			Reconciler:   reconcileService,
			Logger:       logger,
		},
		setupConfiguration,
	)
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}

// configurationSearchPaths lists the working directory followed by the per-user configuration directory.
func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	userConfigurationDirectory, userConfigurationDirectoryError := os.UserConfigDir()
	if userConfigurationDirectoryError == nil && len(userConfigurationDirectory) > 0 {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, userConfigurationDirectoryNameConstant))
	}
	return searchPaths
}

func probeModeChoices() []string {
	return []string{githubprobe.ModeWeb, githubprobe.ModeAPI}
}

func promptModeChoices() []string {
	return []string{prompt.PromptModeAutomatic, prompt.PromptModeLine, prompt.PromptModeTerminal}
}
