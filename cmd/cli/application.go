package cli

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	mirrorcmd "github.com/vladisnik/git-bare-sync/cmd/cli/mirror"
	"github.com/vladisnik/git-bare-sync/internal/utils"
)

const (
	applicationNameConstant                 = "git-bare-sync"
	applicationShortDescriptionConstant     = "Mirror local bare git repositories from remote git servers"
	applicationLongDescriptionConstant      = "git-bare-sync configures a single origin remote on local bare repositories, fetches branch updates with prune, and records per-repository outcomes into a JSON status file."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Path to the YAML manifest describing repositories to mirror."
	localRepositoryFlagNameConstant         = "local-repo"
	localRepositoryFlagUsageConstant        = "Path to a single local bare repository (used without --config)."
	remoteRepositoryFlagNameConstant        = "remote-repo"
	remoteRepositoryFlagUsageConstant       = "Remote repository URL for --local-repo (used without --config)."
	statusFileFlagNameConstant              = "status-file"
	statusFileFlagUsageConstant             = "Path to the JSON status file."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant               = "GITBARESYNC"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	defaultConfigurationSearchPathConstant  = "."
	toolsConfigurationKeyConstant           = "tools"
	mirrorConfigurationKeyConstant          = toolsConfigurationKeyConstant + ".mirror"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands grouped by tool family.
type ApplicationToolsConfiguration struct {
	Mirror mirrorcmd.CommandConfiguration `mapstructure:"mirror"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand               *cobra.Command
	configurationLoader       *utils.ConfigurationLoader
	loggerFactory             *utils.LoggerFactory
	logger                    *zap.Logger
	configuration             ApplicationConfiguration
	configurationMetadata     utils.LoadedConfiguration
	configurationFilePath     string
	localRepositoryFlagValue  string
	remoteRepositoryFlagValue string
	statusFileFlagValue       string
	logLevelFlagValue         string
	logFormatFlagValue        string
	commandContextAccessor    utils.CommandContextAccessor
	fetchBuilder              *mirrorcmd.FetchCommandBuilder
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
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
	cobraCommand.PersistentFlags().StringVarP(&application.configurationFilePath, configFileFlagNameConstant, "c", "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.localRepositoryFlagValue, localRepositoryFlagNameConstant, "", localRepositoryFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.remoteRepositoryFlagValue, remoteRepositoryFlagNameConstant, "", remoteRepositoryFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.statusFileFlagValue, statusFileFlagNameConstant, "", statusFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	application.fetchBuilder = &mirrorcmd.FetchCommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() mirrorcmd.CommandConfiguration {
			return application.configuration.Tools.Mirror
		},
		FlagValuesProvider: application.mirrorFlagValues,
		ContextAccessor:    application.commandContextAccessor,
	}
	fetchCommand, fetchBuildError := application.fetchBuilder.Build()
	if fetchBuildError == nil {
		cobraCommand.AddCommand(fetchCommand)
	}

	metricBuilder := &mirrorcmd.MetricCommandBuilder{
		ConfigurationProvider: func() mirrorcmd.CommandConfiguration {
			return application.configuration.Tools.Mirror
		},
		ContextAccessor: application.commandContextAccessor,
	}
	metricCommand, metricBuildError := metricBuilder.Build()
	if metricBuildError == nil {
		cobraCommand.AddCommand(metricCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

// RootCommand exposes the assembled Cobra root command for testing.
func (application *Application) RootCommand() *cobra.Command {
	return application.rootCommand
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range mirrorcmd.DefaultConfigurationValues(mirrorConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration("", defaultValues, &application.configuration)
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

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationFilePath,
		)
		updatedContext = application.commandContextAccessor.WithStatusFilePath(
			updatedContext,
			application.statusFileFlagValue,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

// mirrorFlagValues snapshots the repository flags consumed by the fetch command.
func (application *Application) mirrorFlagValues() mirrorcmd.FlagValues {
	return mirrorcmd.FlagValues{
		LocalRepository:  application.localRepositoryFlagValue,
		RemoteRepository: application.remoteRepositoryFlagValue,
	}
}

// runRootCommand performs the default fetch action when no subcommand is named.
func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return fmt.Errorf("unknown action %q", arguments[0])
	}

	return application.fetchBuilder.Run(command)
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
