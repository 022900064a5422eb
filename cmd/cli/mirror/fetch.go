package mirror

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vladisnik/git-bare-sync/internal/execshell"
	"github.com/vladisnik/git-bare-sync/internal/gitrepo"
	"github.com/vladisnik/git-bare-sync/internal/mirror"
	"github.com/vladisnik/git-bare-sync/internal/utils"
)

const (
	fetchCommandUseConstant                 = "fetch"
	fetchCommandShortDescriptionConstant    = "Fetch updates from remote git servers into local bare repositories"
	fetchCommandLongDescriptionConstant     = "fetch configures a single origin remote on every targeted bare repository, fetches all branches with prune, and records per-repository outcomes into the status file."
	fetchUnexpectedArgumentsMessageConstant = "fetch does not accept positional arguments"
	statusWriteFailedMessageConstant        = "unable to write status file, results of this run are not recorded"
	statusFileLogFieldConstant              = "status_file"
	writeErrorLogFieldConstant              = "error"
)

var errFetchUnexpectedArguments = errors.New(fetchUnexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies mirror defaults from the application configuration.
type ConfigurationProvider func() CommandConfiguration

// FlagValues carries the repository flag values consumed in CLI mode.
type FlagValues struct {
	LocalRepository  string
	RemoteRepository string
}

// FlagValuesProvider supplies the resolved repository flag values.
type FlagValuesProvider func() FlagValues

// FetchCommandBuilder assembles the Cobra command performing the mirroring run.
//
// The manifest path and status-file override travel through the command
// context via ContextAccessor; repository flags arrive via FlagValuesProvider.
type FetchCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FlagValuesProvider    FlagValuesProvider
	ContextAccessor       utils.CommandContextAccessor
	GitManager            mirror.GitRepositoryManager
	Clock                 mirror.Clock
}

// Build constructs the fetch command.
func (builder *FetchCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   fetchCommandUseConstant,
		Short: fetchCommandShortDescriptionConstant,
		Long:  fetchCommandLongDescriptionConstant,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *FetchCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errFetchUnexpectedArguments
	}

	return builder.Run(command)
}

// Run executes the mirroring workflow; the root command reuses it as the default action.
func (builder *FetchCommandBuilder) Run(command *cobra.Command) error {
	logger := builder.resolveLogger()

	targets, statusFilePath, resolutionError := builder.resolveTargets(command)
	if resolutionError != nil {
		return resolutionError
	}

	gitManager, managerError := builder.resolveGitManager(logger)
	if managerError != nil {
		return managerError
	}

	service, serviceError := mirror.NewService(mirror.ServiceDependencies{
		GitManager: gitManager,
		Logger:     logger,
		Clock:      builder.Clock,
	})
	if serviceError != nil {
		return serviceError
	}

	report := service.Run(command.Context(), targets)

	if len(statusFilePath) == 0 {
		return nil
	}

	if writeError := mirror.WriteStatusReport(statusFilePath, report); writeError != nil {
		logger.Warn(
			statusWriteFailedMessageConstant,
			zap.String(statusFileLogFieldConstant, statusFilePath),
			zap.String(writeErrorLogFieldConstant, writeError.Error()),
		)
	}

	return nil
}

// resolveTargets produces the repository targets and status file path from the manifest or the CLI flags.
//
// A manifest provided via --config supersedes every other flag, including
// --status-file; the manifest's metrics path is authoritative.
func (builder *FetchCommandBuilder) resolveTargets(command *cobra.Command) ([]mirror.RepoTarget, string, error) {
	manifestPath, manifestProvided := builder.ContextAccessor.ConfigurationFilePath(command.Context())
	if manifestProvided {
		resolvedManifest, manifestError := mirror.LoadManifest(manifestPath)
		if manifestError != nil {
			return nil, "", manifestError
		}
		return resolvedManifest.Targets, resolvedManifest.StatusFilePath, nil
	}

	flagValues := builder.resolveFlagValues()
	target, targetError := mirror.ResolveCLITarget(flagValues.LocalRepository, flagValues.RemoteRepository)
	if targetError != nil {
		return nil, "", targetError
	}

	statusFilePath, statusFileProvided := builder.ContextAccessor.StatusFilePath(command.Context())
	if !statusFileProvided {
		statusFilePath = builder.resolveConfiguration().StatusFile
	}

	return []mirror.RepoTarget{target}, statusFilePath, nil
}

func (builder *FetchCommandBuilder) resolveGitManager(logger *zap.Logger) (mirror.GitRepositoryManager, error) {
	if builder.GitManager != nil {
		return builder.GitManager, nil
	}

	executor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if executorError != nil {
		return nil, fmt.Errorf("unable to create shell executor: %w", executorError)
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(executor)
	if managerError != nil {
		return nil, fmt.Errorf("unable to create repository manager: %w", managerError)
	}

	return repositoryManager, nil
}

func (builder *FetchCommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *FetchCommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return CommandConfiguration{}
	}
	return builder.ConfigurationProvider()
}

func (builder *FetchCommandBuilder) resolveFlagValues() FlagValues {
	if builder.FlagValuesProvider == nil {
		return FlagValues{}
	}
	return builder.FlagValuesProvider()
}
