package mirror

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vladisnik/git-bare-sync/internal/mirror"
	"github.com/vladisnik/git-bare-sync/internal/utils"
)

const (
	metricCommandUseConstant                 = "metric"
	metricCommandShortDescriptionConstant    = "Print the raw contents of the status file"
	metricCommandLongDescriptionConstant     = "metric prints the JSON status file produced by the latest fetch run without reparsing it."
	metricUnexpectedArgumentsMessageConstant = "metric does not accept positional arguments"
	metricMissingStatusFileMessageConstant   = "needs arguments --status-file when run without a configuration file and action 'metric'"
)

var (
	errMetricUnexpectedArguments = errors.New(metricUnexpectedArgumentsMessageConstant)
	errMetricMissingStatusFile   = errors.New(metricMissingStatusFileMessageConstant)
)

// MetricCommandBuilder assembles the Cobra command printing the status file.
//
// The manifest path and status-file override travel through the command
// context via ContextAccessor.
type MetricCommandBuilder struct {
	ConfigurationProvider ConfigurationProvider
	ContextAccessor       utils.CommandContextAccessor
}

// Build constructs the metric command.
func (builder *MetricCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   metricCommandUseConstant,
		Short: metricCommandShortDescriptionConstant,
		Long:  metricCommandLongDescriptionConstant,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *MetricCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errMetricUnexpectedArguments
	}

	statusFilePath, resolutionError := builder.resolveStatusFilePath(command)
	if resolutionError != nil {
		return resolutionError
	}

	statusContents, readError := mirror.ReadStatusFile(statusFilePath)
	if readError != nil {
		return readError
	}

	fmt.Fprintln(command.OutOrStdout(), statusContents)
	return nil
}

// resolveStatusFilePath takes the manifest's metrics path when a manifest is
// provided; otherwise the --status-file flag, then the configured default.
func (builder *MetricCommandBuilder) resolveStatusFilePath(command *cobra.Command) (string, error) {
	manifestPath, manifestProvided := builder.ContextAccessor.ConfigurationFilePath(command.Context())
	if manifestProvided {
		resolvedManifest, manifestError := mirror.LoadManifest(manifestPath)
		if manifestError != nil {
			return "", manifestError
		}
		return resolvedManifest.StatusFilePath, nil
	}

	statusFilePath, statusFileProvided := builder.ContextAccessor.StatusFilePath(command.Context())
	if statusFileProvided {
		return statusFilePath, nil
	}

	if builder.ConfigurationProvider != nil {
		configuredStatusFile := builder.ConfigurationProvider().StatusFile
		if len(configuredStatusFile) > 0 {
			return configuredStatusFile, nil
		}
	}

	return "", errMetricMissingStatusFile
}
