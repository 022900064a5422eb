package mirror_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	mirrorcmd "github.com/vladisnik/git-bare-sync/cmd/cli/mirror"
	"github.com/vladisnik/git-bare-sync/internal/utils"
)

const metricTestStatusContentsConstant = `{
  "updated_at": 1741944413,
  "statuses": {
    "app:team/app.git": 1
  }
}`

func TestMetricCommandPrintsStatusFile(testInstance *testing.T) {
	statusFilePath := filepath.Join(testInstance.TempDir(), "status.json")
	require.NoError(testInstance, os.WriteFile(statusFilePath, []byte(metricTestStatusContentsConstant), 0o644))

	builder := &mirrorcmd.MetricCommandBuilder{}
	metricCommand, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	metricCommand.SetOut(outputBuffer)
	metricCommand.SetArgs([]string{})

	commandContext := utils.NewCommandContextAccessor().WithStatusFilePath(context.Background(), statusFilePath)
	require.NoError(testInstance, metricCommand.ExecuteContext(commandContext))
	require.Equal(testInstance, metricTestStatusContentsConstant+"\n", outputBuffer.String())
}

func TestMetricCommandUsesConfiguredStatusFile(testInstance *testing.T) {
	statusFilePath := filepath.Join(testInstance.TempDir(), "status.json")
	require.NoError(testInstance, os.WriteFile(statusFilePath, []byte(metricTestStatusContentsConstant), 0o644))

	builder := &mirrorcmd.MetricCommandBuilder{
		ConfigurationProvider: func() mirrorcmd.CommandConfiguration {
			return mirrorcmd.CommandConfiguration{StatusFile: statusFilePath}
		},
	}

	metricCommand, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	metricCommand.SetOut(outputBuffer)
	metricCommand.SetArgs([]string{})

	require.NoError(testInstance, metricCommand.ExecuteContext(context.Background()))
	require.Contains(testInstance, outputBuffer.String(), "app:team/app.git")
}

func TestMetricCommandManifestSupersedesStatusFileFlag(testInstance *testing.T) {
	repoRoot := testInstance.TempDir()
	require.NoError(testInstance, os.MkdirAll(filepath.Join(repoRoot, "team", "app"), 0o755))

	manifestStatusPath := filepath.Join(testInstance.TempDir(), "manifest-status.json")
	require.NoError(testInstance, os.WriteFile(manifestStatusPath, []byte(metricTestStatusContentsConstant), 0o644))

	flagStatusPath := filepath.Join(testInstance.TempDir(), "flag-status.json")
	require.NoError(testInstance, os.WriteFile(flagStatusPath, []byte(`{"statuses": {}}`), 0o644))

	manifestPath := writeMirrorManifest(testInstance, repoRoot, manifestStatusPath)

	builder := &mirrorcmd.MetricCommandBuilder{}
	metricCommand, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	metricCommand.SetOut(outputBuffer)
	metricCommand.SetArgs([]string{})

	accessor := utils.NewCommandContextAccessor()
	commandContext := accessor.WithConfigurationFilePath(context.Background(), manifestPath)
	commandContext = accessor.WithStatusFilePath(commandContext, flagStatusPath)

	require.NoError(testInstance, metricCommand.ExecuteContext(commandContext))
	require.Contains(testInstance, outputBuffer.String(), "app:team/app.git")
}

func TestMetricCommandRequiresStatusFile(testInstance *testing.T) {
	builder := &mirrorcmd.MetricCommandBuilder{}
	metricCommand, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	metricCommand.SetArgs([]string{})
	metricCommand.SilenceUsage = true
	metricCommand.SilenceErrors = true

	executionError := metricCommand.ExecuteContext(context.Background())
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "needs arguments --status-file")
}

func TestMetricCommandMissingStatusFile(testInstance *testing.T) {
	missingStatusPath := filepath.Join(testInstance.TempDir(), "absent.json")

	builder := &mirrorcmd.MetricCommandBuilder{}
	metricCommand, buildError := builder.Build()
	require.NoError(testInstance, buildError)
	metricCommand.SetArgs([]string{})
	metricCommand.SilenceUsage = true
	metricCommand.SilenceErrors = true

	commandContext := utils.NewCommandContextAccessor().WithStatusFilePath(context.Background(), missingStatusPath)
	executionError := metricCommand.ExecuteContext(commandContext)
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), missingStatusPath)
}
