package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladisnik/git-bare-sync/cmd/cli"
)

const applicationTestStatusContentsConstant = `{
  "updated_at": 1741944413,
  "statuses": {
    "app:team/app.git": 1
  }
}`

func TestApplicationRegistersPersistentFlags(testInstance *testing.T) {
	application := cli.NewApplication()
	persistentFlags := application.RootCommand().PersistentFlags()

	for _, flagName := range []string{"config", "local-repo", "remote-repo", "status-file", "log-level", "log-format"} {
		require.NotNil(testInstance, persistentFlags.Lookup(flagName), flagName)
	}
}

func TestApplicationRegistersMirrorCommands(testInstance *testing.T) {
	application := cli.NewApplication()

	commandNames := map[string]bool{}
	for _, registeredCommand := range application.RootCommand().Commands() {
		commandNames[registeredCommand.Name()] = true
	}

	require.True(testInstance, commandNames["fetch"])
	require.True(testInstance, commandNames["metric"])
}

func TestApplicationDefaultActionRequiresRepositoryFlags(testInstance *testing.T) {
	application := cli.NewApplication()
	rootCommand := application.RootCommand()
	rootCommand.SetArgs([]string{})

	executionError := rootCommand.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "needs arguments --local-repo and --remote-repo")
}

func TestApplicationRejectsUnknownActions(testInstance *testing.T) {
	application := cli.NewApplication()
	rootCommand := application.RootCommand()
	rootCommand.SetArgs([]string{"rewind"})

	executionError := rootCommand.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "rewind")
}

func TestApplicationMetricCommandPrintsStatusFile(testInstance *testing.T) {
	statusFilePath := filepath.Join(testInstance.TempDir(), "status.json")
	require.NoError(testInstance, os.WriteFile(statusFilePath, []byte(applicationTestStatusContentsConstant), 0o644))

	application := cli.NewApplication()
	rootCommand := application.RootCommand()

	outputBuffer := &bytes.Buffer{}
	rootCommand.SetOut(outputBuffer)
	rootCommand.SetArgs([]string{"metric", "--status-file", statusFilePath})

	require.NoError(testInstance, rootCommand.Execute())
	require.Contains(testInstance, outputBuffer.String(), "app:team/app.git")
}

func TestApplicationRejectsUnsupportedLogLevel(testInstance *testing.T) {
	application := cli.NewApplication()
	rootCommand := application.RootCommand()
	rootCommand.SetArgs([]string{"metric", "--log-level", "verbose"})

	executionError := rootCommand.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unsupported log level")
}
